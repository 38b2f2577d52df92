package engine

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"statline/internal/storage"
)

func newTestService(t *testing.T, opts ...Option) (*Service, func()) {
	t.Helper()
	ctx := context.Background()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")
	db, err := storage.Open(ctx, path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	svc := NewService(db, append([]Option{WithIDGenerator(sequentialIDs())}, opts...)...)
	cleanup := func() {
		_ = db.Close()
	}
	return svc, cleanup
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("e%03d", n)
	}
}

func fixedClock(start time.Time, step time.Duration) func() time.Time {
	cur := start
	return func() time.Time {
		t := cur
		cur = cur.Add(step)
		return t
	}
}

func TestServiceCompleteAndUndoRestoresTotals(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	before, err := svc.State(ctx)
	if err != nil {
		t.Fatalf("State: %v", err)
	}
	if before.Totals != DefaultBaseline() {
		t.Fatalf("initial totals=%v, want baseline %v", before.Totals, DefaultBaseline())
	}

	created, err := svc.CreateTask(ctx, CreateTaskInput{Title: "Lift", Category: "fitness", Tags: []string{"strength"}})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if want := Vec(8, 0, 1, 7, 0); created.Preview != want {
		t.Fatalf("preview=%v, want %v", created.Preview, want)
	}

	done, err := svc.CompleteTask(ctx, created.TaskID)
	if err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}
	if !done.Completed || done.Entry.Status != EntryCompleted {
		t.Fatalf("complete result=%+v", done)
	}
	if want := Add(before.Totals, Vec(8, 0, 1, 7, 0)); done.After != want {
		t.Fatalf("after complete=%v, want %v", done.After, want)
	}

	task, err := svc.GetTask(ctx, created.TaskID)
	if err != nil {
		t.Fatalf("GetTask: %v", err)
	}
	if task.Status != string(TaskCompleted) || task.AppliedDelta == nil {
		t.Fatalf("task after complete: status=%q applied=%v", task.Status, task.AppliedDelta)
	}

	if _, err := svc.CompleteTask(ctx, created.TaskID); err == nil {
		t.Fatalf("expected error completing twice")
	}

	undone, err := svc.UncompleteTask(ctx, created.TaskID)
	if err != nil {
		t.Fatalf("UncompleteTask: %v", err)
	}
	if undone.Completed || undone.Entry.Status != EntrySkipped {
		t.Fatalf("undo result=%+v", undone)
	}
	if undone.After != before.Totals {
		t.Fatalf("after undo=%v, want %v", undone.After, before.Totals)
	}

	state, err := svc.State(ctx)
	if err != nil {
		t.Fatalf("State: %v", err)
	}
	if len(state.Log) != 2 {
		t.Fatalf("log len=%d, want 2", len(state.Log))
	}
	if state.Log[0].Status != EntrySkipped || state.Log[1].Status != EntryCompleted {
		t.Fatalf("log order=%s,%s, want skipped,completed", state.Log[0].Status, state.Log[1].Status)
	}
	if !state.Log.NetDelta().IsZero() {
		t.Fatalf("net delta=%v, want zero", state.Log.NetDelta())
	}
}

func TestServiceUndoUsesStoredDeltaAfterReclassify(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	before, _ := svc.State(ctx)
	created, err := svc.CreateTask(ctx, CreateTaskInput{Title: "Study", Category: "learning"})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if _, err := svc.ToggleTask(ctx, created.TaskID); err != nil {
		t.Fatalf("toggle on: %v", err)
	}

	if err := svc.UpdateTaskClassification(ctx, created.TaskID, "fitness", []string{"strength", "strength"}); err != nil {
		t.Fatalf("UpdateTaskClassification: %v", err)
	}

	res, err := svc.ToggleTask(ctx, created.TaskID)
	if err != nil {
		t.Fatalf("toggle off: %v", err)
	}
	if res.After != before.Totals {
		t.Fatalf("after undo=%v, want %v", res.After, before.Totals)
	}
	if want := Negate(Vec(0, 5, 6, 0, 2)); res.Applied != want {
		t.Fatalf("reversed=%v, want %v", res.Applied, want)
	}
}

func TestServiceSaturatedCompletionRollsBackExactly(t *testing.T) {
	baseline := Vec(50, 50, 50, 95, 50)
	svc, cleanup := newTestService(t, WithRules(DefaultRules(), baseline))
	defer cleanup()
	ctx := context.Background()

	if err := svc.SetRule(ctx, RuleTag, "heavy", Vec(0, 0, 0, 10, 0)); err != nil {
		t.Fatalf("SetRule: %v", err)
	}
	created, err := svc.CreateTask(ctx, CreateTaskInput{Title: "Deadlift", Tags: []string{"heavy"}})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	res, err := svc.CompleteTask(ctx, created.TaskID)
	if err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}
	if res.After.Power != 100 {
		t.Fatalf("power=%d, want 100", res.After.Power)
	}
	if res.Applied.Power != 5 {
		t.Fatalf("applied power=%d, want 5", res.Applied.Power)
	}
	if len(res.Saturated) != 1 || res.Saturated[0] != StatPower {
		t.Fatalf("saturated=%v, want [power]", res.Saturated)
	}
	if res.Entry.Notes != "saturated: power" {
		t.Fatalf("notes=%q", res.Entry.Notes)
	}

	undo, err := svc.UncompleteTask(ctx, created.TaskID)
	if err != nil {
		t.Fatalf("UncompleteTask: %v", err)
	}
	if undo.After != baseline {
		t.Fatalf("after undo=%v, want %v", undo.After, baseline)
	}
}

func TestServiceLogCapPersists(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, CreateTaskInput{Title: "Plan day", Category: "planning"})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	for i := 0; i < MaxLogEntries+3; i++ {
		if _, err := svc.ToggleTask(ctx, created.TaskID); err != nil {
			t.Fatalf("toggle #%d: %v", i+1, err)
		}
	}

	state, err := svc.State(ctx)
	if err != nil {
		t.Fatalf("State: %v", err)
	}
	if len(state.Log) != MaxLogEntries {
		t.Fatalf("log len=%d, want %d", len(state.Log), MaxLogEntries)
	}
	if state.Log[0].ID != fmt.Sprintf("e%03d", MaxLogEntries+3) {
		t.Fatalf("newest id=%s", state.Log[0].ID)
	}
}

func TestServiceSeriesBucketsLog(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC) // Monday
	svc, cleanup := newTestService(t, WithClock(fixedClock(start, 24*time.Hour)))
	defer cleanup()
	ctx := context.Background()

	a, _ := svc.CreateTask(ctx, CreateTaskInput{Title: "Run", Category: "fitness"})
	b, _ := svc.CreateTask(ctx, CreateTaskInput{Title: "Read", Category: "learning"})
	if _, err := svc.CompleteTask(ctx, a.TaskID); err != nil {
		t.Fatalf("complete a: %v", err)
	}
	if _, err := svc.CompleteTask(ctx, b.TaskID); err != nil {
		t.Fatalf("complete b: %v", err)
	}

	series, err := svc.Series(ctx, PeriodDay, BucketOptions{})
	if err != nil {
		t.Fatalf("Series: %v", err)
	}
	if len(series.Entries) != 2 {
		t.Fatalf("entries=%d, want 2", len(series.Entries))
	}
	var sum StatVector
	for _, bk := range series.Buckets {
		sum = Add(sum, bk.Totals)
	}
	if want := Add(Vec(6, 0, 1, 4, 0), Vec(0, 5, 6, 0, 2)); sum != want {
		t.Fatalf("bucket sum=%v, want %v", sum, want)
	}

	if _, err := svc.Series(ctx, AggregationPeriod("year"), BucketOptions{}); !errors.Is(err, ErrUnknownPeriod) {
		t.Fatalf("expected ErrUnknownPeriod, got %v", err)
	}

	snaps, err := svc.Snapshots(ctx, start.Add(-time.Hour))
	if err != nil {
		t.Fatalf("Snapshots: %v", err)
	}
	if len(snaps) != 2 {
		t.Fatalf("snapshots=%d, want 2", len(snaps))
	}
}

func TestServiceTaskErrors(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := svc.ToggleTask(ctx, 999); !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := svc.CreateTask(ctx, CreateTaskInput{Title: "   "}); err == nil {
		t.Fatalf("expected error for empty title")
	}

	created, _ := svc.CreateTask(ctx, CreateTaskInput{Title: "Nap", Category: "recovery"})
	if _, err := svc.UncompleteTask(ctx, created.TaskID); err == nil {
		t.Fatalf("expected error un-completing a pending task")
	}
	if _, err := svc.CompleteTask(ctx, created.TaskID); err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}
	var stateErr TaskStateError
	if err := svc.DeleteTask(ctx, created.TaskID); !errors.As(err, &stateErr) {
		t.Fatalf("expected TaskStateError deleting completed task, got %v", err)
	}
	if err := svc.SetTaskStatus(ctx, created.TaskID, TaskInProgress); err == nil {
		t.Fatalf("expected error changing status of completed task")
	}
}

func TestServiceSeriesRejectsOversizedRange(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()

	_, err := svc.Series(context.Background(), PeriodDay, BucketOptions{
		From: time.Date(2, 1, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC),
	})
	var ie InvalidInputError
	if !errors.As(err, &ie) || ie.Field != "range" {
		t.Fatalf("err=%v, want InvalidInputError on range", err)
	}
}

func TestServiceLogEntryCarriesTaskNotes(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, CreateTaskInput{Title: "Stretch", Category: "recovery", Notes: "after the run"})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if _, err := svc.CompleteTask(ctx, created.TaskID); err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}

	st, err := svc.State(ctx)
	if err != nil {
		t.Fatalf("State: %v", err)
	}
	newest, ok := st.Log.Newest()
	if !ok {
		t.Fatalf("log is empty")
	}
	if newest.Notes != "after the run" {
		t.Fatalf("notes=%q, want task notes", newest.Notes)
	}
}
