package engine

import (
	"testing"
	"time"
)

func TestToggleRoundTrip(t *testing.T) {
	rules := DefaultRules()
	ids := sequentialIDs()
	now := time.Date(2026, 5, 1, 7, 0, 0, 0, time.UTC)

	start := State{Totals: Vec(72, 64, 78, 60, 55)}
	ev := ToggleEvent{
		TaskID:         7,
		TaskName:       "Morning workout",
		Classification: TaskClassification{Category: "fitness", Tags: []string{"strength"}},
	}

	on, out := Toggle(start, rules, ev, now, ids)
	if !out.Completed || out.Entry.Status != EntryCompleted {
		t.Fatalf("expected completed outcome, got %+v", out)
	}
	if on.Totals != Vec(80, 64, 79, 67, 55) {
		t.Fatalf("totals=%v", on.Totals)
	}
	if out.Entry.TaskID != 7 || out.Entry.Category != "fitness" || !out.Entry.Timestamp.Equal(now) {
		t.Fatalf("entry=%+v", out.Entry)
	}
	if len(start.Log) != 0 {
		t.Fatalf("input state was mutated")
	}

	ev.WasCompleted = true
	ev.AppliedDelta = out.Applied
	ev.Classification = TaskClassification{Category: "learning"}
	off, out2 := Toggle(on, rules, ev, now.Add(time.Hour), ids)
	if out2.Completed || out2.Entry.Status != EntrySkipped {
		t.Fatalf("expected skipped outcome, got %+v", out2)
	}
	if off.Totals != start.Totals {
		t.Fatalf("totals after undo=%v, want %v", off.Totals, start.Totals)
	}
	if len(off.Log) != 2 || off.Log[0].ID != "e002" {
		t.Fatalf("log=%+v", off.Log)
	}
}

func TestToggleSaturationNotes(t *testing.T) {
	rules := NewRuleTable(map[string]StatVector{"boost": Vec(0, 0, 0, 10, 0)}, nil)
	state := State{Totals: Vec(72, 50, 50, 95, 50)}
	ev := ToggleEvent{TaskID: 1, Classification: TaskClassification{Category: "boost"}, Notes: "felt good"}

	next, out := Toggle(state, rules, ev, time.Now(), sequentialIDs())
	if next.Totals.Power != 100 {
		t.Fatalf("power=%d, want 100", next.Totals.Power)
	}
	if out.Requested.Power != 10 || out.Applied.Power != 5 {
		t.Fatalf("requested=%v applied=%v", out.Requested, out.Applied)
	}
	if out.Entry.Notes != "felt good; saturated: power" {
		t.Fatalf("notes=%q", out.Entry.Notes)
	}
	if out.Entry.StatDelta != out.Applied {
		t.Fatalf("entry delta=%v, want applied %v", out.Entry.StatDelta, out.Applied)
	}
}
