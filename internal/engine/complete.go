package engine

import (
	"context"
	"database/sql"

	"statline/internal/storage"
)

type ToggleResult struct {
	TaskID    int64
	Title     string
	Completed bool
	Before    StatVector
	After     StatVector
	Requested StatVector
	Applied   StatVector
	Saturated []Stat
	Entry     ProgressLogEntry
}

// ToggleTask flips completion: pending tasks are completed and scored,
// completed tasks are rolled back.
func (s *Service) ToggleTask(ctx context.Context, id int64) (*ToggleResult, error) {
	return s.toggle(ctx, id, nil)
}

// CompleteTask scores a task. It fails if the task is already completed.
func (s *Service) CompleteTask(ctx context.Context, id int64) (*ToggleResult, error) {
	want := true
	return s.toggle(ctx, id, &want)
}

// UncompleteTask reverses the delta stored at completion. It fails if the task
// is not completed.
func (s *Service) UncompleteTask(ctx context.Context, id int64) (*ToggleResult, error) {
	want := false
	return s.toggle(ctx, id, &want)
}

// toggle runs the whole read-modify-write in one transaction so totals, log,
// snapshot and task status never disagree.
func (s *Service) toggle(ctx context.Context, id int64, wantCompleted *bool) (*ToggleResult, error) {
	var res *ToggleResult
	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		tasks := storage.NewTaskRepo(tx)
		stats := storage.NewStatsRepo(tx)
		logs := storage.NewLogRepo(tx)

		task, err := s.getTask(ctx, tasks, id)
		if err != nil {
			return err
		}
		status := TaskStatus(task.Status)
		wasCompleted := status == TaskCompleted
		if wantCompleted != nil && *wantCompleted == wasCompleted {
			reason := "already completed"
			if !wasCompleted {
				reason = "not completed"
			}
			return TaskStateError{ID: id, Status: status, Reason: reason}
		}

		state, err := s.loadState(ctx, stats, logs)
		if err != nil {
			return err
		}
		rules, err := s.rulesFrom(ctx, storage.NewRuleRepo(tx))
		if err != nil {
			return err
		}

		ev := ToggleEvent{
			TaskID:         task.ID,
			TaskName:       task.Title,
			Classification: classificationOf(task),
			WasCompleted:   wasCompleted,
		}
		if task.Notes != nil {
			ev.Notes = *task.Notes
		}
		if wasCompleted {
			if task.AppliedDelta == nil {
				s.logger.Warn().Int64("task", id).Msg("completed task has no stored delta; nothing to reverse")
			} else {
				ev.AppliedDelta = vectorFromStorage(*task.AppliedDelta)
			}
		}

		now := s.now()
		next, out := Toggle(state, rules, ev, now, s.newID)

		if err := stats.Update(ctx, vectorToStorage(next.Totals), now); err != nil {
			return err
		}
		if err := logs.Replace(ctx, logToStorage(next.Log)); err != nil {
			return err
		}
		if _, err := storage.NewSnapshotRepo(tx).Insert(ctx, vectorToStorage(next.Totals), now); err != nil {
			return err
		}
		if out.Completed {
			err = tasks.MarkCompleted(ctx, id, now, vectorToStorage(out.Applied))
		} else {
			err = tasks.MarkPending(ctx, id, now)
		}
		if err != nil {
			return err
		}

		res = &ToggleResult{
			TaskID:    id,
			Title:     task.Title,
			Completed: out.Completed,
			Before:    state.Totals,
			After:     next.Totals,
			Requested: out.Requested,
			Applied:   out.Applied,
			Saturated: out.Saturated,
			Entry:     out.Entry,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.report(res)
	return res, nil
}

func (s *Service) report(res *ToggleResult) {
	saturated := make([]string, 0, len(res.Saturated))
	for _, st := range res.Saturated {
		saturated = append(saturated, string(st))
	}
	s.recorder.RecordEvent(string(res.Entry.Status), saturated)
	for _, st := range AllStats {
		s.recorder.SetTotal(string(st), res.After.Get(st))
	}

	s.logger.Debug().
		Int64("task", res.TaskID).
		Str("status", string(res.Entry.Status)).
		Str("requested", res.Requested.String()).
		Str("applied", res.Applied.String()).
		Msg("scoring event")
	if len(saturated) > 0 {
		s.logger.Info().Int64("task", res.TaskID).Strs("stats", saturated).Msg("stats saturated")
	}
}
