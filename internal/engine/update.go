package engine

import (
	"context"
)

// UpdateTaskClassification changes category and tags. A completed task keeps the
// delta it applied; un-completing reverses that stored delta, not a rescore.
func (s *Service) UpdateTaskClassification(ctx context.Context, id int64, category string, tags []string) error {
	t, err := s.getTask(ctx, s.tasks, id)
	if err != nil {
		return err
	}
	if TaskStatus(t.Status) == TaskCompleted {
		s.logger.Info().Int64("task", id).Msg("reclassifying completed task; stored delta is kept for undo")
	}
	return s.tasks.UpdateClassification(ctx, id, ParseCategory(category), NormalizeTags(tags), s.now())
}

// SetTaskStatus moves a task between non-scoring statuses. Completion goes
// through CompleteTask/UncompleteTask so totals stay in sync.
func (s *Service) SetTaskStatus(ctx context.Context, id int64, status TaskStatus) error {
	if !status.IsValid() {
		return InvalidInputError{Field: "status", Reason: string(status)}
	}
	if status == TaskCompleted {
		return InvalidInputError{Field: "status", Reason: "use complete to mark a task completed"}
	}
	t, err := s.getTask(ctx, s.tasks, id)
	if err != nil {
		return err
	}
	if TaskStatus(t.Status) == TaskCompleted {
		return TaskStateError{ID: id, Status: TaskCompleted, Reason: "undo it first"}
	}
	return s.tasks.UpdateStatus(ctx, id, string(status), s.now())
}
