package engine

import (
	"context"
	"strings"

	"statline/internal/storage"
)

type CreateTaskInput struct {
	Title    string
	Category string
	Tags     []string
	Notes    string
}

type CreateResult struct {
	TaskID int64
	// Preview is what completing the task would add under the current rules, before clamping.
	Preview StatVector
}

func (s *Service) CreateTask(ctx context.Context, in CreateTaskInput) (*CreateResult, error) {
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return nil, err
	}
	category := ParseCategory(in.Category)
	tags := NormalizeTags(in.Tags)

	var notes *string
	if n := strings.TrimSpace(in.Notes); n != "" {
		notes = &n
	}

	id, err := s.tasks.Insert(ctx, storage.TaskInsert{
		Title:     title,
		Category:  category,
		Tags:      tags,
		Status:    string(TaskPending),
		Notes:     notes,
		CreatedAt: s.now(),
	})
	if err != nil {
		return nil, err
	}

	rules, err := s.Rules(ctx)
	if err != nil {
		return nil, err
	}
	preview := rules.ComputeDelta(TaskClassification{Category: category, Tags: tags})

	if _, known := rules.Category(category); !known && category != "" {
		s.logger.Info().Int64("task", id).Str("category", category).Msg("category has no scoring rule; it will contribute zero")
	}
	s.logger.Debug().Int64("task", id).Str("category", category).Strs("tags", tags).Msg("task created")

	return &CreateResult{TaskID: id, Preview: preview}, nil
}

func (s *Service) GetTask(ctx context.Context, id int64) (*storage.Task, error) {
	return s.getTask(ctx, s.tasks, id)
}

func (s *Service) ListTasks(ctx context.Context) ([]storage.Task, error) {
	return s.tasks.ListAll(ctx)
}

// DeleteTask removes a task that is not completed. Completed tasks must be
// un-completed first so their delta is rolled back.
func (s *Service) DeleteTask(ctx context.Context, id int64) error {
	t, err := s.getTask(ctx, s.tasks, id)
	if err != nil {
		return err
	}
	if TaskStatus(t.Status) == TaskCompleted {
		return TaskStateError{ID: id, Status: TaskCompleted, Reason: "undo it before deleting"}
	}
	return s.tasks.Delete(ctx, id)
}
