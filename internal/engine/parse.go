package engine

import (
	"fmt"
	"strings"
)

type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskSkipped    TaskStatus = "skipped"
)

func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskPending, TaskInProgress, TaskCompleted, TaskSkipped:
		return true
	default:
		return false
	}
}

// ParseTaskStatus parses user input. Supported: pending, in_progress (or
// "active", "started"), completed (or "done"), skipped.
func ParseTaskStatus(input string) (TaskStatus, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "pending", "todo":
		return TaskPending, nil
	case "in_progress", "in-progress", "active", "started":
		return TaskInProgress, nil
	case "completed", "done":
		return TaskCompleted, nil
	case "skipped", "skip":
		return TaskSkipped, nil
	default:
		return "", fmt.Errorf("invalid task status: %q", input)
	}
}

// ParseCategory trims input. Categories are matched case-sensitively against the
// rule table, so "Fitness" scores zero unless a rule defines it.
func ParseCategory(input string) string {
	return strings.TrimSpace(input)
}

// ParseTags splits comma separated values across all inputs.
// "a,b" and ["a", "b"] give the same result; repeats are kept.
func ParseTags(inputs ...string) []string {
	var out []string
	for _, in := range inputs {
		out = append(out, strings.Split(in, ",")...)
	}
	return NormalizeTags(out)
}
