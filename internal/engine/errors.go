package engine

import "fmt"

// TaskNotFoundError is returned when a task id does not exist.
type TaskNotFoundError struct {
	ID int64
}

func (e TaskNotFoundError) Error() string {
	return fmt.Sprintf("task %d not found", e.ID)
}

// TaskStateError is returned when a transition does not fit the task's current status.
type TaskStateError struct {
	ID     int64
	Status TaskStatus
	Reason string
}

func (e TaskStateError) Error() string {
	return fmt.Sprintf("task %d is %s: %s", e.ID, e.Status, e.Reason)
}

// InvalidInputError reports bad user input for a named field.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
