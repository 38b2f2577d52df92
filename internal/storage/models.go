package storage

import "time"

// Stats mirrors the five stat columns. Used for totals and for JSON-encoded deltas.
type Stats struct {
	Stamina        int `json:"stamina"`
	Skills         int `json:"skills"`
	Intelligence   int `json:"intelligence"`
	Power          int `json:"power"`
	TimeManagement int `json:"timeManagement"`
}

type Task struct {
	ID           int64
	Title        string
	Category     string
	Tags         []string
	Status       string
	Notes        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	CompletedAt  *time.Time
	AppliedDelta *Stats // Set while completed: the delta that landed on the totals.
}

type LogEntry struct {
	ID        string
	TaskID    int64
	TaskName  string
	Category  string
	Status    string
	Timestamp time.Time
	StatDelta Stats
	Notes     *string
}

type Snapshot struct {
	ID         int64
	Totals     Stats
	RecordedAt time.Time
}

type Rule struct {
	Kind  string // "category" or "tag"
	Name  string
	Delta Stats
}
