package server

import (
	"time"

	"statline/internal/engine"
	"statline/internal/storage"
)

type StatsResponse struct {
	Totals  engine.StatVector `json:"totals"`
	LogSize int               `json:"logSize"`
}

type LogResponse struct {
	Entries []engine.ProgressLogEntry `json:"entries"`
	Net     engine.StatVector         `json:"net"`
}

type TrendResponse struct {
	Period  engine.AggregationPeriod      `json:"period"`
	Buckets []engine.StatTimeSeriesBucket `json:"buckets"`
}

type RulesResponse struct {
	Categories map[string]engine.StatVector `json:"categories"`
	Tags       map[string]engine.StatVector `json:"tags"`
}

type TaskResponse struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Category    string     `json:"category"`
	Tags        []string   `json:"tags"`
	Status      string     `json:"status"`
	Notes       string     `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

type TasksResponse struct {
	Tasks []TaskResponse `json:"tasks"`
}

type ToggleResponse struct {
	TaskID    int64                   `json:"taskId"`
	Completed bool                    `json:"completed"`
	Totals    engine.StatVector       `json:"totals"`
	Requested engine.StatVector       `json:"requested"`
	Applied   engine.StatVector       `json:"applied"`
	Saturated []engine.Stat           `json:"saturated"`
	Entry     engine.ProgressLogEntry `json:"entry"`
}

func mapTask(t storage.Task) TaskResponse {
	tags := t.Tags
	if tags == nil {
		tags = []string{}
	}
	notes := ""
	if t.Notes != nil {
		notes = *t.Notes
	}
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Category:    t.Category,
		Tags:        tags,
		Status:      t.Status,
		Notes:       notes,
		CreatedAt:   t.CreatedAt,
		CompletedAt: t.CompletedAt,
	}
}

func mapRules(rt engine.RuleTable) RulesResponse {
	out := RulesResponse{Categories: map[string]engine.StatVector{}, Tags: map[string]engine.StatVector{}}
	for _, n := range rt.CategoryNames() {
		out.Categories[n], _ = rt.Category(n)
	}
	for _, n := range rt.TagNames() {
		out.Tags[n], _ = rt.Tag(n)
	}
	return out
}

func mapToggle(res *engine.ToggleResult) ToggleResponse {
	sat := res.Saturated
	if sat == nil {
		sat = []engine.Stat{}
	}
	return ToggleResponse{
		TaskID:    res.TaskID,
		Completed: res.Completed,
		Totals:    res.After,
		Requested: res.Requested,
		Applied:   res.Applied,
		Saturated: sat,
		Entry:     res.Entry,
	}
}
