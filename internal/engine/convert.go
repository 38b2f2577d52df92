package engine

import (
	"statline/internal/storage"
)

func vectorFromStorage(s storage.Stats) StatVector {
	return StatVector{
		Stamina:        s.Stamina,
		Skills:         s.Skills,
		Intelligence:   s.Intelligence,
		Power:          s.Power,
		TimeManagement: s.TimeManagement,
	}
}

func vectorToStorage(v StatVector) storage.Stats {
	return storage.Stats{
		Stamina:        v.Stamina,
		Skills:         v.Skills,
		Intelligence:   v.Intelligence,
		Power:          v.Power,
		TimeManagement: v.TimeManagement,
	}
}

func entryFromStorage(e storage.LogEntry) ProgressLogEntry {
	out := ProgressLogEntry{
		ID:        e.ID,
		TaskID:    e.TaskID,
		TaskName:  e.TaskName,
		Category:  e.Category,
		Status:    EntryStatus(e.Status),
		Timestamp: e.Timestamp,
		StatDelta: vectorFromStorage(e.StatDelta),
	}
	if e.Notes != nil {
		out.Notes = *e.Notes
	}
	return out
}

func entryToStorage(e ProgressLogEntry) storage.LogEntry {
	out := storage.LogEntry{
		ID:        e.ID,
		TaskID:    e.TaskID,
		TaskName:  e.TaskName,
		Category:  e.Category,
		Status:    string(e.Status),
		Timestamp: e.Timestamp,
		StatDelta: vectorToStorage(e.StatDelta),
	}
	if e.Notes != "" {
		n := e.Notes
		out.Notes = &n
	}
	return out
}

func logFromStorage(rows []storage.LogEntry) ProgressLog {
	out := make(ProgressLog, 0, len(rows))
	for _, r := range rows {
		out = append(out, entryFromStorage(r))
	}
	return out
}

func logToStorage(log ProgressLog) []storage.LogEntry {
	out := make([]storage.LogEntry, 0, len(log))
	for _, e := range log {
		out = append(out, entryToStorage(e))
	}
	return out
}

func classificationOf(t *storage.Task) TaskClassification {
	return TaskClassification{Category: t.Category, Tags: t.Tags}
}
