package engine

import (
	"fmt"
	"strings"
	"time"
)

// MaxLogEntries caps the progress log. Older entries are dropped, not archived.
const MaxLogEntries = 25

type EntryStatus string

const (
	EntryCompleted EntryStatus = "completed"
	EntryPartial   EntryStatus = "partial"
	EntryFailed    EntryStatus = "failed"
	EntrySkipped   EntryStatus = "skipped"
)

func (s EntryStatus) IsValid() bool {
	switch s {
	case EntryCompleted, EntryPartial, EntryFailed, EntrySkipped:
		return true
	default:
		return false
	}
}

func ParseEntryStatus(input string) (EntryStatus, error) {
	s := EntryStatus(strings.TrimSpace(strings.ToLower(input)))
	if !s.IsValid() {
		return "", fmt.Errorf("invalid entry status: %q", input)
	}
	return s, nil
}

// ProgressLogEntry records one scoring event. Entries are never edited; a correction
// is a new compensating entry.
type ProgressLogEntry struct {
	ID        string      `json:"id"`
	TaskID    int64       `json:"taskId"`
	TaskName  string      `json:"taskName"`
	Category  string      `json:"category"`
	Status    EntryStatus `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	StatDelta StatVector  `json:"statDelta"`
	Notes     string      `json:"notes,omitempty"`
}

// ProgressLog is ordered newest-first.
type ProgressLog []ProgressLogEntry

// Record prepends entry and keeps at most MaxLogEntries. log itself is not modified.
func Record(entry ProgressLogEntry, log ProgressLog) ProgressLog {
	n := len(log) + 1
	if n > MaxLogEntries {
		n = MaxLogEntries
	}
	out := make(ProgressLog, 0, n)
	out = append(out, entry)
	out = append(out, log[:n-1]...)
	return out
}

// Newest returns the most recent entry, if any.
func (l ProgressLog) Newest() (ProgressLogEntry, bool) {
	if len(l) == 0 {
		return ProgressLogEntry{}, false
	}
	return l[0], true
}

// NetDelta sums StatDelta over every entry.
func (l ProgressLog) NetDelta() StatVector {
	total := Zero()
	for _, e := range l {
		total = Add(total, e.StatDelta)
	}
	return total
}

// StatSnapshot is the totals at a point in time.
type StatSnapshot struct {
	Totals     StatVector `json:"totals"`
	RecordedAt time.Time  `json:"recordedAt"`
}

// ProgressLogSeries bundles a log window with its buckets for trend display.
type ProgressLogSeries struct {
	Entries []ProgressLogEntry     `json:"entries"`
	Buckets []StatTimeSeriesBucket `json:"buckets"`
}
