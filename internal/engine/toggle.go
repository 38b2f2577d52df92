package engine

import (
	"fmt"
	"strings"
	"time"
)

// State is the caller-owned pair threaded through every toggle.
type State struct {
	Totals StatVector  `json:"totals"`
	Log    ProgressLog `json:"log"`
}

// ToggleEvent describes one completion toggle.
// AppliedDelta must be the delta stored when the task was completed; it is only
// read when WasCompleted is true.
type ToggleEvent struct {
	TaskID         int64
	TaskName       string
	Classification TaskClassification
	WasCompleted   bool
	AppliedDelta   StatVector
	Notes          string
}

type ToggleOutcome struct {
	Completed bool
	// Requested is the delta before clamping.
	Requested StatVector
	// Applied is the delta that actually landed on the totals.
	Applied   StatVector
	Saturated []Stat
	Entry     ProgressLogEntry
}

// Toggle flips a task's completion and returns the new state.
//
// Completing scores the classification and applies it. Un-completing applies the
// reverse of the stored applied delta, never a fresh score, so a task whose
// classification changed in between still rolls back exactly what it added.
// Storing the post-clamp delta means a completion that saturated a stat rolls
// back to the original total.
func Toggle(state State, rules RuleTable, ev ToggleEvent, now time.Time, newID func() string) (State, ToggleOutcome) {
	var requested StatVector
	status := EntryCompleted
	if ev.WasCompleted {
		requested = Reverse(ev.AppliedDelta)
		status = EntrySkipped
	} else {
		requested = rules.ComputeDelta(ev.Classification)
	}

	saturated := Saturated(state.Totals, requested)
	next := Apply(state.Totals, requested)
	applied := AppliedDelta(state.Totals, next)

	entry := ProgressLogEntry{
		ID:        newID(),
		TaskID:    ev.TaskID,
		TaskName:  ev.TaskName,
		Category:  ev.Classification.Category,
		Status:    status,
		Timestamp: now,
		StatDelta: applied,
		Notes:     entryNotes(ev.Notes, saturated),
	}

	out := ToggleOutcome{
		Completed: !ev.WasCompleted,
		Requested: requested,
		Applied:   applied,
		Saturated: saturated,
		Entry:     entry,
	}
	return State{Totals: next, Log: Record(entry, state.Log)}, out
}

func entryNotes(notes string, saturated []Stat) string {
	notes = strings.TrimSpace(notes)
	if len(saturated) == 0 {
		return notes
	}
	names := make([]string, 0, len(saturated))
	for _, s := range saturated {
		names = append(names, string(s))
	}
	sat := fmt.Sprintf("saturated: %s", strings.Join(names, ", "))
	if notes == "" {
		return sat
	}
	return notes + "; " + sat
}
