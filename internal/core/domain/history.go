package domain

import (
	"fmt"
	"sort"
	"time"
)

// ProcessHistory is one append-only audit record of a status change.
type ProcessHistory struct {
	HistoryID      int64     `json:"historyID"`
	RequestID      int64     `json:"requestID"`
	PreviousStatus *Status   `json:"previousStatus"`
	NewStatus      Status    `json:"newStatus"`
	ActorID        string    `json:"actorID"`
	Note           string    `json:"note"`
	Timestamp      time.Time `json:"timestamp"`
}

// ReplayHistory walks records in timestamp order and returns the status they lead to.
// It fails when the chain is broken: the first record must start from nothing into
// the initial status, and every later record must start where the previous one ended.
func ReplayHistory(records []ProcessHistory) (Status, error) {
	if len(records) == 0 {
		return "", fmt.Errorf("history is empty")
	}

	ordered := make([]ProcessHistory, len(records))
	copy(ordered, records)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Timestamp.Equal(ordered[j].Timestamp) {
			return ordered[i].HistoryID < ordered[j].HistoryID
		}
		return ordered[i].Timestamp.Before(ordered[j].Timestamp)
	})

	first := ordered[0]
	if first.PreviousStatus != nil {
		return "", fmt.Errorf("first history record %d has previous status %s", first.HistoryID, *first.PreviousStatus)
	}
	if first.NewStatus != InitialStatus {
		return "", fmt.Errorf("first history record %d enters %s instead of %s", first.HistoryID, first.NewStatus, InitialStatus)
	}

	current := first.NewStatus
	for _, rec := range ordered[1:] {
		if rec.PreviousStatus == nil {
			return "", fmt.Errorf("history record %d has no previous status", rec.HistoryID)
		}
		if *rec.PreviousStatus != current {
			return "", fmt.Errorf("history record %d starts from %s but request was in %s", rec.HistoryID, *rec.PreviousStatus, current)
		}
		current = rec.NewStatus
	}
	return current, nil
}

// HistoryConsistent reports whether records replay exactly into current.
func HistoryConsistent(records []ProcessHistory, current Status) bool {
	replayed, err := ReplayHistory(records)
	return err == nil && replayed == current
}

// TransitionResult is what an applied transition produced.
// CaseNumber is only set by the submission that assigned it.
type TransitionResult struct {
	History    ProcessHistory `json:"history"`
	CaseNumber *CaseNumber    `json:"caseNumber,omitempty"`
}
