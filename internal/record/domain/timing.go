package domain

import (
	"time"
)

// Timing is the derived, never stored, relation of a record to its deadlines.
type Timing string

const (
	TimingOnTime          Timing = "On-time"
	TimingOverdue         Timing = "Overdue"
	TimingNoDeadline      Timing = "No-deadline"
	TimingCancelled       Timing = "Cancelled"
	TimingCompleted       Timing = "Completed"
	TimingCompletedLate   Timing = "Completed-late"
	TimingCompletedOnTime Timing = "Completed-on-time"
	TimingCompletedEarly  Timing = "Completed-early"
)

// String returns the timing label.
func (t Timing) String() string {
	return string(t)
}

// ClassifyTiming computes the timing of r on the calendar day today.
func ClassifyTiming(r Record, today time.Time) Timing {
	if r.Status == StatusCancelled {
		return TimingCancelled
	}

	earliest, ok := r.EarliestDeadline()
	if !ok {
		return TimingNoDeadline
	}

	if r.Status != StatusCompleted {
		switch {
		case r.HasDeadline(today):
			return TimingOnTime
		case earliest.Before(today) && !r.HasCompletionDate():
			return TimingOverdue
		default:
			return TimingOnTime
		}
	}

	if !r.HasCompletionDate() {
		return TimingCompleted
	}

	switch r.CompletedOn.Compare(earliest) {
	case 1:
		return TimingCompletedLate
	case 0:
		return TimingCompletedOnTime
	default:
		return TimingCompletedEarly
	}
}
