package domain

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Record is one work item. Dates are day precision and the zero time means unset.
type Record struct {
	ID           uuid.UUID
	Urgent       YesNo
	Status       Status
	Priority     Priority
	RegisteredOn time.Time
	Deadlines    []time.Time
	CompletedOn  time.Time
	Project      string
	Description  string
	TrackerID    string
	Percent      Percent
	Owner        string
	Report       YesNo
	Name         string
	TeamRole     string
}

// NewRecord returns an empty record with an unset percentage.
func NewRecord(id uuid.UUID) Record {
	return Record{ID: id, Percent: PercentUnset}
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	r.Deadlines = slices.Clone(r.Deadlines)
	return r
}

// IsCompleted reports whether the record status is Completed.
func (r Record) IsCompleted() bool {
	return r.Status == StatusCompleted
}

// HasCompletionDate reports whether a completion date is recorded.
func (r Record) HasCompletionDate() bool {
	return !r.CompletedOn.IsZero()
}

// EarliestDeadline returns the first deadline in calendar order.
func (r Record) EarliestDeadline() (time.Time, bool) {
	if len(r.Deadlines) == 0 {
		return time.Time{}, false
	}
	return slices.MinFunc(r.Deadlines, func(a, b time.Time) int { return a.Compare(b) }), true
}

// HasDeadline reports whether day is one of the record deadlines.
func (r Record) HasDeadline(day time.Time) bool {
	return slices.ContainsFunc(r.Deadlines, day.Equal)
}

// Autofix keeps status, percentage and completion date consistent. The branches are
// checked in order and only the first matching one applies:
//
//  1. a completion date forces status Completed and 100%;
//  2. status Completed forces 100%;
//  3. 100% forces status Completed.
func (r *Record) Autofix() {
	switch {
	case r.HasCompletionDate():
		r.Status = StatusCompleted
		r.Percent = PercentComplete
	case r.Status == StatusCompleted:
		r.Percent = PercentComplete
	case r.Percent == PercentComplete:
		r.Status = StatusCompleted
	}
}

// CheckCompletion requires a completion date when the record is Completed or at 100%.
func (r Record) CheckCompletion() error {
	if r.HasCompletionDate() {
		return nil
	}
	if r.Status == StatusCompleted {
		return fmt.Errorf("%w: status is %s", ErrCompletionDateRequired, StatusCompleted)
	}
	if r.Percent == PercentComplete {
		return fmt.Errorf("%w: percent complete is %s", ErrCompletionDateRequired, PercentComplete.Display())
	}
	return nil
}
