package domain

import (
	"bytes"
	"time"

	"github.com/google/uuid"
)

// View is the display projection of a record.
//
// Sequence is the 1-based position of the record in storage order at the time the
// view was built. It changes as records come and go and is never an identity; use ID.
type View struct {
	ID           uuid.UUID
	Sequence     int
	Urgent       string
	Status       string
	Timing       Timing
	Priority     string
	RegisteredOn string
	Deadline     string
	CompletedOn  string
	Project      string
	Description  string
	TrackerID    string
	Percent      string
	Owner        string
	Report       string
	Name         string
	TeamRole     string

	// Record is the typed record the view was built from.
	Record Record
}

// NewView builds the display projection of r at storage position sequence.
func NewView(r Record, sequence int, today time.Time) View {
	return View{
		ID:           r.ID,
		Sequence:     sequence,
		Urgent:       r.Urgent.String(),
		Status:       r.Status.String(),
		Timing:       ClassifyTiming(r, today),
		Priority:     r.Priority.String(),
		RegisteredOn: FormatDate(r.RegisteredOn),
		Deadline:     DisplayDeadlines(r.Deadlines),
		CompletedOn:  FormatDate(r.CompletedOn),
		Project:      r.Project,
		Description:  r.Description,
		TrackerID:    r.TrackerID,
		Percent:      r.Percent.Display(),
		Owner:        r.Owner,
		Report:       r.Report.String(),
		Name:         r.Name,
		TeamRole:     r.TeamRole,
		Record:       r.Clone(),
	}
}

// CompareViews orders views by priority rank, then registration date with missing
// dates last, then id.
func CompareViews(a, b View) int {
	if ra, rb := a.Record.Priority.Rank(), b.Record.Priority.Rank(); ra != rb {
		return ra - rb
	}

	da, db := a.Record.RegisteredOn, b.Record.RegisteredOn
	switch {
	case da.IsZero() && !db.IsZero():
		return 1
	case !da.IsZero() && db.IsZero():
		return -1
	case !da.Equal(db):
		return da.Compare(db)
	}

	return bytes.Compare(a.ID[:], b.ID[:])
}
