// Package domain defines the work item record, its enumerations and value types, the
// derived timing classification and the errors raised by the record store.
package domain

import (
	"strings"
)

// DateLayout is the single external date format accepted and produced by the store.
const DateLayout = "2006-01-02"

// Status is the lifecycle state of a record.
type Status string

const (
	StatusNotStarted  Status = "Not-started"
	StatusInProgress  Status = "In-progress"
	StatusOnHold      Status = "On-hold"
	StatusNeedsReview Status = "Needs-review"
	StatusCompleted   Status = "Completed"
	StatusCancelled   Status = "Cancelled"
)

// Statuses lists every allowed status in display order.
var Statuses = []Status{
	StatusNotStarted,
	StatusInProgress,
	StatusOnHold,
	StatusNeedsReview,
	StatusCompleted,
	StatusCancelled,
}

// String returns the canonical status text.
func (s Status) String() string {
	return string(s)
}

// IsClosed reports whether the status is Completed or Cancelled.
func (s Status) IsClosed() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Priority orders records in the view.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Priorities lists every allowed priority, highest first.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// String returns the canonical priority text.
func (p Priority) String() string {
	return string(p)
}

// Rank returns the sort rank of the priority. Unset or unknown priorities sort last.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 9
	}
}

// YesNo is a two-valued flag.
type YesNo string

const (
	Yes YesNo = "Yes"
	No  YesNo = "No"
)

// YesNoValues lists both flag values.
var YesNoValues = []YesNo{Yes, No}

// String returns the canonical flag text.
func (y YesNo) String() string {
	return string(y)
}

var separatorReplacer = strings.NewReplacer(" ", "-", "_", "-")

// canonicalize matches value case-insensitively against allowed, treating spaces,
// underscores and hyphens as the same separator. Empty input yields the zero value.
func canonicalize[T ~string](allowed []T, value string) (T, bool) {
	var zero T
	v := strings.TrimSpace(value)
	if v == "" {
		return zero, true
	}
	key := separatorReplacer.Replace(v)
	for _, a := range allowed {
		if strings.EqualFold(key, string(a)) {
			return a, true
		}
	}
	return zero, false
}

// ParseStatus canonicalizes a status. Empty input returns the empty status.
func ParseStatus(value string) (Status, error) {
	s, ok := canonicalize(Statuses, value)
	if !ok {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// ParsePriority canonicalizes a priority. Empty input returns the empty priority.
func ParsePriority(value string) (Priority, error) {
	p, ok := canonicalize(Priorities, value)
	if !ok {
		return "", ErrInvalidPriority
	}
	return p, nil
}

// ParseYesNo canonicalizes a yes/no flag. Empty input returns the empty flag.
func ParseYesNo(value string) (YesNo, error) {
	y, ok := canonicalize(YesNoValues, value)
	if !ok {
		return "", ErrInvalidYesNo
	}
	return y, nil
}
