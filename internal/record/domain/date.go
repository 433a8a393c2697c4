package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// ParseDate parses a day-precision date in DateLayout. Empty input returns the zero time.
func ParseDate(value string) (time.Time, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return time.Time{}, nil
	}
	d, err := time.Parse(DateLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, v)
	}
	return d, nil
}

// FormatDate formats a date in DateLayout. The zero time formats as "".
func FormatDate(d time.Time) string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// DateOf truncates t to its calendar day in t's location, expressed as UTC midnight so
// that it compares equal to dates returned by ParseDate.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var deadlineSeparators = strings.NewReplacer("\r\n", ",", "\r", ",", "\n", ",", ";", ",")

// ParseDeadlines splits a deadline list on newlines, semicolons and commas, parses every
// entry and drops duplicates keeping first-seen order. One bad entry fails the whole list.
func ParseDeadlines(value string) ([]time.Time, error) {
	var out []time.Time
	for part := range strings.SplitSeq(deadlineSeparators.Replace(value), ",") {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}
		d, err := time.Parse(DateLayout, p)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDeadline, p)
		}
		if !slices.ContainsFunc(out, d.Equal) {
			out = append(out, d)
		}
	}
	return out, nil
}

// FormatDeadlines joins deadlines with sep in DateLayout.
func FormatDeadlines(deadlines []time.Time, sep string) string {
	parts := make([]string, 0, len(deadlines))
	for _, d := range deadlines {
		parts = append(parts, d.Format(DateLayout))
	}
	return strings.Join(parts, sep)
}

// DisplayDeadlines renders a multi-date list one date per line, each marked with "*" and
// all but the last followed by a comma. A single date is returned as is.
func DisplayDeadlines(deadlines []time.Time) string {
	switch len(deadlines) {
	case 0:
		return ""
	case 1:
		return deadlines[0].Format(DateLayout)
	}
	var b strings.Builder
	for i, d := range deadlines {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(d.Format(DateLayout))
		b.WriteString("*")
		if i < len(deadlines)-1 {
			b.WriteString(",")
		}
	}
	return b.String()
}
