// Package service implements record validation and the tabular codecs used by the
// record store: the data file table, the bulk export format and the backup format.
package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	recordDomain "github.com/allisson/demands/internal/record/domain"
	customValidation "github.com/allisson/demands/internal/validation"
)

// Mode selects which fields are mandatory.
type Mode int

const (
	// ModeCreate requires every mandatory field to be present and not blank.
	ModeCreate Mode = iota
	// ModeUpdate only checks supplied fields; a supplied mandatory field must not be blank.
	ModeUpdate
)

// String returns the mode name.
func (m Mode) String() string {
	if m == ModeUpdate {
		return "update"
	}
	return "create"
}

var textReplacer = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// RecordValidator normalizes raw fields and enforces the record invariants.
type RecordValidator struct{}

// NewRecordValidator creates a RecordValidator.
func NewRecordValidator() *RecordValidator {
	return &RecordValidator{}
}

// Validate checks formats and mandatory fields of f for the given mode.
func (v *RecordValidator) Validate(f recordDomain.Fields, mode Mode) error {
	presence := []validation.Rule{validation.Required, customValidation.NotBlank}
	if mode == ModeUpdate {
		presence = []validation.Rule{validation.NilOrNotEmpty, customValidation.NotBlank}
	}
	with := func(extra ...validation.Rule) []validation.Rule {
		return append(append([]validation.Rule{}, presence...), extra...)
	}

	err := validation.ValidateStruct(&f,
		validation.Field(&f.Description, with()...),
		validation.Field(&f.Project, with()...),
		validation.Field(&f.Owner, with()...),
		validation.Field(&f.Status, with(customValidation.Parses("validation_status", oneOf(recordDomain.Statuses, recordDomain.ParseStatus)))...),
		validation.Field(&f.Priority, with(customValidation.Parses("validation_priority", oneOf(recordDomain.Priorities, recordDomain.ParsePriority)))...),
		validation.Field(&f.RegisteredOn, with(customValidation.Parses("validation_date", validDate))...),
		validation.Field(&f.Deadline, with(customValidation.Parses("validation_deadline", validDeadlines(mode == ModeCreate)))...),
		validation.Field(&f.CompletedOn, customValidation.Parses("validation_date", validDate)),
		validation.Field(&f.Percent, customValidation.Parses("validation_percent", validPercent)),
		validation.Field(&f.Urgent, customValidation.Parses("validation_yes_no", oneOf(recordDomain.YesNoValues, recordDomain.ParseYesNo))),
		validation.Field(&f.Report, customValidation.Parses("validation_yes_no", oneOf(recordDomain.YesNoValues, recordDomain.ParseYesNo))),
	)
	return customValidation.WrapValidationError(err)
}

// Apply normalizes every supplied field of f and writes it onto r. Text is trimmed and
// embedded line breaks become spaces. f must have passed Validate.
func (v *RecordValidator) Apply(r *recordDomain.Record, f recordDomain.Fields) error {
	var err error
	if f.Urgent != nil {
		if r.Urgent, err = recordDomain.ParseYesNo(*f.Urgent); err != nil {
			return err
		}
	}
	if f.Status != nil {
		if r.Status, err = recordDomain.ParseStatus(*f.Status); err != nil {
			return err
		}
	}
	if f.Priority != nil {
		if r.Priority, err = recordDomain.ParsePriority(*f.Priority); err != nil {
			return err
		}
	}
	if f.RegisteredOn != nil {
		if r.RegisteredOn, err = recordDomain.ParseDate(*f.RegisteredOn); err != nil {
			return err
		}
	}
	if f.Deadline != nil {
		if r.Deadlines, err = recordDomain.ParseDeadlines(*f.Deadline); err != nil {
			return err
		}
	}
	if f.CompletedOn != nil {
		if r.CompletedOn, err = recordDomain.ParseDate(*f.CompletedOn); err != nil {
			return err
		}
	}
	if f.Percent != nil {
		if r.Percent, err = recordDomain.ParsePercent(*f.Percent); err != nil {
			return err
		}
	}
	if f.Report != nil {
		if r.Report, err = recordDomain.ParseYesNo(*f.Report); err != nil {
			return err
		}
	}

	for _, text := range []struct {
		src *string
		dst *string
	}{
		{f.Project, &r.Project},
		{f.Description, &r.Description},
		{f.TrackerID, &r.TrackerID},
		{f.Owner, &r.Owner},
		{f.Name, &r.Name},
		{f.TeamRole, &r.TeamRole},
	} {
		if text.src != nil {
			*text.dst = strings.TrimSpace(textReplacer.Replace(*text.src))
		}
	}

	return nil
}

// Build validates f in create mode and returns the resulting record with the
// completion autofix applied and the completion date requirement enforced.
func (v *RecordValidator) Build(id uuid.UUID, f recordDomain.Fields) (recordDomain.Record, error) {
	if err := v.Validate(f, ModeCreate); err != nil {
		return recordDomain.Record{}, err
	}

	r := recordDomain.NewRecord(id)
	if err := v.Apply(&r, f); err != nil {
		return recordDomain.Record{}, err
	}

	r.Autofix()
	if err := r.CheckCompletion(); err != nil {
		return recordDomain.Record{}, err
	}

	return r, nil
}

// Merge validates changes in update mode, merges them onto existing and re-validates
// the merged record as a whole. existing is never modified.
//
// Cancelling a completed record fails with ErrCancelCompleted. Cancelling any other
// record clears its completion date and resets the percentage to zero.
func (v *RecordValidator) Merge(
	existing recordDomain.Record,
	changes recordDomain.Fields,
) (recordDomain.Record, error) {
	if err := v.Validate(changes, ModeUpdate); err != nil {
		return recordDomain.Record{}, err
	}

	merged := recordDomain.FieldsFromRecord(existing).Merge(changes)

	if changes.Status != nil {
		status, err := recordDomain.ParseStatus(*changes.Status)
		if err != nil {
			return recordDomain.Record{}, err
		}
		if status == recordDomain.StatusCancelled {
			if existing.IsCompleted() {
				return recordDomain.Record{}, recordDomain.ErrCancelCompleted
			}
			merged = merged.Merge(recordDomain.Fields{
				CompletedOn: ptr(""),
				Percent:     ptr(recordDomain.PercentNone.String()),
			})
		}
	}

	return v.Build(existing.ID, merged)
}

func ptr(s string) *string { return &s }

func oneOf[T ~string](allowed []T, parse func(string) (T, error)) func(string) error {
	names := make([]string, 0, len(allowed))
	for _, a := range allowed {
		names = append(names, string(a))
	}
	msg := "must be one of " + strings.Join(names, ", ")

	return func(s string) error {
		if _, err := parse(s); err != nil {
			return errors.New(msg)
		}
		return nil
	}
}

func validDate(s string) error {
	if _, err := recordDomain.ParseDate(s); err != nil {
		return fmt.Errorf("must be a valid date in YYYY-MM-DD format, got %q", strings.TrimSpace(s))
	}
	return nil
}

func validDeadlines(requireOne bool) func(string) error {
	return func(s string) error {
		deadlines, err := recordDomain.ParseDeadlines(s)
		if err != nil {
			return errors.New("must list valid dates in YYYY-MM-DD format")
		}
		if requireOne && len(deadlines) == 0 {
			return errors.New("must contain at least one date")
		}
		return nil
	}
}

func validPercent(s string) error {
	_, err := recordDomain.ParsePercent(s)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, recordDomain.ErrPercentNotStep):
		return errors.New("must be 0, 25, 50, 75 or 100")
	case errors.Is(err, recordDomain.ErrPercentOutOfRange):
		return errors.New("must be within 0..100 or 0..1")
	default:
		return errors.New("must be a number within 0..100 or 0..1")
	}
}
