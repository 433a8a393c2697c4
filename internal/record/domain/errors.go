package domain

import (
	"fmt"

	"github.com/allisson/demands/internal/errors"
)

var (
	// ErrRecordNotFound indicates no record has the requested id.
	ErrRecordNotFound = errors.Wrap(errors.ErrNotFound, "record not found")

	// ErrRecordCompleted indicates a completed record was targeted by a delete.
	ErrRecordCompleted = errors.Wrap(errors.ErrConflict, "completed records cannot be deleted")

	// ErrCancelCompleted indicates an attempt to cancel a completed record.
	ErrCancelCompleted = errors.Wrap(errors.ErrInvalidInput, "a completed record cannot be cancelled")

	// ErrCompletionDateRequired indicates a completed record without a completion date.
	ErrCompletionDateRequired = errors.Wrap(errors.ErrInvalidInput, "completion date is required")

	// ErrInvalidStatus indicates a status outside the allowed set.
	ErrInvalidStatus = errors.Wrap(errors.ErrInvalidInput, "invalid status")

	// ErrInvalidPriority indicates a priority outside the allowed set.
	ErrInvalidPriority = errors.Wrap(errors.ErrInvalidInput, "invalid priority")

	// ErrInvalidYesNo indicates a flag value other than Yes or No.
	ErrInvalidYesNo = errors.Wrap(errors.ErrInvalidInput, "invalid yes/no value")

	// ErrInvalidDate indicates a date not written in DateLayout.
	ErrInvalidDate = errors.Wrap(errors.ErrInvalidInput, "invalid date, use YYYY-MM-DD")

	// ErrInvalidDeadline indicates a deadline list holding an unparseable date.
	ErrInvalidDeadline = errors.Wrap(errors.ErrInvalidInput, "deadline contains an invalid date, use YYYY-MM-DD")

	// ErrInvalidPercent indicates a percentage that is not a number.
	ErrInvalidPercent = errors.Wrap(errors.ErrInvalidInput, "invalid percent complete, use 0..100 or 0..1")

	// ErrPercentOutOfRange indicates a percentage outside 0..100.
	ErrPercentOutOfRange = errors.Wrap(errors.ErrInvalidInput, "percent complete out of range, use 0..100 or 0..1")

	// ErrPercentNotStep indicates a percentage between the allowed quarter steps.
	ErrPercentNotStep = errors.Wrap(errors.ErrInvalidInput, "percent complete must be 0, 25, 50, 75 or 100")

	// ErrHeaderMismatch indicates an import file whose header differs from the export header.
	ErrHeaderMismatch = errors.Wrap(errors.ErrInvalidInput, "invalid file format, header does not match the exported columns")

	// ErrInvalidBackup indicates a backup whose structure cannot be restored.
	ErrInvalidBackup = errors.Wrap(errors.ErrInvalidInput, "invalid backup")
)

// LineError scopes an error to a 1-based line of a tabular file. The header is line 1,
// so the first data row is line 2.
type LineError struct {
	Line int
	Err  error
}

// Error implements error.
func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// Unwrap returns the underlying error so errors.Is still sees its kind.
func (e *LineError) Unwrap() error {
	return e.Err
}

// NewLineError wraps err with its line number. A nil err returns nil.
func NewLineError(line int, err error) error {
	if err == nil {
		return nil
	}
	return &LineError{Line: line, Err: err}
}
