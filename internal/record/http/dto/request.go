// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"errors"

	validation "github.com/jellydator/validation"

	recordDomain "github.com/allisson/demands/internal/record/domain"
	customValidation "github.com/allisson/demands/internal/validation"
)

// List filters accepted by the filter query parameter.
const (
	FilterAll       = "all"
	FilterPending   = "pending"
	FilterCompleted = "completed"
	FilterCancelled = "cancelled"
)

// CreateRecordRequest contains the raw field values of a new record. Field level rules
// are applied by the record validator.
type CreateRecordRequest struct {
	recordDomain.Fields
}

// Validate checks that the request carries at least one field.
func (r *CreateRecordRequest) Validate() error {
	if r.Fields.IsEmpty() {
		return errors.New("request must contain at least one field")
	}
	return nil
}

// UpdateRecordRequest contains the fields to change. Omitted fields keep their value.
type UpdateRecordRequest struct {
	recordDomain.Fields
}

// Validate checks that the request changes at least one field.
func (r *UpdateRecordRequest) Validate() error {
	if r.Fields.IsEmpty() {
		return errors.New("request must change at least one field")
	}
	return nil
}

// ListRecordsQuery contains the query parameters of the list endpoint.
type ListRecordsQuery struct {
	Filter        string `form:"filter"`
	Due           string `form:"due"`
	CompletedFrom string `form:"completed_from"`
	CompletedTo   string `form:"completed_to"`
}

// Validate checks if the list query is valid.
func (q *ListRecordsQuery) Validate() error {
	validDate := customValidation.Parses("validation_date", func(s string) error {
		_, err := recordDomain.ParseDate(s)
		return err
	})
	ranged := q.CompletedFrom != "" || q.CompletedTo != ""

	return validation.ValidateStruct(q,
		validation.Field(&q.Filter,
			validation.In(FilterAll, FilterPending, FilterCompleted, FilterCancelled),
		),
		validation.Field(&q.Due, validDate),
		validation.Field(&q.CompletedFrom, validation.When(ranged, validation.Required), validDate),
		validation.Field(&q.CompletedTo, validation.When(ranged, validation.Required), validDate),
	)
}
