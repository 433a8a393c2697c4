package dto

import (
	"time"

	recordDomain "github.com/allisson/demands/internal/record/domain"
)

// RecordResponse represents a record in API responses. Dates use YYYY-MM-DD and the
// percentage is shown as "NN%".
type RecordResponse struct {
	ID           string   `json:"id"`
	Sequence     int      `json:"sequence,omitempty"`
	Urgent       string   `json:"urgent"`
	Status       string   `json:"status"`
	Timing       string   `json:"timing"`
	Priority     string   `json:"priority"`
	RegisteredOn string   `json:"registered_on"`
	Deadlines    []string `json:"deadlines"`
	CompletedOn  string   `json:"completed_on"`
	Project      string   `json:"project"`
	Description  string   `json:"description"`
	TrackerID    string   `json:"tracker_id"`
	Percent      string   `json:"percent"`
	Owner        string   `json:"owner"`
	Report       string   `json:"report"`
	Name         string   `json:"name"`
	TeamRole     string   `json:"team_role"`
}

// CreateRecordResponse is returned after a record is created.
type CreateRecordResponse struct {
	ID string `json:"id"`
}

// ListRecordsResponse represents a list of records in API responses.
type ListRecordsResponse struct {
	Data []RecordResponse `json:"data"`
}

// MapViewToResponse converts a view to an API response.
func MapViewToResponse(v recordDomain.View) RecordResponse {
	deadlines := make([]string, 0, len(v.Record.Deadlines))
	for _, d := range v.Record.Deadlines {
		deadlines = append(deadlines, recordDomain.FormatDate(d))
	}

	return RecordResponse{
		ID:           v.ID.String(),
		Sequence:     v.Sequence,
		Urgent:       v.Urgent,
		Status:       v.Status,
		Timing:       v.Timing.String(),
		Priority:     v.Priority,
		RegisteredOn: v.RegisteredOn,
		Deadlines:    deadlines,
		CompletedOn:  v.CompletedOn,
		Project:      v.Project,
		Description:  v.Description,
		TrackerID:    v.TrackerID,
		Percent:      v.Percent,
		Owner:        v.Owner,
		Report:       v.Report,
		Name:         v.Name,
		TeamRole:     v.TeamRole,
	}
}

// MapRecordToResponse converts a single record to an API response. It has no sequence
// because the sequence only exists within a listing.
func MapRecordToResponse(r recordDomain.Record, today time.Time) RecordResponse {
	return MapViewToResponse(recordDomain.NewView(r, 0, today))
}

// MapViewsToListResponse converts views to a list response.
func MapViewsToListResponse(views []recordDomain.View) ListRecordsResponse {
	data := make([]RecordResponse, 0, len(views))
	for _, v := range views {
		data = append(data, MapViewToResponse(v))
	}

	return ListRecordsResponse{
		Data: data,
	}
}
