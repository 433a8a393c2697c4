package domain

// Data file column names. The data file stores them in DataColumns order.
const (
	ColumnID           = "_id"
	ColumnUrgent       = "Urgent"
	ColumnStatus       = "Status"
	ColumnPriority     = "Priority"
	ColumnRegisteredOn = "Registered On"
	ColumnDeadline     = "Deadline"
	ColumnCompletedOn  = "Completed On"
	ColumnProject      = "Project"
	ColumnDescription  = "Description"
	ColumnTrackerID    = "Tracker ID"
	ColumnPercent      = "Percent Complete"
	ColumnOwner        = "Owner"
	ColumnReport       = "Report"
	ColumnName         = "Name"
	ColumnTeamRole     = "Team/Role"
)

// DataColumns is the column order of the data file.
var DataColumns = []string{
	ColumnID,
	ColumnUrgent,
	ColumnStatus,
	ColumnPriority,
	ColumnRegisteredOn,
	ColumnDeadline,
	ColumnCompletedOn,
	ColumnProject,
	ColumnDescription,
	ColumnTrackerID,
	ColumnPercent,
	ColumnOwner,
	ColumnReport,
	ColumnName,
	ColumnTeamRole,
}

// LegacyColumns maps column names written by older versions to their current name.
// A legacy column is only used when the current column is absent.
var LegacyColumns = map[string]string{
	"Urgency":       ColumnUrgent,
	"Entry Date":    ColumnRegisteredOn,
	"Delivery Date": ColumnCompletedOn,
}

// Fields carries raw, not yet validated field values. A nil field was not supplied,
// which matters for updates: only supplied fields are checked and merged.
type Fields struct {
	Urgent       *string `json:"urgent,omitempty"`
	Status       *string `json:"status,omitempty"`
	Priority     *string `json:"priority,omitempty"`
	RegisteredOn *string `json:"registered_on,omitempty"`
	Deadline     *string `json:"deadline,omitempty"`
	CompletedOn  *string `json:"completed_on,omitempty"`
	Project      *string `json:"project,omitempty"`
	Description  *string `json:"description,omitempty"`
	TrackerID    *string `json:"tracker_id,omitempty"`
	Percent      *string `json:"percent,omitempty"`
	Owner        *string `json:"owner,omitempty"`
	Report       *string `json:"report,omitempty"`
	Name         *string `json:"name,omitempty"`
	TeamRole     *string `json:"team_role,omitempty"`
}

type fieldSlot struct {
	column string
	value  **string
}

func (f *Fields) slots() []fieldSlot {
	return []fieldSlot{
		{ColumnUrgent, &f.Urgent},
		{ColumnStatus, &f.Status},
		{ColumnPriority, &f.Priority},
		{ColumnRegisteredOn, &f.RegisteredOn},
		{ColumnDeadline, &f.Deadline},
		{ColumnCompletedOn, &f.CompletedOn},
		{ColumnProject, &f.Project},
		{ColumnDescription, &f.Description},
		{ColumnTrackerID, &f.TrackerID},
		{ColumnPercent, &f.Percent},
		{ColumnOwner, &f.Owner},
		{ColumnReport, &f.Report},
		{ColumnName, &f.Name},
		{ColumnTeamRole, &f.TeamRole},
	}
}

// FieldsFromColumns builds Fields from a column-keyed map. Legacy column names are
// mapped to their current name when the current one is missing. Unknown keys,
// including ColumnID, are ignored.
func FieldsFromColumns(columns map[string]string) Fields {
	var f Fields
	for _, slot := range f.slots() {
		if v, ok := columns[slot.column]; ok {
			*slot.value = &v
			continue
		}
		for legacy, current := range LegacyColumns {
			if current != slot.column {
				continue
			}
			if v, ok := columns[legacy]; ok {
				*slot.value = &v
			}
		}
	}
	return f
}

// Columns returns the supplied fields keyed by column name.
func (f Fields) Columns() map[string]string {
	out := make(map[string]string)
	for _, slot := range f.slots() {
		if *slot.value != nil {
			out[slot.column] = **slot.value
		}
	}
	return out
}

// Merge returns a copy of f with every field supplied in changes replaced.
func (f Fields) Merge(changes Fields) Fields {
	merged := f
	dst := merged.slots()
	for i, slot := range changes.slots() {
		if *slot.value != nil {
			v := **slot.value
			*dst[i].value = &v
		}
	}
	return merged
}

// IsEmpty reports whether no field was supplied.
func (f Fields) IsEmpty() bool {
	for _, slot := range f.slots() {
		if *slot.value != nil {
			return false
		}
	}
	return true
}

// FieldsFromRecord returns every field of r in its stored text form.
func FieldsFromRecord(r Record) Fields {
	text := func(s string) *string { return &s }
	return Fields{
		Urgent:       text(r.Urgent.String()),
		Status:       text(r.Status.String()),
		Priority:     text(r.Priority.String()),
		RegisteredOn: text(FormatDate(r.RegisteredOn)),
		Deadline:     text(FormatDeadlines(r.Deadlines, ", ")),
		CompletedOn:  text(FormatDate(r.CompletedOn)),
		Project:      text(r.Project),
		Description:  text(r.Description),
		TrackerID:    text(r.TrackerID),
		Percent:      text(r.Percent.String()),
		Owner:        text(r.Owner),
		Report:       text(r.Report.String()),
		Name:         text(r.Name),
		TeamRole:     text(r.TeamRole),
	}
}

// Columns returns the record in its stored text form keyed by data file column,
// including ColumnID.
func (r Record) Columns() map[string]string {
	columns := FieldsFromRecord(r).Columns()
	columns[ColumnID] = r.ID.String()
	return columns
}

// Display-only columns of the bulk export format.
const (
	ColumnSequence = "ID"
	ColumnTiming   = "Timing"
)

// ExportColumns is the exact header of the bulk export and import format.
var ExportColumns = []string{
	ColumnSequence,
	ColumnUrgent,
	ColumnStatus,
	ColumnTiming,
	ColumnPriority,
	ColumnRegisteredOn,
	ColumnDeadline,
	ColumnCompletedOn,
	ColumnProject,
	ColumnDescription,
	ColumnTrackerID,
	ColumnPercent,
	ColumnOwner,
	ColumnReport,
	ColumnName,
	ColumnTeamRole,
}

// Row is one parsed data row of a tabular file, before validation.
type Row struct {
	// Line is the 1-based line of the row, counting the header as line 1.
	Line int
	// ID is the raw id column, empty when the file has none.
	ID string
	// Fields holds every known column present in the file.
	Fields Fields
}
