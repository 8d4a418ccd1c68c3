package jsonview

// Result holds the outcome of a render.
type Result struct {
	HTML     string      `json:"html,omitempty"`
	Sheets   []SheetInfo `json:"sheets"`
	Warnings []Warning   `json:"warnings,omitempty"`
}

// SheetInfo summarizes one rendered sheet.
type SheetInfo struct {
	Name    string `json:"name"`
	Named   bool   `json:"named"`
	Rows    int    `json:"rows"`
	Columns int    `json:"columns"`
}

// WarningType categorizes render warnings.
type WarningType string

const (
	WarningMissingCell         WarningType = "missing_cell"
	WarningLateColumn          WarningType = "late_column"
	WarningObjectCell          WarningType = "object_cell"
	WarningUnresolvedReference WarningType = "unresolved_reference"
)

// Warning represents a non-fatal issue encountered during rendering.
type Warning struct {
	Type    WarningType `json:"type"`
	Sheet   string      `json:"sheet,omitempty"`
	Row     int         `json:"row"`
	Column  string      `json:"column,omitempty"`
	Message string      `json:"message"`
}
