package sheet

// Column describes one column of a Smartsheet sheet. ID is unique within the
// sheet and stable across fetches; Title is the name records bind to.
type Column struct {
	ID         int64    `json:"id"`
	Index      int      `json:"index"`
	Title      string   `json:"title"`
	Type       string   `json:"type"`
	Validation bool     `json:"validation"`
	Version    int      `json:"version"`
	Width      int      `json:"width"`
	Options    []string `json:"options,omitempty"`
	Primary    bool     `json:"primary,omitempty"`
	Hidden     *bool    `json:"hidden,omitempty"`
}

// Cell is a single row cell. Value is nil for an empty cell, otherwise a
// string, a json.Number or a bool (checkbox columns).
type Cell struct {
	ColumnID     int64   `json:"columnId"`
	Value        any     `json:"value,omitempty"`
	DisplayValue *string `json:"displayValue,omitempty"`
}

// Row is an ordered, possibly sparse, list of cells plus row metadata.
type Row struct {
	ID         int64     `json:"id"`
	RowNumber  int       `json:"rowNumber"`
	SiblingID  *int64    `json:"siblingId,omitempty"`
	Expanded   bool      `json:"expanded"`
	CreatedAt  Timestamp `json:"createdAt"`
	ModifiedAt Timestamp `json:"modifiedAt"`
	Cells      []Cell    `json:"cells"`
}

// Fields is the root of a fetched sheet payload.
type Fields struct {
	ID                         int64          `json:"id"`
	Name                       string         `json:"name"`
	Permalink                  string         `json:"permalink"`
	AccessLevel                string         `json:"accessLevel"`
	Version                    int            `json:"version"`
	TotalRowCount              int            `json:"totalRowCount"`
	ReadOnly                   bool           `json:"readOnly"`
	DependenciesEnabled        bool           `json:"dependenciesEnabled"`
	GanttEnabled               bool           `json:"ganttEnabled"`
	HasSummaryFields           bool           `json:"hasSummaryFields"`
	ResourceManagementEnabled  bool           `json:"resourceManagementEnabled"`
	EffectiveAttachmentOptions []string       `json:"effectiveAttachmentOptions"`
	UserPermissions            map[string]any `json:"userPermissions"`
	UserSettings               map[string]any `json:"userSettings"`
	Workspace                  map[string]any `json:"workspace,omitempty"`
	CreatedAt                  Timestamp      `json:"createdAt"`
	ModifiedAt                 Timestamp      `json:"modifiedAt"`
	Columns                    []Column       `json:"columns"`
	Rows                       []Row          `json:"rows"`
}

// Required keys, checked before decoding so that a missing key is reported
// instead of silently decoding to a zero value.
var (
	requiredSheetKeys = []string{
		"columns", "accessLevel", "createdAt", "dependenciesEnabled",
		"effectiveAttachmentOptions", "ganttEnabled", "hasSummaryFields", "id",
		"modifiedAt", "name", "permalink", "readOnly",
		"resourceManagementEnabled", "rows", "totalRowCount",
		"userPermissions", "userSettings", "version",
	}
	requiredColumnKeys = []string{"id", "index", "title", "type", "validation", "version", "width"}
	requiredRowKeys    = []string{"cells", "createdAt", "expanded", "id", "modifiedAt", "rowNumber"}
	requiredCellKeys   = []string{"columnId"}
)
