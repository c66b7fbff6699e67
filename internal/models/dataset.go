package models

import "time"

// Column data types inferred by the profiler.
const (
	DataTypeText     = "text"
	DataTypeNumeric  = "numeric"
	DataTypeDate     = "date"
	DataTypeBoolean  = "boolean"
	DataTypeCurrency = "currency"
)

// Sheet is the normalized form every supported input format is parsed into.
// Rows exclude the header row; a nil cell means the source cell was empty.
type Sheet struct {
	Name    string     `json:"name"`
	Headers []string   `json:"headers"`
	Rows    [][]*string `json:"rows"`
}

// ColumnMetadata is the profiling result for a single column. MinValue and
// MaxValue are set only for numeric, currency and date columns. Overridden is
// set when a user has edited Name or DataType; overridden columns are never
// recomputed by re-profiling.
type ColumnMetadata struct {
	ID           int      `db:"id" json:"id"`
	DatasetID    int      `db:"dataset_id" json:"dataset_id"`
	Position     int      `db:"position" json:"position"`
	Name         string   `db:"name" json:"name"`
	DataType     string   `db:"data_type" json:"data_type"`
	IsPII        bool     `db:"is_pii" json:"is_pii"`
	NullPercent  float64  `db:"null_percent" json:"null_percent"`
	UniqueCount  int      `db:"unique_count" json:"unique_count"`
	MinValue     *string  `db:"min_value" json:"min_value,omitempty"`
	MaxValue     *string  `db:"max_value" json:"max_value,omitempty"`
	SampleValues []string `db:"-" json:"sample_values"`
	Overridden   bool     `db:"overridden" json:"overridden"`
}

// Dataset is an immutable snapshot of one imported sheet. Re-importing under
// the same name creates a new row with version incremented.
type Dataset struct {
	ID        int              `db:"id" json:"id"`
	Name      string           `db:"name" json:"name"`
	Version   int              `db:"version" json:"version"`
	SheetName string           `db:"sheet_name" json:"sheet_name"`
	RowCount  int              `db:"row_count" json:"row_count"`
	Columns   []ColumnMetadata `db:"-" json:"columns"`
	CreatedAt time.Time        `db:"created_at" json:"created_at"`
}

// ImportSession tracks an uploaded file through background parsing and
// profiling.
type ImportSession struct {
	ID           int       `db:"id" json:"id"`
	SessionCode  string    `db:"session_code" json:"session_code"`
	UserID       int       `db:"user_id" json:"user_id"`
	DatasetName  string    `db:"dataset_name" json:"dataset_name"`
	Filename     string    `db:"filename" json:"filename"`
	FilePath     string    `db:"file_path" json:"file_path"`
	Status       string    `db:"status" json:"status"`
	ErrorMessage string    `db:"error_message" json:"error_message"`
	DatasetID    *int      `db:"dataset_id" json:"dataset_id,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Import session statuses.
const (
	SessionStatusUploaded   = "uploaded"
	SessionStatusProcessing = "processing"
	SessionStatusCompleted  = "completed"
	SessionStatusFailed     = "failed"
)
