package models

import "time"

// ColumnType classifies a data source column.
type ColumnType string

const (
	ColumnTypeString  ColumnType = "string"
	ColumnTypeNumber  ColumnType = "number"
	ColumnTypeBoolean ColumnType = "boolean"
	ColumnTypeDate    ColumnType = "date"
	ColumnTypeUnknown ColumnType = "unknown"
)

// Column is an immutable snapshot of one data source column.
// Names are unique within a data source.
type Column struct {
	Name         string     `json:"name" yaml:"name"`
	Type         ColumnType `json:"type" yaml:"type"`
	SampleValues []string   `json:"sample_values,omitempty" yaml:"sample_values,omitempty"`
}

// DataRow maps column names to scalar values. Rows are supplied by the
// backend as a bounded sample and consumed read-only.
type DataRow map[string]interface{}

// DataSource describes a connected tabular source.
type DataSource struct {
	ID       string    `json:"id" yaml:"id"`
	Name     string    `json:"name" yaml:"name"`
	Kind     string    `json:"kind" yaml:"kind"` // e.g. "csv", "sheet", "feed"
	RowCount int       `json:"row_count" yaml:"row_count"`
	Modified time.Time `json:"modified,omitempty" yaml:"modified,omitempty"`
}

// ColumnNames returns just the names, in order.
func ColumnNames(cols []Column) []string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return names
}

// FindColumn returns the column with the given name, or nil.
func FindColumn(cols []Column, name string) *Column {
	for i := range cols {
		if cols[i].Name == name {
			return &cols[i]
		}
	}
	return nil
}
