package ingest

import (
	"fmt"
	"strings"
)

// DataAccessError means the source could not be opened, read or parsed as a
// table. It is fatal for the run.
type DataAccessError struct {
	Source string
	Err    error
}

func (e *DataAccessError) Error() string {
	return fmt.Sprintf("data access %s: %v", e.Source, e.Err)
}

func (e *DataAccessError) Unwrap() error { return e.Err }

// SchemaError means a column the feature extractor needs is absent.
type SchemaError struct {
	Source  string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema %s: missing required column(s): %s", e.Source, strings.Join(e.Missing, ", "))
}
