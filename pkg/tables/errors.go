package tables

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownTable is returned by dynamic lookups for a name that is not
	// one of TableNames.
	ErrUnknownTable = errors.New("unknown table")

	// ErrAlreadyLoaded is returned by LoadAll once the manager is Loaded.
	ErrAlreadyLoaded = errors.New("tables already loaded")
)

// LoadError reports the table and 1-based line of a record that failed to
// decode.
type LoadError struct {
	Table string
	Line  int
	Err   error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("table %s line %d: %v", e.Table, e.Line, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
