// Package provider supplies the raw text of each table to the loader.
//
// Where the text lives (a directory of exported files, an embedded store,
// an in-memory fixture) is decided by the Provider implementation. The
// loader only asks for a table by name.
package provider

import (
	"context"
	"errors"
	"fmt"
)

// ErrTableUnavailable is returned when a provider has no text for a table.
var ErrTableUnavailable = errors.New("table unavailable")

// Provider returns the raw line-delimited text for a named table.
type Provider interface {
	Fetch(ctx context.Context, name string) (string, error)
}

// ProviderFunc adapts an ordinary function to the Provider interface.
type ProviderFunc func(ctx context.Context, name string) (string, error)

// Fetch calls f(ctx, name).
func (f ProviderFunc) Fetch(ctx context.Context, name string) (string, error) {
	return f(ctx, name)
}

// Unavailable wraps ErrTableUnavailable with the table name and an optional
// underlying cause.
func Unavailable(name string, cause error) error {
	if cause == nil {
		return fmt.Errorf("%w: %s", ErrTableUnavailable, name)
	}
	return fmt.Errorf("%w: %s: %w", ErrTableUnavailable, name, cause)
}

// MapProvider serves tables from memory. It is mostly useful in tests.
type MapProvider map[string]string

// Fetch returns the text stored under name.
func (m MapProvider) Fetch(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	text, ok := m[name]
	if !ok {
		return "", Unavailable(name, nil)
	}
	return text, nil
}
