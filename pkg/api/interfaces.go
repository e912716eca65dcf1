// Package api provides interfaces for dependency injection
package api

import (
	"context"
	"time"

	"github.com/ssargent/easytables/pkg/tables"
)

// TableReader is the read side of a tables.Manager
type TableReader interface {
	State() tables.State
	LoadedAt() time.Time
	Stats() []tables.TableStats
	Lookup(table string, id int32) (tables.Record, bool, error)
	Rows(table string) ([]tables.Record, error)
}

// ServerStarter defines the interface for starting the API server
type ServerStarter interface {
	// StartServer serves the loaded tables until ctx is canceled
	StartServer(ctx context.Context, reader TableReader, config ServerConfig) error
}

// ServerFactory creates server instances
type ServerFactory interface {
	// CreateServerStarter creates a server starter
	CreateServerStarter() ServerStarter
}
