// Package api provides factory implementations for dependency injection
package api

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultServerFactory is the default implementation of ServerFactory
type DefaultServerFactory struct{}

// NewServerFactory creates a new server factory
func NewServerFactory() ServerFactory {
	return &DefaultServerFactory{}
}

// CreateServerStarter creates a server starter
func (f *DefaultServerFactory) CreateServerStarter() ServerStarter {
	return &DefaultServerStarter{Registerer: prometheus.DefaultRegisterer}
}

// DefaultServerStarter is the default implementation of ServerStarter
type DefaultServerStarter struct {
	Registerer prometheus.Registerer
}

// StartServer starts the API server with the given configuration
func (s *DefaultServerStarter) StartServer(ctx context.Context, reader TableReader, config ServerConfig) error {
	return StartServer(ctx, reader, config, NewMetrics(s.Registerer))
}
