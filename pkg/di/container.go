// Package di provides dependency injection container
package di

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ssargent/easytables/pkg/api" //nolint:depguard
	"github.com/ssargent/easytables/pkg/config"
	"github.com/ssargent/easytables/pkg/logging"
	"github.com/ssargent/easytables/pkg/provider"
	"github.com/ssargent/easytables/pkg/storage"
	"github.com/ssargent/easytables/pkg/tables"
)

// Container holds all the dependencies for the application
type Container struct {
	serverFactory api.ServerFactory
	logger        *slog.Logger
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	return &Container{
		serverFactory: api.NewServerFactory(),
	}
}

// GetServerFactory returns the server factory
func (c *Container) GetServerFactory() api.ServerFactory {
	return c.serverFactory
}

// SetServerFactory allows overriding the server factory (for testing)
func (c *Container) SetServerFactory(factory api.ServerFactory) {
	c.serverFactory = factory
}

// SetLogger overrides the logger handed to table managers
func (c *Container) SetLogger(l *slog.Logger) {
	c.logger = l
}

// NewProvider builds the table provider selected by cfg.Source. The returned
// close func releases whatever the provider holds open.
func (c *Container) NewProvider(cfg *config.Config) (provider.Provider, func() error, error) {
	switch cfg.Source {
	case config.SourceDir, "":
		return provider.NewDirProvider(cfg.DataDir, cfg.TableExt), func() error { return nil }, nil
	case config.SourceStore:
		store, err := storage.Open(cfg.StoreDir)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown table source %q", cfg.Source)
}

// NewManager builds an unloaded table manager configured from cfg
func (c *Container) NewManager(cfg *config.Config) *tables.Manager {
	logger := c.logger
	if logger == nil {
		logger = logging.WithComponent("tables")
	}
	return tables.NewManager(
		tables.WithDelimiter(cfg.DelimiterByte()),
		tables.WithSkipMissing(cfg.SkipMissing),
		tables.WithLogger(logger),
	)
}

// LoadTables builds the provider and a manager from cfg and loads every table
func (c *Container) LoadTables(ctx context.Context, cfg *config.Config) (*tables.Manager, error) {
	p, closeProvider, err := c.NewProvider(cfg)
	if err != nil {
		return nil, err
	}
	defer closeProvider()

	m := c.NewManager(cfg)
	if err := m.LoadAll(ctx, p); err != nil {
		return nil, err
	}
	return m, nil
}
