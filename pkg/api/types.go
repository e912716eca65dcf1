package api

import (
	"time"

	"github.com/ssargent/easytables/pkg/tables"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// TablesResponse describes the loaded table set
type TablesResponse struct {
	State    string              `json:"state"`
	LoadedAt *time.Time          `json:"loaded_at,omitempty"`
	Tables   []tables.TableStats `json:"tables"`
}

// RowsResponse holds every row of one table
type RowsResponse struct {
	Table string          `json:"table"`
	Count int             `json:"count"`
	Rows  []tables.Record `json:"rows"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Port   int
	Bind   string
	APIKey string
}
