package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ssargent/easytables/pkg/tables"
)

// Server holds the API server state
type Server struct {
	tables  TableReader
	config  ServerConfig
	metrics *Metrics
}

// NewServer creates a new API server
func NewServer(reader TableReader, config ServerConfig, metrics *Metrics) *Server {
	return &Server{
		tables:  reader,
		config:  config,
		metrics: metrics,
	}
}

// handleHealth godoc
//
//	@Summary		Health check
//	@Description	Get the health status of the API. Returns 503 until the tables are loaded.
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	map[string]string
//	@Failure		503	{object}	APIResponse
//	@Router			/health [get]
//	@Security		ApiKeyAuth
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	state := s.tables.State()
	if state != tables.Loaded {
		s.metrics.RecordHealthCheck(false)
		sendError(w, "Tables not loaded", http.StatusServiceUnavailable)
		return
	}
	s.metrics.RecordHealthCheck(true)
	sendSuccess(w, map[string]string{"status": "healthy", "state": state.String()})
}

// handleListTables godoc
//
//	@Summary		List tables
//	@Description	List every table with its row count and the load state
//	@Tags			tables
//	@Produce		json
//	@Success		200	{object}	TablesResponse
//	@Router			/tables [get]
//	@Security		ApiKeyAuth
func (s *Server) handleListTables(w http.ResponseWriter, r *http.Request) {
	stats := s.tables.Stats()
	s.metrics.UpdateTableStats(stats)

	resp := TablesResponse{
		State:  s.tables.State().String(),
		Tables: stats,
	}
	if at := s.tables.LoadedAt(); !at.IsZero() {
		resp.LoadedAt = &at
	}
	sendSuccess(w, resp)
}

// handleListRows godoc
//
//	@Summary		List rows
//	@Description	Get every row of a table ordered by id
//	@Tags			tables
//	@Produce		json
//	@Param			table	path		string	true	"Table name"
//	@Success		200		{object}	RowsResponse
//	@Failure		404		{object}	APIResponse
//	@Failure		503		{object}	APIResponse
//	@Router			/tables/{table} [get]
//	@Security		ApiKeyAuth
func (s *Server) handleListRows(w http.ResponseWriter, r *http.Request) {
	table := chi.URLParam(r, "table")

	rows, err := s.tables.Rows(table)
	if err != nil {
		sendTableError(w, table, err)
		return
	}
	sendSuccess(w, RowsResponse{Table: table, Count: len(rows), Rows: rows})
}

// handleGetRow godoc
//
//	@Summary		Get a row by id
//	@Description	Get one record of a table
//	@Tags			tables
//	@Produce		json
//	@Param			table	path		string	true	"Table name"
//	@Param			id		path		int		true	"Record id"
//	@Success		200		{object}	APIResponse
//	@Failure		400		{object}	APIResponse
//	@Failure		404		{object}	APIResponse
//	@Failure		503		{object}	APIResponse
//	@Router			/tables/{table}/{id} [get]
//	@Security		ApiKeyAuth
func (s *Server) handleGetRow(w http.ResponseWriter, r *http.Request) {
	table := chi.URLParam(r, "table")

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		sendError(w, "Record id must be a 32-bit integer", http.StatusBadRequest)
		return
	}

	rec, found, err := s.tables.Lookup(table, int32(id))
	if err != nil {
		sendTableError(w, table, err)
		return
	}
	s.metrics.RecordLookup(table, found)
	if !found {
		sendError(w, fmt.Sprintf("No %s with id %d", table, id), http.StatusNotFound)
		return
	}
	sendSuccess(w, rec)
}
