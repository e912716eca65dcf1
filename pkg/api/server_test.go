package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/easytables/pkg/provider"
	"github.com/ssargent/easytables/pkg/tables"
)

const testAPIKey = "test-key"

type rawResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func loadedManager(t *testing.T) *tables.Manager {
	t.Helper()
	m := tables.NewManager()
	err := m.LoadAll(context.Background(), provider.MapProvider{
		tables.TableBuff:    "100,Bleed,2,4.5,true,3,1,dot,0\n",
		tables.TableHero:    "1,Arthur,3,2,2,5,2,str,10,agi,8,ExcaliburSword,99,2\n",
		tables.TableNPCHero: "7,Merlin,5,0,true\n",
		tables.TableSkill:   "2,Cleave,6,1,100,50\n5,Parry,2,0\n",
	})
	require.NoError(t, err)
	return m
}

func setupTestRouter(t *testing.T, reader TableReader) (http.Handler, *Metrics) {
	t.Helper()
	metrics := NewMetrics(prometheus.NewRegistry())
	return NewRouter(reader, ServerConfig{APIKey: testAPIKey}, metrics), metrics
}

func doRequest(t *testing.T, h http.Handler, path string, withKey bool) (*httptest.ResponseRecorder, rawResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if withKey {
		req.Header.Set("X-API-Key", testAPIKey)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var resp rawResponse
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func TestRouter_Health(t *testing.T) {
	h, metrics := setupTestRouter(t, loadedManager(t))

	w, resp := doRequest(t, h, "/api/v1/health", true)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)
	assert.JSONEq(t, `{"status":"healthy","state":"loaded"}`, string(resp.Data))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.healthChecksTotal.WithLabelValues(statusSuccess)))
}

func TestRouter_HealthBeforeLoad(t *testing.T) {
	h, _ := setupTestRouter(t, tables.NewManager())

	w, resp := doRequest(t, h, "/api/v1/health", true)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.False(t, resp.Success)
}

func TestRouter_TableReadsBeforeLoad(t *testing.T) {
	h, _ := setupTestRouter(t, tables.NewManager())

	for _, path := range []string{"/api/v1/tables/Hero", "/api/v1/tables/Hero/1"} {
		w, resp := doRequest(t, h, path, true)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code, path)
		assert.Equal(t, "Tables not loaded", resp.Error, path)
	}

	w, resp := doRequest(t, h, "/api/v1/tables", true)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)
}

func TestRouter_RequiresAPIKey(t *testing.T) {
	h, metrics := setupTestRouter(t, loadedManager(t))

	w, resp := doRequest(t, h, "/api/v1/tables", false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Missing X-API-Key header", resp.Error)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tables", nil)
	req.Header.Set("X-API-Key", "wrong")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.authRequestsTotal.WithLabelValues(statusError)))
}

func TestRouter_ListTables(t *testing.T) {
	h, _ := setupTestRouter(t, loadedManager(t))

	w, resp := doRequest(t, h, "/api/v1/tables", true)
	require.Equal(t, http.StatusOK, w.Code)

	var got TablesResponse
	require.NoError(t, json.Unmarshal(resp.Data, &got))
	assert.Equal(t, "loaded", got.State)
	assert.NotNil(t, got.LoadedAt)
	assert.Equal(t, []tables.TableStats{
		{Name: tables.TableBuff, Rows: 1},
		{Name: tables.TableHero, Rows: 1},
		{Name: tables.TableNPCHero, Rows: 1},
		{Name: tables.TableSkill, Rows: 2},
	}, got.Tables)
}

func TestRouter_ListRows(t *testing.T) {
	h, _ := setupTestRouter(t, loadedManager(t))

	w, resp := doRequest(t, h, "/api/v1/tables/Skill", true)
	require.Equal(t, http.StatusOK, w.Code)

	var got struct {
		Table string         `json:"table"`
		Count int            `json:"count"`
		Rows  []tables.Skill `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &got))
	assert.Equal(t, "Skill", got.Table)
	assert.Equal(t, 2, got.Count)
	require.Len(t, got.Rows, 2)
	assert.Equal(t, "Cleave", got.Rows[0].Name)
	assert.Equal(t, map[int32]int32{100: 50}, got.Rows[0].BuffProbability)
}

func TestRouter_GetRow(t *testing.T) {
	h, metrics := setupTestRouter(t, loadedManager(t))

	w, resp := doRequest(t, h, "/api/v1/tables/Hero/1", true)
	require.Equal(t, http.StatusOK, w.Code)

	var hero map[string]any
	require.NoError(t, json.Unmarshal(resp.Data, &hero))
	assert.Equal(t, "Arthur", hero["name"])
	assert.Equal(t, "Available", hero["state"])
	assert.Equal(t, map[string]any{"name": "ExcaliburSword", "score": float64(99)}, hero["weapon"])

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.lookupsTotal.WithLabelValues("Hero", lookupHit)))
}

func TestRouter_GetRowErrors(t *testing.T) {
	testCases := []struct {
		name       string
		path       string
		wantStatus int
		wantError  string
	}{
		{"absent id", "/api/v1/tables/Hero/42", http.StatusNotFound, "No Hero with id 42"},
		{"unknown table", "/api/v1/tables/Monster/1", http.StatusNotFound, `Unknown table "Monster"`},
		{"unknown table rows", "/api/v1/tables/Monster", http.StatusNotFound, `Unknown table "Monster"`},
		{"non-numeric id", "/api/v1/tables/Hero/abc", http.StatusBadRequest, "Record id must be a 32-bit integer"},
		{"id overflow", "/api/v1/tables/Hero/9999999999", http.StatusBadRequest, "Record id must be a 32-bit integer"},
	}

	h, _ := setupTestRouter(t, loadedManager(t))
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w, resp := doRequest(t, h, tc.path, true)
			assert.Equal(t, tc.wantStatus, w.Code)
			assert.False(t, resp.Success)
			assert.Equal(t, tc.wantError, resp.Error)
		})
	}
}

func TestRouter_LookupMissCounted(t *testing.T) {
	h, metrics := setupTestRouter(t, loadedManager(t))

	doRequest(t, h, "/api/v1/tables/Buff/1", true)
	doRequest(t, h, "/api/v1/tables/Buff/2", true)

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.lookupsTotal.WithLabelValues("Buff", lookupMiss)))
}

func TestRouter_Metrics(t *testing.T) {
	h, metrics := setupTestRouter(t, loadedManager(t))

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.tableRows.WithLabelValues("Skill")))

	doRequest(t, h, "/api/v1/tables", true)

	w, _ := doRequest(t, h, "/metrics", false)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "easytables_table_rows")
	assert.Contains(t, body, `easytables_http_requests_total{endpoint="/api/v1/tables",method="GET",status_code="200"} 1`)
}

func TestRouter_Swagger(t *testing.T) {
	h, _ := setupTestRouter(t, loadedManager(t))

	w, _ := doRequest(t, h, "/swagger/swagger.json", false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "EasyTables REST API")
	assert.Contains(t, w.Body.String(), "/tables/{table}/{id}")

	w, _ = doRequest(t, h, "/swagger/index.html", false)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "swagger-ui")

	w, _ = doRequest(t, h, "/swagger/nope", false)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStartServer_StopsOnCancel(t *testing.T) {
	m := loadedManager(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- StartServer(ctx, m, ServerConfig{Bind: "127.0.0.1", Port: 0, APIKey: testAPIKey}, NewMetrics(prometheus.NewRegistry()))
	}()

	cancel()
	assert.NoError(t, <-done)
}
