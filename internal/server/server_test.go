package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RegiaYoung/ICLR-Analysis-sub000/internal/snapshot"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func snapshotDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range snapshot.Files {
		content := `{"generated_at": "2025-10-01T12:00:00Z", "document": "` + name + `"}`
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func get(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodGet, path, nil)
	require.NoError(t, err)
	r.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	r := New(snapshotDir(t), nil)

	w := get(t, r, "/health")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Len(t, body["documents"], len(snapshot.Files))
}

func TestDocumentEndpointServesSnapshotFiles(t *testing.T) {
	r := New(snapshotDir(t), nil)

	for _, name := range snapshot.Files {
		w := get(t, r, "/api/"+name)
		require.Equal(t, http.StatusOK, w.Code, name)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, name, body["document"])
	}
}

func TestDocumentEndpointRejectsUnknownNames(t *testing.T) {
	r := New(snapshotDir(t), nil)

	tests := []struct {
		name string
		path string
	}{
		{name: "unknown document", path: "/api/secrets.json"},
		{name: "traversal attempt", path: "/api/..%2Fruns.db"},
		{name: "partial match", path: "/api/stats"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(t, r, tt.path)
			assert.Equal(t, http.StatusNotFound, w.Code)
		})
	}
}

func TestRunsEndpointWithoutArchive(t *testing.T) {
	r := New(snapshotDir(t), nil)

	w := get(t, r, "/runs")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestCORSHeaders(t *testing.T) {
	r := New(snapshotDir(t), nil)

	w := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodGet, "/health", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://example.com")
	r.ServeHTTP(w, req)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
