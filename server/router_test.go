package server

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intranet/system"
	"intranet/ws"
)

func newTestRouter(t *testing.T, staticDir string) (http.Handler, *system.Handler) {
	t.Helper()
	pool := system.NewNotificationWorkerPool(nil, 1, 4, nil)
	h := system.NewHandler(pool, "Intranet Empresa", "test", nil)
	return NewRouter(Deps{Handler: h, Hub: ws.NewHub(nil), StaticDir: staticDir}), h
}

func TestRouter_Health(t *testing.T) {
	r, _ := newTestRouter(t, "")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestRouter_NotifyRequiresPost(t *testing.T) {
	r, h := newTestRouter(t, "")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/notify", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/notify", strings.NewReader(`{"message":"Hola"}`)))
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Len(t, h.Pool.JobQueue, 1)
}

func TestRouter_Metrics(t *testing.T) {
	r, _ := newTestRouter(t, "")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "intranet_notifications_active")
}

func TestRouter_Static(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.css"), []byte(".notification{}"), 0o644))
	r, _ := newTestRouter(t, dir)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/app.css", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ".notification")
}
