package cmd_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intranet/api"
	"intranet/cmd"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := cmd.NewRootCmdForTest()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestFechaFormat(t *testing.T) {
	out, err := run(t, "fecha", "format", "2024-01-05")
	require.NoError(t, err)
	assert.Equal(t, "05 ene 2024\n", out)

	out, err = run(t, "fecha", "format", "2024-01-05", "--month", "long")
	require.NoError(t, err)
	assert.Equal(t, "05 de enero de 2024\n", out)
}

func TestFechaFormat_InvalidStyle(t *testing.T) {
	_, err := run(t, "fecha", "format", "2024-01-05", "--month", "huge")
	assert.ErrorContains(t, err, "--month")
}

func TestFechaLunes(t *testing.T) {
	out, err := run(t, "fecha", "lunes", "2024-01-07")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01\n", out)
}

func TestFechaSemana(t *testing.T) {
	out, err := run(t, "fecha", "semana", "2024-01-03")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01 2024-01-07\n", out)
}

func TestAPIGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/anuncios", r.URL.Path)
		w.Write([]byte(`{"a":1}`))
	}))
	defer srv.Close()

	out, err := run(t, "api", "get", "/api/anuncios", "--base-url", srv.URL)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, out)
}

func TestAPIPost_SurfacesDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"bad input"}`))
	}))
	defer srv.Close()

	_, err := run(t, "api", "post", "/x", `{"a":1}`, "--base-url", srv.URL)

	var reqErr *api.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, "bad input", reqErr.Error())
}

func TestAPIPost_InvalidBody(t *testing.T) {
	_, err := run(t, "api", "post", "/x", `{`, "--base-url", "http://localhost:1")
	assert.ErrorContains(t, err, "invalid JSON body")
}

func TestNotify_PostsToRelay(t *testing.T) {
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b := new(bytes.Buffer)
		_, _ = b.ReadFrom(r.Body)
		body = b.String()
		w.WriteHeader(http.StatusAccepted)
		w.Write([]byte(`{"status":"queued"}`))
	}))
	defer srv.Close()

	out, err := run(t, "notify", "Reunión", "a", "las", "10", "--type", "warning", "--relay", srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "queued\n", out)
	assert.JSONEq(t, `{"message":"Reunión a las 10","type":"warning"}`, body)
}
