package httpapi_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/itemstore/pkg/adapters/memory"
	"github.com/aretw0/itemstore/pkg/core"
	"github.com/aretw0/itemstore/pkg/httpapi"
)

func newTestServer(t *testing.T, opts ...httpapi.Option) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := core.NewService(memory.NewRepository(), core.WithServiceLogger(logger))
	opts = append([]httpapi.Option{httpapi.WithLogger(logger)}, opts...)
	srv := httptest.NewServer(httpapi.New(svc, opts...))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, body string) (int, string, http.Header) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, srv.URL+path, r)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(data), resp.Header
}

func TestServer_Scenario(t *testing.T) {
	srv := newTestServer(t)

	status, body, _ := do(t, srv, http.MethodPost, "/create", `{"name":"widget","description":"a thing"}`)
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Item created successfully", body)

	status, body, _ = do(t, srv, http.MethodPut, "/update", `{"name":"widget","description":"a better thing"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Item updated successfully", body)

	status, body, hdr := do(t, srv, http.MethodGet, "/get", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", hdr.Get("Content-Type"))
	assert.JSONEq(t, `[{"name":"widget","description":"a better thing"}]`, body)

	status, body, _ = do(t, srv, http.MethodDelete, "/delete", `{"name":"widget"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Item deleted successfully", body)

	status, body, _ = do(t, srv, http.MethodDelete, "/delete", `{"name":"widget"}`)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Item not found", body)
}

func TestServer_EmptyList(t *testing.T) {
	srv := newTestServer(t)

	status, body, _ := do(t, srv, http.MethodGet, "/get", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "[]", body)
}

func TestServer_UpdateMissing(t *testing.T) {
	srv := newTestServer(t)

	status, body, _ := do(t, srv, http.MethodPut, "/update", `{"name":"ghost","description":"x"}`)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Item not found", body)
}

func TestServer_DuplicateNames(t *testing.T) {
	srv := newTestServer(t)
	do(t, srv, http.MethodPost, "/create", `{"name":"dup","description":"a"}`)
	do(t, srv, http.MethodPost, "/create", `{"name":"dup","description":"b"}`)
	do(t, srv, http.MethodPost, "/create", `{"name":"other","description":"c"}`)

	status, body, _ := do(t, srv, http.MethodDelete, "/delete", `{"name":"dup"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "2 items deleted successfully", body)

	_, body, _ = do(t, srv, http.MethodGet, "/get", "")
	assert.JSONEq(t, `[{"name":"other","description":"c"}]`, body)
}

func TestServer_MalformedBodies(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{"invalid json", http.MethodPost, "/create", `{"name":`},
		{"missing description", http.MethodPost, "/create", `{"name":"widget"}`},
		{"non-string name", http.MethodPut, "/update", `{"name":42,"description":"x"}`},
		{"empty body", http.MethodDelete, "/delete", ``},
		{"missing name", http.MethodDelete, "/delete", `{}`},
		{"trailing data", http.MethodPost, "/create", `{"name":"a","description":"b"} {}`},
		{"trailing braces", http.MethodPost, "/create", `{"name":"a","description":"b"}}}`},
		{"trailing bracket", http.MethodPut, "/update", `{"name":"a","description":"b"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body, _ := do(t, srv, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, "Invalid request body", body)
		})
	}

	// Nothing reached the store.
	_, body, _ := do(t, srv, http.MethodGet, "/get", "")
	assert.Equal(t, "[]", body)
}

func TestServer_OversizedBody(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := memory.NewRepository()
	h := httpapi.New(core.NewService(repo), httpapi.WithLogger(logger))

	body := `{"name":"a","description":"` + strings.Repeat("x", httpapi.MaxBodyBytes) + `"}`
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/create", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	items, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestServer_Routing(t *testing.T) {
	srv := newTestServer(t)

	status, _, _ := do(t, srv, http.MethodGet, "/create", "")
	assert.Equal(t, http.StatusMethodNotAllowed, status)

	status, _, _ = do(t, srv, http.MethodPost, "/get", "")
	assert.Equal(t, http.StatusMethodNotAllowed, status)

	status, _, _ = do(t, srv, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, body, _ := do(t, srv, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body)

	status, _, _ = do(t, srv, http.MethodGet, "/debug/state", "")
	assert.Equal(t, http.StatusNotFound, status, "debug state is off by default")
}

func TestServer_DebugState(t *testing.T) {
	srv := newTestServer(t, httpapi.WithDebug(true))
	do(t, srv, http.MethodPost, "/create", `{"name":"widget","description":"a thing"}`)

	status, body, _ := do(t, srv, http.MethodGet, "/debug/state", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"repository_type":"memory"`)
	assert.Contains(t, body, `"widget"`)
}

func TestServer_RequestID(t *testing.T) {
	srv := newTestServer(t)

	_, _, hdr := do(t, srv, http.MethodGet, "/healthz", "")
	assert.NotEmpty(t, hdr.Get(httpapi.HeaderRequestID))

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/healthz", nil)
	require.NoError(t, err)
	req.Header.Set(httpapi.HeaderRequestID, "abc-123")
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "abc-123", resp.Header.Get(httpapi.HeaderRequestID))
}

// failingRepository fails every call.
type failingRepository struct{ err error }

func (f failingRepository) Insert(context.Context, core.Item) error   { return f.err }
func (f failingRepository) List(context.Context) ([]core.Item, error) { return nil, f.err }
func (f failingRepository) Initialize(context.Context) error          { return nil }
func (f failingRepository) Close(context.Context) error               { return nil }

func (f failingRepository) UpdateDescription(context.Context, string, string) (int64, error) {
	return 0, f.err
}

func (f failingRepository) Delete(context.Context, string) (int64, error) {
	return 0, f.err
}

func TestServer_StoreFailures(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := core.NewService(failingRepository{err: errors.New("boom")}, core.WithServiceLogger(logger))
	srv := httptest.NewServer(httpapi.New(svc, httpapi.WithLogger(logger)))
	t.Cleanup(srv.Close)

	tests := []struct {
		method, path, body, want string
	}{
		{http.MethodPost, "/create", `{"name":"a","description":"b"}`, "Failed to create item"},
		{http.MethodGet, "/get", "", "Failed to list items"},
		{http.MethodPut, "/update", `{"name":"a","description":"b"}`, "Failed to update item"},
		{http.MethodDelete, "/delete", `{"name":"a"}`, "Failed to delete item"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			status, body, hdr := do(t, srv, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusInternalServerError, status)
			assert.Equal(t, tt.want, body)
			assert.Equal(t, "text/plain; charset=utf-8", hdr.Get("Content-Type"))
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name        string
		outcome     core.Outcome
		status      int
		contentType string
		body        string
	}{
		{"created", core.Created("made"), 201, "text/plain; charset=utf-8", "made"},
		{"success", core.Success("done"), 200, "text/plain; charset=utf-8", "done"},
		{"not found", core.NotFound("gone"), 404, "text/plain; charset=utf-8", "gone"},
		{"internal", core.InternalError("broke"), 500, "text/plain; charset=utf-8", "broke"},
		{"empty list", core.Listed(nil), 200, "application/json", "[]"},
		{"list", core.Listed([]core.Item{{Name: "a", Description: "b"}}), 200, "application/json", `[{"name":"a","description":"b"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, contentType, body := httpapi.Normalize(tt.outcome)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.contentType, contentType)
			assert.Equal(t, tt.body, string(body))
		})
	}
}
