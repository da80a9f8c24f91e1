package auth

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *InMemoryKeyStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "keys.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
keys:
  - token: tok-ci
    clientId: ci
    description: pipeline
`), 0644))

	store, err := NewInMemoryKeyStore(path)
	require.NoError(t, err)
	return store
}

func TestInMemoryKeyStore_Lookup(t *testing.T) {
	store := newStore(t)

	client, err := store.Lookup("tok-ci")
	require.NoError(t, err)
	assert.Equal(t, "ci", client.ClientID)

	_, err = store.Lookup("tok-other")
	assert.Error(t, err)
}

func TestNewInMemoryKeyStore_MissingFile(t *testing.T) {
	_, err := NewInMemoryKeyStore(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load credentials")
}

func TestMiddleware(t *testing.T) {
	store := newStore(t)
	reqID := func(*http.Request) string { return "req-1" }

	var seen string
	handler := Middleware(store, reqID)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		client, ok := ClientFromContext(r.Context())
		if ok {
			seen = client.ClientID
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "valid token", header: "Bearer tok-ci", wantStatus: http.StatusNoContent},
		{name: "lowercase scheme", header: "bearer tok-ci", wantStatus: http.StatusNoContent},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic tok-ci", wantStatus: http.StatusUnauthorized},
		{name: "unknown token", header: "Bearer nope", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/catalog", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
	assert.Equal(t, "ci", seen)
}

func TestMiddleware_NilStoreDisablesAuth(t *testing.T) {
	handler := Middleware(nil, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
