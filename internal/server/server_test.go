package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iam-policy-generator/internal/audit"
	"github.com/iam-policy-generator/internal/auth"
	"github.com/iam-policy-generator/internal/catalog"
	"github.com/iam-policy-generator/internal/policy"
)

func newTestServer(t *testing.T, keys auth.KeyStore) (*Server, *bytes.Buffer) {
	t.Helper()
	var auditBuf bytes.Buffer
	return New(catalog.Default(), keys, audit.NewWriterLogger(&auditBuf), 1<<16), &auditBuf
}

func do(s *Server, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t, nil)

	rec := do(s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("x-request-id"))
}

func TestRequestIDIsEchoed(t *testing.T) {
	s, _ := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("x-request-id", "abc-123")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get("x-request-id"))
}

func TestCatalog(t *testing.T) {
	s, _ := newTestServer(t, nil)

	rec := do(s, http.MethodGet, "/v1/catalog", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp catalogResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, catalog.Version, resp.Version)
	require.Len(t, resp.Resources, len(catalog.Default().Resources()))
	assert.Equal(t, "s3", resp.Resources[0].ID)
	assert.NotEmpty(t, resp.Resources[0].Actions)
}

func TestActions(t *testing.T) {
	s, _ := newTestServer(t, nil)

	rec := do(s, http.MethodGet, "/v1/catalog/sqs/actions", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var actions []catalog.Action
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &actions))
	assert.Len(t, actions, len(catalog.Default().ActionsFor("sqs")))

	rec = do(s, http.MethodGet, "/v1/catalog/rds/actions", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestGenerate(t *testing.T) {
	s, auditBuf := newTestServer(t, nil)

	body := `{"resources":[
		{"id":"s3","identifier":"arn:aws:s3:::my-bucket","actions":["s3-read-objects"]},
		{"id":"sqs","actions":["sqs-send-messages"]}
	]}`
	rec := do(s, http.MethodPost, "/v1/policies", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Policy  *policy.Document `json:"policy"`
		Summary policy.Summary   `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Policy)
	assert.Equal(t, policy.Version, resp.Policy.Version)
	require.Len(t, resp.Policy.Statement, 2)
	assert.Equal(t, policy.Values{"arn:aws:s3:::my-bucket", "arn:aws:s3:::my-bucket/*"}, resp.Policy.Statement[0].Resource)
	assert.True(t, resp.Policy.Statement[1].IsWildcard())
	assert.Equal(t, policy.ScopeMixed, resp.Summary.Scope)
	assert.Equal(t, 2, resp.Summary.SelectedActions)

	var entry audit.Entry
	require.NoError(t, json.Unmarshal(auditBuf.Bytes(), &entry))
	assert.Equal(t, audit.OutcomeGenerated, entry.Outcome)
	assert.Equal(t, rec.Header().Get("x-request-id"), entry.RequestID)
	assert.Equal(t, []string{"s3", "sqs"}, entry.Resources)
}

func TestGenerate_NothingSelected(t *testing.T) {
	s, auditBuf := newTestServer(t, nil)

	rec := do(s, http.MethodPost, "/v1/policies", `{"resources":[{"id":"s3"}]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"policy":null`)
	assert.Contains(t, auditBuf.String(), `"outcome":"empty"`)
}

func TestGenerate_YAMLBody(t *testing.T) {
	s, _ := newTestServer(t, nil)

	rec := do(s, http.MethodPost, "/v1/policies", "resources:\n  - id: lambda\n    categories: [read]\n")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "lambda:ListFunctions")
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{name: "empty body", body: "", wantStatus: http.StatusBadRequest, wantCode: "INVALID_REQUEST"},
		{name: "malformed json", body: `{"resources":`, wantStatus: http.StatusBadRequest, wantCode: "INVALID_REQUEST"},
		{name: "unknown field", body: `{"resource":[]}`, wantStatus: http.StatusBadRequest, wantCode: "INVALID_REQUEST"},
		{name: "unknown resource", body: `{"resources":[{"id":"rds"}]}`, wantStatus: http.StatusUnprocessableEntity, wantCode: "INVALID_SELECTION"},
		{name: "foreign action", body: `{"resources":[{"id":"s3","actions":["ec2-view-instances"]}]}`, wantStatus: http.StatusUnprocessableEntity, wantCode: "INVALID_SELECTION"},
		{name: "too large", body: `{"resources":[{"id":"s3","identifier":"` + strings.Repeat("a", 1<<16) + `"}]}`, wantStatus: http.StatusBadRequest, wantCode: "INVALID_REQUEST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, auditBuf := newTestServer(t, nil)

			rec := do(s, http.MethodPost, "/v1/policies", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantCode)
			assert.Contains(t, auditBuf.String(), `"outcome":"error"`)
		})
	}
}

func TestValidateIdentifier(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		wantStatus   int
		wantValid    bool
		wantPatterns []string
	}{
		{
			name:         "bucket expands",
			body:         `{"resourceId":"s3","identifier":"arn:aws:s3:::b"}`,
			wantStatus:   http.StatusOK,
			wantValid:    true,
			wantPatterns: []string{"arn:aws:s3:::b", "arn:aws:s3:::b/*"},
		},
		{
			name:         "shape only",
			body:         `{"identifier":"arn:aws:sqs:us-east-1:123456789012:q"}`,
			wantStatus:   http.StatusOK,
			wantValid:    true,
			wantPatterns: []string{},
		},
		{
			name:         "invalid",
			body:         `{"resourceId":"s3","identifier":"my-bucket"}`,
			wantStatus:   http.StatusOK,
			wantValid:    false,
			wantPatterns: []string{},
		},
		{
			name:       "unknown resource",
			body:       `{"resourceId":"rds","identifier":"arn:aws:rds:us-east-1:1:db:x"}`,
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestServer(t, nil)

			rec := do(s, http.MethodPost, "/v1/identifiers/validate", tt.body)
			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus != http.StatusOK {
				return
			}

			var resp validateResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantValid, resp.Valid)
			assert.Equal(t, tt.wantPatterns, resp.Patterns)
		})
	}
}

func TestSimulate(t *testing.T) {
	s, _ := newTestServer(t, nil)
	doc := `{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Action":"s3:GetObject","Resource":"arn:aws:s3:::b/*"}]}`

	rec := do(s, http.MethodPost, "/v1/simulate",
		`{"policy":`+doc+`,"action":"s3:GetObject","resource":"arn:aws:s3:::b/key"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"allowed":true,"statement":0}`, rec.Body.String())

	rec = do(s, http.MethodPost, "/v1/simulate",
		`{"policy":`+doc+`,"action":"s3:PutObject","resource":"arn:aws:s3:::b/key"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"allowed":false,"statement":-1}`, rec.Body.String())
}

func TestSimulate_Errors(t *testing.T) {
	s, _ := newTestServer(t, nil)

	rec := do(s, http.MethodPost, "/v1/simulate", `{"policy":{"Version":"2012-10-17","Statement":[]},"action":"a","resource":"r"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(s, http.MethodPost, "/v1/simulate", `{"policy":{},"action":"","resource":"r"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUnknownEndpoint(t *testing.T) {
	s, _ := newTestServer(t, nil)

	rec := do(s, http.MethodGet, "/v2/nothing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "NOT_FOUND")
}

func TestAuthentication(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.yaml")
	require.NoError(t, os.WriteFile(path, []byte("keys:\n  - token: secret\n    clientId: ci\n"), 0644))
	keys, err := auth.NewInMemoryKeyStore(path)
	require.NoError(t, err)

	s, auditBuf := newTestServer(t, keys)

	rec := do(s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(s, http.MethodGet, "/v1/catalog", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/v1/policies", strings.NewReader(`{"resources":[{"id":"sns","actions":["sns-publish-messages"]}]}`))
	req.Header.Set("Authorization", "Bearer secret")
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, auditBuf.String(), `"clientId":"ci"`)
}
