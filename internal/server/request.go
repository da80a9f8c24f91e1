package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// maxRequestIDLength bounds caller supplied request ids
const maxRequestIDLength = 128

// validateRequest is the body of POST /v1/identifiers/validate
type validateRequest struct {
	ResourceID string `json:"resourceId"`
	Identifier string `json:"identifier"`
}

// simulateRequest is the body of POST /v1/simulate
type simulateRequest struct {
	Policy   json.RawMessage `json:"policy"`
	Action   string          `json:"action"`
	Resource string          `json:"resource"`
}

type requestIDKey struct{}

// withRequestID assigns every request an id, reusing a sane x-request-id
// header from the caller, and echoes it in the response
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get("x-request-id"))
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.New().String()
		}
		w.Header().Set("x-request-id", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

// requestID returns the id assigned by withRequestID
func requestID(r *http.Request) string {
	id, _ := r.Context().Value(requestIDKey{}).(string)
	return id
}

// readBody reads the request body, honouring the server's size limit
func readBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, fmt.Errorf("request body is required")
	}
	data, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, fmt.Errorf("request body exceeds %d bytes", tooLarge.Limit)
		}
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("request body is required")
	}
	return data, nil
}

// decodeJSON strictly decodes a JSON request body into v
func decodeJSON(r *http.Request, v any) error {
	data, err := readBody(r)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}
