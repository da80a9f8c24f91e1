package server

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/iam-policy-generator/internal/arn"
	"github.com/iam-policy-generator/internal/audit"
	"github.com/iam-policy-generator/internal/auth"
	"github.com/iam-policy-generator/internal/catalog"
	"github.com/iam-policy-generator/internal/config"
	apierrors "github.com/iam-policy-generator/internal/errors"
	"github.com/iam-policy-generator/internal/policy"
)

type catalogResource struct {
	catalog.Resource
	Actions []catalog.Action `json:"actions"`
}

type catalogResponse struct {
	Version   string            `json:"version"`
	Resources []catalogResource `json:"resources"`
}

type generateResponse struct {
	Policy  *policy.Document `json:"policy"`
	Summary policy.Summary   `json:"summary"`
}

type validateResponse struct {
	Valid    bool     `json:"valid"`
	Patterns []string `json:"patterns"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	resources := s.catalog.Resources()
	resp := catalogResponse{
		Version:   catalog.Version,
		Resources: make([]catalogResource, 0, len(resources)),
	}
	for _, res := range resources {
		resp.Resources = append(resp.Resources, catalogResource{
			Resource: res,
			Actions:  s.catalog.ActionsFor(res.ID),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleActions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.ActionsFor(chi.URLParam(r, "resourceID")))
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()
	reqID := requestID(r)
	clientID := clientIDFrom(r)

	data, err := readBody(r)
	if err != nil {
		s.generationFailed(w, r, apierrors.Wrap(apierrors.CodeInvalidRequest, err, reqID), clientID, startTime)
		return
	}

	file, err := config.ParseSelection(data)
	if err != nil {
		s.generationFailed(w, r, apierrors.Wrap(apierrors.CodeInvalidRequest, err, reqID), clientID, startTime)
		return
	}

	sel, err := policy.SelectionFromConfig(s.catalog, file)
	if err != nil {
		s.generationFailed(w, r, apierrors.Wrap(apierrors.CodeInvalidSelection, err, reqID), clientID, startTime)
		return
	}

	doc := policy.Generate(s.catalog, sel)
	var statements []policy.Statement
	if doc != nil {
		statements = doc.Statement
	}
	summary := policy.Summarize(s.catalog, sel, statements)

	var actionIDs []string
	for _, resourceID := range sel.SelectedResources() {
		actionIDs = append(actionIDs, sel.SelectedActionIDs(resourceID)...)
	}

	s.auditLogger.Log(audit.NewGenerationEntry(
		reqID,
		clientID,
		"http",
		sel.SelectedResources(),
		actionIDs,
		summary.Statements,
		summary.PermissionCodes,
		string(summary.Scope),
		time.Since(startTime),
	))

	writeJSON(w, http.StatusOK, generateResponse{Policy: doc, Summary: summary})
}

func (s *Server) generationFailed(w http.ResponseWriter, r *http.Request, apiErr *apierrors.APIError, clientID string, startTime time.Time) {
	log.Printf("[%s] Generation failed: client=%s error=%v", apiErr.RequestID, clientID, apiErr.Err)
	s.auditLogger.Log(audit.NewErrorEntry(
		apiErr.RequestID,
		clientID,
		"http",
		apiErr.Message,
		time.Since(startTime),
		apiErr.HTTPStatusCode(),
	))
	apierrors.WriteError(w, apiErr)
}

func (s *Server) handleValidateIdentifier(w http.ResponseWriter, r *http.Request) {
	reqID := requestID(r)

	var req validateRequest
	if err := decodeJSON(r, &req); err != nil {
		apierrors.WriteError(w, apierrors.Wrap(apierrors.CodeInvalidRequest, err, reqID))
		return
	}

	if req.ResourceID != "" {
		if _, ok := s.catalog.Resource(req.ResourceID); !ok {
			apierrors.WriteError(w, apierrors.New(apierrors.CodeNotFound, "unknown resource "+req.ResourceID, reqID))
			return
		}
	}

	resp := validateResponse{
		Valid:    arn.IsValid(req.Identifier),
		Patterns: []string{},
	}
	if resp.Valid && req.ResourceID != "" {
		resp.Patterns = arn.Expand(req.ResourceID, strings.TrimSpace(req.Identifier))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	reqID := requestID(r)

	var req simulateRequest
	if err := decodeJSON(r, &req); err != nil {
		apierrors.WriteError(w, apierrors.Wrap(apierrors.CodeInvalidRequest, err, reqID))
		return
	}
	if req.Action == "" || req.Resource == "" {
		apierrors.WriteError(w, apierrors.New(apierrors.CodeInvalidRequest, "action and resource are required", reqID))
		return
	}

	doc, err := policy.ParseDocument(req.Policy)
	if err != nil {
		apierrors.WriteError(w, apierrors.Wrap(apierrors.CodeInvalidRequest, err, reqID))
		return
	}

	writeJSON(w, http.StatusOK, doc.Evaluate(req.Action, req.Resource))
}

func clientIDFrom(r *http.Request) string {
	if client, ok := auth.ClientFromContext(r.Context()); ok {
		return client.ClientID
	}
	return ""
}
