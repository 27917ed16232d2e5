// SPDX-License-Identifier: MIT

package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/katalvlaran/lvdecomp/cache"
	"github.com/katalvlaran/lvdecomp/decompose"
	"github.com/katalvlaran/lvdecomp/matrix"
	"github.com/katalvlaran/lvdecomp/render"
)

// maxBodyBytes bounds a decompose request body.
const maxBodyBytes = 1 << 20

var (
	errRateLimited = errors.New("server: rate limit exceeded")
	errBadRequest  = errors.New("server: malformed request")
	errTooLarge    = errors.New("server: matrix too large")
	errNotFound    = errors.New("server: not found")
)

// DecomposeRequest is the body of POST /v1/decompose. Exactly one of Matrix
// and Text must be set; Text uses the render.ParseMatrix format.
type DecomposeRequest struct {
	Method string      `json:"method"`
	Matrix [][]float64 `json:"matrix,omitempty"`
	Text   string      `json:"text,omitempty"`
}

// ErrorResponse is the body of every non-2xx JSON answer.
type ErrorResponse struct {
	Error     string `json:"error"`
	Kind      string `json:"kind,omitempty"`
	Step      int    `json:"step,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// MethodInfo describes one entry of GET /v1/methods.
type MethodInfo struct {
	Name    string   `json:"name"`
	Title   string   `json:"title"`
	Aliases []string `json:"aliases,omitempty"`
}

// ExampleInfo describes one entry of GET /v1/examples.
type ExampleInfo struct {
	Name   string `json:"name"`
	Method string `json:"method"`
	Text   string `json:"text"`
}

func (s *Server) handleDecompose(w http.ResponseWriter, r *http.Request) {
	var req DecomposeRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	method, err := decompose.ParseMethod(req.Method)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	m, err := s.requestMatrix(req)
	if err != nil {
		s.metrics.Decompositions.WithLabelValues(method.String(), statusInvalid).Inc()
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	key, err := cache.Key(method, m)
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	if doc, ok := s.cached(r, key); ok {
		w.Header().Set("X-Cache", cacheHit)
		s.metrics.Decompositions.WithLabelValues(method.String(), statusOK).Inc()
		s.writeJSON(w, http.StatusOK, doc)
		return
	}

	start := time.Now()
	res, err := s.engine.Decompose(m, method)
	s.metrics.Duration.WithLabelValues(method.String()).Observe(time.Since(start).Seconds())
	if err != nil {
		status, label := classify(err)
		s.metrics.Decompositions.WithLabelValues(method.String(), label).Inc()
		s.writeError(w, r, status, err)
		return
	}
	for _, warn := range res.Warnings {
		s.metrics.Warnings.WithLabelValues(string(warn.Code)).Inc()
	}

	doc, err := render.NewDocument(res)
	if err != nil {
		s.metrics.Decompositions.WithLabelValues(method.String(), statusError).Inc()
		s.writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	if err := s.store.Set(r.Context(), key, doc); err != nil {
		s.log.Warn().Err(err).Str("request_id", RequestID(r.Context())).Msg("cache set failed")
	}
	w.Header().Set("X-Cache", cacheMiss)
	s.metrics.Decompositions.WithLabelValues(method.String(), statusOK).Inc()
	s.writeJSON(w, http.StatusOK, doc)
}

// requestMatrix builds the input matrix and enforces the size limit.
func (s *Server) requestMatrix(req DecomposeRequest) (*matrix.Dense, error) {
	var (
		m   *matrix.Dense
		err error
	)
	switch {
	case req.Matrix != nil && req.Text != "":
		return nil, fmt.Errorf("%w: set either matrix or text, not both", errBadRequest)
	case req.Matrix != nil:
		m, err = matrix.NewFromRows(req.Matrix)
	case req.Text != "":
		m, err = render.ParseMatrix(req.Text)
	default:
		return nil, fmt.Errorf("%w: matrix or text is required", errBadRequest)
	}
	if err != nil {
		return nil, err
	}
	if limit := s.cfg.MaxDimension; limit > 0 && (m.Rows() > limit || m.Cols() > limit) {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d", errTooLarge, m.Rows(), m.Cols(), limit)
	}

	return m, nil
}

// cached consults the store; errors count as misses.
func (s *Server) cached(r *http.Request, key string) (*render.Document, bool) {
	doc, found, err := s.store.Get(r.Context(), key)
	switch {
	case err != nil:
		s.metrics.CacheRequests.WithLabelValues(cacheError).Inc()
		s.log.Warn().Err(err).Str("request_id", RequestID(r.Context())).Msg("cache get failed")
		return nil, false
	case found:
		s.metrics.CacheRequests.WithLabelValues(cacheHit).Inc()
		return doc, true
	default:
		s.metrics.CacheRequests.WithLabelValues(cacheMiss).Inc()
		return nil, false
	}
}

// classify maps an engine error onto an HTTP status and a metrics label.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, matrix.ErrBadShape):
		return http.StatusBadRequest, statusInvalid
	case errors.Is(err, decompose.ErrDecomposition):
		return http.StatusUnprocessableEntity, statusFailed
	default:
		return http.StatusInternalServerError, statusError
	}
}

func (s *Server) handleMethods(w http.ResponseWriter, _ *http.Request) {
	methods := decompose.Methods()
	out := make([]MethodInfo, 0, len(methods))
	for _, m := range methods {
		out = append(out, MethodInfo{Name: m.String(), Title: m.Title(), Aliases: m.Aliases()})
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleExamples(w http.ResponseWriter, _ *http.Request) {
	out := make([]ExampleInfo, 0, len(render.Examples))
	for _, ex := range render.Examples {
		out = append(out, ExampleInfo{Name: ex.Name, Method: ex.Method.String(), Text: ex.Text})
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	body := map[string]string{"status": "ok", "cache": "disabled"}
	if rc, ok := s.store.(*cache.Redis); ok {
		body["cache"] = rc.State().String()
	}
	s.writeJSON(w, http.StatusOK, body)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	s.writeError(w, r, http.StatusNotFound, errNotFound)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error().Err(err).Msg("encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	resp := ErrorResponse{Error: err.Error(), RequestID: RequestID(r.Context())}
	var de *decompose.DecompositionError
	if errors.As(err, &de) {
		resp.Step = de.Step
		if de.Kind != nil {
			resp.Kind = de.Kind.Error()
		}
	}
	s.writeJSON(w, status, resp)
}
