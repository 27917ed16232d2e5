// SPDX-License-Identifier: MIT

package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/lvdecomp/config"
	"github.com/katalvlaran/lvdecomp/decompose"
	"github.com/katalvlaran/lvdecomp/render"
	"github.com/katalvlaran/lvdecomp/server"
)

// memStore is an in-process cache.Store.
type memStore struct {
	mu   sync.Mutex
	docs map[string]*render.Document
	fail bool
}

func newMemStore() *memStore { return &memStore{docs: map[string]*render.Document{}} }

func (m *memStore) Get(_ context.Context, key string) (*render.Document, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return nil, false, errors.New("store down")
	}
	doc, ok := m.docs[key]

	return doc, ok, nil
}

func (m *memStore) Set(_ context.Context, key string, doc *render.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("store down")
	}
	m.docs[key] = doc

	return nil
}

func (m *memStore) Close() error { return nil }

type ServerSuite struct {
	suite.Suite
	store *memStore
	srv   *server.Server
}

func (s *ServerSuite) SetupTest() {
	cfg := config.Default().Server
	cfg.RPS = 0
	cfg.MaxDimension = 4
	s.store = newMemStore()
	s.srv = server.New(cfg, decompose.New(), s.store, zerolog.Nop())
}

func (s *ServerSuite) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.srv.Handler().ServeHTTP(rec, req)

	return rec
}

func (s *ServerSuite) decodeError(rec *httptest.ResponseRecorder) server.ErrorResponse {
	var out server.ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &out))

	return out
}

func (s *ServerSuite) TestDecompose_LUThenCacheHit() {
	body := `{"method":"lu","matrix":[[1,2,3],[4,5,6],[7,8,10]]}`
	rec := s.do(http.MethodPost, "/v1/decompose", body)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.Require().Equal("application/json", rec.Header().Get("Content-Type"))
	s.Require().Equal("miss", rec.Header().Get("X-Cache"))
	s.Require().NotEmpty(rec.Header().Get("X-Request-ID"))

	var doc render.Document
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &doc))
	s.Require().Equal("lu", doc.Method)
	s.Require().Len(doc.Pivots, 3)
	s.Require().Len(s.store.docs, 1)

	again := s.do(http.MethodPost, "/v1/decompose", body)
	s.Require().Equal(http.StatusOK, again.Code)
	s.Require().Equal("hit", again.Header().Get("X-Cache"))
	s.Require().JSONEq(rec.Body.String(), again.Body.String())
}

func (s *ServerSuite) TestDecompose_TextAliasWithWarnings() {
	rec := s.do(http.MethodPost, "/v1/decompose", `{"method":"Cholesky","text":"1 2\n3 4"}`)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var doc render.Document
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &doc))
	s.Require().NotEmpty(doc.Warnings)
	s.Require().Equal(string(decompose.WarnSymmetrized), doc.Warnings[0].Code)

	metrics := s.do(http.MethodGet, "/metrics", "")
	s.Require().Equal(http.StatusOK, metrics.Code)
	out := metrics.Body.String()
	s.Require().Contains(out, `lvdecomp_warnings_total{code="symmetrized"} 1`)
	s.Require().Contains(out, `lvdecomp_decompositions_total{method="cholesky",status="ok"} 1`)
	s.Require().Contains(out, `lvdecomp_cache_requests_total{result="miss"} 1`)
	s.Require().Contains(out, "lvdecomp_decomposition_duration_seconds_bucket")
}

func (s *ServerSuite) TestDecompose_SingularPivotIs422() {
	rec := s.do(http.MethodPost, "/v1/decompose", `{"method":"doolittle","matrix":[[1,2],[2,4]]}`)
	s.Require().Equal(http.StatusUnprocessableEntity, rec.Code)
	e := s.decodeError(rec)
	s.Require().Equal(2, e.Step)
	s.Require().Equal(decompose.ErrSingularPivot.Error(), e.Kind)
	s.Require().NotEmpty(e.RequestID)
	s.Require().Empty(s.store.docs)
}

func (s *ServerSuite) TestDecompose_BadRequests() {
	cases := map[string]string{
		"non-square":     `{"method":"lu","matrix":[[1,2,3],[4,5,6]]}`,
		"ragged":         `{"method":"lu","matrix":[[1,2],[3]]}`,
		"bad json":       `{"method":`,
		"unknown field":  `{"method":"lu","matrix":[[1]],"extra":1}`,
		"unknown method": `{"method":"qr","matrix":[[1]]}`,
		"both inputs":    `{"method":"lu","matrix":[[1]],"text":"1"}`,
		"no input":       `{"method":"lu"}`,
		"non-numeric":    `{"method":"lu","text":"1 a\n2 3"}`,
		"too large":      `{"method":"lu","text":"1 0 0 0 0\n0 1 0 0 0\n0 0 1 0 0\n0 0 0 1 0\n0 0 0 0 1"}`,
	}
	for name, body := range cases {
		rec := s.do(http.MethodPost, "/v1/decompose", body)
		s.Require().Equal(http.StatusBadRequest, rec.Code, name)
		s.Require().NotEmpty(s.decodeError(rec).Error, name)
	}
}

func (s *ServerSuite) TestDecompose_StoreFailureIsNotFatal() {
	s.store.fail = true
	rec := s.do(http.MethodPost, "/v1/decompose", `{"method":"eigen","matrix":[[2,0],[0,3]]}`)
	s.Require().Equal(http.StatusOK, rec.Code)

	metrics := s.do(http.MethodGet, "/metrics", "").Body.String()
	s.Require().Contains(metrics, `lvdecomp_cache_requests_total{result="error"} 1`)
}

func (s *ServerSuite) TestMethodsAndExamples() {
	rec := s.do(http.MethodGet, "/v1/methods", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var methods []server.MethodInfo
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &methods))
	s.Require().Len(methods, len(decompose.Methods()))
	s.Require().Equal("lu", methods[0].Name)

	rec = s.do(http.MethodGet, "/v1/examples", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var examples []server.ExampleInfo
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &examples))
	s.Require().Len(examples, len(render.Examples))
}

func (s *ServerSuite) TestHealthAndNotFound() {
	rec := s.do(http.MethodGet, "/health", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().JSONEq(`{"status":"ok","cache":"disabled"}`, rec.Body.String())

	rec = s.do(http.MethodGet, "/nope", "")
	s.Require().Equal(http.StatusNotFound, rec.Code)
	s.Require().Equal("application/json", rec.Header().Get("Content-Type"))
}

func (s *ServerSuite) TestRequestIDIsPropagated() {
	req := httptest.NewRequest(http.MethodGet, "/v1/methods", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	s.srv.Handler().ServeHTTP(rec, req)
	s.Require().Equal("abc-123", rec.Header().Get("X-Request-ID"))
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerSuite))
}

func TestRateLimit(t *testing.T) {
	cfg := config.Default().Server
	cfg.RPS = 0.001
	cfg.Burst = 1
	srv := server.New(cfg, decompose.New(), nil, zerolog.Nop())

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/v1/methods", nil)
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)

		return rec
	}
	require.Equal(t, http.StatusOK, send().Code)
	limited := send()
	require.Equal(t, http.StatusTooManyRequests, limited.Code)

	body, err := io.ReadAll(limited.Body)
	require.NoError(t, err)
	require.True(t, bytes.Contains(body, []byte("rate limit")))

	// health is outside the limited subtree
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}
