package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/orglens/orglens/internal/config"
	"github.com/orglens/orglens/internal/core"
	"github.com/orglens/orglens/internal/mapper"
)

type stubMapper struct {
	result *core.ValidatedResult
	err    error
}

func (s *stubMapper) Map(ctx context.Context, company string) (*core.ValidatedResult, error) {
	return s.result, s.err
}

func newTestServer(m Mapper) *Server {
	return New(config.ServerConfig{Host: "localhost", Port: 0}, nil, m, true)
}

func postMap(t *testing.T, srv *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/map", bytes.NewBufferString(body))
	recorder := httptest.NewRecorder()
	srv.Handler().ServeHTTP(recorder, req)
	return recorder
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(&stubMapper{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	recorder := httptest.NewRecorder()
	srv.Handler().ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	require.JSONEq(t, `{"status":"ok"}`, recorder.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(&stubMapper{})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	recorder := httptest.NewRecorder()
	srv.Handler().ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)
}

func TestMetricsDisabled(t *testing.T) {
	srv := New(config.ServerConfig{}, nil, &stubMapper{}, false)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	recorder := httptest.NewRecorder()
	srv.Handler().ServeHTTP(recorder, req)

	require.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestMapEndpoint(t *testing.T) {
	result := &core.ValidatedResult{
		OverallScore: 87.5,
		IsValid:      true,
		Hierarchy:    &core.Hierarchy{Company: core.HierarchyCompany{Name: "Acme"}},
	}
	srv := newTestServer(&stubMapper{result: result})

	recorder := postMap(t, srv, `{"name": "Acme"}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	var decoded core.ValidatedResult
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &decoded))
	require.Equal(t, 87.5, decoded.OverallScore)
	require.True(t, decoded.IsValid)
	require.Equal(t, "Acme", decoded.Hierarchy.Company.Name)
}

func TestMapEndpointBadRequest(t *testing.T) {
	srv := newTestServer(&stubMapper{})

	require.Equal(t, http.StatusBadRequest, postMap(t, srv, `not json`).Code)
	require.Equal(t, http.StatusBadRequest, postMap(t, srv, `{}`).Code)
}

func TestMapEndpointNotFound(t *testing.T) {
	srv := newTestServer(&stubMapper{err: mapper.ErrNotFound})

	recorder := postMap(t, srv, `{"name": "Ghost"}`)
	require.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestMapEndpointAmbiguous(t *testing.T) {
	srv := newTestServer(&stubMapper{err: &mapper.AmbiguousError{
		Name:       "Mercury",
		Candidates: []string{"Mercury Records", "Mercury (planet)"},
	}})

	recorder := postMap(t, srv, `{"name": "Mercury"}`)
	require.Equal(t, http.StatusConflict, recorder.Code)

	var body errorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.Len(t, body.Candidates, 2)
}

func TestMapEndpointInternalError(t *testing.T) {
	srv := newTestServer(&stubMapper{err: errors.New("boom")})

	recorder := postMap(t, srv, `{"name": "Acme"}`)
	require.Equal(t, http.StatusInternalServerError, recorder.Code)
}
