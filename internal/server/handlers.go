package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/orglens/orglens/internal/mapper"
)

type mapRequest struct {
	Name string `json:"name"`
}

type errorResponse struct {
	Error      string   `json:"error"`
	Candidates []string `json:"candidates,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	var req mapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.observeMap("bad_request", 0)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.Name == "" {
		s.observeMap("bad_request", 0)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "name is required"})
		return
	}

	start := time.Now()
	result, err := s.mapper.Map(r.Context(), req.Name)
	elapsed := time.Since(start)

	if err != nil {
		var ambiguous *mapper.AmbiguousError
		switch {
		case errors.Is(err, mapper.ErrNotFound):
			s.observeMap("not_found", elapsed)
			writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		case errors.As(err, &ambiguous):
			s.observeMap("ambiguous", elapsed)
			writeJSON(w, http.StatusConflict, errorResponse{
				Error:      ambiguous.Error(),
				Candidates: ambiguous.Candidates,
			})
		default:
			s.observeMap("error", elapsed)
			s.logger.Error("mapping failed", zap.String("company", req.Name), zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "mapping failed"})
		}
		return
	}

	s.observeMap("ok", elapsed)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) observeMap(outcome string, elapsed time.Duration) {
	if s.metrics == nil {
		return
	}
	s.metrics.MapRequests.WithLabelValues(outcome).Inc()
	if elapsed > 0 {
		s.metrics.MapDuration.Observe(elapsed.Seconds())
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload) // nolint:errcheck // response already committed
}
