package gateway

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/bantamhq/studiodash/internal/backend"
	"github.com/bantamhq/studiodash/internal/logging"
	"github.com/bantamhq/studiodash/internal/metrics"
)

const maxBodyBytes = 1 << 20

func (s *Server) handleListFiles(w http.ResponseWriter, r *http.Request) {
	var query string
	if p := r.URL.Query().Get("path"); p != "" {
		query = url.Values{"path": {p}}.Encode()
	}
	s.forward(w, r, query, nil)
}

func (s *Server) handleRead(w http.ResponseWriter, r *http.Request) {
	s.forward(w, r, "", nil)
}

// handleWrite forwards a JSON body unmodified.
func (s *Server) handleWrite(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			JSONError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		JSONError(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	if !json.Valid(body) {
		JSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	s.forward(w, r, "", body)
}

func (s *Server) forward(w http.ResponseWriter, r *http.Request, rawQuery string, body []byte) {
	reqID := middleware.GetReqID(r.Context())
	ctx := backend.WithRequestID(r.Context(), reqID)

	resp, err := s.backend.Forward(ctx, r.Method, r.URL.Path, rawQuery, body)
	if err != nil {
		metrics.RecordUpstreamFailure(routePattern(r))
		logging.WithContext(r.Context()).Warn("upstream failed",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		JSONError(w, http.StatusBadGateway, err.Error())
		return
	}

	contentType := resp.ContentType
	if contentType == "" {
		contentType = "application/json"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(resp.StatusCode)
	w.Write(resp.Body)
}
