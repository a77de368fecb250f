package plot

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/raykavin/fvgview/pkg/logger"
)

const requestIDHeader = "X-Request-ID"

type contextKey struct{}

// statusRecorder captures the status code written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withRequestID tags each request with an identifier, echoed back in the
// response and attached to the request logger
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		log := s.log.WithField("request_id", id)
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		started := time.Now()

		next.ServeHTTP(recorder, r.WithContext(context.WithValue(r.Context(), contextKey{}, log)))

		log.WithFields(map[string]any{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   recorder.status,
			"duration": time.Since(started).String(),
		}).Debug("request served")
	})
}

// requestLog returns the logger attached by withRequestID
func (s *Server) requestLog(r *http.Request) logger.Logger {
	if log, ok := r.Context().Value(contextKey{}).(logger.Logger); ok {
		return log
	}
	return s.log
}
