package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// instrument tags each request with an id, logs it, and records metrics
// against the matched route pattern rather than the raw path so ids do
// not explode label cardinality.
func (s *Server) instrument(mux *http.ServeMux) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()

		sr := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		mux.ServeHTTP(sr, r)

		elapsed := time.Since(start)
		_, route := mux.Handler(r)
		if route == "" {
			route = r.URL.Path
		}
		s.metrics.Observe(r.Method, route, sr.status, elapsed)

		s.log.Info().
			Str("requestId", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", sr.status).
			Dur("elapsed", elapsed).
			Msg("Request handled")
	})
}
