// ABOUTME: HTTP middleware for request logging, metrics, and panic recovery.
// ABOUTME: Wraps the mux router before it is served.
package server

import (
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (r *responseWriter) WriteHeader(statusCode int) {
	r.ResponseWriter.WriteHeader(statusCode)
	r.statusCode = statusCode
}

// routeName returns the matched route template, or "unmatched".
func routeName(req *http.Request) string {
	if route := mux.CurrentRoute(req); route != nil {
		if tmpl, err := route.GetPathTemplate(); err == nil {
			return tmpl
		}
	}
	return "unmatched"
}

func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		begin := time.Now()
		resp := &responseWriter{w, http.StatusOK}

		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("panic serving request", "path", req.URL.Path, "panic", r, "stack", string(debug.Stack()))
				s.metrics.CounterHandlerPanic.Inc()
				http.Error(resp, "internal server error", http.StatusInternalServerError)
			}

			elapsed := time.Since(begin)
			s.metrics.HistRequestDuration.Observe(elapsed.Seconds())
			s.metrics.CounterRequests.With(prometheus.Labels{
				"method": req.Method,
				"route":  routeName(req),
				"status": strconv.Itoa(resp.statusCode),
			}).Inc()
			s.logger.Debug("request", "method", req.Method, "path", req.URL.Path, "status", resp.statusCode, "took", elapsed)
		}()

		next.ServeHTTP(resp, req)
	})
}
