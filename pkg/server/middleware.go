package server

import (
	"net/http"
	"strconv"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"tableflip.dev/devo/pkg/logger"
)

const requestIDHeader = "X-Request-ID"

// requestLog tags every request with an id and logs its outcome.
func requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		logger.Debug("request",
			"id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"duration", time.Since(start))
	})
}

// rateLimit rejects clients that exceed the configured rate with 429.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := s.limiter.GetIPKey(r)
		lc, err := s.limiter.Get(r.Context(), ip)
		if err != nil {
			logger.Error("rate limit check failed", "ip", ip, "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error during rate limit check")
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(lc.Limit, 10))
		w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(lc.Remaining, 10))
		if lc.Reached {
			logger.Warn("rate limit exceeded", "ip", ip, "limit", lc.Limit)
			writeError(w, http.StatusTooManyRequests, "Too many requests. Please try again later.")
			return
		}
		next.ServeHTTP(w, r)
	})
}
