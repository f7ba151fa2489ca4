// Package server exposes the journal and the devotional assistant over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"tableflip.dev/devo/pkg/assistant"
	"tableflip.dev/devo/pkg/journal"
	"tableflip.dev/devo/pkg/logger"
)

const DefaultRate = "30-M"

type Options struct {
	// Rate limits assistant requests per client IP, in limiter's
	// "<limit>-<period>" format.
	Rate    string
	Origins []string
}

type Server struct {
	journal   *journal.Store
	assistant assistant.Service
	limiter   *limiter.Limiter
	now       func() time.Time
	router    chi.Router
}

func New(j *journal.Store, a assistant.Service, opts Options) (*Server, error) {
	if j == nil {
		return nil, errors.New("server: journal is required")
	}
	if a == nil {
		return nil, errors.New("server: assistant is required")
	}
	if opts.Rate == "" {
		opts.Rate = DefaultRate
	}
	rate, err := limiter.NewRateFromFormatted(opts.Rate)
	if err != nil {
		return nil, fmt.Errorf("server: rate %q: %w", opts.Rate, err)
	}
	if len(opts.Origins) == 0 {
		opts.Origins = []string{"*"}
	}

	s := &Server{
		journal:   j,
		assistant: a,
		limiter:   limiter.New(memory.NewStore(), rate),
		now:       time.Now,
	}
	s.router = s.routes(opts.Origins)
	return s, nil
}

func (s *Server) routes(origins []string) chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(requestLog)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("OK"))
	})

	r.Group(func(r chi.Router) {
		r.Use(s.rateLimit)
		r.Post(assistant.PathQuietTime, s.quietTime)
		r.Post(assistant.PathBooks, s.books)
		r.Post(assistant.PathStudy, s.study)
		r.Post(assistant.PathQuestion, s.answer)
	})

	r.Route("/api/entries", func(r chi.Router) {
		r.Get("/", s.listEntries)
		r.Post("/", s.createEntry)
		r.Get("/{id}", s.getEntry)
		r.Put("/{id}", s.updateEntry)
		r.Delete("/{id}", s.deleteEntry)
	})
	return r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info("shutting down", "addr", addr)
		return srv.Shutdown(shutdownCtx)
	}
}
