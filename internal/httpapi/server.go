package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/hamed0406/endpointwatch/internal/domain"
	"github.com/hamed0406/endpointwatch/internal/httpapi/middleware"
	"github.com/hamed0406/endpointwatch/internal/repo"
	"github.com/hamed0406/endpointwatch/internal/scheduler"
)

// Trigger runs one check cycle on demand.
type Trigger interface {
	RunOnce(ctx context.Context) (*domain.Run, error)
}

type Server struct {
	Logger    *zap.Logger
	Endpoints scheduler.Loader
	Runs      repo.RunStore
	Trigger   Trigger
	Gatherer  prometheus.Gatherer // nil serves the default registry

	Keys        middleware.Keys
	PublicRPM   int
	PublicBurst int
}

func NewServer(l *zap.Logger, endpoints scheduler.Loader, runs repo.RunStore, t Trigger) *Server {
	if l == nil {
		l = zap.NewNop()
	}
	return &Server{Logger: l, Endpoints: endpoints, Runs: runs, Trigger: t}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(cors.AllowAll().Handler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	g := s.Gatherer
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	r.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.RateLimit(s.PublicRPM, s.PublicBurst))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAny(s.Keys))
			r.Get("/endpoints", s.handleListEndpoints)
			r.Get("/runs/latest", s.handleLatestRun)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin(s.Keys))
			r.Post("/runs", s.handleTriggerRun)
		})
	})

	return r
}

func (s *Server) handleListEndpoints(w http.ResponseWriter, r *http.Request) {
	specs, err := s.Endpoints()
	if err != nil {
		s.Logger.Warn("endpoints_load_error", zap.Error(err))
		middleware.WriteError(w, http.StatusInternalServerError, "could not load endpoints")
		return
	}
	writeJSON(w, http.StatusOK, specs)
}

func (s *Server) handleLatestRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.Runs.LatestRun(r.Context())
	if err != nil {
		s.Logger.Warn("latest_run_error", zap.Error(err))
		middleware.WriteError(w, http.StatusInternalServerError, "could not read runs")
		return
	}
	if run == nil {
		middleware.WriteError(w, http.StatusNotFound, "no runs yet")
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (s *Server) handleTriggerRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.Trigger.RunOnce(r.Context())
	switch {
	case errors.Is(err, scheduler.ErrTooFew):
		middleware.WriteError(w, http.StatusUnprocessableEntity, err.Error())
		return
	case err != nil:
		s.Logger.Warn("triggered_run_error", zap.Error(err))
		middleware.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.Logger.Info("triggered_run",
		zap.String("run_id", string(run.ID)),
		zap.Bool("success", run.Summary.Success),
	)
	writeJSON(w, http.StatusOK, run)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
