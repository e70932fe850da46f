package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/barkingside-hub/autoconfirm/pkg/core/services"
	"github.com/barkingside-hub/autoconfirm/pkg/db"
)

// Server is the HTTP surface of the auto-confirm service: the evaluate
// endpoints called by the signup-processing collaborator, and the
// administrative rule CRUD.
type Server struct {
	ruleStore db.RuleStore
	store     services.EvaluateSignupStore
	logger    *zap.Logger
	metrics   *Metrics
	registry  *prometheus.Registry
	router    chi.Router

	// now supplies the evaluation time; overridable in tests
	now func() time.Time
}

// NewServer wires the router. store may be nil when the server runs in
// rules-file mode, in which case the by-id evaluate endpoint is unavailable.
func NewServer(ruleStore db.RuleStore, store services.EvaluateSignupStore, logger *zap.Logger) *Server {
	registry := prometheus.NewRegistry()

	s := &Server{
		ruleStore: ruleStore,
		store:     store,
		logger:    logger,
		metrics:   NewMetrics(registry),
		registry:  registry,
		now:       func() time.Time { return time.Now().UTC() },
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	r.Route("/v1", func(r chi.Router) {
		r.Post("/evaluate", s.handleEvaluate)
		r.Post("/signups/evaluate", s.handleEvaluateSignup)

		r.Route("/rules", func(r chi.Router) {
			r.Get("/", s.handleListRules)
			r.Post("/", s.handleCreateRule)
			r.Get("/{ruleID}", s.handleGetRule)
			r.Put("/{ruleID}", s.handleUpdateRule)
			r.Delete("/{ruleID}", s.handleDeleteRule)
		})
	})

	s.router = r
	return s
}

// Router returns the configured handler for mounting on an http.Server
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
