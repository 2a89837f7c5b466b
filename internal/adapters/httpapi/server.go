// Package httpapi exposes the messaging and participant services as a JSON
// API. Handlers only translate between HTTP and the primary ports.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/example/parley/internal/logging"
	"github.com/example/parley/internal/ports/primary"
)

// Options configures a Server.
type Options struct {
	// RateLimitRPS and RateLimitBurst bound requests per client address.
	// Zero values fall back to 5 rps and a burst of 10.
	RateLimitRPS   float64
	RateLimitBurst int

	Logger *slog.Logger

	// Registry receives the server's metrics. A fresh registry is created
	// when nil.
	Registry *prometheus.Registry
}

// Server routes HTTP requests to the services.
type Server struct {
	messages     primary.MessageService
	participants primary.ParticipantService
	logger       *slog.Logger
	metrics      *metrics
	limiter      *limiterPool
	router       *mux.Router
}

// NewServer creates a Server with its routes registered.
func NewServer(messages primary.MessageService, participants primary.ParticipantService, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}

	s := &Server{
		messages:     messages,
		participants: participants,
		logger:       opts.Logger,
		metrics:      newMetrics(opts.Registry),
		limiter:      newLimiterPool(opts.RateLimitRPS, opts.RateLimitBurst),
		router:       mux.NewRouter(),
	}
	s.routes(opts.Registry)
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes(registry *prometheus.Registry) {
	s.router.HandleFunc("/healthz", healthzHandler).Methods(http.MethodGet)
	s.router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	v1 := s.router.PathPrefix("/v1").Subrouter()
	v1.Use(s.withRequestID, s.withMetrics, s.withRateLimit)

	// /v1/participants
	v1.HandleFunc("/participants", s.registerParticipant).Methods(http.MethodPost)
	v1.HandleFunc("/participants", s.listParticipants).Methods(http.MethodGet)
	v1.HandleFunc("/participants/{role}/{id:[0-9]+}", s.getParticipant).Methods(http.MethodGet)
	v1.HandleFunc("/participants/{role}/{id:[0-9]+}", s.removeParticipant).Methods(http.MethodDelete)

	// /v1/participants/{role}/{id}/... acts on behalf of that participant
	p := v1.PathPrefix("/participants/{role}/{id:[0-9]+}").Subrouter()
	p.HandleFunc("/messages", s.sendMessage).Methods(http.MethodPost)
	p.HandleFunc("/messages", s.listMessages).Methods(http.MethodGet)
	p.HandleFunc("/messages/{messageID:[0-9]+}", s.getMessage).Methods(http.MethodGet)
	p.HandleFunc("/messages/{messageID:[0-9]+}/read", s.markRead).Methods(http.MethodPost)
	p.HandleFunc("/threads", s.listThreads).Methods(http.MethodGet)
	p.HandleFunc("/conversations/{otherRole}/{otherID:[0-9]+}", s.getConversation).Methods(http.MethodGet)
	p.HandleFunc("/unread-count", s.unreadCount).Methods(http.MethodGet)
}

func healthzHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
