package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"telegram-chat-logger/internal/infra/metrics"
	"telegram-chat-logger/internal/usecase"
)

// Server exposes the read-only dashboard API. It never writes: all mutation
// goes through the ingestion path.
type Server struct {
	userUC    usecase.UserUseCase
	messageUC usecase.MessageUseCase
	statsUC   usecase.StatsUseCase
	log       *zerolog.Logger
}

func NewServer(userUC usecase.UserUseCase, messageUC usecase.MessageUseCase, statsUC usecase.StatsUseCase, logger *zerolog.Logger) *Server {
	return &Server{
		userUC:    userUC,
		messageUC: messageUC,
		statsUC:   statsUC,
		log:       logger,
	}
}

// Router builds the chi router with all read routes attached.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Route("/api", func(r chi.Router) {
		r.Get("/users", s.handleListUsers)
		r.Get("/users/telegram/{telegramID}", s.handleGetUser)
		r.Get("/messages", s.handleListMessages)
		r.Get("/stats", s.handleStats)
	})
	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	return r
}

// observe records per-route request counts and latency.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		metrics.ObserveHTTP(route, ww.Status(), time.Since(start))
	})
}
