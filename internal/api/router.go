package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"sandlot/internal/sim"
	"sandlot/internal/spray"
)

// SessionStore is the manager surface the handlers need. Kept small so
// router tests can substitute a stub.
type SessionStore interface {
	Create(mode string, seed uint32) (*sim.Session, error)
	Get(id string) (*sim.Session, bool)
	Remove(id string) error
	Count() int
	IDs() []string
}

// RouterConfig wires the HTTP surface's collaborators.
type RouterConfig struct {
	Store  SessionStore
	Hub    *WebSocketHub
	Events *sim.EventLog

	// RateLimiter may be nil to disable limiting (tests).
	RateLimiter *IPRateLimiter
}

// NewRouter builds the chi router. Pure factory: no listeners are started
// and no goroutines are spawned here.
func NewRouter(cfg RouterConfig) http.Handler {
	h := &handlers{
		store:  cfg.Store,
		hub:    cfg.Hub,
		events: cfg.Events,
		spray:  spray.NewRenderer(),
	}

	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Middleware)
	}

	r.Get("/health", h.health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/session", h.createSession)
		r.Get("/sessions", h.listSessions)
		r.Get("/scorecard", h.scorecard)
		r.Get("/stats", h.stats)

		r.Route("/session/{id}", func(r chi.Router) {
			r.Get("/state", h.sessionState)
			r.Post("/pitch", h.startPitch)
			r.Post("/swing", h.triggerSwing)
			r.Get("/spraychart.png", h.sprayChart)
			r.Delete("/", h.deleteSession)
		})
	})

	if cfg.Hub != nil {
		r.Get("/ws", h.serveWS)
	}

	return r
}
