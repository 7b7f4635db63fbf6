// Package api is the HTTP and WebSocket host of the combat engine.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/udisondev/arcana/internal/data"
	"github.com/udisondev/arcana/internal/game/combat"
)

// Sessions is the slice of session.Manager the handlers call.
// Kept small so tests can substitute it.
type Sessions interface {
	Catalog() *data.Catalog
	Join(ctx context.Context, playerID int64) (combat.ManaState, error)
	Leave(ctx context.Context, playerID int64) error
	Cast(req combat.CastRequest) (combat.CastResult, error)
	CastCombination(req combat.CastRequest) (combat.CastResult, error)
	Mana(playerID int64) (combat.ManaState, error)
	RestoreMana(playerID int64, amount int) (combat.ManaState, error)
	CombatLog(playerID int64) ([]combat.LogEntry, error)
	Cooldowns(playerID int64) (map[data.SkillID]time.Duration, error)
	LevelUp(ctx context.Context, playerID int64, skill data.SkillID, level int) error
	Players() []int64
}

// RouterConfig contains all dependencies of the HTTP router.
type RouterConfig struct {
	Sessions Sessions

	// Hub serves /ws when set.
	Hub *Hub

	// RateLimiter is an optional per-IP limiter applied to /api routes.
	RateLimiter *IPRateLimiter

	// CORSOrigins defaults to localhost origins when nil.
	CORSOrigins []string

	// DisableLogging drops the request logger middleware (tests).
	DisableLogging bool
}

// NewRouter constructs the HTTP router. It starts no goroutines.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	if !cfg.DisableLogging {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	origins := cfg.CORSOrigins
	if origins == nil {
		origins = defaultOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	h := &handlers{sessions: cfg.Sessions}

	r.Route("/api", func(r chi.Router) {
		if cfg.RateLimiter != nil {
			r.Use(cfg.RateLimiter.Middleware)
		}
		r.Use(middleware.Timeout(10 * time.Second))

		r.Get("/skills", h.handleGetSkills)
		r.Get("/players", h.handleListPlayers)

		r.Route("/players/{id}", func(r chi.Router) {
			r.Post("/join", h.handleJoin)
			r.Post("/leave", h.handleLeave)
			r.Post("/cast", h.handleCast)
			r.Post("/combination", h.handleCombination)
			r.Post("/restore", h.handleRestore)
			r.Post("/skills/{skill}/level", h.handleLevelUp)
			r.Get("/mana", h.handleGetMana)
			r.Get("/cooldowns", h.handleGetCooldowns)
			r.Get("/log", h.handleGetLog)
		})
	})

	if cfg.Hub != nil {
		r.Get("/ws", cfg.Hub.HandleWebSocket)
	}
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK")) //nolint:errcheck
	})

	return r
}

var defaultOrigins = []string{"http://localhost:*", "http://127.0.0.1:*"}
