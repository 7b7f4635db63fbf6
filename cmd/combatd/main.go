package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/arcana/internal/api"
	"github.com/udisondev/arcana/internal/config"
	"github.com/udisondev/arcana/internal/data"
	"github.com/udisondev/arcana/internal/db"
	"github.com/udisondev/arcana/internal/game/combat"
	"github.com/udisondev/arcana/internal/session"
)

const ConfigPath = "config/combatd.yaml"

// ipLimiterIdle is how long an unseen client IP keeps its limiter.
const ipLimiterIdle = 5 * time.Minute

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := ConfigPath
	if p := os.Getenv("ARCANA_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadServer(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	slog.Info("arcana combat host starting",
		"addr", cfg.Addr(),
		"log_level", cfg.LogLevel,
		"database", cfg.Database.Enabled)

	catalog := data.MustLoadCatalog(cfg.CatalogPath)
	slog.Info("skill catalog ready",
		"skills", catalog.SkillCount(),
		"combinations", catalog.CombinationCount())

	var store session.ProfileStore
	if cfg.Database.Enabled {
		if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		database, err := db.New(ctx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()
		slog.Info("database connected")
		store = database.Players()
	} else {
		store = session.NewMemoryStore(starterProfile(catalog, cfg.DefaultMaxMana))
		slog.Info("using in-memory player store")
	}

	engine := combat.NewEngine(catalog, cfg.Combat, combat.WithLogger(logger))
	manager := session.NewManager(engine, store,
		session.WithRateLimit(cfg.RateLimit.CastsPerSecond, cfg.RateLimit.Burst),
		session.WithLogger(logger),
	)

	hub := api.NewHub(cfg.CORSOrigins, logger)
	manager.Subscribe(hub.PublishCast)

	// The IP limiter is looser than the per-player one: it also covers reads.
	// A non-positive rate disables both.
	var limiter *api.IPRateLimiter
	if cfg.RateLimit.CastsPerSecond > 0 {
		limiter = api.NewIPRateLimiter(cfg.RateLimit.CastsPerSecond*4, cfg.RateLimit.Burst*4, ipLimiterIdle)
	}

	router := api.NewRouter(api.RouterConfig{
		Sessions:    manager,
		Hub:         hub,
		RateLimiter: limiter,
		CORSOrigins: cfg.CORSOrigins,
	})
	server := api.NewServer(cfg.Addr(), router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return hub.Run(gctx) })
	g.Go(func() error { return manager.Run(gctx, cfg.PersistInterval) })
	if limiter != nil {
		g.Go(func() error { return limiter.Run(gctx) })
	}
	g.Go(func() error { return server.Run(gctx) })

	if err := g.Wait(); err != nil {
		return err
	}
	slog.Info("arcana combat host stopped")
	return nil
}

// starterProfile is the profile given to players the in-memory store has not seen:
// full mana and every active skill at level 1.
func starterProfile(catalog *data.Catalog, maxMana int) *combat.Profile {
	p := &combat.Profile{
		Mana:    maxMana,
		MaxMana: maxMana,
		Skills:  make(map[data.SkillID]int, catalog.SkillCount()),
	}
	for _, s := range catalog.Skills() {
		p.Skills[s.ID] = 1
	}
	return p
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
