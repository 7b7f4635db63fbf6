package session

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/udisondev/arcana/internal/data"
	"github.com/udisondev/arcana/internal/game/combat"
	"github.com/udisondev/arcana/internal/metrics"
)

// flushConcurrency bounds parallel Player Store writes during a flush.
const flushConcurrency = 8

// Listener receives every successful cast after the engine lock is released.
type Listener func(playerID int64, res combat.CastResult)

// Manager is the host side of the combat engine. It serializes access to the
// single-threaded Engine, loads and persists profiles through the Player
// Store and limits per-player input rate.
type Manager struct {
	mu     sync.Mutex
	engine *combat.Engine
	store  ProfileStore
	logger *slog.Logger
	clock  func() time.Time

	limit    rate.Limit
	burst    int
	limiters map[int64]*rate.Limiter

	// persist serializes Player Store traffic of one player so a stale
	// snapshot is never written after a newer one. Lock order: persist, then mu.
	persistMu sync.Mutex
	persist   map[int64]*sync.Mutex

	listenersMu sync.RWMutex
	listeners   []Listener
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock replaces time.Now as the source of the engine's now argument.
func WithClock(clock func() time.Time) Option {
	return func(m *Manager) { m.clock = clock }
}

// WithRateLimit sets the per-player cast limit. perSecond <= 0 disables it.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(m *Manager) {
		if perSecond <= 0 {
			m.limit = rate.Inf
			return
		}
		m.limit = rate.Limit(perSecond)
		m.burst = max(burst, 1)
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// NewManager creates a Manager over engine and store.
func NewManager(engine *combat.Engine, store ProfileStore, opts ...Option) *Manager {
	m := &Manager{
		engine:   engine,
		store:    store,
		logger:   slog.Default(),
		clock:    time.Now,
		limit:    rate.Inf,
		burst:    1,
		limiters: make(map[int64]*rate.Limiter),
		persist:  make(map[int64]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Catalog returns the engine's skill catalog.
func (m *Manager) Catalog() *data.Catalog {
	return m.engine.Catalog()
}

// persistLock returns the store lock of playerID.
func (m *Manager) persistLock(playerID int64) *sync.Mutex {
	m.persistMu.Lock()
	defer m.persistMu.Unlock()
	l, ok := m.persist[playerID]
	if !ok {
		l = &sync.Mutex{}
		m.persist[playerID] = l
	}
	return l
}

// Subscribe registers fn to receive successful casts.
func (m *Manager) Subscribe(fn Listener) {
	m.listenersMu.Lock()
	m.listeners = append(m.listeners, fn)
	m.listenersMu.Unlock()
}

// Join loads the player's profile and adds it to the engine.
// Joining an already joined player is a no-op that returns current mana.
func (m *Manager) Join(ctx context.Context, playerID int64) (combat.ManaState, error) {
	m.mu.Lock()
	if m.engine.Has(playerID) {
		mana := m.engine.ManaState(playerID)
		m.mu.Unlock()
		return mana, nil
	}
	m.mu.Unlock()

	// Waits for an in-flight Leave save so the profile read is current.
	pl := m.persistLock(playerID)
	pl.Lock()
	defer pl.Unlock()

	profile, err := m.store.LoadProfile(ctx, playerID)
	if err != nil {
		return combat.ManaState{}, fmt.Errorf("loading profile of player %d: %w", playerID, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// A concurrent Join may have won while the profile was loading.
	if !m.engine.Has(playerID) {
		m.engine.Join(playerID, profile)
		m.limiters[playerID] = rate.NewLimiter(m.limit, m.burst)
		metrics.SetActiveSessions(len(m.limiters))
		m.logger.Info("player joined", "player", playerID, "skills", len(profile.Skills))
	}
	return m.engine.ManaState(playerID), nil
}

// Leave removes the player from the engine and persists its mana.
func (m *Manager) Leave(ctx context.Context, playerID int64) error {
	pl := m.persistLock(playerID)
	pl.Lock()
	defer pl.Unlock()

	m.mu.Lock()
	if !m.engine.Has(playerID) {
		m.mu.Unlock()
		return ErrNotInSession
	}
	mana := m.engine.ManaState(playerID)
	m.engine.Leave(playerID)
	delete(m.limiters, playerID)
	metrics.SetActiveSessions(len(m.limiters))
	m.mu.Unlock()

	m.logger.Info("player left", "player", playerID, "mana", mana.Current)

	if err := m.store.SaveMana(ctx, playerID, mana); err != nil {
		metrics.RecordPersistError("mana")
		return fmt.Errorf("saving mana of player %d: %w", playerID, err)
	}
	return nil
}

// Cast resolves one skill input. A rejected cast is not an error: it comes
// back as a CastResult with a reason.
func (m *Manager) Cast(req combat.CastRequest) (combat.CastResult, error) {
	return m.resolve(req, m.engine.Cast)
}

// CastCombination resolves the explicit combination trigger.
func (m *Manager) CastCombination(req combat.CastRequest) (combat.CastResult, error) {
	req.SkillID = combat.CombinationTrigger
	return m.resolve(req, m.engine.CastCombination)
}

func (m *Manager) resolve(req combat.CastRequest, cast func(combat.CastRequest, time.Time) combat.CastResult) (combat.CastResult, error) {
	m.mu.Lock()
	if !m.engine.Has(req.PlayerID) {
		m.mu.Unlock()
		return combat.CastResult{}, ErrNotInSession
	}
	now := m.clock()
	if !m.limiters[req.PlayerID].AllowN(now, 1) {
		m.mu.Unlock()
		metrics.RecordRateLimited()
		return combat.CastResult{}, ErrRateLimited
	}
	res := cast(req, now)
	m.mu.Unlock()

	recordResult(res)
	if res.OK() {
		m.notify(req.PlayerID, res)
	}
	return res, nil
}

func (m *Manager) notify(playerID int64, res combat.CastResult) {
	m.listenersMu.RLock()
	defer m.listenersMu.RUnlock()
	for _, fn := range m.listeners {
		fn(playerID, res)
	}
}

func recordResult(res combat.CastResult) {
	metrics.RecordCast(res.Status.String(), string(res.Reason))
	if !res.OK() {
		return
	}
	for _, in := range res.Intents {
		metrics.ObserveEffect(string(in.Kind), in.Magnitude)
	}
	if res.BonusMultiplier != 1 {
		metrics.RecordBonusConsumed()
	}
	if res.Armed != nil {
		metrics.RecordBonusArmed(string(res.Armed.Kind))
	}
	if res.Combination != nil {
		metrics.RecordCombination(res.Combination.ID)
	}
}

// Mana returns the player's current mana.
func (m *Manager) Mana(playerID int64) (combat.ManaState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.engine.Has(playerID) {
		return combat.ManaState{}, ErrNotInSession
	}
	return m.engine.ManaState(playerID), nil
}

// RestoreMana adds mana clamped at the player's max.
func (m *Manager) RestoreMana(playerID int64, amount int) (combat.ManaState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.engine.Has(playerID) {
		return combat.ManaState{}, ErrNotInSession
	}
	return m.engine.RestoreMana(playerID, amount), nil
}

// CombatLog returns the player's recent combat log, oldest first.
func (m *Manager) CombatLog(playerID int64) ([]combat.LogEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.engine.Has(playerID) {
		return nil, ErrNotInSession
	}
	return m.engine.CombatLog(playerID), nil
}

// Cooldowns returns the outstanding per-skill cooldowns of the player.
func (m *Manager) Cooldowns(playerID int64) (map[data.SkillID]time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.engine.Has(playerID) {
		return nil, ErrNotInSession
	}
	return m.engine.Cooldowns(playerID, m.clock()), nil
}

// LevelUp sets a learned skill level in the session and the Player Store.
// Level 0 unlearns the skill.
func (m *Manager) LevelUp(ctx context.Context, playerID int64, skill data.SkillID, level int) error {
	m.mu.Lock()
	if !m.engine.Has(playerID) {
		m.mu.Unlock()
		return ErrNotInSession
	}
	if !m.engine.SetSkillLevel(playerID, skill, level) {
		m.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownSkill, skill)
	}
	level = m.engine.LearnedSkills(playerID)[skill]
	m.mu.Unlock()

	pl := m.persistLock(playerID)
	pl.Lock()
	defer pl.Unlock()

	if err := m.store.SaveSkillLevel(ctx, playerID, skill, level); err != nil {
		metrics.RecordPersistError("skill")
		return fmt.Errorf("saving skill %s of player %d: %w", skill, playerID, err)
	}
	m.logger.Info("skill level changed", "player", playerID, "skill", skill, "level", level)
	return nil
}

// Players returns the joined player ids in ascending order.
func (m *Manager) Players() []int64 {
	m.mu.Lock()
	ids := m.engine.Players()
	m.mu.Unlock()
	slices.Sort(ids)
	return ids
}

// Flush persists the mana of every joined player. Each player's mana is
// read and saved under its store lock, so a flush racing Leave never
// overwrites the value Leave saved.
func (m *Manager) Flush(ctx context.Context) error {
	m.mu.Lock()
	ids := m.engine.Players()
	m.mu.Unlock()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(flushConcurrency)
	for _, id := range ids {
		g.Go(func() error {
			return m.flushPlayer(ctx, id)
		})
	}
	return g.Wait()
}

func (m *Manager) flushPlayer(ctx context.Context, playerID int64) error {
	pl := m.persistLock(playerID)
	pl.Lock()
	defer pl.Unlock()

	m.mu.Lock()
	if !m.engine.Has(playerID) {
		// Left since the flush started; Leave already saved.
		m.mu.Unlock()
		return nil
	}
	mana := m.engine.ManaState(playerID)
	m.mu.Unlock()

	if err := m.store.SaveMana(ctx, playerID, mana); err != nil {
		metrics.RecordPersistError("mana")
		return fmt.Errorf("flushing mana of player %d: %w", playerID, err)
	}
	return nil
}

// Run flushes mana every interval until ctx is cancelled, then flushes once more.
func (m *Manager) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			final, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
			defer cancel()
			if err := m.Flush(final); err != nil {
				m.logger.Warn("final mana flush failed", "error", err)
			}
			return nil
		case <-ticker.C:
			if err := m.Flush(ctx); err != nil {
				m.logger.Warn("mana flush failed", "error", err)
			}
		}
	}
}
