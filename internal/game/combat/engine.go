package combat

import (
	"fmt"
	"log/slog"
	"maps"
	"time"

	"github.com/udisondev/arcana/internal/config"
	"github.com/udisondev/arcana/internal/data"
)

// Engine resolves casts into effect intents.
//
// Not safe for concurrent use: a host that receives input on several
// goroutines must serialize calls (see session.Manager). Time only moves
// through the now argument, every expiry is evaluated lazily against it.
type Engine struct {
	catalog *data.Catalog
	cfg     config.Combat
	logger  *slog.Logger

	players map[int64]*PlayerCombatState

	cooldowns CooldownTracker
	mana      ResourcePool
	chain     ComboChainTracker
	bonus     ComboBonusEngine
	combos    CombinationResolver
	damage    DamageCalculator
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger replaces slog.Default() as the engine logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine creates an Engine over catalog. Panics on a nil catalog or an
// invalid tuning: both are wiring errors, not gameplay conditions.
func NewEngine(catalog *data.Catalog, cfg config.Combat, opts ...Option) *Engine {
	if catalog == nil {
		panic("combat: nil catalog")
	}
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("combat: invalid config: %v", err))
	}

	chain := ComboChainTracker{Window: cfg.ComboWindow, MaxLength: cfg.MaxChainLength}
	e := &Engine{
		catalog:   catalog,
		cfg:       cfg,
		logger:    slog.Default(),
		players:   make(map[int64]*PlayerCombatState),
		cooldowns: CooldownTracker{Global: cfg.GlobalCooldown},
		chain:     chain,
		bonus: ComboBonusEngine{
			Chain:   chain,
			Variety: BonusRule{Multiplier: cfg.VarietyMultiplier, Duration: cfg.VarietyDuration},
			Repeat:  BonusRule{Multiplier: cfg.ChainMultiplier, Duration: cfg.ChainDuration},
		},
		combos: CombinationResolver{Catalog: catalog, Chain: chain},
		damage: DamageCalculator{LevelStep: cfg.LevelScaling},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Catalog returns the skill catalog the engine resolves against.
func (e *Engine) Catalog() *data.Catalog {
	return e.catalog
}

// Join creates the combat state of a player from a Player Store snapshot.
// Re-joining replaces the previous state. Skills unknown to the catalog are dropped.
func (e *Engine) Join(playerID int64, p Profile) {
	skills := make(map[data.SkillID]int, len(p.Skills))
	for id, level := range p.Skills {
		if _, ok := e.catalog.Skill(id); !ok {
			e.logger.Warn("dropping unknown skill from profile", "player", playerID, "skill", id)
			continue
		}
		skills[id] = level
	}
	p.Skills = skills

	e.players[playerID] = newPlayerState(playerID, p, e.cfg.LogCapacity)
	e.logger.Debug("player joined combat", "player", playerID, "mana", p.Mana, "maxMana", p.MaxMana, "skills", len(skills))
}

// Leave discards the combat state of a player. Unknown ids are ignored.
func (e *Engine) Leave(playerID int64) {
	delete(e.players, playerID)
}

// Has reports whether playerID has joined.
func (e *Engine) Has(playerID int64) bool {
	_, ok := e.players[playerID]
	return ok
}

// Players returns the ids of all joined players.
func (e *Engine) Players() []int64 {
	ids := make([]int64, 0, len(e.players))
	for id := range e.players {
		ids = append(ids, id)
	}
	return ids
}

// Cast resolves one skill activation.
//
// Order: lookup → learned → cooldown → mana (commit point) → cooldown record →
// damage/healing → intents → combo chain append → bonus evaluation.
// Nothing before the mana deduction mutates state, so a rejected cast leaves
// the player exactly as it was (apart from the combat log line).
func (e *Engine) Cast(req CastRequest, now time.Time) CastResult {
	if req.SkillID == CombinationTrigger {
		return e.CastCombination(req, now)
	}

	st := e.mustState(req.PlayerID)

	def, ok := e.catalog.Skill(req.SkillID)
	if !ok {
		return e.reject(st, req.SkillID, string(req.SkillID), ReasonUnknownSkill, 0, now)
	}

	level := min(st.Level(def.ID), def.MaxLevel)
	if level <= 0 {
		return e.reject(st, def.ID, def.Name, ReasonNotLearned, 0, now)
	}
	if def.IsPassive() {
		return e.reject(st, def.ID, def.Name, ReasonPassiveSkill, 0, now)
	}

	stats, ok := def.Stats(level)
	if !ok {
		panic(fmt.Sprintf("combat: skill %q has no stats for level %d", def.ID, level))
	}

	if ok, remaining := e.cooldowns.CanCast(st, def.ID, stats.Cooldown, now); !ok {
		return e.reject(st, def.ID, def.Name, ReasonOnCooldown, remaining, now)
	}

	if !e.mana.TryConsume(st, stats.ManaCost) {
		return e.reject(st, def.ID, def.Name, ReasonInsufficientMana, 0, now)
	}
	e.cooldowns.RecordCast(st, def.ID, now)

	magnitude, multiplier, category := e.resolveMagnitude(st, def, stats, level, now)
	intents := buildSkillIntents(def, stats, magnitude, req)

	e.chain.Append(st, def.ID, def.Element, now)
	armed := e.bonus.Evaluate(st, now)

	// One log line per attempt: an armed bonus is reported on the same line.
	entry := LogEntry{
		Message:  skillMessage(def, level, magnitude, multiplier, category),
		Category: category,
		At:       now,
	}
	if armed != nil {
		entry.Message += ". " + bonusMessage(armed)
		entry.Category = LogCombo
	}
	st.log.Append(entry)

	e.logger.Debug("skill cast",
		"player", st.ID,
		"skill", def.ID,
		"level", level,
		"magnitude", magnitude,
		"bonus", multiplier,
		"mana", st.currentMana,
		"chain", len(st.chain))

	return CastResult{
		Status:          StatusSuccess,
		SkillID:         def.ID,
		Level:           level,
		Intents:         intents,
		Log:             entry,
		BonusMultiplier: multiplier,
		Armed:           armed,
	}
}

// CastCombination resolves the explicit combination trigger.
//
// The resolver is consulted without mutation first; the chain is consumed and
// mana deducted only after the mana check passes, so an unaffordable
// combination keeps the chain intact. Combination damage is never multiplied
// by, and never consumes, the armed combo bonus. Cooldowns are not involved.
func (e *Engine) CastCombination(req CastRequest, now time.Time) CastResult {
	st := e.mustState(req.PlayerID)

	cd, reason := e.combos.Match(st)
	if cd == nil {
		return e.reject(st, CombinationTrigger, "Combination", reason, 0, now)
	}

	cost := cd.ManaCost
	if cost == 0 {
		cost = e.cfg.CombinationManaCost
	}
	if !e.mana.TryConsume(st, cost) {
		return e.reject(st, data.SkillID(cd.ID), cd.Name, ReasonInsufficientMana, 0, now)
	}
	e.chain.Clear(st)

	intents := buildCombinationIntents(cd, cd.Damage, req)

	entry := LogEntry{
		Message:  fmt.Sprintf("%s unleashed for %.0f damage", cd.Name, cd.Damage),
		Category: LogCombination,
		At:       now,
	}
	st.log.Append(entry)

	e.logger.Debug("combination cast",
		"player", st.ID,
		"combination", cd.ID,
		"elements", cd.Elements.String(),
		"damage", cd.Damage,
		"mana", st.currentMana)

	return CastResult{
		Status:          StatusSuccess,
		SkillID:         data.SkillID(cd.ID),
		Level:           1,
		Intents:         intents,
		Log:             entry,
		BonusMultiplier: 1,
		Combination:     cd,
	}
}

// resolveMagnitude computes the intent magnitude of a skill cast.
// Only damage-dealing skills consume the armed bonus.
func (e *Engine) resolveMagnitude(st *PlayerCombatState, def *data.SkillDefinition, stats data.LevelStats, level int, now time.Time) (float64, float64, LogCategory) {
	switch {
	case stats.Damage > 0:
		dmg, mult := e.damage.ComputeDamage(st, stats.Damage, level, now)
		return dmg, mult, LogDamage
	case def.Type == data.SkillTypeHeal:
		return e.damage.ComputeHealing(stats.Healing, level), 1, LogHeal
	default:
		// Potency tables already carry the per-level progression.
		return stats.Potency, 1, LogBuff
	}
}

func (e *Engine) reject(st *PlayerCombatState, skill data.SkillID, name string, reason RejectReason, remaining time.Duration, now time.Time) CastResult {
	entry := LogEntry{
		Message:  rejectMessage(name, reason, remaining),
		Category: LogRejected,
		At:       now,
	}
	st.log.Append(entry)

	e.logger.Debug("cast rejected",
		"player", st.ID,
		"skill", skill,
		"reason", reason,
		"remaining", remaining)

	return CastResult{
		Status:          StatusRejected,
		Reason:          reason,
		Remaining:       remaining,
		SkillID:         skill,
		Log:             entry,
		BonusMultiplier: 1,
	}
}

// mustState returns the state of a joined player.
// Unknown player ids are a programming error upstream and panic.
func (e *Engine) mustState(playerID int64) *PlayerCombatState {
	st, ok := e.players[playerID]
	if !ok {
		panic(fmt.Sprintf("combat: unknown player %d", playerID))
	}
	return st
}

// ManaState returns the player's mana for the Player Store to persist.
func (e *Engine) ManaState(playerID int64) ManaState {
	return e.mustState(playerID).Mana()
}

// RestoreMana adds mana clamped at max and returns the new state.
func (e *Engine) RestoreMana(playerID int64, amount int) ManaState {
	st := e.mustState(playerID)
	e.mana.Restore(st, amount)
	return st.Mana()
}

// SetSkillLevel changes a learned level (level-up or unlearn with 0).
// Returns false if the skill is unknown to the catalog.
func (e *Engine) SetSkillLevel(playerID int64, skill data.SkillID, level int) bool {
	st := e.mustState(playerID)
	def, ok := e.catalog.Skill(skill)
	if !ok {
		return false
	}
	if level <= 0 {
		delete(st.learned, skill)
		return true
	}
	st.learned[skill] = min(level, def.MaxLevel)
	return true
}

// LearnedSkills returns a copy of the player's learned levels.
func (e *Engine) LearnedSkills(playerID int64) map[data.SkillID]int {
	return maps.Clone(e.mustState(playerID).learned)
}

// ArmedBonus returns the pending bonus if it is still active at now.
func (e *Engine) ArmedBonus(playerID int64, now time.Time) (ArmedBonus, bool) {
	st := e.mustState(playerID)
	if !st.armed.Active(now) {
		return ArmedBonus{}, false
	}
	return *st.armed, true
}

// Chain returns a copy of the player's combo chain, oldest first.
func (e *Engine) Chain(playerID int64) []ComboEntry {
	st := e.mustState(playerID)
	return e.chain.PeekLast(st, len(st.chain))
}

// CombatLog returns the player's recent combat log lines, oldest first.
func (e *Engine) CombatLog(playerID int64) []LogEntry {
	return e.mustState(playerID).log.Entries()
}

// Cooldowns returns the outstanding per-skill cooldowns of learned skills.
// Skills that are ready are omitted.
func (e *Engine) Cooldowns(playerID int64, now time.Time) map[data.SkillID]time.Duration {
	st := e.mustState(playerID)
	out := make(map[data.SkillID]time.Duration)
	for id, level := range st.learned {
		def, ok := e.catalog.Skill(id)
		if !ok {
			continue
		}
		stats, ok := def.Stats(level)
		if !ok {
			continue
		}
		if r := e.cooldowns.Remaining(st, id, stats.Cooldown, now); r > 0 {
			out[id] = r
		}
	}
	return out
}
