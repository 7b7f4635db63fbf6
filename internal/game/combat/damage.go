package combat

import "time"

// DamageCalculator applies level scaling and the armed combo bonus.
type DamageCalculator struct {
	// Per-level step: scaled = base * (1 + (level-1) * LevelStep).
	LevelStep float64
}

// Scale applies per-level scaling to a base value. Level 1 returns base unchanged.
func (c DamageCalculator) Scale(base float64, level int) float64 {
	if level < 1 {
		level = 1
	}
	return base * (1 + float64(level-1)*c.LevelStep)
}

// ComputeDamage returns scaled damage, multiplied by the armed bonus if it is
// still active at now. The armed bonus is consumed either way: an expired
// bonus is discarded without effect, an active one applies exactly once.
// Returns the final damage and the multiplier that was applied.
func (c DamageCalculator) ComputeDamage(st *PlayerCombatState, base float64, level int, now time.Time) (float64, float64) {
	dmg := c.Scale(base, level)

	armed := st.armed
	st.armed = nil

	if armed.Active(now) {
		return dmg * armed.Multiplier, armed.Multiplier
	}
	return dmg, 1
}

// ComputeHealing scales healing; combo bonuses apply to damage only.
func (c DamageCalculator) ComputeHealing(base float64, level int) float64 {
	return c.Scale(base, level)
}
