package combat

import (
	"time"

	"github.com/udisondev/arcana/internal/data"
)

// CooldownTracker answers whether a skill may be cast now.
// Expiry is evaluated lazily against the supplied clock; there are no timers.
type CooldownTracker struct {
	Global time.Duration
}

// CanCast reports whether both the per-skill and the global cooldown have
// elapsed. On rejection remaining is the longer of the two outstanding waits.
func (t CooldownTracker) CanCast(st *PlayerCombatState, skill data.SkillID, cooldown time.Duration, now time.Time) (bool, time.Duration) {
	var remaining time.Duration

	if last, ok := st.lastCastAt[skill]; ok {
		if wait := cooldown - now.Sub(last); wait > 0 {
			remaining = wait
		}
	}
	if !st.lastGlobalAt.IsZero() {
		if wait := t.Global - now.Sub(st.lastGlobalAt); wait > remaining {
			remaining = wait
		}
	}

	return remaining <= 0, remaining
}

// RecordCast starts both the skill cooldown and the global cooldown.
func (t CooldownTracker) RecordCast(st *PlayerCombatState, skill data.SkillID, now time.Time) {
	st.lastCastAt[skill] = now
	st.lastGlobalAt = now
}

// Remaining returns the outstanding per-skill cooldown, ignoring the global one.
func (t CooldownTracker) Remaining(st *PlayerCombatState, skill data.SkillID, cooldown time.Duration, now time.Time) time.Duration {
	last, ok := st.lastCastAt[skill]
	if !ok {
		return 0
	}
	return max(cooldown-now.Sub(last), 0)
}
