package combat

import (
	"time"

	"github.com/udisondev/arcana/internal/data"
)

// ComboChainTracker keeps the time-windowed log of a player's recent casts.
type ComboChainTracker struct {
	Window    time.Duration
	MaxLength int
}

// Append records a cast. A gap longer than Window since the newest entry
// discards the whole chain first (stale chains are dropped wholesale, not trimmed).
func (t ComboChainTracker) Append(st *PlayerCombatState, skill data.SkillID, element data.Element, now time.Time) {
	if n := len(st.chain); n > 0 && now.Sub(st.chain[n-1].At) > t.Window {
		t.Clear(st)
	}

	st.chain = append(st.chain, ComboEntry{SkillID: skill, Element: element, At: now})

	// Only the tail is ever inspected, keep the slice bounded.
	if t.MaxLength > 0 && len(st.chain) > t.MaxLength {
		st.chain = append(st.chain[:0], st.chain[len(st.chain)-t.MaxLength:]...)
	}
}

// PeekLast returns a copy of the most recent n entries, oldest first.
func (t ComboChainTracker) PeekLast(st *PlayerCombatState, n int) []ComboEntry {
	if n <= 0 {
		return nil
	}
	start := max(len(st.chain)-n, 0)
	out := make([]ComboEntry, len(st.chain)-start)
	copy(out, st.chain[start:])
	return out
}

// Len returns the number of entries in the chain.
func (t ComboChainTracker) Len(st *PlayerCombatState) int {
	return len(st.chain)
}

// Clear empties the chain.
func (t ComboChainTracker) Clear(st *PlayerCombatState) {
	st.chain = st.chain[:0]
}
