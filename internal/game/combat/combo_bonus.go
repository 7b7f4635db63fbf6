package combat

import (
	"time"

	"github.com/udisondev/arcana/internal/data"
)

// comboLength is how many recent casts form a bonus pattern.
const comboLength = 3

// BonusRule is the multiplier and lifetime armed by one combo pattern.
type BonusRule struct {
	Multiplier float64
	Duration   time.Duration
}

// ComboBonusEngine arms a damage multiplier from the last three chain entries:
//   - three distinct elements  → variety bonus
//   - three identical elements → chain bonus
//   - anything else (partial repeats) → nothing
type ComboBonusEngine struct {
	Chain   ComboChainTracker
	Variety BonusRule
	Repeat  BonusRule
}

// Evaluate inspects the chain tail and arms a bonus if a pattern matches.
// Arming overwrites any unconsumed bonus; bonuses never stack.
// Returns the newly armed bonus or nil.
func (e ComboBonusEngine) Evaluate(st *PlayerCombatState, now time.Time) *ArmedBonus {
	last := e.Chain.PeekLast(st, comboLength)
	if len(last) < comboLength {
		return nil
	}

	var b *ArmedBonus
	switch {
	case distinctElements(last):
		b = &ArmedBonus{Kind: BonusVariety, Multiplier: e.Variety.Multiplier, ExpiresAt: now.Add(e.Variety.Duration)}
	case sameElement(last):
		b = &ArmedBonus{Kind: BonusChain, Multiplier: e.Repeat.Multiplier, ExpiresAt: now.Add(e.Repeat.Duration)}
	default:
		return nil
	}

	st.armed = b
	return b
}

func distinctElements(entries []ComboEntry) bool {
	seen := make(map[data.Element]struct{}, len(entries))
	for _, e := range entries {
		if _, dup := seen[e.Element]; dup {
			return false
		}
		seen[e.Element] = struct{}{}
	}
	return true
}

func sameElement(entries []ComboEntry) bool {
	for _, e := range entries[1:] {
		if e.Element != entries[0].Element {
			return false
		}
	}
	return true
}
