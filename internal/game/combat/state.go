package combat

import (
	"maps"
	"time"

	"github.com/udisondev/arcana/internal/data"
)

// ComboEntry is one remembered cast in the combo chain.
type ComboEntry struct {
	SkillID data.SkillID
	Element data.Element
	At      time.Time
}

// BonusKind identifies which combo pattern armed a bonus.
type BonusKind string

const (
	BonusVariety BonusKind = "variety" // three distinct elements
	BonusChain   BonusKind = "chain"   // three identical elements
)

// ArmedBonus is a single-use damage multiplier waiting for the next damage cast.
type ArmedBonus struct {
	Kind       BonusKind
	Multiplier float64
	ExpiresAt  time.Time
}

// Active reports whether the bonus is still usable at now.
func (b *ArmedBonus) Active(now time.Time) bool {
	return b != nil && now.Before(b.ExpiresAt)
}

// PlayerCombatState is everything the engine knows about one player in a session.
// Owned by the Engine, never shared across players, never persisted as a whole.
type PlayerCombatState struct {
	ID int64

	currentMana int
	maxMana     int

	learned      map[data.SkillID]int
	lastCastAt   map[data.SkillID]time.Time
	lastGlobalAt time.Time

	chain []ComboEntry
	armed *ArmedBonus

	log *CombatLog
}

func newPlayerState(id int64, p Profile, logCapacity int) *PlayerCombatState {
	maxMana := max(p.MaxMana, 0)
	st := &PlayerCombatState{
		ID:          id,
		currentMana: min(max(p.Mana, 0), maxMana),
		maxMana:     maxMana,
		learned:     make(map[data.SkillID]int, len(p.Skills)),
		lastCastAt:  make(map[data.SkillID]time.Time),
		log:         NewCombatLog(logCapacity),
	}
	maps.Copy(st.learned, p.Skills)
	return st
}

// Level returns the learned level of skill (0 if not learned).
func (s *PlayerCombatState) Level(skill data.SkillID) int {
	return s.learned[skill]
}

// Mana returns the current mana snapshot.
func (s *PlayerCombatState) Mana() ManaState {
	return ManaState{Current: s.currentMana, Max: s.maxMana}
}
