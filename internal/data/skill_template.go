package data

import (
	"fmt"
	"time"
)

// SkillID identifies a skill in the catalog ("fireball", "ice_wall", ...).
type SkillID string

// SkillType defines how a skill resolves into effect intents.
type SkillType string

const (
	SkillTypeProjectile     SkillType = "projectile"
	SkillTypeArea           SkillType = "area"
	SkillTypeHeal           SkillType = "heal"
	SkillTypeBuff           SkillType = "buff"
	SkillTypeBarrier        SkillType = "barrier"
	SkillTypeGround         SkillType = "ground"
	SkillTypeWave           SkillType = "wave"
	SkillTypeTransformation SkillType = "transformation"
	SkillTypePassive        SkillType = "passive"
)

// ParseSkillType converts a catalog string into a SkillType.
func ParseSkillType(s string) (SkillType, error) {
	t := SkillType(s)
	switch t {
	case SkillTypeProjectile, SkillTypeArea, SkillTypeHeal, SkillTypeBuff, SkillTypeBarrier,
		SkillTypeGround, SkillTypeWave, SkillTypeTransformation, SkillTypePassive:
		return t, nil
	default:
		return "", fmt.Errorf("unknown skill type %q", s)
	}
}

// LevelStats holds the numbers of a skill at one level.
// Damage and Healing are unscaled base values; level scaling is applied by
// the damage calculator at cast time. Potency is authored per level and used as is.
type LevelStats struct {
	Damage   float64
	Healing  float64
	Potency  float64 // barrier absorb / buff strength
	ManaCost int
	Cooldown time.Duration
	Range    float64
	Radius   float64
	Duration time.Duration
	Tags     []string
}

// SkillDefinition is an immutable skill template, built once at startup.
// Shared across all players, do not modify after loading.
type SkillDefinition struct {
	ID       SkillID
	Name     string
	Element  Element
	Type     SkillType
	MaxLevel int
	Levels   []LevelStats // index = level-1
}

// Stats returns the stats for level. Levels above MaxLevel resolve to MaxLevel.
// Returns false for level <= 0.
func (s *SkillDefinition) Stats(level int) (LevelStats, bool) {
	if level <= 0 || len(s.Levels) == 0 {
		return LevelStats{}, false
	}
	if level > len(s.Levels) {
		level = len(s.Levels)
	}
	return s.Levels[level-1], true
}

// IsPassive returns true if the skill cannot be actively cast.
func (s *SkillDefinition) IsPassive() bool {
	return s.Type == SkillTypePassive
}

// DealsDamage returns true if casting the skill at level produces damage,
// which makes it eligible to consume an armed combo bonus.
func (s *SkillDefinition) DealsDamage(level int) bool {
	st, ok := s.Stats(level)
	return ok && st.Damage > 0
}

// CombinationDefinition is a two-element ability unlocked by the combo chain.
type CombinationDefinition struct {
	ID       string
	Name     string
	Elements ElementPair
	Damage   float64
	Radius   float64
	ManaCost int
	Tags     []string
}
