package combat

import (
	"time"

	"github.com/udisondev/arcana/internal/data"
)

// CombinationTrigger is the pseudo skill id of the explicit combination input.
const CombinationTrigger data.SkillID = "combination-trigger"

// Vec3 is a world-space position or direction supplied by the host.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// RejectReason is the machine-readable reason of a rejected cast.
type RejectReason string

const (
	ReasonNone                RejectReason = ""
	ReasonUnknownSkill        RejectReason = "unknown-skill"
	ReasonNotLearned          RejectReason = "not-learned"
	ReasonPassiveSkill        RejectReason = "passive-skill"
	ReasonOnCooldown          RejectReason = "on-cooldown"
	ReasonInsufficientMana    RejectReason = "insufficient-mana"
	ReasonInsufficientHistory RejectReason = "insufficient-history"
	ReasonUnknownCombination  RejectReason = "unknown-combination"
)

// CastStatus tags a CastResult.
type CastStatus int8

const (
	StatusSuccess CastStatus = iota
	StatusRejected
)

func (s CastStatus) String() string {
	if s == StatusSuccess {
		return "success"
	}
	return "rejected"
}

// CastRequest is one input event from the host.
// Origin and Direction are already resolved by the world layer.
type CastRequest struct {
	PlayerID  int64
	SkillID   data.SkillID
	Origin    Vec3
	Direction Vec3
}

// CastResult is the outcome of a single cast attempt.
// Rejected results never carry intents and never mutate player state.
type CastResult struct {
	Status    CastStatus
	Reason    RejectReason
	Remaining time.Duration // on-cooldown only

	SkillID data.SkillID
	Level   int
	Intents []EffectIntent
	Log     LogEntry

	// Multiplier of the armed bonus consumed by this cast (1 if none).
	BonusMultiplier float64
	// Bonus armed by this cast's combo evaluation, if any.
	Armed *ArmedBonus
	// Set for successful combination casts.
	Combination *data.CombinationDefinition
}

// OK returns true for successful casts.
func (r CastResult) OK() bool {
	return r.Status == StatusSuccess
}

// EffectKind is the closed set of effects the render/world layer realizes.
type EffectKind string

const (
	EffectProjectile EffectKind = "projectile"
	EffectArea       EffectKind = "area"
	EffectHeal       EffectKind = "heal"
	EffectBuff       EffectKind = "buff"
	EffectBarrier    EffectKind = "barrier"
	EffectGround     EffectKind = "ground"
	EffectWave       EffectKind = "wave"
)

// EffectIntent describes what should happen, never how it is drawn.
// Duration is the lifetime the world layer should keep the effect alive;
// zero means instant.
type EffectIntent struct {
	Kind          EffectKind
	SkillID       data.SkillID
	Element       data.Element
	SecondElement data.Element // other half of a combination pair; empty for skills
	Origin        Vec3
	Direction     Vec3
	Magnitude     float64
	Range         float64
	Radius        float64
	Tags          []string
	Duration      time.Duration
}

// ManaState is the snapshot the Player Store persists.
type ManaState struct {
	Current int `json:"current"`
	Max     int `json:"max"`
}

// Profile is the Player Store snapshot a session starts from.
type Profile struct {
	Mana    int
	MaxMana int
	Skills  map[data.SkillID]int
}
