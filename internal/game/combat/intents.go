package combat

import (
	"fmt"
	"slices"

	"github.com/udisondev/arcana/internal/data"
)

// transformationTag marks buff intents produced by transformation skills.
const transformationTag = "transformation"

// buildSkillIntents maps a resolved skill cast onto effect intents.
// The switch covers every data.SkillType; passive skills are rejected before
// the commit point and reaching them here is a programming error.
func buildSkillIntents(def *data.SkillDefinition, stats data.LevelStats, magnitude float64, req CastRequest) []EffectIntent {
	base := EffectIntent{
		SkillID:   def.ID,
		Element:   def.Element,
		Origin:    req.Origin,
		Direction: req.Direction,
		Magnitude: magnitude,
		Range:     stats.Range,
		Tags:      slices.Clone(stats.Tags),
	}

	switch def.Type {
	case data.SkillTypeProjectile:
		base.Kind = EffectProjectile
	case data.SkillTypeArea:
		base.Kind = EffectArea
		base.Radius = stats.Radius
		base.Duration = stats.Duration
	case data.SkillTypeGround:
		base.Kind = EffectGround
		base.Radius = stats.Radius
		base.Duration = stats.Duration
	case data.SkillTypeWave:
		base.Kind = EffectWave
		base.Radius = stats.Radius
		base.Duration = stats.Duration
	case data.SkillTypeHeal:
		base.Kind = EffectHeal
	case data.SkillTypeBuff:
		base.Kind = EffectBuff
		base.Duration = stats.Duration
	case data.SkillTypeBarrier:
		base.Kind = EffectBarrier
		base.Duration = stats.Duration
	case data.SkillTypeTransformation:
		base.Kind = EffectBuff
		base.Duration = stats.Duration
		base.Tags = append(base.Tags, transformationTag)
	case data.SkillTypePassive:
		panic(fmt.Sprintf("combat: passive skill %q reached intent dispatch", def.ID))
	default:
		panic(fmt.Sprintf("combat: skill %q has unhandled type %q", def.ID, def.Type))
	}

	return []EffectIntent{base}
}

// buildCombinationIntents emits the single area intent of a combination.
func buildCombinationIntents(cd *data.CombinationDefinition, magnitude float64, req CastRequest) []EffectIntent {
	return []EffectIntent{{
		Kind:          EffectArea,
		SkillID:       data.SkillID(cd.ID),
		Element:       cd.Elements.First,
		SecondElement: cd.Elements.Second,
		Origin:        req.Origin,
		Direction:     req.Direction,
		Magnitude:     magnitude,
		Radius:        cd.Radius,
		Tags:          slices.Clone(cd.Tags),
	}}
}
