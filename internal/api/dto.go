package api

import (
	"time"

	"github.com/udisondev/arcana/internal/data"
	"github.com/udisondev/arcana/internal/game/combat"
)

// Durations cross the wire as integer milliseconds.

type castRequest struct {
	Skill     string      `json:"skill"`
	Origin    combat.Vec3 `json:"origin"`
	Direction combat.Vec3 `json:"direction"`
}

type intentDTO struct {
	Kind       combat.EffectKind `json:"kind"`
	Skill      data.SkillID      `json:"skill"`
	Element    data.Element      `json:"element,omitempty"`
	Second     data.Element      `json:"second_element,omitempty"`
	Origin     combat.Vec3       `json:"origin"`
	Direction  combat.Vec3       `json:"direction"`
	Magnitude  float64           `json:"magnitude"`
	Range      float64           `json:"range,omitempty"`
	Radius     float64           `json:"radius,omitempty"`
	Tags       []string          `json:"tags,omitempty"`
	DurationMs int64             `json:"duration_ms,omitempty"`
}

type bonusDTO struct {
	Kind       combat.BonusKind `json:"kind"`
	Multiplier float64          `json:"multiplier"`
	ExpiresAt  time.Time        `json:"expires_at"`
}

type castResponse struct {
	Status          string              `json:"status"`
	Reason          combat.RejectReason `json:"reason,omitempty"`
	RemainingMs     int64               `json:"remaining_ms,omitempty"`
	Skill           data.SkillID        `json:"skill"`
	Level           int                 `json:"level,omitempty"`
	Intents         []intentDTO         `json:"intents"`
	Log             combat.LogEntry     `json:"log"`
	BonusMultiplier float64             `json:"bonus_multiplier"`
	Armed           *bonusDTO           `json:"armed,omitempty"`
	Combination     string              `json:"combination,omitempty"`
	Mana            combat.ManaState    `json:"mana"`
}

type effectEvent struct {
	Player int64     `json:"player"`
	Intent intentDTO `json:"intent"`
}

type levelDTO struct {
	Damage     float64  `json:"damage,omitempty"`
	Healing    float64  `json:"healing,omitempty"`
	Potency    float64  `json:"potency,omitempty"`
	ManaCost   int      `json:"mana_cost"`
	CooldownMs int64    `json:"cooldown_ms"`
	Range      float64  `json:"range,omitempty"`
	Radius     float64  `json:"radius,omitempty"`
	DurationMs int64    `json:"duration_ms,omitempty"`
	Tags       []string `json:"tags,omitempty"`
}

type skillDTO struct {
	ID       data.SkillID   `json:"id"`
	Name     string         `json:"name"`
	Element  data.Element   `json:"element"`
	Type     data.SkillType `json:"type"`
	MaxLevel int            `json:"max_level"`
	Levels   []levelDTO     `json:"levels"`
}

type combinationDTO struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Elements []data.Element `json:"elements"`
	Damage   float64        `json:"damage"`
	Radius   float64        `json:"radius"`
	ManaCost int            `json:"mana_cost,omitempty"`
	Tags     []string       `json:"tags,omitempty"`
}

type catalogResponse struct {
	Skills       []skillDTO       `json:"skills"`
	Combinations []combinationDTO `json:"combinations"`
}

func toIntentDTO(in combat.EffectIntent) intentDTO {
	return intentDTO{
		Kind:       in.Kind,
		Skill:      in.SkillID,
		Element:    in.Element,
		Second:     in.SecondElement,
		Origin:     in.Origin,
		Direction:  in.Direction,
		Magnitude:  in.Magnitude,
		Range:      in.Range,
		Radius:     in.Radius,
		Tags:       in.Tags,
		DurationMs: in.Duration.Milliseconds(),
	}
}

func toCastResponse(res combat.CastResult, mana combat.ManaState) castResponse {
	out := castResponse{
		Status:          res.Status.String(),
		Reason:          res.Reason,
		RemainingMs:     res.Remaining.Milliseconds(),
		Skill:           res.SkillID,
		Level:           res.Level,
		Intents:         make([]intentDTO, 0, len(res.Intents)),
		Log:             res.Log,
		BonusMultiplier: res.BonusMultiplier,
		Mana:            mana,
	}
	for _, in := range res.Intents {
		out.Intents = append(out.Intents, toIntentDTO(in))
	}
	if res.Armed != nil {
		out.Armed = &bonusDTO{Kind: res.Armed.Kind, Multiplier: res.Armed.Multiplier, ExpiresAt: res.Armed.ExpiresAt}
	}
	if res.Combination != nil {
		out.Combination = res.Combination.ID
	}
	return out
}

func toCatalogResponse(c *data.Catalog) catalogResponse {
	out := catalogResponse{
		Skills:       make([]skillDTO, 0, c.SkillCount()),
		Combinations: make([]combinationDTO, 0, c.CombinationCount()),
	}
	for _, s := range c.Skills() {
		dto := skillDTO{
			ID:       s.ID,
			Name:     s.Name,
			Element:  s.Element,
			Type:     s.Type,
			MaxLevel: s.MaxLevel,
			Levels:   make([]levelDTO, 0, len(s.Levels)),
		}
		for _, lv := range s.Levels {
			dto.Levels = append(dto.Levels, levelDTO{
				Damage:     lv.Damage,
				Healing:    lv.Healing,
				Potency:    lv.Potency,
				ManaCost:   lv.ManaCost,
				CooldownMs: lv.Cooldown.Milliseconds(),
				Range:      lv.Range,
				Radius:     lv.Radius,
				DurationMs: lv.Duration.Milliseconds(),
				Tags:       lv.Tags,
			})
		}
		out.Skills = append(out.Skills, dto)
	}
	for _, cd := range c.Combinations() {
		out.Combinations = append(out.Combinations, combinationDTO{
			ID:       cd.ID,
			Name:     cd.Name,
			Elements: []data.Element{cd.Elements.First, cd.Elements.Second},
			Damage:   cd.Damage,
			Radius:   cd.Radius,
			ManaCost: cd.ManaCost,
			Tags:     cd.Tags,
		})
	}
	return out
}
