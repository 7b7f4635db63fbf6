package combat

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/arcana/internal/config"
	"github.com/udisondev/arcana/internal/data"
)

func TestEngine_CastSuccess(t *testing.T) {
	e := newTestEngine(t)
	joinPlayer(e, 1, 100, 100, map[data.SkillID]int{"fireball": 3})

	origin := Vec3{X: 1, Y: 2, Z: 3}
	dir := Vec3{Z: 1}
	res := e.Cast(CastRequest{PlayerID: 1, SkillID: "fireball", Origin: origin, Direction: dir}, at(0))

	require.True(t, res.OK())
	assert.Equal(t, 3, res.Level)
	assert.Equal(t, 1.0, res.BonusMultiplier)
	assert.Nil(t, res.Armed)
	require.Len(t, res.Intents, 1)

	in := res.Intents[0]
	assert.Equal(t, EffectProjectile, in.Kind)
	assert.Equal(t, data.ElementFire, in.Element)
	assert.InDelta(t, 70.0, in.Magnitude, 1e-9)
	assert.Equal(t, 30.0, in.Range)
	assert.Equal(t, origin, in.Origin)
	assert.Equal(t, dir, in.Direction)
	assert.Equal(t, []string{"burn"}, in.Tags)

	assert.Equal(t, ManaState{Current: 80, Max: 100}, e.ManaState(1))
	assert.Equal(t, LogDamage, res.Log.Category)
	assert.Len(t, e.CombatLog(1), 1)
}

func TestEngine_CooldownRejection(t *testing.T) {
	e := newTestEngine(t)
	joinPlayer(e, 1, 100, 100, map[data.SkillID]int{"fireball": 3})

	require.True(t, cast(e, 1, "fireball", 0).OK())

	res := cast(e, 1, "fireball", 100)
	assert.False(t, res.OK())
	assert.Equal(t, ReasonOnCooldown, res.Reason)
	assert.Equal(t, 2900*time.Millisecond, res.Remaining)
	assert.Empty(t, res.Intents)
	assert.Equal(t, 80, e.ManaState(1).Current, "rejected cast spends nothing")
	assert.Equal(t, LogRejected, res.Log.Category)

	assert.True(t, cast(e, 1, "fireball", 3000).OK())
	assert.Equal(t, 60, e.ManaState(1).Current)
}

func TestEngine_GlobalCooldown(t *testing.T) {
	e := newTestEngine(t)
	joinPlayer(e, 1, 100, 100, map[data.SkillID]int{"fireball": 1, "wind_blade": 1})

	require.True(t, cast(e, 1, "fireball", 0).OK())

	res := cast(e, 1, "wind_blade", 100)
	assert.Equal(t, ReasonOnCooldown, res.Reason)
	assert.Equal(t, 200*time.Millisecond, res.Remaining)

	assert.True(t, cast(e, 1, "wind_blade", 300).OK())
}

func TestEngine_RejectionReasons(t *testing.T) {
	e := newTestEngine(t)
	joinPlayer(e, 1, 10, 100, map[data.SkillID]int{"fireball": 1, "deep_roots": 2})

	tests := []struct {
		skill data.SkillID
		want  RejectReason
	}{
		{"meteor", ReasonUnknownSkill},
		{"frost_bolt", ReasonNotLearned},
		{"deep_roots", ReasonPassiveSkill},
		{"fireball", ReasonInsufficientMana},
	}
	for _, tt := range tests {
		t.Run(string(tt.skill), func(t *testing.T) {
			res := cast(e, 1, tt.skill, 0)
			assert.Equal(t, StatusRejected, res.Status)
			assert.Equal(t, tt.want, res.Reason)
			assert.Empty(t, res.Intents)
		})
	}

	assert.Equal(t, 10, e.ManaState(1).Current)
	assert.Empty(t, e.Chain(1))
	assert.Empty(t, e.Cooldowns(1, at(0)))
	assert.Len(t, e.CombatLog(1), len(tests), "every attempt is logged")
}

func TestEngine_LevelClampedToMax(t *testing.T) {
	e := newTestEngine(t)
	joinPlayer(e, 1, 100, 100, map[data.SkillID]int{"fireball": 9})

	res := cast(e, 1, "fireball", 0)
	require.True(t, res.OK())
	assert.Equal(t, 5, res.Level)
	assert.InDelta(t, 90.0, res.Intents[0].Magnitude, 1e-9)
	assert.Equal(t, 75, e.ManaState(1).Current)
}

func TestEngine_VarietyBonus(t *testing.T) {
	e := newTestEngine(t)
	joinPlayer(e, 1, 200, 200, allSkills())

	require.True(t, cast(e, 1, "fireball", 0).OK())
	require.True(t, cast(e, 1, "frost_bolt", 500).OK())

	res := cast(e, 1, "wind_blade", 1000)
	require.True(t, res.OK())
	require.NotNil(t, res.Armed)
	assert.Equal(t, BonusVariety, res.Armed.Kind)
	assert.Equal(t, LogCombo, res.Log.Category)
	assert.Contains(t, res.Log.Message, "Elemental variety")
	assert.Equal(t, 1.0, res.BonusMultiplier, "arming cast is not multiplied")

	bonus, ok := e.ArmedBonus(1, at(1000))
	require.True(t, ok)
	assert.Equal(t, at(6000), bonus.ExpiresAt)

	res = cast(e, 1, "tornado", 1500)
	require.True(t, res.OK())
	assert.Equal(t, 1.5, res.BonusMultiplier)
	assert.InDelta(t, 67.5, res.Intents[0].Magnitude, 1e-9)
	assert.Equal(t, EffectArea, res.Intents[0].Kind)
	assert.Equal(t, 4*time.Second, res.Intents[0].Duration)

	_, ok = e.ArmedBonus(1, at(1500))
	assert.False(t, ok, "bonus consumed")

	res = cast(e, 1, "flame_burst", 2000)
	require.True(t, res.OK())
	assert.Equal(t, 1.0, res.BonusMultiplier)
	assert.InDelta(t, 40.0, res.Intents[0].Magnitude, 1e-9)
}

func TestEngine_ChainBonus(t *testing.T) {
	e := newTestEngine(t)
	joinPlayer(e, 1, 200, 200, allSkills())

	require.True(t, cast(e, 1, "fireball", 0).OK())
	require.True(t, cast(e, 1, "flame_burst", 500).OK())

	res := cast(e, 1, "fire_shield", 1000)
	require.True(t, res.OK())
	require.NotNil(t, res.Armed)
	assert.Equal(t, BonusChain, res.Armed.Kind)
	assert.Equal(t, EffectBarrier, res.Intents[0].Kind)
	assert.Equal(t, 8*time.Second, res.Intents[0].Duration)

	res = cast(e, 1, "frost_bolt", 1500)
	require.True(t, res.OK())
	assert.Equal(t, 1.3, res.BonusMultiplier)
	assert.InDelta(t, 45.5, res.Intents[0].Magnitude, 1e-9)

	res = cast(e, 1, "wind_blade", 2000)
	require.True(t, res.OK())
	assert.Equal(t, 1.0, res.BonusMultiplier)

	assert.Equal(t, 200-15-25-30-12-10, e.ManaState(1).Current)
}

func TestEngine_PotencyIsNotLevelScaled(t *testing.T) {
	tests := []struct {
		skill data.SkillID
		level int
		want  float64
	}{
		{"tailwind", 1, 0.2},
		{"tailwind", 3, 0.4},
		{"stone_skin", 2, 20},
		{"fire_shield", 3, 56},
		{"ice_wall", 1, 60},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%d", tt.skill, tt.level), func(t *testing.T) {
			e := newTestEngine(t)
			joinPlayer(e, 1, 100, 100, map[data.SkillID]int{tt.skill: tt.level})

			res := cast(e, 1, tt.skill, 0)
			require.True(t, res.OK())
			require.Len(t, res.Intents, 1)
			assert.InDelta(t, tt.want, res.Intents[0].Magnitude, 1e-9)
		})
	}
}

func TestEngine_GapResetsChainAndExpiresBonus(t *testing.T) {
	e := newTestEngine(t)
	joinPlayer(e, 1, 100, 100, allSkills())

	require.True(t, cast(e, 1, "fireball", 0).OK())
	require.True(t, cast(e, 1, "ice_wall", 500).OK())
	require.NotNil(t, cast(e, 1, "wind_blade", 1000).Armed)

	res := cast(e, 1, "stone_spikes", 7000)
	require.True(t, res.OK())
	assert.Equal(t, 1.0, res.BonusMultiplier, "bonus expired at 6000")
	assert.InDelta(t, 45.0, res.Intents[0].Magnitude, 1e-9)
	assert.Nil(t, res.Armed)

	chain := e.Chain(1)
	require.Len(t, chain, 1)
	assert.Equal(t, data.SkillID("stone_spikes"), chain[0].SkillID)

	_, ok := e.ArmedBonus(1, at(7000))
	assert.False(t, ok)
}

func TestEngine_CombinationSymmetric(t *testing.T) {
	orders := [][]data.SkillID{
		{"fireball", "frost_bolt"},
		{"frost_bolt", "fireball"},
	}

	var seen []*data.CombinationDefinition
	for _, order := range orders {
		e := newTestEngine(t)
		joinPlayer(e, 1, 100, 100, allSkills())

		require.True(t, cast(e, 1, order[0], 0).OK())
		require.True(t, cast(e, 1, order[1], 500).OK())

		res := e.CastCombination(CastRequest{PlayerID: 1, SkillID: CombinationTrigger}, at(1000))
		require.True(t, res.OK())
		require.NotNil(t, res.Combination)
		assert.Equal(t, "steam_explosion", res.Combination.ID)
		assert.Equal(t, LogCombination, res.Log.Category)

		require.Len(t, res.Intents, 1)
		assert.Equal(t, EffectArea, res.Intents[0].Kind)
		assert.Equal(t, 120.0, res.Intents[0].Magnitude)
		assert.Equal(t, 8.0, res.Intents[0].Radius)
		assert.Equal(t, data.ElementFire, res.Intents[0].Element)
		assert.Equal(t, data.ElementWater, res.Intents[0].SecondElement)

		assert.Equal(t, 100-15-12-30, e.ManaState(1).Current, "default combination cost")
		assert.Empty(t, e.Chain(1))
		seen = append(seen, res.Combination)
	}
	assert.Same(t, seen[0], seen[1])
}

func TestEngine_CombinationOwnManaCost(t *testing.T) {
	e := newTestEngine(t)
	joinPlayer(e, 1, 100, 100, allSkills())

	require.True(t, cast(e, 1, "wind_blade", 0).OK())
	require.True(t, cast(e, 1, "fireball", 500).OK())

	// routed through the trigger id
	res := cast(e, 1, CombinationTrigger, 1000)
	require.True(t, res.OK())
	assert.Equal(t, "firestorm", res.Combination.ID)
	assert.Equal(t, 100-10-15-40, e.ManaState(1).Current)
}

func TestEngine_CombinationRejections(t *testing.T) {
	t.Run("insufficient history", func(t *testing.T) {
		e := newTestEngine(t)
		joinPlayer(e, 1, 100, 100, allSkills())
		require.True(t, cast(e, 1, "fireball", 0).OK())

		res := cast(e, 1, CombinationTrigger, 500)
		assert.Equal(t, ReasonInsufficientHistory, res.Reason)
		assert.Len(t, e.Chain(1), 1)
	})

	t.Run("unknown combination", func(t *testing.T) {
		e := newTestEngine(t)
		joinPlayer(e, 1, 100, 100, allSkills())
		require.True(t, cast(e, 1, "fireball", 0).OK())
		require.True(t, cast(e, 1, "flame_burst", 500).OK())

		res := cast(e, 1, CombinationTrigger, 1000)
		assert.Equal(t, ReasonUnknownCombination, res.Reason)
		assert.Len(t, e.Chain(1), 2)
		assert.Equal(t, 60, e.ManaState(1).Current)
	})

	t.Run("insufficient mana keeps chain", func(t *testing.T) {
		e := newTestEngine(t)
		joinPlayer(e, 1, 40, 100, allSkills())
		require.True(t, cast(e, 1, "fireball", 0).OK())
		require.True(t, cast(e, 1, "frost_bolt", 500).OK())

		res := cast(e, 1, CombinationTrigger, 1000)
		assert.Equal(t, ReasonInsufficientMana, res.Reason)
		assert.Len(t, e.Chain(1), 2)
		assert.Equal(t, 13, e.ManaState(1).Current)

		e.RestoreMana(1, 50)
		res = cast(e, 1, CombinationTrigger, 1100)
		require.True(t, res.OK(), "chain survived the failed attempt")
		assert.Equal(t, "steam_explosion", res.Combination.ID)
	})
}

func TestEngine_BonusSurvivesCombinationAndHeal(t *testing.T) {
	e := newTestEngine(t)
	joinPlayer(e, 1, 200, 200, allSkills())

	require.True(t, cast(e, 1, "fireball", 0).OK())
	require.True(t, cast(e, 1, "frost_bolt", 500).OK())
	require.NotNil(t, cast(e, 1, "wind_blade", 1000).Armed)

	res := cast(e, 1, CombinationTrigger, 1200)
	require.True(t, res.OK())
	assert.Equal(t, "blizzard", res.Combination.ID)
	assert.Equal(t, 110.0, res.Intents[0].Magnitude)
	assert.Equal(t, 1.0, res.BonusMultiplier)

	_, ok := e.ArmedBonus(1, at(1200))
	assert.True(t, ok, "combination does not consume the bonus")

	res = cast(e, 1, "healing_rain", 1500)
	require.True(t, res.OK())
	assert.Equal(t, EffectHeal, res.Intents[0].Kind)
	assert.InDelta(t, 45.0, res.Intents[0].Magnitude, 1e-9)
	assert.Equal(t, LogHeal, res.Log.Category)

	_, ok = e.ArmedBonus(1, at(1500))
	assert.True(t, ok, "healing does not consume the bonus")

	res = cast(e, 1, "stone_spikes", 2000)
	require.True(t, res.OK())
	assert.Equal(t, 1.5, res.BonusMultiplier)
	assert.InDelta(t, 67.5, res.Intents[0].Magnitude, 1e-9)
}

func TestEngine_TransformationIntent(t *testing.T) {
	e := newTestEngine(t)
	joinPlayer(e, 1, 100, 100, map[data.SkillID]int{"phoenix_form": 1})

	res := cast(e, 1, "phoenix_form", 0)
	require.True(t, res.OK())
	require.Len(t, res.Intents, 1)

	in := res.Intents[0]
	assert.Equal(t, EffectBuff, in.Kind)
	assert.Equal(t, []string{"flight", "fire_immunity", "transformation"}, in.Tags)
	assert.Equal(t, 15*time.Second, in.Duration)
	assert.Equal(t, LogBuff, res.Log.Category)
	assert.Equal(t, 40, e.ManaState(1).Current)
}

func TestEngine_IntentKinds(t *testing.T) {
	tests := []struct {
		skill data.SkillID
		want  EffectKind
	}{
		{"fireball", EffectProjectile},
		{"flame_burst", EffectArea},
		{"healing_rain", EffectHeal},
		{"tailwind", EffectBuff},
		{"ice_wall", EffectBarrier},
		{"stone_spikes", EffectGround},
		{"tidal_wave", EffectWave},
	}
	for _, tt := range tests {
		t.Run(string(tt.skill), func(t *testing.T) {
			e := newTestEngine(t)
			joinPlayer(e, 1, 100, 100, map[data.SkillID]int{tt.skill: 1})

			res := cast(e, 1, tt.skill, 0)
			require.True(t, res.OK())
			require.Len(t, res.Intents, 1)
			assert.Equal(t, tt.want, res.Intents[0].Kind)
			assert.Equal(t, tt.skill, res.Intents[0].SkillID)
		})
	}
}

func TestEngine_ManaNeverNegative(t *testing.T) {
	e := newTestEngine(t)
	joinPlayer(e, 1, 120, 120, allSkills())

	skills := data.DefaultCatalog().Skills()
	ms := 0
	for round := range 20 {
		for _, s := range skills {
			ms += 350
			cast(e, 1, s.ID, ms)
			m := e.ManaState(1)
			require.GreaterOrEqual(t, m.Current, 0)
			require.LessOrEqual(t, m.Current, m.Max)
		}
		if round%5 == 0 {
			e.RestoreMana(1, 500)
		}
	}
}

func TestEngine_LogCapacity(t *testing.T) {
	e := newTestEngine(t)
	joinPlayer(e, 1, 0, 100, nil)

	for i := range config.DefaultCombat().LogCapacity + 10 {
		cast(e, 1, "fireball", i*10)
	}
	assert.Len(t, e.CombatLog(1), config.DefaultCombat().LogCapacity)
}

func TestEngine_JoinLeave(t *testing.T) {
	e := newTestEngine(t)
	joinPlayer(e, 7, 150, 100, map[data.SkillID]int{"fireball": 2, "meteor": 3})

	assert.True(t, e.Has(7))
	assert.Equal(t, []int64{7}, e.Players())
	assert.Equal(t, ManaState{Current: 100, Max: 100}, e.ManaState(7))
	assert.Equal(t, map[data.SkillID]int{"fireball": 2}, e.LearnedSkills(7), "unknown skills dropped")

	e.Leave(7)
	assert.False(t, e.Has(7))
	e.Leave(7)
}

func TestEngine_UnknownPlayerPanics(t *testing.T) {
	e := newTestEngine(t)
	assert.Panics(t, func() { cast(e, 99, "fireball", 0) })
	assert.Panics(t, func() { e.ManaState(99) })
}

func TestNewEngine_Panics(t *testing.T) {
	assert.Panics(t, func() { NewEngine(nil, config.DefaultCombat()) })

	bad := config.DefaultCombat()
	bad.ComboWindow = 0
	assert.Panics(t, func() { NewEngine(data.DefaultCatalog(), bad) })
}

func TestEngine_SetSkillLevelAndCooldowns(t *testing.T) {
	e := newTestEngine(t)
	joinPlayer(e, 1, 100, 100, map[data.SkillID]int{"fireball": 1})

	assert.False(t, e.SetSkillLevel(1, "meteor", 1))
	assert.True(t, e.SetSkillLevel(1, "frost_bolt", 8))
	assert.Equal(t, 5, e.LearnedSkills(1)["frost_bolt"])

	require.True(t, cast(e, 1, "fireball", 0).OK())
	require.True(t, cast(e, 1, "frost_bolt", 500).OK())

	cds := e.Cooldowns(1, at(1000))
	assert.Equal(t, 2*time.Second, cds["fireball"])
	assert.Equal(t, 1500*time.Millisecond, cds["frost_bolt"])

	assert.True(t, e.SetSkillLevel(1, "fireball", 0))
	assert.Equal(t, ReasonNotLearned, cast(e, 1, "fireball", 5000).Reason)
}
