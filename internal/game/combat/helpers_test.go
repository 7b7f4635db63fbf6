package combat

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/udisondev/arcana/internal/config"
	"github.com/udisondev/arcana/internal/data"
)

// t0 is an arbitrary fixed clock origin for deterministic tests.
var t0 = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func at(ms int) time.Time {
	return t0.Add(time.Duration(ms) * time.Millisecond)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(data.DefaultCatalog(), config.DefaultCombat(), WithLogger(discardLogger()))
}

// allSkills returns every catalog skill at level 1.
func allSkills() map[data.SkillID]int {
	out := make(map[data.SkillID]int)
	for _, s := range data.DefaultCatalog().Skills() {
		out[s.ID] = 1
	}
	return out
}

func joinPlayer(e *Engine, id int64, mana, maxMana int, skills map[data.SkillID]int) {
	e.Join(id, Profile{Mana: mana, MaxMana: maxMana, Skills: skills})
}

func cast(e *Engine, id int64, skill data.SkillID, ms int) CastResult {
	return e.Cast(CastRequest{PlayerID: id, SkillID: skill}, at(ms))
}

func newState(mana, maxMana int) *PlayerCombatState {
	return newPlayerState(1, Profile{Mana: mana, MaxMana: maxMana}, 10)
}
