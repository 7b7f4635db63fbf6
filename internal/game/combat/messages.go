package combat

import (
	"fmt"
	"time"

	"github.com/udisondev/arcana/internal/data"
)

func skillMessage(def *data.SkillDefinition, level int, magnitude, multiplier float64, category LogCategory) string {
	switch category {
	case LogDamage:
		if multiplier != 1 {
			return fmt.Sprintf("%s (Lv.%d) deals %.0f damage (x%.1f combo)", def.Name, level, magnitude, multiplier)
		}
		return fmt.Sprintf("%s (Lv.%d) deals %.0f damage", def.Name, level, magnitude)
	case LogHeal:
		return fmt.Sprintf("%s (Lv.%d) restores %.0f health", def.Name, level, magnitude)
	default:
		return fmt.Sprintf("%s (Lv.%d) activated", def.Name, level)
	}
}

func bonusMessage(b *ArmedBonus) string {
	switch b.Kind {
	case BonusVariety:
		return fmt.Sprintf("Elemental variety! Next attack x%.1f", b.Multiplier)
	default:
		return fmt.Sprintf("Elemental chain! Next attack x%.1f", b.Multiplier)
	}
}

func rejectMessage(name string, reason RejectReason, remaining time.Duration) string {
	switch reason {
	case ReasonUnknownSkill:
		return fmt.Sprintf("Unknown skill %q", name)
	case ReasonNotLearned:
		return fmt.Sprintf("%s is not learned", name)
	case ReasonPassiveSkill:
		return fmt.Sprintf("%s is passive and cannot be cast", name)
	case ReasonOnCooldown:
		return fmt.Sprintf("%s is on cooldown (%.1fs)", name, remaining.Seconds())
	case ReasonInsufficientMana:
		return fmt.Sprintf("Not enough mana for %s", name)
	case ReasonInsufficientHistory:
		return "Cast two different elements before combining"
	case ReasonUnknownCombination:
		return "These elements do not combine"
	default:
		return fmt.Sprintf("%s failed: %s", name, reason)
	}
}
