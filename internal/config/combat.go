package config

import (
	"errors"
	"fmt"
	"time"
)

// Combat holds the tunables of the combat resolver.
type Combat struct {
	// Max gap between consecutive casts before the combo chain is discarded.
	ComboWindow time.Duration `yaml:"combo_window"`
	// Shared cooldown across all skills of a player.
	GlobalCooldown time.Duration `yaml:"global_cooldown"`
	// Hard cap on remembered chain entries (oldest dropped first).
	MaxChainLength int `yaml:"max_chain_length"`

	VarietyMultiplier float64       `yaml:"variety_multiplier"` // 3 distinct elements
	VarietyDuration   time.Duration `yaml:"variety_duration"`
	ChainMultiplier   float64       `yaml:"chain_multiplier"` // 3 identical elements
	ChainDuration     time.Duration `yaml:"chain_duration"`

	// Per-level damage/healing step: scaled = base * (1 + (level-1) * LevelScaling).
	LevelScaling float64 `yaml:"level_scaling"`

	// Mana cost of combinations that do not define their own.
	CombinationManaCost int `yaml:"combination_mana_cost"`

	// Combat log ring buffer size per player.
	LogCapacity int `yaml:"log_capacity"`
}

// DefaultCombat returns the authored combat tuning.
func DefaultCombat() Combat {
	return Combat{
		ComboWindow:         3000 * time.Millisecond,
		GlobalCooldown:      300 * time.Millisecond,
		MaxChainLength:      8,
		VarietyMultiplier:   1.5,
		VarietyDuration:     5000 * time.Millisecond,
		ChainMultiplier:     1.3,
		ChainDuration:       5000 * time.Millisecond,
		LevelScaling:        0.2,
		CombinationManaCost: 30,
		LogCapacity:         50,
	}
}

// Validate rejects tunings the resolver cannot work with.
func (c Combat) Validate() error {
	var errs []error
	if c.ComboWindow <= 0 {
		errs = append(errs, fmt.Errorf("combo_window must be positive, got %s", c.ComboWindow))
	}
	if c.GlobalCooldown < 0 {
		errs = append(errs, fmt.Errorf("global_cooldown must not be negative, got %s", c.GlobalCooldown))
	}
	if c.MaxChainLength < 3 {
		errs = append(errs, fmt.Errorf("max_chain_length must be at least 3, got %d", c.MaxChainLength))
	}
	if c.VarietyMultiplier <= 0 || c.ChainMultiplier <= 0 {
		errs = append(errs, errors.New("bonus multipliers must be positive"))
	}
	if c.LevelScaling < 0 {
		errs = append(errs, fmt.Errorf("level_scaling must not be negative, got %v", c.LevelScaling))
	}
	if c.CombinationManaCost < 0 {
		errs = append(errs, fmt.Errorf("combination_mana_cost must not be negative, got %d", c.CombinationManaCost))
	}
	if c.LogCapacity < 1 {
		errs = append(errs, fmt.Errorf("log_capacity must be at least 1, got %d", c.LogCapacity))
	}
	return errors.Join(errs...)
}
