package data

// skillDef is a skill definition with per-level arrays.
// For slice fields: index = level-1. If the array is shorter than MaxLevel the
// last element is used, so a one-element slice means the same value on every level.
// The same shape is used for Go literals and for YAML catalog files.
type skillDef struct {
	ID         string    `yaml:"id"`
	Name       string    `yaml:"name"`
	Element    string    `yaml:"element"`
	Type       string    `yaml:"type"`
	MaxLevel   int       `yaml:"max_level"`
	Damage     []float64 `yaml:"damage"`
	Healing    []float64 `yaml:"healing"`
	Potency    []float64 `yaml:"potency"`
	ManaCost   []int     `yaml:"mana_cost"`
	CooldownMs []int     `yaml:"cooldown_ms"`
	Range      []float64 `yaml:"range"`
	Radius     []float64 `yaml:"radius"`
	DurationMs []int     `yaml:"duration_ms"`
	Tags       []string  `yaml:"tags"`
}

// combinationDef is a two-element combination as authored.
type combinationDef struct {
	ID       string   `yaml:"id"`
	Name     string   `yaml:"name"`
	Elements []string `yaml:"elements"`
	Damage   float64  `yaml:"damage"`
	Radius   float64  `yaml:"radius"`
	ManaCost int      `yaml:"mana_cost"`
	Tags     []string `yaml:"tags"`
}

var skillDefs = []skillDef{
	// fire
	{
		ID: "fireball", Name: "Fireball", Element: "fire", Type: "projectile", MaxLevel: 5,
		Damage:     []float64{50},
		ManaCost:   []int{15, 18, 20, 22, 25},
		CooldownMs: []int{3000},
		Range:      []float64{30},
		Tags:       []string{"burn"},
	},
	{
		ID: "flame_burst", Name: "Flame Burst", Element: "fire", Type: "area", MaxLevel: 5,
		Damage:     []float64{40},
		ManaCost:   []int{25, 27, 30, 32, 35},
		CooldownMs: []int{6000, 6000, 5500, 5500, 5000},
		Range:      []float64{12},
		Radius:     []float64{5, 5, 6, 6, 7},
		Tags:       []string{"burn", "knockback"},
	},
	{
		ID: "fire_shield", Name: "Fire Shield", Element: "fire", Type: "barrier", MaxLevel: 3,
		Potency:    []float64{40, 48, 56},
		ManaCost:   []int{30},
		CooldownMs: []int{15000},
		DurationMs: []int{8000, 10000, 12000},
		Tags:       []string{"reflect_burn"},
	},
	{
		ID: "phoenix_form", Name: "Phoenix Form", Element: "fire", Type: "transformation", MaxLevel: 1,
		Potency:    []float64{1.25},
		ManaCost:   []int{60},
		CooldownMs: []int{60000},
		DurationMs: []int{15000},
		Tags:       []string{"flight", "fire_immunity"},
	},

	// water
	{
		ID: "ice_wall", Name: "Ice Wall", Element: "water", Type: "barrier", MaxLevel: 3,
		Potency:    []float64{60, 72, 84},
		ManaCost:   []int{20},
		CooldownMs: []int{8000},
		Range:      []float64{6},
		DurationMs: []int{6000},
		Tags:       []string{"freeze", "blocking"},
	},
	{
		ID: "frost_bolt", Name: "Frost Bolt", Element: "water", Type: "projectile", MaxLevel: 5,
		Damage:     []float64{35},
		ManaCost:   []int{12, 14, 16, 18, 20},
		CooldownMs: []int{2000},
		Range:      []float64{28},
		Tags:       []string{"slow"},
	},
	{
		ID: "healing_rain", Name: "Healing Rain", Element: "water", Type: "heal", MaxLevel: 5,
		Healing:    []float64{45},
		ManaCost:   []int{25, 27, 29, 31, 33},
		CooldownMs: []int{10000},
		Range:      []float64{15},
		Tags:       []string{"regeneration"},
	},
	{
		ID: "tidal_wave", Name: "Tidal Wave", Element: "water", Type: "wave", MaxLevel: 3,
		Damage:     []float64{55},
		ManaCost:   []int{35},
		CooldownMs: []int{9000},
		Range:      []float64{20},
		Radius:     []float64{4},
		Tags:       []string{"knockback", "wet"},
	},

	// air
	{
		ID: "wind_blade", Name: "Wind Blade", Element: "air", Type: "projectile", MaxLevel: 5,
		Damage:     []float64{30},
		ManaCost:   []int{10},
		CooldownMs: []int{1500},
		Range:      []float64{25},
		Tags:       []string{"pierce"},
	},
	{
		ID: "tornado", Name: "Tornado", Element: "air", Type: "area", MaxLevel: 3,
		Damage:     []float64{45},
		ManaCost:   []int{35, 38, 40},
		CooldownMs: []int{12000},
		Range:      []float64{18},
		Radius:     []float64{6},
		DurationMs: []int{4000},
		Tags:       []string{"lift", "pull"},
	},
	{
		ID: "tailwind", Name: "Tailwind", Element: "air", Type: "buff", MaxLevel: 3,
		Potency:    []float64{0.2, 0.3, 0.4},
		ManaCost:   []int{15},
		CooldownMs: []int{20000},
		DurationMs: []int{10000},
		Tags:       []string{"haste"},
	},

	// earth
	{
		ID: "stone_spikes", Name: "Stone Spikes", Element: "earth", Type: "ground", MaxLevel: 5,
		Damage:     []float64{45},
		ManaCost:   []int{20, 22, 24, 26, 28},
		CooldownMs: []int{4000},
		Range:      []float64{15},
		Radius:     []float64{3},
		Tags:       []string{"root"},
	},
	{
		ID: "earthquake", Name: "Earthquake", Element: "earth", Type: "area", MaxLevel: 3,
		Damage:     []float64{70},
		ManaCost:   []int{50},
		CooldownMs: []int{20000},
		Radius:     []float64{10},
		DurationMs: []int{3000},
		Tags:       []string{"stun"},
	},
	{
		ID: "stone_skin", Name: "Stone Skin", Element: "earth", Type: "buff", MaxLevel: 3,
		Potency:    []float64{15, 20, 25},
		ManaCost:   []int{20},
		CooldownMs: []int{25000},
		DurationMs: []int{12000},
		Tags:       []string{"armor"},
	},
	{
		ID: "deep_roots", Name: "Deep Roots", Element: "earth", Type: "passive", MaxLevel: 3,
		Potency: []float64{5, 10, 15},
		Tags:    []string{"mana_regen"},
	},
}

var combinationDefs = []combinationDef{
	{ID: "steam_explosion", Name: "Steam Explosion", Elements: []string{"fire", "water"}, Damage: 120, Radius: 8, Tags: []string{"steam", "blind"}},
	{ID: "firestorm", Name: "Firestorm", Elements: []string{"fire", "air"}, Damage: 140, Radius: 10, ManaCost: 40, Tags: []string{"burn", "spread"}},
	{ID: "magma_eruption", Name: "Magma Eruption", Elements: []string{"fire", "earth"}, Damage: 160, Radius: 6, ManaCost: 45, Tags: []string{"burn", "lava_pool"}},
	{ID: "blizzard", Name: "Blizzard", Elements: []string{"water", "air"}, Damage: 110, Radius: 12, Tags: []string{"freeze", "slow"}},
	{ID: "quicksand", Name: "Quicksand", Elements: []string{"water", "earth"}, Damage: 80, Radius: 7, Tags: []string{"root", "slow"}},
	{ID: "sandstorm", Name: "Sandstorm", Elements: []string{"air", "earth"}, Damage: 100, Radius: 11, Tags: []string{"blind", "pull"}},
}
