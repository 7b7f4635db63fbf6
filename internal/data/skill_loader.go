package data

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"
)

// Catalog is the read-only registry of skill and combination definitions.
// Built once at startup (DefaultCatalog or LoadCatalogFile) and shared by
// every combat session. Never mutated after construction.
type Catalog struct {
	skills       map[SkillID]*SkillDefinition
	combinations map[ElementPair]*CombinationDefinition
	order        []SkillID
}

// NewCatalog validates the definitions and builds a Catalog.
// Combination keys are canonicalized, so callers may pass either element order.
func NewCatalog(skills []*SkillDefinition, combinations []*CombinationDefinition) (*Catalog, error) {
	c := &Catalog{
		skills:       make(map[SkillID]*SkillDefinition, len(skills)),
		combinations: make(map[ElementPair]*CombinationDefinition, len(combinations)),
		order:        make([]SkillID, 0, len(skills)),
	}

	var errs []error
	for _, s := range skills {
		if err := validateSkill(s); err != nil {
			errs = append(errs, err)
			continue
		}
		if _, dup := c.skills[s.ID]; dup {
			errs = append(errs, fmt.Errorf("duplicate skill %q", s.ID))
			continue
		}
		c.skills[s.ID] = s
		c.order = append(c.order, s.ID)
	}

	for _, cd := range combinations {
		if err := validateCombination(cd); err != nil {
			errs = append(errs, err)
			continue
		}
		key := NewElementPair(cd.Elements.First, cd.Elements.Second)
		if existing, dup := c.combinations[key]; dup {
			errs = append(errs, fmt.Errorf("combination %q: pair %s already used by %q", cd.ID, key, existing.ID))
			continue
		}
		cd.Elements = key
		c.combinations[key] = cd
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid catalog: %w", errors.Join(errs...))
	}

	slices.Sort(c.order)
	return c, nil
}

// DefaultCatalog builds the catalog from the authored Go literals.
// Panics if the tables are invalid: a corrupt built-in table is a programming error.
func DefaultCatalog() *Catalog {
	c, err := buildCatalog(skillDefs, combinationDefs)
	if err != nil {
		panic(fmt.Sprintf("built-in skill tables: %v", err))
	}
	slog.Debug("loaded skill catalog", "skills", c.SkillCount(), "combinations", c.CombinationCount())
	return c
}

// Skill returns the definition for id.
func (c *Catalog) Skill(id SkillID) (*SkillDefinition, bool) {
	s, ok := c.skills[id]
	return s, ok
}

// Combination looks up the combination for an unordered pair of elements.
// Combination(a, b) and Combination(b, a) always return the same definition.
func (c *Catalog) Combination(a, b Element) (*CombinationDefinition, bool) {
	cd, ok := c.combinations[NewElementPair(a, b)]
	return cd, ok
}

// Skills returns all skills sorted by ID.
func (c *Catalog) Skills() []*SkillDefinition {
	out := make([]*SkillDefinition, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.skills[id])
	}
	return out
}

// SkillsByElement returns the skills of one element sorted by ID.
func (c *Catalog) SkillsByElement(e Element) []*SkillDefinition {
	var out []*SkillDefinition
	for _, id := range c.order {
		if s := c.skills[id]; s.Element == e {
			out = append(out, s)
		}
	}
	return out
}

// Combinations returns all combinations sorted by ID.
func (c *Catalog) Combinations() []*CombinationDefinition {
	out := make([]*CombinationDefinition, 0, len(c.combinations))
	for _, cd := range c.combinations {
		out = append(out, cd)
	}
	slices.SortFunc(out, func(a, b *CombinationDefinition) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

func (c *Catalog) SkillCount() int       { return len(c.skills) }
func (c *Catalog) CombinationCount() int { return len(c.combinations) }

// buildCatalog expands authored definitions into a validated Catalog.
func buildCatalog(skills []skillDef, combos []combinationDef) (*Catalog, error) {
	var errs []error

	built := make([]*SkillDefinition, 0, len(skills))
	for i := range skills {
		s, err := buildSkill(&skills[i])
		if err != nil {
			errs = append(errs, err)
			continue
		}
		built = append(built, s)
	}

	builtCombos := make([]*CombinationDefinition, 0, len(combos))
	for i := range combos {
		cd, err := buildCombination(&combos[i])
		if err != nil {
			errs = append(errs, err)
			continue
		}
		builtCombos = append(builtCombos, cd)
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid catalog: %w", errors.Join(errs...))
	}
	return NewCatalog(built, builtCombos)
}

// buildSkill creates a SkillDefinition with one LevelStats per level.
func buildSkill(def *skillDef) (*SkillDefinition, error) {
	element, err := ParseElement(def.Element)
	if err != nil {
		return nil, fmt.Errorf("skill %q: %w", def.ID, err)
	}
	skillType, err := ParseSkillType(def.Type)
	if err != nil {
		return nil, fmt.Errorf("skill %q: %w", def.ID, err)
	}

	levels := max(def.MaxLevel, 1)
	s := &SkillDefinition{
		ID:       SkillID(def.ID),
		Name:     def.Name,
		Element:  element,
		Type:     skillType,
		MaxLevel: levels,
		Levels:   make([]LevelStats, levels),
	}

	for levelIdx := range levels {
		s.Levels[levelIdx] = LevelStats{
			Damage:   perLevel(def.Damage, levelIdx),
			Healing:  perLevel(def.Healing, levelIdx),
			Potency:  perLevel(def.Potency, levelIdx),
			ManaCost: perLevel(def.ManaCost, levelIdx),
			Cooldown: time.Duration(perLevel(def.CooldownMs, levelIdx)) * time.Millisecond,
			Range:    perLevel(def.Range, levelIdx),
			Radius:   perLevel(def.Radius, levelIdx),
			Duration: time.Duration(perLevel(def.DurationMs, levelIdx)) * time.Millisecond,
			Tags:     slices.Clone(def.Tags),
		}
	}
	return s, nil
}

func buildCombination(def *combinationDef) (*CombinationDefinition, error) {
	if len(def.Elements) != 2 {
		return nil, fmt.Errorf("combination %q: want 2 elements, got %d", def.ID, len(def.Elements))
	}
	a, err := ParseElement(def.Elements[0])
	if err != nil {
		return nil, fmt.Errorf("combination %q: %w", def.ID, err)
	}
	b, err := ParseElement(def.Elements[1])
	if err != nil {
		return nil, fmt.Errorf("combination %q: %w", def.ID, err)
	}
	return &CombinationDefinition{
		ID:       def.ID,
		Name:     def.Name,
		Elements: NewElementPair(a, b),
		Damage:   def.Damage,
		Radius:   def.Radius,
		ManaCost: def.ManaCost,
		Tags:     slices.Clone(def.Tags),
	}, nil
}

func validateSkill(s *SkillDefinition) error {
	if s == nil {
		return errors.New("nil skill definition")
	}
	if s.ID == "" {
		return fmt.Errorf("skill %q: empty id", s.Name)
	}
	if !s.Element.Valid() {
		return fmt.Errorf("skill %q: unknown element %q", s.ID, s.Element)
	}
	if _, err := ParseSkillType(string(s.Type)); err != nil {
		return fmt.Errorf("skill %q: %w", s.ID, err)
	}
	if s.MaxLevel < 1 || len(s.Levels) != s.MaxLevel {
		return fmt.Errorf("skill %q: max level %d with %d level entries", s.ID, s.MaxLevel, len(s.Levels))
	}
	for i, lv := range s.Levels {
		if lv.ManaCost < 0 || lv.Cooldown < 0 || lv.Duration < 0 {
			return fmt.Errorf("skill %q level %d: negative cost, cooldown or duration", s.ID, i+1)
		}
		if lv.Damage < 0 || lv.Healing < 0 || lv.Potency < 0 {
			return fmt.Errorf("skill %q level %d: negative magnitude", s.ID, i+1)
		}
	}
	return nil
}

func validateCombination(cd *CombinationDefinition) error {
	if cd == nil {
		return errors.New("nil combination definition")
	}
	if cd.ID == "" {
		return fmt.Errorf("combination %q: empty id", cd.Name)
	}
	if !cd.Elements.First.Valid() || !cd.Elements.Second.Valid() {
		return fmt.Errorf("combination %q: unknown element in %s", cd.ID, cd.Elements)
	}
	if cd.Elements.First == cd.Elements.Second {
		return fmt.Errorf("combination %q: needs two different elements, got %s", cd.ID, cd.Elements)
	}
	if cd.ManaCost < 0 || cd.Damage < 0 {
		return fmt.Errorf("combination %q: negative cost or damage", cd.ID)
	}
	return nil
}

// perLevel returns the value for levelIdx from a per-level array.
// Shorter arrays repeat their last element.
func perLevel[T any](vals []T, levelIdx int) T {
	var zero T
	if len(vals) == 0 {
		return zero
	}
	if levelIdx < len(vals) {
		return vals[levelIdx]
	}
	return vals[len(vals)-1]
}
