package combat

import "github.com/udisondev/arcana/internal/data"

// CombinationResolver turns the last two chain elements into a combination.
// Only driven by the explicit combination-trigger input.
type CombinationResolver struct {
	Catalog *data.Catalog
	Chain   ComboChainTracker
}

// Match looks up the combination for the last two chain entries without
// touching the chain.
func (r CombinationResolver) Match(st *PlayerCombatState) (*data.CombinationDefinition, RejectReason) {
	last := r.Chain.PeekLast(st, 2)
	if len(last) < 2 {
		return nil, ReasonInsufficientHistory
	}
	cd, ok := r.Catalog.Combination(last[0].Element, last[1].Element)
	if !ok {
		return nil, ReasonUnknownCombination
	}
	return cd, ReasonNone
}

// TryResolve is Match followed by consuming the whole chain on success.
// On failure the chain is left untouched.
func (r CombinationResolver) TryResolve(st *PlayerCombatState) (*data.CombinationDefinition, RejectReason) {
	cd, reason := r.Match(st)
	if cd == nil {
		return nil, reason
	}
	r.Chain.Clear(st)
	return cd, ReasonNone
}
