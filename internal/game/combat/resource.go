package combat

// ResourcePool authorizes and deducts mana. Mana always stays in [0, max].
type ResourcePool struct{}

// CanAfford reports whether amount can be spent without mutating state.
func (ResourcePool) CanAfford(st *PlayerCombatState, amount int) bool {
	return amount <= st.currentMana
}

// TryConsume deducts amount if the player has enough mana.
// No partial spends: on false nothing changed.
func (p ResourcePool) TryConsume(st *PlayerCombatState, amount int) bool {
	if amount < 0 || !p.CanAfford(st, amount) {
		return false
	}
	st.currentMana -= amount
	return true
}

// Restore adds mana (regeneration, potions) clamped at max.
// Returns the amount actually restored.
func (ResourcePool) Restore(st *PlayerCombatState, amount int) int {
	if amount <= 0 {
		return 0
	}
	before := st.currentMana
	st.currentMana = min(st.currentMana+amount, st.maxMana)
	return st.currentMana - before
}
