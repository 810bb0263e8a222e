package editor

import (
	"github.com/drake/armory/defs"
	"github.com/drake/armory/loadout"
)

// Action is the closed set of editor transitions. Every variant has a
// defined transition in Reducer.Apply; the marker method keeps the union
// closed so a type switch over it is exhaustive by construction.
type Action interface {
	isAction()
}

// ChangeCharacter switches the character context. Pins and exclusions are
// per-character choices and are cleared so they never leak across.
type ChangeCharacter struct {
	CharacterID string
}

// PinItem pins an item into its slot, displacing any exclusions there.
type PinItem struct {
	Item Item
}

// SetPinnedItems rebuilds the whole pin map from the given items, keyed by
// each item's slot, and clears all exclusions.
type SetPinnedItems struct {
	Items []Item
}

// UnpinItem clears the pin in the item's slot.
type UnpinItem struct {
	Item Item
}

// ExcludeItem adds an item to its slot's exclusion list, displacing any pin
// there. Excluding an already-excluded item is a no-op.
type ExcludeItem struct {
	Item Item
}

// UnexcludeItem removes an item from its slot's exclusion list.
type UnexcludeItem struct {
	Item Item
}

// ChangeLockedMods replaces the locked mod list wholesale.
type ChangeLockedMods struct {
	ModHashes []loadout.Hash
}

// AddGeneralMods appends mods to the locked list, holding the
// general-category count at its cap. Mods over the cap are dropped and
// reported; the rest still apply.
type AddGeneralMods struct {
	ModHashes []loadout.Hash
}

// RemoveLockedMod removes the first matching entry from the locked mod list.
type RemoveLockedMod struct {
	ModHash loadout.Hash
}

// LockExotic sets the locked-exotic parameter.
type LockExotic struct {
	ExoticHash loadout.Hash
}

// UnlockExotic clears the locked-exotic parameter.
type UnlockExotic struct{}

// SetAssumeMasterwork sets the masterwork assumption; empty clears it.
type SetAssumeMasterwork struct {
	Value string
}

// SetLockEnergyType sets the armor energy lock; empty clears it.
type SetLockEnergyType struct {
	Value string
}

// OpenModPicker opens the mod picker, optionally restricted to categories.
type OpenModPicker struct {
	CategoryWhitelist []defs.ModCategory
}

// CloseModPicker closes the mod picker and drops its category filter.
type CloseModPicker struct{}

// OpenCompare holds a result set open for side-by-side comparison.
type OpenCompare struct {
	Set CompareSet
}

// CloseCompare drops the comparison set.
type CloseCompare struct{}

// SetStatFilters replaces the stat filter map wholesale.
type SetStatFilters struct {
	Filters map[loadout.Hash]StatFilter
}

// SetStatOrder replaces the stat priority order wholesale.
type SetStatOrder struct {
	Order []loadout.Hash
}

// SetQuery updates the free-text search query parameter.
type SetQuery struct {
	Query string
}

// SetNotes updates the loadout notes.
type SetNotes struct {
	Notes string
}

// UpdateSubclass, RemoveSubclass, UpdateSocketOverride and
// RemoveSocketOverride are defined but inert: subclass editing is deferred
// pending product direction, and the transitions pass state through
// unchanged.
type UpdateSubclass struct {
	Hash loadout.Hash
}

// RemoveSubclass removes the subclass placement. Inert; see UpdateSubclass.
type RemoveSubclass struct{}

// UpdateSocketOverride sets one subclass socket choice. Inert; see
// UpdateSubclass.
type UpdateSocketOverride struct {
	SocketIndex int
	PlugHash    loadout.Hash
}

// RemoveSocketOverride clears one subclass socket choice. Inert; see
// UpdateSubclass.
type RemoveSocketOverride struct {
	SocketIndex int
}

func (ChangeCharacter) isAction()      {}
func (PinItem) isAction()              {}
func (SetPinnedItems) isAction()       {}
func (UnpinItem) isAction()            {}
func (ExcludeItem) isAction()          {}
func (UnexcludeItem) isAction()        {}
func (ChangeLockedMods) isAction()     {}
func (AddGeneralMods) isAction()       {}
func (RemoveLockedMod) isAction()      {}
func (LockExotic) isAction()           {}
func (UnlockExotic) isAction()         {}
func (SetAssumeMasterwork) isAction()  {}
func (SetLockEnergyType) isAction()    {}
func (OpenModPicker) isAction()        {}
func (CloseModPicker) isAction()       {}
func (OpenCompare) isAction()          {}
func (CloseCompare) isAction()         {}
func (SetStatFilters) isAction()       {}
func (SetStatOrder) isAction()         {}
func (SetQuery) isAction()             {}
func (SetNotes) isAction()             {}
func (UpdateSubclass) isAction()       {}
func (RemoveSubclass) isAction()       {}
func (UpdateSocketOverride) isAction() {}
func (RemoveSocketOverride) isAction() {}
