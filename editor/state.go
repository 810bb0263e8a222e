// Package editor owns the in-session editing state for a loadout and the
// pure transition function that advances it. State values are immutable:
// every accepted action produces a new State sharing untouched substructure,
// so hosts can detect changed slices by reference identity.
package editor

import (
	"github.com/drake/armory/defs"
	"github.com/drake/armory/loadout"
)

// TierMax is the highest stat tier a filter can ask for.
const TierMax = 10

// Item is a concrete inventory item as the editor tracks it: instance id,
// definition hash, and the bucket it occupies.
type Item struct {
	ID   string
	Hash loadout.Hash
	Slot loadout.Slot
}

// Same reports whether two items refer to the same inventory item. Instanced
// items compare by id; uninstanced ones fall back to the definition hash.
func (it Item) Same(other Item) bool {
	if it.ID != "" || other.ID != "" {
		return it.ID == other.ID
	}
	return it.Hash == other.Hash
}

// StatFilter is the per-stat UI state: whether the stat participates in the
// search and its tier bounds. Consumers treat the whole map as read-only;
// the reducer replaces it wholesale on change.
type StatFilter struct {
	Enabled bool
	Min     int
	Max     int
}

// ModPickerState tracks the mod picker surface. CategoryWhitelist, when
// non-nil, restricts the picker to the given mod categories.
type ModPickerState struct {
	Open              bool
	CategoryWhitelist []defs.ModCategory
}

// CompareSet is a secondary result set held open for side-by-side
// comparison. Session scratch; never serialized.
type CompareSet struct {
	Name  string
	Items []loadout.Item
}

// State is the full session state for the editing view. It has one writer
// (the reducer, invoked serially by the host) and any number of readers.
// Loadout is the durable part; everything else is session scratch and stays
// out of share payloads and save requests.
type State struct {
	Loadout     loadout.Loadout
	StatOrder   []loadout.Hash
	StatFilters map[loadout.Hash]StatFilter
	Pinned      map[loadout.Slot]Item
	Excluded    map[loadout.Slot][]Item
	CharacterID string
	ModPicker   ModPickerState
	Compare     *CompareSet
}

// Init seeds a session from a resolved loadout. statOrder is the saved
// per-class order and must include stats the user has disabled; enabled
// stats keep the constraint order from the loadout itself, disabled ones
// follow in saved order.
func Init(l loadout.Loadout, characterID string, statOrder []loadout.Hash) State {
	if l.Parameters == nil {
		p := loadout.DefaultParameters()
		l.Parameters = &p
	}

	filters := make(map[loadout.Hash]StatFilter)
	var order []loadout.Hash
	for _, c := range l.Parameters.StatConstraints {
		f := StatFilter{Enabled: true, Min: 0, Max: TierMax}
		if c.MinTier != nil {
			f.Min = *c.MinTier
		}
		if c.MaxTier != nil {
			f.Max = *c.MaxTier
		}
		filters[c.StatHash] = f
		order = append(order, c.StatHash)
	}
	for _, h := range statOrder {
		if _, ok := filters[h]; ok {
			continue
		}
		filters[h] = StatFilter{Enabled: false, Min: 0, Max: TierMax}
		order = append(order, h)
	}

	return State{
		Loadout:     l,
		StatOrder:   order,
		StatFilters: filters,
		CharacterID: characterID,
	}
}

// ExcludedIn returns the exclusion list for a slot; nil means none. The
// state never stores an empty list - a slot with no exclusions is absent.
func (s State) ExcludedIn(slot loadout.Slot) []Item {
	return s.Excluded[slot]
}

// IsExcluded reports whether the item is excluded in its slot.
func (s State) IsExcluded(it Item) bool {
	for _, e := range s.Excluded[it.Slot] {
		if e.Same(it) {
			return true
		}
	}
	return false
}

func clonePinned(m map[loadout.Slot]Item) map[loadout.Slot]Item {
	if m == nil {
		return nil
	}
	out := make(map[loadout.Slot]Item, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneExcluded(m map[loadout.Slot][]Item) map[loadout.Slot][]Item {
	if m == nil {
		return nil
	}
	out := make(map[loadout.Slot][]Item, len(m))
	for k, v := range m {
		out[k] = append([]Item(nil), v...)
	}
	return out
}
