package editor

import (
	"fmt"
	"strings"

	"github.com/drake/armory/defs"
	"github.com/drake/armory/loadout"
	"github.com/drake/armory/notify"
)

// MaxGeneralMods is the slot budget for general-category mods.
const MaxGeneralMods = 5

// Reducer applies actions to editor state. It needs definition metadata to
// classify mods and a notifier for advisory messages; neither is consulted
// outside the transitions that name them.
type Reducer struct {
	Defs   defs.Provider
	Notify notify.Notifier
}

// Apply is the transition function: given the current state and one action,
// it returns the next state. The previous state is never mutated. Every
// Action variant has a transition here; an action type outside the closed
// union is a caller bug and panics.
func (r *Reducer) Apply(s State, a Action) State {
	switch a := a.(type) {
	case ChangeCharacter:
		next := s
		next.CharacterID = a.CharacterID
		next.Pinned = nil
		next.Excluded = nil
		return next

	case PinItem:
		next := s
		pinned := clonePinned(s.Pinned)
		if pinned == nil {
			pinned = make(map[loadout.Slot]Item, 1)
		}
		pinned[a.Item.Slot] = a.Item
		next.Pinned = pinned
		next.Excluded = withoutSlot(s.Excluded, a.Item.Slot)
		return next

	case SetPinnedItems:
		next := s
		pinned := make(map[loadout.Slot]Item, len(a.Items))
		for _, it := range a.Items {
			pinned[it.Slot] = it
		}
		next.Pinned = pinned
		next.Excluded = nil
		return next

	case UnpinItem:
		next := s
		pinned := clonePinned(s.Pinned)
		delete(pinned, a.Item.Slot)
		next.Pinned = pinned
		return next

	case ExcludeItem:
		if s.IsExcluded(a.Item) {
			return s
		}
		next := s
		excluded := cloneExcluded(s.Excluded)
		if excluded == nil {
			excluded = make(map[loadout.Slot][]Item, 1)
		}
		excluded[a.Item.Slot] = append(excluded[a.Item.Slot], a.Item)
		next.Excluded = excluded
		pinned := clonePinned(s.Pinned)
		delete(pinned, a.Item.Slot)
		next.Pinned = pinned
		return next

	case UnexcludeItem:
		next := s
		excluded := cloneExcluded(s.Excluded)
		list := excluded[a.Item.Slot]
		kept := list[:0]
		for _, it := range list {
			if !it.Same(a.Item) {
				kept = append(kept, it)
			}
		}
		// Absent, not empty: downstream consumers get one falsy check.
		if len(kept) == 0 {
			delete(excluded, a.Item.Slot)
		} else {
			excluded[a.Item.Slot] = kept
		}
		next.Excluded = excluded
		return next

	case ChangeLockedMods:
		return r.withParameters(s, func(p *loadout.Parameters) {
			p.Mods = append([]loadout.Hash(nil), a.ModHashes...)
		})

	case AddGeneralMods:
		return r.addGeneralMods(s, a.ModHashes)

	case RemoveLockedMod:
		return r.withParameters(s, func(p *loadout.Parameters) {
			for i, h := range p.Mods {
				if h == a.ModHash {
					p.Mods = append(p.Mods[:i:i], p.Mods[i+1:]...)
					return
				}
			}
		})

	case LockExotic:
		return r.withParameters(s, func(p *loadout.Parameters) {
			p.ExoticHash = a.ExoticHash
		})

	case UnlockExotic:
		return r.withParameters(s, func(p *loadout.Parameters) {
			p.ExoticHash = 0
		})

	case SetAssumeMasterwork:
		return r.withParameters(s, func(p *loadout.Parameters) {
			p.AssumeMasterwork = a.Value
		})

	case SetLockEnergyType:
		return r.withParameters(s, func(p *loadout.Parameters) {
			p.LockEnergyType = a.Value
		})

	case OpenModPicker:
		next := s
		next.ModPicker = ModPickerState{
			Open:              true,
			CategoryWhitelist: append([]defs.ModCategory(nil), a.CategoryWhitelist...),
		}
		return next

	case CloseModPicker:
		next := s
		next.ModPicker = ModPickerState{}
		return next

	case OpenCompare:
		next := s
		set := a.Set
		set.Items = append([]loadout.Item(nil), a.Set.Items...)
		next.Compare = &set
		return next

	case CloseCompare:
		next := s
		next.Compare = nil
		return next

	case SetStatFilters:
		next := s
		filters := make(map[loadout.Hash]StatFilter, len(a.Filters))
		for k, v := range a.Filters {
			filters[k] = v
		}
		next.StatFilters = filters
		return r.syncConstraints(next)

	case SetStatOrder:
		next := s
		next.StatOrder = append([]loadout.Hash(nil), a.Order...)
		return r.syncConstraints(next)

	case SetQuery:
		return r.withParameters(s, func(p *loadout.Parameters) {
			p.Query = a.Query
		})

	case SetNotes:
		next := s
		l := s.Loadout.Clone()
		l.Notes = a.Notes
		next.Loadout = l
		return next

	case UpdateSubclass, RemoveSubclass, UpdateSocketOverride, RemoveSocketOverride:
		// Subclass editing is deferred; the variants exist so hosts can
		// already dispatch them, and pass state through unchanged.
		return s

	default:
		panic(fmt.Sprintf("editor: unhandled action type %T", a))
	}
}

// withParameters clones the loadout, applies fn to its parameters, and
// returns the state carrying the new loadout.
func (r *Reducer) withParameters(s State, fn func(*loadout.Parameters)) State {
	next := s
	l := s.Loadout.Clone()
	if l.Parameters == nil {
		p := loadout.DefaultParameters()
		l.Parameters = &p
	}
	fn(l.Parameters)
	next.Loadout = l
	return next
}

// addGeneralMods merges mods into the locked list without letting the
// general-category count pass MaxGeneralMods. Rejected mods are reported in
// one advisory notice by display name; accepted mods still apply.
func (r *Reducer) addGeneralMods(s State, hashes []loadout.Hash) State {
	general := 0
	if s.Loadout.Parameters != nil {
		for _, h := range s.Loadout.Parameters.Mods {
			if defs.CategoryOf(r.Defs, h) == defs.ModGeneral {
				general++
			}
		}
	}

	var accepted, rejected []loadout.Hash
	for _, h := range hashes {
		if defs.CategoryOf(r.Defs, h) == defs.ModGeneral {
			if general >= MaxGeneralMods {
				rejected = append(rejected, h)
				continue
			}
			general++
		}
		accepted = append(accepted, h)
	}

	if len(rejected) > 0 {
		names := make([]string, len(rejected))
		for i, h := range rejected {
			names[i] = defs.DisplayName(r.Defs, h)
		}
		r.Notify.Notify(notify.Notice{
			Severity: notify.Warning,
			Title:    "Too many general mods",
			Body: fmt.Sprintf("Only %d general mods can be locked at once. Not added: %s",
				MaxGeneralMods, strings.Join(names, ", ")),
		})
	}

	return r.withParameters(s, func(p *loadout.Parameters) {
		p.Mods = append(append([]loadout.Hash(nil), p.Mods...), accepted...)
	})
}

// syncConstraints rebuilds the loadout's stat constraints from the current
// order and filters, so a loadout serialized mid-session reflects what the
// user sees. Disabled stats stay in StatOrder but leave the constraints.
func (r *Reducer) syncConstraints(s State) State {
	return r.withParameters(s, func(p *loadout.Parameters) {
		var constraints []loadout.StatConstraint
		for _, h := range s.StatOrder {
			f, ok := s.StatFilters[h]
			if !ok || !f.Enabled {
				continue
			}
			c := loadout.StatConstraint{StatHash: h}
			if f.Min > 0 {
				v := f.Min
				c.MinTier = &v
			}
			if f.Max < TierMax {
				v := f.Max
				c.MaxTier = &v
			}
			constraints = append(constraints, c)
		}
		p.StatConstraints = constraints
	})
}

func withoutSlot(m map[loadout.Slot][]Item, slot loadout.Slot) map[loadout.Slot][]Item {
	if m == nil {
		return nil
	}
	if _, ok := m[slot]; !ok {
		return m
	}
	out := cloneExcluded(m)
	delete(out, slot)
	return out
}
