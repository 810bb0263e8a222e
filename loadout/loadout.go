// Package loadout defines the user-editable build model: a class, a set of
// optional tuning parameters, free-text notes, and an ordered list of item
// placements. Values in this package are plain data - no I/O, no ambient
// state - so they can be resolved, merged, and serialized by the packages
// around them.
package loadout

// Hash is a definition identifier from the game's content manifest.
type Hash uint32

// Class identifies a character class. Unknown is a valid, resolvable state:
// the resolver leaves it in place when no source can determine a class.
type Class int

const (
	ClassTitan   Class = 0
	ClassHunter  Class = 1
	ClassWarlock Class = 2
	ClassUnknown Class = 3
)

// String returns the lowercase class name.
func (c Class) String() string {
	switch c {
	case ClassTitan:
		return "titan"
	case ClassHunter:
		return "hunter"
	case ClassWarlock:
		return "warlock"
	default:
		return "unknown"
	}
}

// ParseClass maps a query-parameter integer to a Class. Anything outside the
// known range parses as Unknown rather than failing.
func ParseClass(v int) Class {
	switch Class(v) {
	case ClassTitan, ClassHunter, ClassWarlock:
		return Class(v)
	default:
		return ClassUnknown
	}
}

// Slot is an equipment-category bucket. It keys the pin/exclude maps in the
// editor and decides which exotics are lockable.
type Slot string

const (
	SlotHelmet    Slot = "helmet"
	SlotGauntlets Slot = "gauntlets"
	SlotChest     Slot = "chest"
	SlotLegs      Slot = "legs"
	SlotClassItem Slot = "classitem"
	SlotSubclass  Slot = "subclass"
	SlotNone      Slot = ""
)

// ArmorSlots lists the five armor buckets in display order.
func ArmorSlots() []Slot {
	return []Slot{SlotHelmet, SlotGauntlets, SlotChest, SlotLegs, SlotClassItem}
}

// LockableSlots returns the buckets whose exotics may be pinned via the
// locked-exotic parameter. Class items are deliberately absent.
func LockableSlots() []Slot {
	return []Slot{SlotHelmet, SlotGauntlets, SlotChest, SlotLegs}
}

// Lockable reports whether s accepts a locked exotic.
func (s Slot) Lockable() bool {
	for _, l := range LockableSlots() {
		if s == l {
			return true
		}
	}
	return false
}

// StatConstraint is one entry of the ordered stat priority list. Bounds are
// pointers so "no bound" and "bound of zero" stay distinct across merges.
type StatConstraint struct {
	StatHash Hash `json:"statHash"`
	MinTier  *int `json:"minTier,omitempty"`
	MaxTier  *int `json:"maxTier,omitempty"`
}

// Parameters is the flat bag of optional tuning fields. Every field is
// optional on the wire; a zero field is treated as absent by MergeParameters.
type Parameters struct {
	StatConstraints  []StatConstraint `json:"statConstraints,omitempty"`
	Query            string           `json:"query,omitempty"`
	ExoticHash       Hash             `json:"exoticHash,omitempty"`
	Mods             []Hash           `json:"mods,omitempty"`
	AssumeMasterwork string           `json:"assumeMasterwork,omitempty"`
	LockEnergyType   string           `json:"lockEnergyType,omitempty"`
	AutoStatMods     bool             `json:"autoStatMods,omitempty"`
}

// Item is one placement in a loadout: a definition hash, an optional owned
// instance id, and whether the item is equipped or just carried. A subclass
// placement additionally carries per-socket plug choices.
type Item struct {
	Hash            Hash         `json:"hash"`
	ID              string       `json:"id,omitempty"`
	Equip           bool         `json:"equip,omitempty"`
	SocketOverrides map[int]Hash `json:"socketOverrides,omitempty"`
}

// Loadout is the user-editable target object. Once a Loadout leaves the
// resolver, Parameters is always non-nil - downstream merges depend on it.
type Loadout struct {
	Class      Class       `json:"class"`
	Parameters *Parameters `json:"parameters"`
	Notes      string      `json:"notes,omitempty"`
	Items      []Item      `json:"items,omitempty"`
}

// EquippedItems returns the placements flagged as equipped, in order.
func (l *Loadout) EquippedItems() []Item {
	var out []Item
	for _, it := range l.Items {
		if it.Equip {
			out = append(out, it)
		}
	}
	return out
}

// Clone returns a deep copy of the loadout. The editor relies on this to keep
// transitions copy-on-write.
func (l Loadout) Clone() Loadout {
	out := l
	if l.Parameters != nil {
		p := l.Parameters.Clone()
		out.Parameters = &p
	}
	if l.Items != nil {
		out.Items = make([]Item, len(l.Items))
		for i, it := range l.Items {
			out.Items[i] = it.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the item.
func (it Item) Clone() Item {
	out := it
	if it.SocketOverrides != nil {
		out.SocketOverrides = make(map[int]Hash, len(it.SocketOverrides))
		for k, v := range it.SocketOverrides {
			out.SocketOverrides[k] = v
		}
	}
	return out
}

// Clone returns a deep copy of the parameters.
func (p Parameters) Clone() Parameters {
	out := p
	if p.StatConstraints != nil {
		out.StatConstraints = make([]StatConstraint, len(p.StatConstraints))
		for i, sc := range p.StatConstraints {
			c := sc
			if sc.MinTier != nil {
				v := *sc.MinTier
				c.MinTier = &v
			}
			if sc.MaxTier != nil {
				v := *sc.MaxTier
				c.MaxTier = &v
			}
			out.StatConstraints[i] = c
		}
	}
	if p.Mods != nil {
		out.Mods = append([]Hash(nil), p.Mods...)
	}
	return out
}
