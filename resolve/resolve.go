// Package resolve builds the one working loadout an editing session starts
// from. Candidate sources are layered with strict precedence: a loadout
// passed in directly wins outright, then a share payload, then discrete
// query parameters backed by saved per-class preferences, then hard
// defaults. Untrusted sources are sanitized on the way in; decode failures
// fall through to the next tier and surface as a single notification.
package resolve

import (
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/drake/armory/config"
	"github.com/drake/armory/defs"
	"github.com/drake/armory/loadout"
	"github.com/drake/armory/notify"
	"github.com/drake/armory/share"
)

// Query keys the resolver understands.
const (
	KeyLoadout  = "loadout"
	KeyClass    = "class"
	KeySubclass = "subclass"
	KeyParams   = "p"
	KeyNotes    = "notes"
)

// Character is one selectable character context.
type Character struct {
	ID    string
	Class loadout.Class
}

// Sources are the candidate inputs, all optional. The resolver reads nothing
// ambient: saved preferences and the query string are passed in by the
// caller at resolution time.
type Sources struct {
	Prior       *loadout.Loadout // navigated-in loadout, wins outright
	CharacterID string           // character context carried with Prior
	Query       url.Values       // current location query string
	Settings    *config.Settings // saved per-class preferences
	Characters  []Character      // characters available for selection
}

// Result is the resolved session seed. StripParams lists query keys that
// failed to decode; the caller is expected to rewrite the location bar
// without them so a reload doesn't repeat the failure.
type Result struct {
	Loadout       loadout.Loadout
	CharacterID   string
	ClassMismatch bool
	StripParams   []string
}

// Resolver derives a loadout from layered sources.
type Resolver struct {
	Defs   defs.Provider
	Notify notify.Notifier
}

// Resolve produces exactly one fully-formed loadout. It never fails: every
// decode error falls back to the next tier, and the returned loadout always
// carries a non-nil Parameters.
func (r *Resolver) Resolve(src Sources) Result {
	res := Result{}

	l, ok := r.fromPrior(src)
	if !ok {
		l, ok = r.fromShare(src, &res)
	}
	if !ok {
		l = r.fromQuery(src, &res)
	}

	if l.Parameters == nil {
		p := loadout.DefaultParameters()
		l.Parameters = &p
	}

	res.Loadout = l
	res.CharacterID, res.ClassMismatch = pickCharacter(l.Class, src)
	return res
}

// fromPrior handles tier 1: a loadout handed over directly. It is trusted
// as-is, with one augmentation: an equipped lockable exotic backfills a
// missing locked-exotic parameter.
func (r *Resolver) fromPrior(src Sources) (loadout.Loadout, bool) {
	if src.Prior == nil {
		return loadout.Loadout{}, false
	}
	l := src.Prior.Clone()
	if l.Parameters == nil {
		p := loadout.DefaultParameters()
		l.Parameters = &p
	}
	if l.Parameters.ExoticHash == 0 {
		for _, it := range l.EquippedItems() {
			d, found := r.Defs.Def(it.Hash)
			if found && d.Exotic && d.Slot.Lockable() {
				l.Parameters.ExoticHash = it.Hash
				break
			}
		}
	}
	return l, true
}

// fromShare handles tier 2: the opaque share payload. Decode failure
// notifies once, marks the key for stripping, and falls through.
func (r *Resolver) fromShare(src Sources, res *Result) (loadout.Loadout, bool) {
	payload := src.Query.Get(KeyLoadout)
	if payload == "" {
		return loadout.Loadout{}, false
	}
	l, err := share.Decode(payload)
	if err != nil {
		r.decodeFailure("Failed to import shared loadout", err)
		res.StripParams = append(res.StripParams, KeyLoadout)
		return loadout.Loadout{}, false
	}
	if l.Parameters != nil {
		p := loadout.SanitizeParameters(*l.Parameters)
		l.Parameters = &p
	}
	return l, true
}

// fromQuery handles tiers 3 and 4: discrete query parameters layered over
// saved per-class preferences layered over hard defaults.
func (r *Resolver) fromQuery(src Sources, res *Result) loadout.Loadout {
	l := loadout.Loadout{Class: loadout.ClassUnknown}

	if v := src.Query.Get(KeyClass); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			l.Class = loadout.ParseClass(n)
		}
	}

	if raw := src.Query.Get(KeySubclass); raw != "" {
		if item, err := parseSubclass(raw); err != nil {
			r.decodeFailure("Failed to parse subclass parameter", err)
			res.StripParams = append(res.StripParams, KeySubclass)
		} else {
			l.Items = append(l.Items, item)
		}
	}

	params := loadout.DefaultParameters()
	if saved, ok := src.Settings.ParametersFor(l.Class); ok {
		params = loadout.MergeParameters(params, saved)
	}
	if raw := src.Query.Get(KeyParams); raw != "" {
		if patch, err := parseParameters(raw); err != nil {
			r.decodeFailure("Failed to parse loadout parameters", err)
			res.StripParams = append(res.StripParams, KeyParams)
		} else {
			params = loadout.MergeParameters(params, loadout.SanitizeParameters(patch))
		}
	}
	l.Parameters = &params

	l.Notes = src.Query.Get(KeyNotes)

	// A locked exotic is class-bound, so it can stand in for a missing
	// class hint.
	if l.Class == loadout.ClassUnknown && params.ExoticHash != 0 {
		if d, found := r.Defs.Def(params.ExoticHash); found && d.Class != loadout.ClassUnknown {
			l.Class = d.Class
		}
	}

	return l
}

func (r *Resolver) decodeFailure(title string, err error) {
	r.Notify.Notify(notify.Notice{
		Severity: notify.Error,
		Title:    title,
		Body:     err.Error(),
	})
}

func parseParameters(raw string) (loadout.Parameters, error) {
	var p loadout.Parameters
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return loadout.Parameters{}, err
	}
	return p, nil
}

// subclassDescriptor is the JSON shape of the subclass query parameter.
type subclassDescriptor struct {
	Hash            loadout.Hash         `json:"hash"`
	SocketOverrides map[int]loadout.Hash `json:"socketOverrides,omitempty"`
}

func parseSubclass(raw string) (loadout.Item, error) {
	var d subclassDescriptor
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return loadout.Item{}, err
	}
	return loadout.Item{
		Hash:            d.Hash,
		Equip:           true,
		SocketOverrides: d.SocketOverrides,
	}, nil
}

// pickCharacter selects the character context for the session. The passed-in
// character wins when it exists and matches the loadout's class; otherwise
// the first class match is used. When the class has no match at all the
// first character is substituted and the mismatch is reported explicitly
// rather than papered over.
func pickCharacter(class loadout.Class, src Sources) (string, bool) {
	if len(src.Characters) == 0 {
		return src.CharacterID, false
	}

	var fallback *Character
	for i := range src.Characters {
		c := src.Characters[i]
		if class == loadout.ClassUnknown || c.Class == class {
			if c.ID == src.CharacterID {
				return c.ID, false
			}
			if fallback == nil {
				fallback = &src.Characters[i]
			}
		}
	}
	if fallback != nil {
		return fallback.ID, false
	}

	// No character of the requested class exists. Substitute the navigated
	// character when valid, else the first one, and say so.
	for _, c := range src.Characters {
		if c.ID == src.CharacterID {
			return c.ID, true
		}
	}
	return src.Characters[0].ID, true
}
