// Package defs provides read-only access to game content definitions: armor,
// mods, subclasses, and stats, addressed by manifest hash. Definitions are
// parsed out of a JSON manifest on demand and memoized in an LRU cache, so a
// large manifest never has to be decoded wholesale.
package defs

import (
	"fmt"
	"os"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/tidwall/gjson"

	"github.com/drake/armory/loadout"
)

// Kind classifies a definition.
type Kind string

const (
	KindArmor    Kind = "armor"
	KindMod      Kind = "mod"
	KindSubclass Kind = "subclass"
	KindStat     Kind = "stat"
)

// ModCategory groups mods for slotting rules. General mods are the capped
// category; everything else is uncapped here.
type ModCategory string

const (
	ModNone     ModCategory = ""
	ModGeneral  ModCategory = "general"
	ModCombat   ModCategory = "combat"
	ModActivity ModCategory = "activity"
)

// Def is the metadata for one definition hash.
type Def struct {
	Hash        loadout.Hash
	Name        string
	Kind        Kind
	Class       loadout.Class // ClassUnknown means usable by any class
	Slot        loadout.Slot
	Exotic      bool
	ModCategory ModCategory
}

// Provider is the lookup surface the resolver and editor depend on. It is
// deliberately narrow so tests can stub it with a map.
type Provider interface {
	Def(h loadout.Hash) (Def, bool)
}

const cacheSize = 512

// Library serves definitions from a raw JSON manifest. Lookups are lazy:
// a def is parsed the first time its hash is requested, then cached.
type Library struct {
	raw   []byte
	cache *lru.Cache[loadout.Hash, Def]
	all   []Def // populated by All on first use
}

// Load reads a manifest file from disk.
func Load(path string) (*Library, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return New(raw)
}

// New builds a Library over raw manifest JSON.
func New(raw []byte) (*Library, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("manifest is not valid JSON")
	}
	if !gjson.GetBytes(raw, "defs").IsArray() {
		return nil, fmt.Errorf("manifest has no defs array")
	}
	cache, _ := lru.New[loadout.Hash, Def](cacheSize)
	return &Library{raw: raw, cache: cache}, nil
}

// Def returns the definition for h, if the manifest contains it.
func (l *Library) Def(h loadout.Hash) (Def, bool) {
	if d, ok := l.cache.Get(h); ok {
		return d, true
	}
	res := gjson.GetBytes(l.raw, fmt.Sprintf("defs.#(hash==%d)", h))
	if !res.Exists() {
		return Def{}, false
	}
	d := parseDef(res)
	l.cache.Add(h, d)
	return d, true
}

// All returns every definition in manifest order. The slice is shared;
// callers must not mutate it.
func (l *Library) All() []Def {
	if l.all != nil {
		return l.all
	}
	var out []Def
	gjson.GetBytes(l.raw, "defs").ForEach(func(_, res gjson.Result) bool {
		out = append(out, parseDef(res))
		return true
	})
	l.all = out
	return out
}

// Mods returns all mod definitions, optionally restricted to the given
// categories. An empty filter returns every mod.
func (l *Library) Mods(categories ...ModCategory) []Def {
	var out []Def
	for _, d := range l.All() {
		if d.Kind != KindMod {
			continue
		}
		if len(categories) == 0 {
			out = append(out, d)
			continue
		}
		for _, c := range categories {
			if d.ModCategory == c {
				out = append(out, d)
				break
			}
		}
	}
	return out
}

// Armor returns armor definitions for a class (Unknown matches all classes).
func (l *Library) Armor(class loadout.Class) []Def {
	var out []Def
	for _, d := range l.All() {
		if d.Kind != KindArmor {
			continue
		}
		if class != loadout.ClassUnknown && d.Class != loadout.ClassUnknown && d.Class != class {
			continue
		}
		out = append(out, d)
	}
	return out
}

func parseDef(res gjson.Result) Def {
	return Def{
		Hash:        loadout.Hash(res.Get("hash").Uint()),
		Name:        res.Get("name").String(),
		Kind:        Kind(res.Get("kind").String()),
		Class:       parseClass(res.Get("class")),
		Slot:        loadout.Slot(res.Get("slot").String()),
		Exotic:      res.Get("exotic").Bool(),
		ModCategory: ModCategory(res.Get("modCategory").String()),
	}
}

func parseClass(res gjson.Result) loadout.Class {
	if !res.Exists() {
		return loadout.ClassUnknown
	}
	return loadout.ParseClass(int(res.Int()))
}

// DisplayName formats a def for user-facing text: the name when known,
// otherwise the bare hash.
func DisplayName(p Provider, h loadout.Hash) string {
	if d, ok := p.Def(h); ok && d.Name != "" {
		return d.Name
	}
	return fmt.Sprintf("#%d", h)
}

// CategoryOf is a convenience for mod-cap checks: the mod category of h, or
// ModNone when h is unknown or not a mod.
func CategoryOf(p Provider, h loadout.Hash) ModCategory {
	d, ok := p.Def(h)
	if !ok || d.Kind != KindMod {
		return ModNone
	}
	return d.ModCategory
}

// normalizeName lowercases and trims a name for comparison.
func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
