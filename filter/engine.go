// Package filter evaluates the free-text search query against item
// definitions. The grammar is small - is:/slot:/class:/name:/re: terms with
// optional negation - plus custom predicates the user defines in Lua, so a
// query like "is:armor -is:exotic custom:pvp" stays expressible without
// baking policy into Go.
package filter

import (
	"fmt"
	"regexp"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	glua "github.com/yuin/gopher-lua"

	"github.com/drake/armory/defs"
	"github.com/drake/armory/loadout"
)

const regexCacheSize = 100

// Engine compiles and evaluates search queries. It owns a Lua VM for custom
// predicates and an LRU cache for compiled regex terms. Not safe for
// concurrent use; the hosting event loop serializes access.
type Engine struct {
	L          *glua.LState
	regexCache *lru.Cache[string, *regexp.Regexp]
	preds      map[string]*glua.LFunction
}

// NewEngine creates an Engine with an empty predicate set.
func NewEngine() *Engine {
	cache, _ := lru.New[string, *regexp.Regexp](regexCacheSize)
	e := &Engine{
		L:          glua.NewState(),
		regexCache: cache,
		preds:      make(map[string]*glua.LFunction),
	}
	e.registerAPI()
	return e
}

// Close releases the Lua VM.
func (e *Engine) Close() {
	e.L.Close()
}

// registerAPI binds the armory namespace into the VM. User scripts call
// armory.filter(name, fn) to register predicates.
func (e *Engine) registerAPI() {
	tbl := e.L.NewTable()
	e.L.SetGlobal("armory", tbl)

	e.L.SetField(tbl, "filter", e.L.NewFunction(func(L *glua.LState) int {
		name := L.CheckString(1)
		fn := L.CheckFunction(2)
		e.preds[strings.ToLower(name)] = fn
		return 0
	}))
}

// LoadScript runs a user filter script. Predicates registered by earlier
// scripts stay; same-name registrations overwrite.
func (e *Engine) LoadScript(path string) error {
	if err := e.L.DoFile(path); err != nil {
		return fmt.Errorf("filter script: %w", err)
	}
	return nil
}

// Predicates returns the registered custom predicate names.
func (e *Engine) Predicates() []string {
	out := make([]string, 0, len(e.preds))
	for name := range e.preds {
		out = append(out, name)
	}
	return out
}

// Query is a compiled search query.
type Query struct {
	terms []term
}

type term struct {
	negate bool
	match  func(defs.Def) bool
}

// Compile parses a query string. Unknown term kinds and bad regexes are
// reported here so the host can show one error instead of silently matching
// nothing.
func (e *Engine) Compile(query string) (*Query, error) {
	q := &Query{}
	for _, raw := range strings.Fields(query) {
		neg := false
		if strings.HasPrefix(raw, "-") && len(raw) > 1 {
			neg = true
			raw = raw[1:]
		}
		m, err := e.compileTerm(strings.ToLower(raw))
		if err != nil {
			return nil, err
		}
		q.terms = append(q.terms, term{negate: neg, match: m})
	}
	return q, nil
}

func (e *Engine) compileTerm(raw string) (func(defs.Def) bool, error) {
	kind, arg, ok := strings.Cut(raw, ":")
	if !ok {
		// Bare word: substring match on the name.
		return func(d defs.Def) bool {
			return strings.Contains(strings.ToLower(d.Name), raw)
		}, nil
	}

	switch kind {
	case "is":
		return compileIs(arg)
	case "slot":
		return func(d defs.Def) bool { return d.Slot == loadout.Slot(arg) }, nil
	case "class":
		return compileClass(arg)
	case "name":
		return func(d defs.Def) bool {
			return strings.Contains(strings.ToLower(d.Name), arg)
		}, nil
	case "re":
		re, err := e.compileRegex(arg)
		if err != nil {
			return nil, err
		}
		return func(d defs.Def) bool { return re.MatchString(d.Name) }, nil
	case "custom":
		fn, found := e.preds[arg]
		if !found {
			return nil, fmt.Errorf("unknown custom filter %q", arg)
		}
		return func(d defs.Def) bool { return e.callPredicate(fn, d) }, nil
	default:
		return nil, fmt.Errorf("unknown search term %q", raw)
	}
}

func compileIs(arg string) (func(defs.Def) bool, error) {
	switch arg {
	case "exotic":
		return func(d defs.Def) bool { return d.Exotic }, nil
	case "armor":
		return func(d defs.Def) bool { return d.Kind == defs.KindArmor }, nil
	case "mod":
		return func(d defs.Def) bool { return d.Kind == defs.KindMod }, nil
	case "subclass":
		return func(d defs.Def) bool { return d.Kind == defs.KindSubclass }, nil
	case "general", "combat", "activity":
		return func(d defs.Def) bool { return d.ModCategory == defs.ModCategory(arg) }, nil
	default:
		return nil, fmt.Errorf("unknown is: filter %q", arg)
	}
}

func compileClass(arg string) (func(defs.Def) bool, error) {
	for _, c := range []loadout.Class{loadout.ClassTitan, loadout.ClassHunter, loadout.ClassWarlock} {
		if c.String() == arg {
			class := c
			return func(d defs.Def) bool {
				return d.Class == class || d.Class == loadout.ClassUnknown
			}, nil
		}
	}
	return nil, fmt.Errorf("unknown class %q", arg)
}

// compileRegex compiles case-insensitively, via the LRU cache.
func (e *Engine) compileRegex(pattern string) (*regexp.Regexp, error) {
	if re, ok := e.regexCache.Get(pattern); ok {
		return re, nil
	}
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, fmt.Errorf("bad regex %q: %v", pattern, err)
	}
	e.regexCache.Add(pattern, re)
	return re, nil
}

// callPredicate invokes a Lua predicate with an item table. A predicate that
// errors or returns a non-true value simply doesn't match; user script bugs
// must not break search.
func (e *Engine) callPredicate(fn *glua.LFunction, d defs.Def) bool {
	tbl := e.L.NewTable()
	e.L.SetField(tbl, "hash", glua.LNumber(d.Hash))
	e.L.SetField(tbl, "name", glua.LString(d.Name))
	e.L.SetField(tbl, "kind", glua.LString(string(d.Kind)))
	e.L.SetField(tbl, "class", glua.LString(d.Class.String()))
	e.L.SetField(tbl, "slot", glua.LString(string(d.Slot)))
	e.L.SetField(tbl, "exotic", glua.LBool(d.Exotic))
	e.L.SetField(tbl, "category", glua.LString(string(d.ModCategory)))

	e.L.Push(fn)
	e.L.Push(tbl)
	if err := e.L.PCall(1, 1, nil); err != nil {
		return false
	}
	ret := e.L.Get(-1)
	e.L.Pop(1)
	return glua.LVAsBool(ret)
}

// Match reports whether the definition satisfies every term. An empty query
// matches everything.
func (q *Query) Match(d defs.Def) bool {
	for _, t := range q.terms {
		if t.match(d) == t.negate {
			return false
		}
	}
	return true
}

// Filter returns the definitions matching the query, preserving order.
func (q *Query) Filter(all []defs.Def) []defs.Def {
	var out []defs.Def
	for _, d := range all {
		if q.Match(d) {
			out = append(out, d)
		}
	}
	return out
}
