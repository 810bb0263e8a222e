package filter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/drake/armory/defs"
	"github.com/drake/armory/loadout"
)

var testItems = []defs.Def{
	{Hash: 1, Name: "Celestial Visor", Kind: defs.KindArmor, Class: loadout.ClassHunter, Slot: loadout.SlotHelmet, Exotic: true},
	{Hash: 2, Name: "Shadowstep Cowl", Kind: defs.KindArmor, Class: loadout.ClassHunter, Slot: loadout.SlotHelmet},
	{Hash: 3, Name: "Bulwark Plate", Kind: defs.KindArmor, Class: loadout.ClassTitan, Slot: loadout.SlotChest},
	{Hash: 4, Name: "Mobility Mod", Kind: defs.KindMod, Class: loadout.ClassUnknown, ModCategory: defs.ModGeneral},
	{Hash: 5, Name: "Protective Light", Kind: defs.KindMod, Class: loadout.ClassUnknown, ModCategory: defs.ModCombat},
}

func hashes(ds []defs.Def) []loadout.Hash {
	out := make([]loadout.Hash, len(ds))
	for i, d := range ds {
		out[i] = d.Hash
	}
	return out
}

func TestCompileAndMatch(t *testing.T) {
	e := NewEngine()
	defer e.Close()

	cases := []struct {
		query string
		want  []loadout.Hash
	}{
		{"", []loadout.Hash{1, 2, 3, 4, 5}},
		{"is:exotic", []loadout.Hash{1}},
		{"is:armor -is:exotic", []loadout.Hash{2, 3}},
		{"slot:helmet", []loadout.Hash{1, 2}},
		{"class:titan", []loadout.Hash{3, 4, 5}}, // classless defs match any class
		{"is:mod is:general", []loadout.Hash{4}},
		{"name:cowl", []loadout.Hash{2}},
		{"visor", []loadout.Hash{1}},
		{"re:^mob.*mod$", []loadout.Hash{4}},
		{"is:armor class:hunter -slot:helmet", nil},
	}

	for _, tc := range cases {
		q, err := e.Compile(tc.query)
		if err != nil {
			t.Errorf("Compile(%q): %v", tc.query, err)
			continue
		}
		got := hashes(q.Filter(testItems))
		if len(got) != len(tc.want) {
			t.Errorf("query %q matched %v, want %v", tc.query, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("query %q matched %v, want %v", tc.query, got, tc.want)
				break
			}
		}
	}
}

func TestCompileErrors(t *testing.T) {
	e := NewEngine()
	defer e.Close()

	for _, query := range []string{
		"is:nonsense",
		"class:paladin",
		"frob:nicate",
		"re:[unclosed",
		"custom:missing",
	} {
		if _, err := e.Compile(query); err == nil {
			t.Errorf("Compile(%q) succeeded, want error", query)
		}
	}
}

func TestRegexCacheReuse(t *testing.T) {
	e := NewEngine()
	defer e.Close()

	re1, err := e.compileRegex("visor$")
	if err != nil {
		t.Fatal(err)
	}
	re2, err := e.compileRegex("visor$")
	if err != nil {
		t.Fatal(err)
	}
	if re1 != re2 {
		t.Error("same pattern should come from the cache")
	}
}

func TestLuaPredicates(t *testing.T) {
	e := NewEngine()
	defer e.Close()

	script := filepath.Join(t.TempDir(), "filters.lua")
	src := `
armory.filter("pvp", function(item)
  return item.exotic and item.slot == "helmet"
end)
armory.filter("broken", function(item)
  error("user bug")
end)
`
	if err := os.WriteFile(script, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := e.LoadScript(script); err != nil {
		t.Fatalf("LoadScript: %v", err)
	}

	if len(e.Predicates()) != 2 {
		t.Errorf("predicates = %v", e.Predicates())
	}

	q, err := e.Compile("custom:pvp")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	got := hashes(q.Filter(testItems))
	if len(got) != 1 || got[0] != 1 {
		t.Errorf("custom:pvp matched %v, want [1]", got)
	}

	// A predicate that throws must not match, and must not break search.
	q, err = e.Compile("custom:broken")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if got := q.Filter(testItems); len(got) != 0 {
		t.Errorf("custom:broken matched %v, want none", got)
	}
}

func TestLoadScriptMissingFile(t *testing.T) {
	e := NewEngine()
	defer e.Close()

	if err := e.LoadScript(filepath.Join(t.TempDir(), "absent.lua")); err == nil {
		t.Error("missing script should error")
	}
}
