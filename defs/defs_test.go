package defs

import (
	"testing"

	"github.com/drake/armory/loadout"
)

func TestBuiltinManifestValid(t *testing.T) {
	l := Builtin()
	if len(l.All()) == 0 {
		t.Fatal("embedded manifest has no defs")
	}
}

func TestDefLookupAndCache(t *testing.T) {
	l := Builtin()

	d, ok := l.Def(2106)
	if !ok {
		t.Fatal("hash 2106 not found")
	}
	if d.Name != "Celestial Visor" || !d.Exotic || d.Class != loadout.ClassHunter || d.Slot != loadout.SlotHelmet {
		t.Errorf("def = %+v", d)
	}

	// Second lookup comes from the cache and must agree.
	d2, ok := l.Def(2106)
	if !ok || d2 != d {
		t.Errorf("cached def = %+v, want %+v", d2, d)
	}

	if _, ok := l.Def(999999); ok {
		t.Error("unknown hash should not resolve")
	}
}

func TestNewRejectsBadManifests(t *testing.T) {
	if _, err := New([]byte("{nope")); err == nil {
		t.Error("invalid JSON accepted")
	}
	if _, err := New([]byte(`{"version":1}`)); err == nil {
		t.Error("manifest without defs array accepted")
	}
}

func TestModsFilterByCategory(t *testing.T) {
	l := Builtin()

	general := l.Mods(ModGeneral)
	if len(general) == 0 {
		t.Fatal("no general mods in manifest")
	}
	for _, d := range general {
		if d.ModCategory != ModGeneral {
			t.Errorf("%s has category %q", d.Name, d.ModCategory)
		}
	}

	all := l.Mods()
	if len(all) <= len(general) {
		t.Error("unfiltered mod list should include other categories")
	}
}

func TestArmorFiltersByClass(t *testing.T) {
	l := Builtin()
	for _, d := range l.Armor(loadout.ClassTitan) {
		if d.Class != loadout.ClassTitan && d.Class != loadout.ClassUnknown {
			t.Errorf("%s is class %v", d.Name, d.Class)
		}
	}
	if len(l.Armor(loadout.ClassUnknown)) <= len(l.Armor(loadout.ClassTitan)) {
		t.Error("unknown class should match all armor")
	}
}

func TestCategoryOf(t *testing.T) {
	l := Builtin()
	if got := CategoryOf(l, 4001); got != ModGeneral {
		t.Errorf("CategoryOf(4001) = %q", got)
	}
	if got := CategoryOf(l, 2106); got != ModNone {
		t.Errorf("CategoryOf(armor) = %q, want none", got)
	}
	if got := CategoryOf(l, 999999); got != ModNone {
		t.Errorf("CategoryOf(unknown) = %q, want none", got)
	}
}

func TestDisplayName(t *testing.T) {
	l := Builtin()
	if got := DisplayName(l, 4101); got != "Concussive Dampener" {
		t.Errorf("DisplayName = %q", got)
	}
	if got := DisplayName(l, 999999); got != "#999999" {
		t.Errorf("DisplayName fallback = %q", got)
	}
}

func TestFindByName(t *testing.T) {
	l := Builtin()

	cases := []struct {
		query    string
		wantHash loadout.Hash
		wantOK   bool
	}{
		{"Celestial Visor", 2106, true},   // exact
		{"celestial visor", 2106, true},   // case-insensitive
		{"Celestial", 2106, true},         // unique prefix
		{"celestial vizor", 2106, true},   // one edit away
		{"Mobility", 100, true},           // exact beats the prefix matches
		{"zzzzzz", 0, false},              // nothing close
		{"", 0, false},                    // empty query
	}
	for _, tc := range cases {
		d, ok := l.FindByName(tc.query)
		if ok != tc.wantOK {
			t.Errorf("FindByName(%q) ok = %v, want %v", tc.query, ok, tc.wantOK)
			continue
		}
		if ok && d.Hash != tc.wantHash {
			t.Errorf("FindByName(%q) = %s (%d), want %d", tc.query, d.Name, d.Hash, tc.wantHash)
		}
	}
}
