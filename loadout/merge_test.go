package loadout

import (
	"reflect"
	"strings"
	"testing"
)

func intp(v int) *int { return &v }

func TestSanitizeParametersDropsOverlongQuery(t *testing.T) {
	p := Parameters{Query: strings.Repeat("x", MaxQueryLength+1)}
	got := SanitizeParameters(p)
	if got.Query != "" {
		t.Errorf("query length %d survived sanitize", len(got.Query))
	}

	p.Query = strings.Repeat("x", MaxQueryLength)
	if got := SanitizeParameters(p); got.Query != p.Query {
		t.Error("query at the limit should be kept")
	}
}

func TestSanitizeParametersStripsConstraintBounds(t *testing.T) {
	p := Parameters{
		StatConstraints: []StatConstraint{
			{StatHash: 100, MinTier: intp(2), MaxTier: intp(10)},
			{StatHash: 102},
		},
	}
	got := SanitizeParameters(p)

	if len(got.StatConstraints) != 2 {
		t.Fatalf("constraints = %+v, want 2 entries", got.StatConstraints)
	}
	if got.StatConstraints[0].StatHash != 100 || got.StatConstraints[1].StatHash != 102 {
		t.Error("constraint order and hashes must be preserved")
	}
	for i, c := range got.StatConstraints {
		if c.MinTier != nil || c.MaxTier != nil {
			t.Errorf("constraint %d kept bounds: %+v", i, c)
		}
	}
}

func TestSanitizeParametersStripsAssumptions(t *testing.T) {
	p := Parameters{AssumeMasterwork: "all", LockEnergyType: "solar"}
	got := SanitizeParameters(p)
	if got.AssumeMasterwork != "" || got.LockEnergyType != "" {
		t.Errorf("assumptions survived sanitize: %+v", got)
	}
}

func TestSanitizeDoesNotMutateInput(t *testing.T) {
	p := Parameters{
		StatConstraints: []StatConstraint{{StatHash: 100, MinTier: intp(1)}},
	}
	SanitizeParameters(p)
	if p.StatConstraints[0].MinTier == nil {
		t.Error("sanitize mutated its input")
	}
}

func TestMergeParametersFieldByField(t *testing.T) {
	base := Parameters{
		Query:            "is:exotic",
		ExoticHash:       2106,
		Mods:             []Hash{1, 2},
		AssumeMasterwork: "legendary",
	}
	patch := Parameters{
		Query: "slot:helmet",
		Mods:  []Hash{3},
	}

	got := MergeParameters(base, patch)

	if got.Query != "slot:helmet" {
		t.Errorf("query = %q", got.Query)
	}
	if !reflect.DeepEqual(got.Mods, []Hash{3}) {
		t.Errorf("mods = %v, want wholesale replacement", got.Mods)
	}
	if got.ExoticHash != 2106 || got.AssumeMasterwork != "legendary" {
		t.Error("unset patch fields must keep base values")
	}
}

func TestMergeParametersEmptyPatchKeepsBase(t *testing.T) {
	base := DefaultParameters()
	got := MergeParameters(base, Parameters{})
	if !reflect.DeepEqual(got, base) {
		t.Errorf("merge with empty patch changed base: %+v", got)
	}
}

func TestDefaultParametersCoverAllStats(t *testing.T) {
	p := DefaultParameters()
	if len(p.StatConstraints) != len(DefaultStatOrder()) {
		t.Fatalf("constraints = %d, want %d", len(p.StatConstraints), len(DefaultStatOrder()))
	}
	for i, h := range DefaultStatOrder() {
		c := p.StatConstraints[i]
		if c.StatHash != h || c.MinTier != nil || c.MaxTier != nil {
			t.Errorf("constraint %d = %+v", i, c)
		}
	}
}

func TestLoadoutCloneIsDeep(t *testing.T) {
	min := 2
	l := Loadout{
		Class: ClassWarlock,
		Parameters: &Parameters{
			Mods:            []Hash{1},
			StatConstraints: []StatConstraint{{StatHash: 100, MinTier: &min}},
		},
		Items: []Item{{Hash: 3201, Equip: true, SocketOverrides: map[int]Hash{0: 7}}},
	}

	c := l.Clone()
	c.Parameters.Mods[0] = 99
	*c.Parameters.StatConstraints[0].MinTier = 9
	c.Items[0].SocketOverrides[0] = 99

	if l.Parameters.Mods[0] != 1 {
		t.Error("clone shares the mod list")
	}
	if *l.Parameters.StatConstraints[0].MinTier != 2 {
		t.Error("clone shares constraint bound pointers")
	}
	if l.Items[0].SocketOverrides[0] != 7 {
		t.Error("clone shares socket override maps")
	}
}

func TestParseClass(t *testing.T) {
	cases := []struct {
		in   int
		want Class
	}{
		{0, ClassTitan},
		{1, ClassHunter},
		{2, ClassWarlock},
		{3, ClassUnknown},
		{-1, ClassUnknown},
		{42, ClassUnknown},
	}
	for _, tc := range cases {
		if got := ParseClass(tc.in); got != tc.want {
			t.Errorf("ParseClass(%d) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestSlotLockable(t *testing.T) {
	for _, s := range LockableSlots() {
		if !s.Lockable() {
			t.Errorf("%s should be lockable", s)
		}
	}
	if SlotClassItem.Lockable() || SlotSubclass.Lockable() {
		t.Error("class item and subclass slots must not be lockable")
	}
}
