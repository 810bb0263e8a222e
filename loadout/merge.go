package loadout

// MaxQueryLength is the longest search query accepted from an untrusted
// source. Anything longer is dropped outright rather than truncated, since a
// cut-off query would silently match different items.
const MaxQueryLength = 2048

// DefaultParameters returns the hard-coded base parameters every resolution
// starts from: the full stat list in default priority order, no bounds, no
// locked mods or exotic.
func DefaultParameters() Parameters {
	constraints := make([]StatConstraint, len(defaultStatOrder))
	for i, h := range defaultStatOrder {
		constraints[i] = StatConstraint{StatHash: h}
	}
	return Parameters{
		StatConstraints: constraints,
	}
}

// Stat hashes in default priority order.
var defaultStatOrder = []Hash{
	StatMobility,
	StatResilience,
	StatRecovery,
	StatDiscipline,
	StatIntellect,
	StatStrength,
}

// Character stat definition hashes.
const (
	StatMobility   Hash = 100
	StatResilience Hash = 101
	StatRecovery   Hash = 102
	StatDiscipline Hash = 103
	StatIntellect  Hash = 104
	StatStrength   Hash = 105
)

// DefaultStatOrder returns the stat hashes in default priority order.
func DefaultStatOrder() []Hash {
	return append([]Hash(nil), defaultStatOrder...)
}

// MergeParameters layers patch over base, field by field. A zero field in
// patch leaves the base value in place; a set field replaces it wholesale
// (lists are not concatenated). Neither argument is mutated.
func MergeParameters(base, patch Parameters) Parameters {
	out := base.Clone()
	if patch.StatConstraints != nil {
		out.StatConstraints = patch.Clone().StatConstraints
	}
	if patch.Query != "" {
		out.Query = patch.Query
	}
	if patch.ExoticHash != 0 {
		out.ExoticHash = patch.ExoticHash
	}
	if patch.Mods != nil {
		out.Mods = append([]Hash(nil), patch.Mods...)
	}
	if patch.AssumeMasterwork != "" {
		out.AssumeMasterwork = patch.AssumeMasterwork
	}
	if patch.LockEnergyType != "" {
		out.LockEnergyType = patch.LockEnergyType
	}
	if patch.AutoStatMods {
		out.AutoStatMods = true
	}
	return out
}

// SanitizeParameters filters a parameters object that arrived through a share
// link or URL. It never fails; it only removes what can't be trusted:
// over-long queries, stat tier bounds, and the masterwork/energy assumptions.
// The stat constraint order itself is kept. Directly passed-in loadouts are
// never sanitized - this applies to wire-sourced parameters only.
func SanitizeParameters(p Parameters) Parameters {
	out := p.Clone()
	if len(out.Query) > MaxQueryLength {
		out.Query = ""
	}
	for i := range out.StatConstraints {
		out.StatConstraints[i].MinTier = nil
		out.StatConstraints[i].MaxTier = nil
	}
	out.AssumeMasterwork = ""
	out.LockEnergyType = ""
	return out
}
