package defs

import (
	"github.com/agnivade/levenshtein"
)

// maxNameDistance is the worst levenshtein distance FindByName will accept.
// Two edits covers the typo cases worth forgiving without letting "helm"
// resolve to "harm".
const maxNameDistance = 2

// FindByName resolves a definition by display name. Matching is staged:
// exact (case-insensitive) first, then unique prefix, then closest
// levenshtein match within maxNameDistance. Returns false when nothing is
// close enough or a prefix is ambiguous.
func (l *Library) FindByName(name string) (Def, bool) {
	query := normalizeName(name)
	if query == "" {
		return Def{}, false
	}

	var prefix []Def
	for _, d := range l.All() {
		n := normalizeName(d.Name)
		if n == query {
			return d, true
		}
		if len(n) > len(query) && n[:len(query)] == query {
			prefix = append(prefix, d)
		}
	}
	if len(prefix) == 1 {
		return prefix[0], true
	}
	if len(prefix) > 1 {
		return Def{}, false
	}

	best := Def{}
	bestDist := maxNameDistance + 1
	for _, d := range l.All() {
		dist := levenshtein.ComputeDistance(query, normalizeName(d.Name))
		if dist < bestDist {
			best = d
			bestDist = dist
		}
	}
	if bestDist > maxNameDistance {
		return Def{}, false
	}
	return best, true
}
