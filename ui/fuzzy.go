package ui

import (
	"sort"
	"strings"
	"unicode"
)

// fuzzyMatch is a scored match against one picker row.
type fuzzyMatch struct {
	Index     int   // original index in the input slice
	Score     int   // higher is better
	Positions []int // matched rune positions, for highlighting
}

// fuzzyFilter ranks items against pattern, best first. An empty pattern
// returns everything in original order with zero scores.
func fuzzyFilter(pattern string, items []string) []fuzzyMatch {
	if pattern == "" {
		out := make([]fuzzyMatch, len(items))
		for i := range items {
			out[i] = fuzzyMatch{Index: i}
		}
		return out
	}

	var out []fuzzyMatch
	for i, item := range items {
		score, positions := fuzzyScore(pattern, item)
		if score > 0 {
			out = append(out, fuzzyMatch{Index: i, Score: score, Positions: positions})
		}
	}
	sort.SliceStable(out, func(a, b int) bool {
		if out[a].Score != out[b].Score {
			return out[a].Score > out[b].Score
		}
		return out[a].Index < out[b].Index
	})
	return out
}

// fuzzyScore matches pattern chars in order anywhere in text, preferring
// early, word-boundary, and consecutive matches. Returns 0 for no match.
func fuzzyScore(pattern, text string) (int, []int) {
	if pattern == "" || text == "" {
		return 0, nil
	}

	textRunes := []rune(text)
	lower := []rune(strings.ToLower(text))
	pat := []rune(strings.ToLower(pattern))

	positions := make([]int, 0, len(pat))
	pIdx := 0
	for i := 0; i < len(lower) && pIdx < len(pat); i++ {
		if lower[i] == pat[pIdx] {
			positions = append(positions, i)
			pIdx++
		}
	}
	if pIdx < len(pat) {
		return 0, nil
	}

	score := max(0, 40-positions[0]*2)
	for i, pos := range positions {
		if pos == 0 {
			score += 12
		} else {
			prev := textRunes[pos-1]
			if prev == ' ' || prev == '-' || prev == '.' {
				score += 8
			} else if unicode.IsLower(prev) && unicode.IsUpper(textRunes[pos]) {
				score += 6
			}
		}
		if i > 0 {
			if positions[i] == positions[i-1]+1 {
				score += 8
			} else {
				score -= 2 + (positions[i] - positions[i-1] - 1)
			}
		}
	}
	if score <= 0 {
		score = 1
	}
	return score, positions
}
