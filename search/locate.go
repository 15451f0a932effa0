package search

import "unicode"

// Positions holds, for each query rune, the rune index in the target where it matched.
// Indexes are strictly increasing.
type Positions []int

// normalize lower-cases s rune by rune, so the result stays index-aligned with []rune(s)
func normalize(s string) []rune {
	runes := []rune(s)
	for i, r := range runes {
		runes[i] = unicode.ToLower(r)
	}
	return runes
}

// Locate finds query inside target as an ordered, case-insensitive subsequence.
// Each query rune takes the leftmost target rune after the previous match. Returns false unless every query rune matched.
// An empty query never matches.
func Locate(query, target string) (Positions, bool) {
	return locate(normalize(query), normalize(target))
}

func locate(query, target []rune) (Positions, bool) {
	if len(query) == 0 || len(query) > len(target) {
		return nil, false
	}
	positions := make(Positions, 0, len(query))
	cursor := 0
	for i, q := range query {
		if len(target)-cursor < len(query)-i {
			// not enough target left for the rest of the query
			return nil, false
		}
		found := -1
		for j := cursor; j < len(target); j++ {
			if target[j] == q {
				found = j
				break
			}
		}
		if found < 0 {
			return nil, false
		}
		positions = append(positions, found)
		cursor = found + 1
	}
	return positions, true
}
