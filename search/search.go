package search

import (
	"math"
	"sort"
)

// NoMinScore disables score filtering in Options
var NoMinScore = math.Inf(-1)

// Options configures Rank
type Options struct {
	// MinScore drops matches scoring at or below it. The zero value drops non-positive scores.
	MinScore float64
	// Limit caps the number of results. Zero means unlimited.
	Limit int
	// Weights replaces DefaultWeights if set
	Weights *Weights
}

// Match is a ranked candidate
type Match struct {
	// Index is the candidate's position in the input to Rank
	Index     int
	Name      string
	Score     float64
	Positions Positions
}

// Rank matches every name against query and returns the matches sorted best first.
// Names that do not contain query as a subsequence are dropped. Equal scores keep their input order.
func Rank(names []string, query string, opts Options) []Match {
	weights := DefaultWeights
	if opts.Weights != nil {
		weights = *opts.Weights
	}
	queryRunes := normalize(query)
	if len(queryRunes) == 0 {
		return []Match{}
	}

	matches := make([]Match, 0, len(names))
	for i, name := range names {
		targetRunes := normalize(name)
		positions, ok := locate(queryRunes, targetRunes)
		if !ok {
			continue
		}
		score := weights.score(queryRunes, targetRunes, positions)
		if score <= opts.MinScore {
			continue
		}
		matches = append(matches, Match{
			Index:     i,
			Name:      name,
			Score:     score,
			Positions: positions,
		})
	}
	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].Score > matches[b].Score // sort scores largest to smallest
	})
	if opts.Limit > 0 && len(matches) > opts.Limit {
		matches = matches[:opts.Limit]
	}
	return matches
}

// Query returns the names matching search, best first
func Query(names []string, search string) []string {
	matches := Rank(names, search, Options{})
	results := make([]string, len(matches))
	for i, item := range matches {
		results[i] = item.Name
	}
	return results
}

// QueryIndexes returns the indexes into names of the names matching search, best first
func QueryIndexes(names []string, search string) []int {
	matches := Rank(names, search, Options{})
	results := make([]int, len(matches))
	for i, item := range matches {
		results[i] = item.Index
	}
	return results
}
