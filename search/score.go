package search

import (
	"math"

	sMath "github.com/pie-314/trx/math"
)

const (
	// gapDecay controls how quickly the gap penalty saturates
	gapDecay = 0.2
	// separatorBoundary is the word boundary feature for a match starting right after a separator
	separatorBoundary = 0.5
	// singleRuneTightness is scaled by 1/len(target) when only one rune was matched
	singleRuneTightness = 0.4
)

// Weights combines match features into a single score. Higher scores are more relevant.
type Weights struct {
	MatchRatio   float64
	FirstMatch   float64
	WordBoundary float64
	Consecutive  float64
	Compactness  float64
	GapPenalty   float64 // subtracted
	StartsWith   float64
	Length       float64
}

// DefaultWeights is the weight vector used unless one is configured. Changing it changes rankings.
var DefaultWeights = Weights{
	MatchRatio:   0.8,
	FirstMatch:   0.5,
	WordBoundary: 0.3,
	Consecutive:  0.3,
	Compactness:  0.4,
	GapPenalty:   1.0,
	StartsWith:   1.5,
	Length:       1.0,
}

// features are the individual, unweighted score components of one match
type features struct {
	matchRatio   float64
	firstMatch   float64
	wordBoundary float64
	consecutive  float64
	compactness  float64
	gapPenalty   float64
	startsWith   float64
	length       float64
}

func isSeparator(r rune) bool {
	switch r {
	case ' ', '-', '_', '/':
		return true
	}
	return false
}

// extractFeatures assumes positions is a full match of query in target
func extractFeatures(query, target []rune, positions Positions) features {
	queryLen := float64(len(query))
	targetLen := float64(len(target))
	first, last := positions[0], positions[len(positions)-1]
	span := last - first + 1

	var f features
	f.matchRatio = queryLen / targetLen
	f.firstMatch = sMath.Clamp(1-float64(first)/targetLen, 0, 1)

	switch {
	case first == 0:
		f.wordBoundary = 1
		f.startsWith = 1
	case isSeparator(target[first-1]):
		f.wordBoundary = separatorBoundary
	}

	adjacent := 0
	for i := 1; i < len(positions); i++ {
		if positions[i] == positions[i-1]+1 {
			adjacent++
		}
	}
	f.consecutive = float64(adjacent) / queryLen

	if len(positions) == 1 {
		f.compactness = singleRuneTightness / targetLen
	} else {
		f.compactness = queryLen / float64(span)
	}

	gap := sMath.MaxInt(0, span-len(query))
	f.gapPenalty = 1 - math.Exp(-gapDecay*float64(gap))

	f.length = 1 / (1 + math.Max(0, targetLen-queryLen))
	return f
}

func (w Weights) combine(f features) float64 {
	return w.MatchRatio*f.matchRatio +
		w.FirstMatch*f.firstMatch +
		w.WordBoundary*f.wordBoundary +
		w.Consecutive*f.consecutive +
		w.Compactness*f.compactness -
		w.GapPenalty*f.gapPenalty +
		w.StartsWith*f.startsWith +
		w.Length*f.length
}

// Score rates a match of query in target found by Locate, using DefaultWeights
func Score(query, target string, positions Positions) float64 {
	return DefaultWeights.Score(query, target, positions)
}

// Score rates a match of query in target found by Locate. Returns 0 for an empty query or when positions is not a full match.
func (w Weights) Score(query, target string, positions Positions) float64 {
	return w.score(normalize(query), normalize(target), positions)
}

func (w Weights) score(query, target []rune, positions Positions) float64 {
	if len(query) == 0 || len(positions) != len(query) {
		return 0
	}
	if positions[0] < 0 || positions[len(positions)-1] >= len(target) {
		return 0
	}
	return w.combine(extractFeatures(query, target, positions))
}
