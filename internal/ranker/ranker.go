// Package ranker turns raw per-label similarity scores into an ordered top-K result.
package ranker

import (
	"sort"

	"github.com/phototag/phototag-go/internal/errors"
)

// ScoredLabel pairs a label with its confidence.
type ScoredLabel struct {
	Label      string
	Confidence float64
}

// Rank orders candidate labels by descending score and returns the top K.
// Exact ties are broken by the candidate's position in the request order, so
// repeated runs over the same input always produce the same result. Candidates
// missing from the score mapping are ignored.
func Rank(candidates []string, scores map[string]float64, topK int) ([]ScoredLabel, error) {
	if topK < 1 {
		return nil, errors.Newf("top_k must be at least 1, got %d", topK).
			Component("ranker").
			Category(errors.CategoryValidation).
			Build()
	}
	if len(candidates) == 0 {
		return nil, errors.Newf("no candidate labels to rank").
			Component("ranker").
			Category(errors.CategoryValidation).
			Build()
	}
	if len(scores) == 0 {
		return nil, errors.Newf("empty score mapping").
			Component("ranker").
			Category(errors.CategoryValidation).
			Build()
	}

	// Build results in candidate order so the stable sort preserves it on ties.
	results := make([]ScoredLabel, 0, len(candidates))
	for _, label := range candidates {
		score, ok := scores[label]
		if !ok {
			continue
		}
		results = append(results, ScoredLabel{Label: label, Confidence: score})
	}
	if len(results) == 0 {
		return nil, errors.Newf("score mapping covers none of the candidate labels").
			Component("ranker").
			Category(errors.CategoryValidation).
			Build()
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Confidence > results[j].Confidence
	})

	return trimResultsToMax(results, topK), nil
}

// trimResultsToMax limits results to the maximum count.
func trimResultsToMax(results []ScoredLabel, maxResults int) []ScoredLabel {
	if len(results) > maxResults {
		return results[:maxResults]
	}
	return results
}
