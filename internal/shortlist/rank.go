package shortlist

import (
	"math"
	"sort"
)

// Category weights for the overall score. They sum to 1.0.
const (
	WeightTechnical  = 0.40
	WeightExperience = 0.25
	WeightEducation  = 0.15
	WeightIndustry   = 0.10
	WeightAdditional = 0.10
)

// Band classifies an overall score into a named quality tier.
type Band string

const (
	BandExcellent Band = "Excellent"
	BandGood      Band = "Good"
	BandAverage   Band = "Average"
	BandPoor      Band = "Poor"
)

// Bands lists all bands from best to worst.
var Bands = []Band{BandExcellent, BandGood, BandAverage, BandPoor}

// BandFor maps an overall score to its band. Boundaries are inclusive on the
// lower edge: exactly 80 is Excellent, exactly 60 is Good, exactly 40 is Average.
func BandFor(score float64) Band {
	switch {
	case score >= 80:
		return BandExcellent
	case score >= 60:
		return BandGood
	case score >= 40:
		return BandAverage
	default:
		return BandPoor
	}
}

// ComputeScore returns the weighted overall score of a candidate, rounded to
// one decimal place. Out-of-range sub-scores are clamped to [0,100] first: the
// upstream model occasionally emits values outside the requested range and
// clamping keeps one bad field from poisoning the whole candidate.
func ComputeScore(a *CandidateAnalysis) float64 {
	s := a.Scores
	total := clamp(s.Technical)*WeightTechnical +
		clamp(s.Experience)*WeightExperience +
		clamp(s.Education)*WeightEducation +
		clamp(s.Industry)*WeightIndustry +
		clamp(s.Additional)*WeightAdditional

	return clamp(math.Round(total*10) / 10)
}

// Validate checks that every sub-score of the analysis is a finite number.
// It returns a *ValidationError naming the first offending field, or nil.
func Validate(a *CandidateAnalysis) error {
	fields := []struct {
		name  string
		value float64
	}{
		{"technical", a.Scores.Technical},
		{"experience", a.Scores.Experience},
		{"education", a.Scores.Education},
		{"industry", a.Scores.Industry},
		{"additional", a.Scores.Additional},
	}

	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return &ValidationError{Candidate: a.Candidate, Field: f.name, Value: f.value}
		}
	}

	return nil
}

// Rank computes the overall score for every analysis and orders them best
// first. The sort is stable: candidates with equal scores keep their input
// order, so the first-seen candidate gets the lower rank number. Analyses that
// fail validation are skipped and reported in the second return value; the
// rest of the batch is unaffected. Ranking is deterministic for identical
// input.
func Rank(analyses []*CandidateAnalysis) ([]*RankedResult, []error) {
	results := make([]*RankedResult, 0, len(analyses))
	var skipped []error

	for _, analysis := range analyses {
		if err := Validate(analysis); err != nil {
			skipped = append(skipped, err)
			continue
		}

		results = append(results, &RankedResult{
			CandidateAnalysis: analysis,
			Overall:           ComputeScore(analysis),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Overall > results[j].Overall
	})

	for i, result := range results {
		result.Rank = i + 1
	}

	return results, skipped
}

// ApplyMinScore drops results below the threshold while preserving the ranks
// assigned by Rank. A non-positive threshold keeps everything.
func ApplyMinScore(results []*RankedResult, min float64) []*RankedResult {
	if min <= 0 {
		return results
	}

	kept := make([]*RankedResult, 0, len(results))
	for _, result := range results {
		if result.Overall >= min {
			kept = append(kept, result)
		}
	}

	return kept
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}
