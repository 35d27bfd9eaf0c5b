package shortlist

import (
	"math"
	"testing"
)

func analysisWithScores(name string, technical, experience, education, industry, additional float64) *CandidateAnalysis {
	return &CandidateAnalysis{
		Candidate: name,
		Scores: SubScores{
			Technical:  technical,
			Experience: experience,
			Education:  education,
			Industry:   industry,
			Additional: additional,
		},
	}
}

func TestComputeScoreWeightedSum(t *testing.T) {
	// 90*0.4 + 80*0.25 + 70*0.15 + 60*0.1 + 50*0.1 = 80.0
	analysis := analysisWithScores("Alice", 90, 80, 70, 60, 50)
	if got := ComputeScore(analysis); got != 80.0 {
		t.Fatalf("expected 80.0, got %v", got)
	}

	flat := analysisWithScores("Bob", 50, 50, 50, 50, 50)
	if got := ComputeScore(flat); got != 50.0 {
		t.Fatalf("expected 50.0, got %v", got)
	}
}

func TestComputeScoreClampsOutOfRangeInputs(t *testing.T) {
	tests := []struct {
		name     string
		analysis *CandidateAnalysis
	}{
		{"all above range", analysisWithScores("a", 150, 200, 120, 101, 999)},
		{"all below range", analysisWithScores("b", -10, -200, -1, -0.5, -99)},
		{"mixed", analysisWithScores("c", 150, -20, 50, 101, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeScore(tt.analysis)
			if got < 0 || got > 100 {
				t.Fatalf("score out of range after clamping: %v", got)
			}
		})
	}

	maxed := analysisWithScores("max", 500, 500, 500, 500, 500)
	if got := ComputeScore(maxed); got != 100.0 {
		t.Fatalf("expected clamped maximum 100.0, got %v", got)
	}
}

func TestComputeScoreRoundsToOneDecimal(t *testing.T) {
	analysis := analysisWithScores("r", 33, 33, 33, 33, 33)
	got := ComputeScore(analysis)
	if got != 33.0 {
		t.Fatalf("expected 33.0, got %v", got)
	}

	uneven := analysisWithScores("u", 77, 63, 51, 49, 88)
	got = ComputeScore(uneven)
	if got != math.Round(got*10)/10 {
		t.Fatalf("score not rounded to one decimal: %v", got)
	}
}

func TestRankOrdersDescendingWithStableTies(t *testing.T) {
	analyses := []*CandidateAnalysis{
		analysisWithScores("first-seen", 50, 50, 50, 50, 50),
		analysisWithScores("top", 90, 80, 70, 60, 50),
		analysisWithScores("second-seen", 50, 50, 50, 50, 50),
	}

	results, skipped := Rank(analyses)
	if len(skipped) != 0 {
		t.Fatalf("unexpected validation errors: %v", skipped)
	}

	if len(results) != len(analyses) {
		t.Fatalf("expected %d results, got %d", len(analyses), len(results))
	}

	if results[0].Candidate != "top" || results[0].Rank != 1 || results[0].Overall != 80.0 {
		t.Fatalf("unexpected leader: %+v", results[0])
	}

	// Equal scores keep input order: first-seen ranks higher.
	if results[1].Candidate != "first-seen" || results[2].Candidate != "second-seen" {
		t.Fatalf("tie-break not stable: %s before %s", results[1].Candidate, results[2].Candidate)
	}

	for i, result := range results {
		if result.Rank != i+1 {
			t.Fatalf("expected rank %d, got %d", i+1, result.Rank)
		}
	}
}

func TestRankIsIdempotent(t *testing.T) {
	analyses := []*CandidateAnalysis{
		analysisWithScores("a", 70, 60, 50, 40, 30),
		analysisWithScores("b", 30, 40, 50, 60, 70),
		analysisWithScores("c", 70, 60, 50, 40, 30),
	}

	first, _ := Rank(analyses)
	second, _ := Rank(analyses)

	if len(first) != len(second) {
		t.Fatalf("length mismatch: %d vs %d", len(first), len(second))
	}

	for i := range first {
		if first[i].Candidate != second[i].Candidate ||
			first[i].Overall != second[i].Overall ||
			first[i].Rank != second[i].Rank {
			t.Fatalf("run mismatch at %d: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestRankEmptyInput(t *testing.T) {
	results, skipped := Rank(nil)
	if len(results) != 0 {
		t.Fatalf("expected empty results, got %d", len(results))
	}
	if len(skipped) != 0 {
		t.Fatalf("expected no validation errors, got %d", len(skipped))
	}
}

func TestRankAllowsDuplicateCandidates(t *testing.T) {
	analyses := []*CandidateAnalysis{
		analysisWithScores("dup", 80, 80, 80, 80, 80),
		analysisWithScores("dup", 20, 20, 20, 20, 20),
	}

	results, _ := Rank(analyses)
	if len(results) != 2 {
		t.Fatalf("expected duplicates to stay distinct, got %d results", len(results))
	}
}

func TestRankSkipsInvalidCandidatesOnly(t *testing.T) {
	broken := analysisWithScores("broken", math.NaN(), 50, 50, 50, 50)
	infinite := analysisWithScores("infinite", 50, 50, math.Inf(1), 50, 50)
	valid := analysisWithScores("valid", 60, 60, 60, 60, 60)

	results, skipped := Rank([]*CandidateAnalysis{broken, valid, infinite})

	if len(results) != 1 || results[0].Candidate != "valid" {
		t.Fatalf("expected only the valid candidate, got %+v", results)
	}

	if len(skipped) != 2 {
		t.Fatalf("expected 2 validation errors, got %d", len(skipped))
	}

	verr, ok := skipped[0].(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T", skipped[0])
	}
	if verr.Candidate != "broken" || verr.Field != "technical" {
		t.Fatalf("unexpected validation error: %+v", verr)
	}
}

func TestBandBoundaries(t *testing.T) {
	tests := []struct {
		score  float64
		expect Band
	}{
		{100, BandExcellent},
		{80.0, BandExcellent},
		{79.9, BandGood},
		{60.0, BandGood},
		{59.9, BandAverage},
		{40.0, BandAverage},
		{39.9, BandPoor},
		{0, BandPoor},
	}

	for _, tt := range tests {
		if got := BandFor(tt.score); got != tt.expect {
			t.Fatalf("BandFor(%v): expected %s, got %s", tt.score, tt.expect, got)
		}
	}
}

func TestApplyMinScore(t *testing.T) {
	results, _ := Rank([]*CandidateAnalysis{
		analysisWithScores("high", 90, 90, 90, 90, 90),
		analysisWithScores("low", 10, 10, 10, 10, 10),
	})

	kept := ApplyMinScore(results, 50)
	if len(kept) != 1 || kept[0].Candidate != "high" {
		t.Fatalf("expected only the high scorer, got %+v", kept)
	}

	// Ranks assigned before filtering survive.
	if kept[0].Rank != 1 {
		t.Fatalf("expected rank 1 to be preserved, got %d", kept[0].Rank)
	}

	all := ApplyMinScore(results, 0)
	if len(all) != 2 {
		t.Fatalf("expected non-positive threshold to keep everything, got %d", len(all))
	}
}
