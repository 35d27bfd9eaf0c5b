package shortlist

import "testing"

func TestSummarize(t *testing.T) {
	results, _ := Rank([]*CandidateAnalysis{
		analysisWithScores("excellent", 90, 80, 70, 60, 50), // 80.0
		analysisWithScores("average", 50, 50, 50, 50, 50),   // 50.0
		analysisWithScores("poor", 10, 10, 10, 10, 10),      // 10.0
	})

	summary := Summarize(results)
	if !summary.HasData() {
		t.Fatalf("expected summary to have data")
	}

	if summary.Count != 3 {
		t.Fatalf("expected count 3, got %d", summary.Count)
	}

	if summary.Average != 46.7 {
		t.Fatalf("expected average 46.7, got %v", summary.Average)
	}

	if summary.Max != 80.0 || summary.Min != 10.0 {
		t.Fatalf("unexpected max/min: %v/%v", summary.Max, summary.Min)
	}

	expected := map[Band]int{
		BandExcellent: 1,
		BandGood:      0,
		BandAverage:   1,
		BandPoor:      1,
	}
	for band, count := range expected {
		if summary.ByBand[band] != count {
			t.Fatalf("expected %d in band %s, got %d", count, band, summary.ByBand[band])
		}
	}
}

func TestSummarizeEmptyInputReturnsSentinel(t *testing.T) {
	summary := Summarize(nil)
	if summary.HasData() {
		t.Fatalf("expected no-data sentinel for empty input")
	}

	if summary.Count != 0 {
		t.Fatalf("expected count 0, got %d", summary.Count)
	}

	// All bands still present so the display can render zero rows.
	for _, band := range Bands {
		if _, ok := summary.ByBand[band]; !ok {
			t.Fatalf("expected band %s to be present", band)
		}
	}
}

func TestSummaryHasDataNilReceiver(t *testing.T) {
	var summary *Summary
	if summary.HasData() {
		t.Fatalf("nil summary must report no data")
	}
}
