package shortlist

import "math"

// Summary aggregates statistics over a ranked result set. A zero Count marks
// the "no data" sentinel: Average, Max and Min are meaningless then and the
// presentation layer is expected to render a placeholder instead.
type Summary struct {
	Count   int
	Average float64
	Max     float64
	Min     float64
	ByBand  map[Band]int
}

// HasData reports whether the summary was computed from at least one result.
func (s *Summary) HasData() bool {
	return s != nil && s.Count > 0
}

// Summarize computes average, max, min and per-band counts over the provided
// results. An empty input yields the sentinel summary rather than an error so
// downstream display still renders gracefully.
func Summarize(results []*RankedResult) *Summary {
	summary := &Summary{ByBand: make(map[Band]int, len(Bands))}
	for _, band := range Bands {
		summary.ByBand[band] = 0
	}

	if len(results) == 0 {
		return summary
	}

	var total float64
	max := math.Inf(-1)
	min := math.Inf(1)

	for _, result := range results {
		total += result.Overall
		max = math.Max(max, result.Overall)
		min = math.Min(min, result.Overall)
		summary.ByBand[BandFor(result.Overall)]++
	}

	summary.Count = len(results)
	summary.Average = math.Round(total/float64(len(results))*10) / 10
	summary.Max = max
	summary.Min = min

	return summary
}
