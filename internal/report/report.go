// Package report renders ranked shortlist results as console tables and text
// exports.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/ksergeev/resume-shortlister/internal/shortlist"
)

const (
	maxMatchedShown = 10
	maxMissingShown = 5
	maxNotesShown   = 3

	noDataPlaceholder = "no data"
)

// Rankings writes the detailed per-candidate breakdown, best candidate first.
func Rankings(w io.Writer, results []*shortlist.RankedResult) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No candidates to display.")
		return
	}

	fmt.Fprintln(w, "RESUME SHORTLISTING RESULTS")
	fmt.Fprintln(w, strings.Repeat("=", 80))
	fmt.Fprintf(w, "Total candidates analyzed: %d\n", len(results))
	fmt.Fprintln(w, strings.Repeat("=", 80))

	for _, result := range results {
		fmt.Fprintf(w, "\nRANK #%d\n", result.Rank)
		fmt.Fprintln(w, strings.Repeat("-", 50))
		fmt.Fprintf(w, "Candidate: %s\n", result.Candidate)
		fmt.Fprintf(w, "Matching score: %.1f%% (%s)\n", result.Overall, shortlist.BandFor(result.Overall))

		if result.Summary != "" {
			fmt.Fprintf(w, "Summary: %s\n", result.Summary)
		}

		writeList(w, "Matching skills", result.MatchedSkills, maxMatchedShown)
		writeList(w, "Missing skills", result.MissingSkills, maxMissingShown)
		writeList(w, "Key strengths", result.Strengths, maxNotesShown)
		writeList(w, "Areas for improvement", result.Weaknesses, maxNotesShown)

		fmt.Fprintln(w, strings.Repeat("-", 50))
	}
}

// SummaryTable writes a compact one-line-per-candidate table.
func SummaryTable(w io.Writer, results []*shortlist.RankedResult) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No candidates to display.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tCANDIDATE\tSCORE\tBAND\tTOP SKILLS MATCH")
	for _, result := range results {
		fmt.Fprintf(tw, "%d\t%s\t%.1f%%\t%s\t%s\n",
			result.Rank,
			result.Candidate,
			result.Overall,
			shortlist.BandFor(result.Overall),
			topSkills(result.MatchedSkills, 3),
		)
	}
	tw.Flush()
}

// Distribution writes the summary statistics block. An empty summary renders
// the no-data placeholder instead of zeros.
func Distribution(w io.Writer, summary *shortlist.Summary) {
	fmt.Fprintln(w, "SCORE DISTRIBUTION")
	fmt.Fprintln(w, strings.Repeat("=", 60))

	if !summary.HasData() {
		fmt.Fprintln(w, noDataPlaceholder)
		fmt.Fprintln(w, strings.Repeat("=", 60))
		return
	}

	fmt.Fprintf(w, "Average score: %.1f%%\n", summary.Average)
	fmt.Fprintf(w, "Highest score: %.1f%%\n", summary.Max)
	fmt.Fprintf(w, "Lowest score:  %.1f%%\n", summary.Min)

	fmt.Fprintln(w, "\nScore ranges:")
	labels := map[shortlist.Band]string{
		shortlist.BandExcellent: "Excellent (80-100%)",
		shortlist.BandGood:      "Good      (60-79%) ",
		shortlist.BandAverage:   "Average   (40-59%) ",
		shortlist.BandPoor:      "Poor      (0-39%)  ",
	}
	for _, band := range shortlist.Bands {
		fmt.Fprintf(w, "  %s: %d candidates\n", labels[band], summary.ByBand[band])
	}

	fmt.Fprintln(w, strings.Repeat("=", 60))
}

// Full writes the complete report: summary table, distribution and detailed
// rankings.
func Full(w io.Writer, results []*shortlist.RankedResult, summary *shortlist.Summary) {
	SummaryTable(w, results)
	fmt.Fprintln(w)
	Distribution(w, summary)
	Rankings(w, results)
}

func writeList(w io.Writer, title string, items []string, limit int) {
	if len(items) == 0 {
		return
	}

	fmt.Fprintf(w, "\n%s:\n", title)
	shown := items
	if len(shown) > limit {
		shown = shown[:limit]
	}
	for _, item := range shown {
		fmt.Fprintf(w, "  - %s\n", item)
	}
	if rest := len(items) - len(shown); rest > 0 {
		fmt.Fprintf(w, "  ... and %d more\n", rest)
	}
}

func topSkills(skills []string, limit int) string {
	if len(skills) == 0 {
		return "none"
	}
	if len(skills) > limit {
		skills = skills[:limit]
	}
	return strings.Join(skills, ", ")
}
