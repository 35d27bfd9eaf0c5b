package report

import (
	"fmt"
	"os"

	"github.com/ksergeev/resume-shortlister/internal/shortlist"
)

// DefaultExportFile is used when no export path is configured.
const DefaultExportFile = "shortlist_results.txt"

// Export writes the report to a text file, creating or truncating it. The
// detailed rankings come first and the summary statistics close the file.
func Export(path string, results []*shortlist.RankedResult, summary *shortlist.Summary) error {
	if path == "" {
		path = DefaultExportFile
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer file.Close()

	Rankings(file, results)
	fmt.Fprintln(file)
	SummaryTable(file, results)
	fmt.Fprintln(file)
	Distribution(file, summary)

	return nil
}
