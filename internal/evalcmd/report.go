package evalcmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lehigh-university-libraries/entryeval/internal/eval/evaluator"
	"github.com/lehigh-university-libraries/entryeval/internal/eval/results"
	"github.com/lehigh-university-libraries/entryeval/internal/eval/summary"
)

// loadResults reads an evaluation table written by eval run.
func loadResults(path string) ([]evaluator.Row, error) {
	if strings.ToLower(filepath.Ext(path)) == ".parquet" {
		return results.ReadParquet(path)
	}
	return results.ReadCSV(path)
}

func executeSummary(w io.Writer, resultsPath, output string) error {
	rows, err := loadResults(resultsPath)
	if err != nil {
		return fmt.Errorf("failed to load results: %w", err)
	}

	sum := summary.Summarize(rows)
	if output == "" {
		sum.Print(w)
		return nil
	}

	file, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create summary file: %w", err)
	}
	defer file.Close()

	sum.Print(file)
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to write summary file: %w", err)
	}
	fmt.Fprintf(w, "Summary saved to: %s\n", output)
	return nil
}
