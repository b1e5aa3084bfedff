package evalcmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/lehigh-university-libraries/entryeval/internal/models"
	"github.com/spf13/cobra"
)

// NewInspectCmd creates the inspect command
func NewInspectCmd() *cobra.Command {
	var resultsPath string
	var row int
	var limit int
	var interactive bool

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Inspect evaluated rows field by field",
		Long: `Inspect rows of an evaluation table.

Each field is shown with the entered and ground-truth values, its scores and
the edit distance between the two, which makes it easy to see why a record
scored low.`,
		Example: `  # Inspect the row at position 12 (0-based)
  entryeval eval inspect --results data/evaluation_results.csv --row 12

  # Step through the first 20 rows
  entryeval eval inspect --results data/evaluation_results.csv --limit 20 --interactive`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Create a context that gets canceled on an interrupt signal (Ctrl+C)
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return executeInspect(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), resultsPath, row, limit, interactive)
		},
	}

	cmd.Flags().StringVar(&resultsPath, "results", "data/evaluation_results.csv", "Evaluation table (.csv or .parquet)")
	cmd.Flags().IntVar(&row, "row", -1, "0-based position of a single row to show")
	cmd.Flags().IntVar(&limit, "limit", 10, "Number of rows to show when --row is not set (0 for all)")
	cmd.Flags().BoolVar(&interactive, "interactive", false, "Pause after each row (press Enter to continue)")

	return cmd
}

func executeInspect(ctx context.Context, in io.Reader, w io.Writer, resultsPath string, row, limit int, interactive bool) error {
	rows, err := loadResults(resultsPath)
	if err != nil {
		return fmt.Errorf("failed to load results: %w", err)
	}

	start, end := 0, len(rows)
	if row >= 0 {
		if row >= len(rows) {
			return fmt.Errorf("row %d out of range: %s has %d rows", row, resultsPath, len(rows))
		}
		start, end = row, row+1
	} else if limit > 0 && limit < end {
		end = limit
	}

	fmt.Fprintf(w, "Loaded %d rows from %s\n", len(rows), resultsPath)
	fmt.Fprintln(w, strings.Repeat("=", 80))
	fmt.Fprintln(w)

	reader := bufio.NewReader(in)

	for i := start; i < end; i++ {
		select {
		case <-ctx.Done():
			fmt.Fprintln(w, "\nInspection interrupted.")
			return nil
		default:
		}

		printRowDetail(w, models.NewRowDetail(0, i, &rows[i]), len(rows))

		if !interactive || i == end-1 {
			fmt.Fprintln(w)
			continue
		}

		fmt.Fprint(w, "Press Enter to continue to next row (or Ctrl+C to quit)...")
		inputCh := make(chan struct{})
		go func() {
			_, _ = reader.ReadString('\n')
			close(inputCh)
		}()

		select {
		case <-ctx.Done():
			fmt.Fprintln(w, "\nInspection interrupted.")
			return nil
		case <-inputCh:
			fmt.Fprintln(w)
		}
	}

	return nil
}

func printRowDetail(w io.Writer, d models.RowDetail, total int) {
	fmt.Fprintf(w, "ROW %d (of %d)\n", d.Position, total)
	fmt.Fprintln(w, strings.Repeat("-", 80))
	fmt.Fprintf(w, "Image ID:       %s\n", d.ImageID)
	if d.Method != "" {
		fmt.Fprintf(w, "Matched by:     %s\n", d.Method)
	}
	fmt.Fprintf(w, "Document date:  %s\n", d.DocDate)
	fmt.Fprintf(w, "Overall:        accuracy %.2f%%  CER %.2f%%  WER %.2f%%\n",
		d.Overall.Accuracy, d.Overall.CER, d.Overall.WER)
	fmt.Fprintln(w)

	for _, f := range d.Fields {
		fmt.Fprintf(w, "%s\n", f.Field)
		fmt.Fprintf(w, "  Entered:      %s\n", f.Actual)
		fmt.Fprintf(w, "  Ground truth: %s\n", f.Predicted)
		fmt.Fprintf(w, "  Accuracy %.2f%%  CER %.2f%%  WER %.2f%%  edit distance %d\n",
			f.Accuracy, f.CER, f.WER, f.EditDistance)
	}
	fmt.Fprintln(w, strings.Repeat("-", 80))
}
