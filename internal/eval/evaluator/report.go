package evaluator

import (
	"fmt"
	"io"
	"strings"

	"github.com/lehigh-university-libraries/entryeval/internal/eval/matcher"
)

// PrintReport writes the matching statistics and per-field means of the run.
func (r *Run) PrintReport(w io.Writer) {
	rule := strings.Repeat("=", 80)

	if r.Diagnostic != nil {
		fmt.Fprintln(w, "\n"+rule)
		fmt.Fprintln(w, "WARNING: No matching records found between entered data and ground truth!")
		fmt.Fprintln(w, rule)
		fmt.Fprintln(w, "\nRecord Matching Summary:")
		fmt.Fprintf(w, "  Total entered records: %d\n", r.Diagnostic.Total)
		fmt.Fprintf(w, "  Ground truth records: %d\n", r.Diagnostic.GroundTruthRows)
		fmt.Fprintln(w, "  Matched with ground truth: 0")
		fmt.Fprintf(w, "  No match found: %d\n", r.Diagnostic.Total)
		fmt.Fprintln(w, "\nPossible reasons:")
		for i, reason := range r.Diagnostic.Reasons {
			fmt.Fprintf(w, "  %d. %s\n", i+1, reason)
		}
		return
	}

	fmt.Fprintln(w, "\n"+rule)
	fmt.Fprintln(w, "EVALUATION REPORT SUMMARY")
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "Record Matching Summary:")
	fmt.Fprintf(w, "  Total entered records: %d\n", r.Stats.Total)
	fmt.Fprintf(w, "  Matched with ground truth: %d\n", r.Stats.Matched)
	for _, m := range matcher.Methods {
		fmt.Fprintf(w, "    by %s: %d\n", m, r.Stats.ByMethod[m])
	}
	fmt.Fprintf(w, "  No match found: %d\n", r.Stats.Unmatched)
	fmt.Fprintf(w, "  Match rate: %.2f%%\n", r.Stats.MatchRate)

	n := float64(len(r.Rows))
	var overall FieldScore
	var perField [NumFields]FieldScore
	for _, row := range r.Rows {
		overall.Accuracy += row.Overall.Accuracy
		overall.CER += row.Overall.CER
		overall.WER += row.Overall.WER
		for i, s := range row.Scores {
			perField[i].Accuracy += s.Accuracy
			perField[i].CER += s.CER
			perField[i].WER += s.WER
		}
	}

	fmt.Fprintf(w, "\nTotal records evaluated: %d\n", len(r.Rows))
	fmt.Fprintln(w, "\nOverall Statistics:")
	fmt.Fprintf(w, "  Average Accuracy: %.2f%%\n", overall.Accuracy/n)
	fmt.Fprintf(w, "  Average CER: %.2f%%\n", overall.CER/n)
	fmt.Fprintf(w, "  Average WER: %.2f%%\n", overall.WER/n)

	fmt.Fprintln(w, "\nPer-Field Statistics:")
	for i, f := range Fields {
		fmt.Fprintf(w, "\n  %s:\n", strings.ToUpper(string(f)))
		fmt.Fprintf(w, "    Accuracy: %.2f%%\n", perField[i].Accuracy/n)
		fmt.Fprintf(w, "    CER: %.2f%%\n", perField[i].CER/n)
		fmt.Fprintf(w, "    WER: %.2f%%\n", perField[i].WER/n)
	}
	fmt.Fprintln(w, rule)
}
