package summary

import (
	"fmt"
	"io"
	"strings"
)

// Print writes the text summary report.
func (s *Summary) Print(w io.Writer) {
	rule := strings.Repeat("=", 92)
	section := func(title string) {
		fmt.Fprintln(w, rule)
		fmt.Fprintln(w, title)
		fmt.Fprintln(w, rule)
	}

	section("NID DATA EVALUATION - OVERALL SUMMARY")
	fmt.Fprintf(w, "Total Records Evaluated:        %3d records\n", s.Records)
	if s.Records == 0 {
		fmt.Fprintln(w, "\nNo evaluated records. Run an evaluation with matching data first.")
		return
	}
	fmt.Fprintln(w)

	section("OVERALL METRICS")
	fmt.Fprintf(w, "Average Accuracy:               %6.2f%%  (min: %6.2f%%, max: %6.2f%%)\n", s.Accuracy.Mean, s.Accuracy.Min, s.Accuracy.Max)
	fmt.Fprintf(w, "Average CER (Character Error):  %6.2f%%  (min: %6.2f%%, max: %6.2f%%)\n", s.CER.Mean, s.CER.Min, s.CER.Max)
	fmt.Fprintf(w, "Average WER (Word Error):       %6.2f%%  (min: %6.2f%%, max: %6.2f%%)\n", s.WER.Mean, s.WER.Min, s.WER.Max)
	fmt.Fprintln(w)

	section("ACCURACY DISTRIBUTION")
	for _, b := range s.Buckets {
		bar := strings.Repeat("#", int(b.Percent/5))
		fmt.Fprintf(w, "  %3.0f%% - %3.0f%%: %3d records (%5.1f%%) %s\n", b.Lower, b.Upper, b.Count, b.Percent, bar)
	}
	fmt.Fprintln(w)

	section("QUALITY ASSESSMENT")
	for _, t := range s.Tiers {
		fmt.Fprintf(w, "  %-10s %-8s %3d records (%5.1f%%)\n", t.Tier, tierRange(t.Tier), t.Count, t.Percent)
	}
	fmt.Fprintf(w, "\nOverall Quality:                %s\n", s.Quality)
	fmt.Fprintf(w, "Quality Score:                  %.1f%% in acceptable range\n", s.Acceptable)
	fmt.Fprintln(w)

	section("PER-FIELD ANALYSIS (RANKED BY ACCURACY)")
	fmt.Fprintf(w, "%-20s %10s %10s %10s %15s\n", "Field", "Accuracy", "CER", "WER", "Quality")
	fmt.Fprintln(w, strings.Repeat("-", 92))
	for _, f := range s.Ranked {
		fmt.Fprintf(w, "%-20s %9.2f%% %9.2f%% %9.2f%% %15s\n", f.Label, f.Accuracy.Mean, f.CER, f.WER, f.Tier)
	}
	fmt.Fprintln(w)

	section("DETAILED FIELD METRICS")
	for _, f := range s.Fields {
		fmt.Fprintf(w, "\n%s\n", strings.ToUpper(f.Label))
		fmt.Fprintf(w, "  Accuracy:  Mean=%.2f%%  Min=%.2f%%  Max=%.2f%%  StdDev=%.2f%%\n",
			f.Accuracy.Mean, f.Accuracy.Min, f.Accuracy.Max, f.Accuracy.StdDev)
		fmt.Fprintf(w, "  CER:       Mean=%.2f%%\n", f.CER)
		fmt.Fprintf(w, "  WER:       Mean=%.2f%%\n", f.WER)
	}
	fmt.Fprintln(w)

	printRecords(w, section, "TOP 10 BEST RECORDS", s.Top)
	printRecords(w, section, "BOTTOM 10 RECORDS (NEED REVIEW)", s.Bottom)
}

func printRecords(w io.Writer, section func(string), title string, records []RecordScore) {
	section(title)
	fmt.Fprintf(w, "%-5s %-20s %12s %10s %10s\n", "Rank", "Image ID", "Accuracy", "CER", "WER")
	fmt.Fprintln(w, strings.Repeat("-", 92))
	for i, r := range records {
		fmt.Fprintf(w, "%-5d %-20s %11.2f%% %9.2f%% %9.2f%%\n", i+1, r.ImageID, r.Overall.Accuracy, r.Overall.CER, r.Overall.WER)
	}
	fmt.Fprintln(w)
}

func tierRange(tier string) string {
	switch tier {
	case Excellent:
		return "(>=95%)"
	case Good:
		return "(80-95%)"
	case Fair:
		return "(60-80%)"
	default:
		return "(<60%)"
	}
}
