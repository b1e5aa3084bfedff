// Package results reads and writes evaluation tables.
package results

import (
	"strconv"
	"strings"

	"github.com/lehigh-university-libraries/entryeval/internal/eval/evaluator"
)

// Header returns the evaluation table columns in their fixed order.
func Header() []string {
	cols := []string{"image_id"}
	for _, f := range evaluator.Fields {
		cols = append(cols, "actual_"+string(f))
	}
	for _, f := range evaluator.Fields {
		cols = append(cols, "predicted_"+string(f))
	}
	cols = append(cols, "predicted_doc_date")
	for _, f := range evaluator.Fields {
		cols = append(cols, string(f)+"_accuracy", string(f)+"_cer", string(f)+"_wer")
	}
	return append(cols, "overall_accuracy", "overall_cer", "overall_wer")
}

// record flattens a row in Header order.
func record(r *evaluator.Row) []string {
	out := make([]string, 0, len(Header()))
	out = append(out, r.ImageID)
	out = append(out, r.Actual[:]...)
	out = append(out, r.Predicted[:]...)
	out = append(out, r.PredictedDocDate)
	for _, s := range r.Scores {
		out = append(out, FormatScore(s.Accuracy), FormatScore(s.CER), FormatScore(s.WER))
	}
	return append(out,
		FormatScore(r.Overall.Accuracy),
		FormatScore(r.Overall.CER),
		FormatScore(r.Overall.WER))
}

// FormatScore writes a score the shortest way that reads back exactly,
// always with a decimal point: 100.0, 95.24, 0.0.
func FormatScore(x float64) string {
	s := strconv.FormatFloat(x, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// fromRecord is the inverse of record, looking columns up by name so
// reordered or partial tables still read.
func fromRecord(index map[string]int, rec []string) (evaluator.Row, error) {
	get := func(name string) string {
		if i, ok := index[name]; ok && i < len(rec) {
			return rec[i]
		}
		return ""
	}
	num := func(name string) (float64, error) {
		s := get(name)
		if s == "" {
			return 0, nil
		}
		return strconv.ParseFloat(s, 64)
	}

	row := evaluator.Row{
		ImageID:          get("image_id"),
		PredictedDocDate: get("predicted_doc_date"),
	}

	var err error
	for i, f := range evaluator.Fields {
		row.Actual[i] = get("actual_" + string(f))
		row.Predicted[i] = get("predicted_" + string(f))
		if row.Scores[i].Accuracy, err = num(string(f) + "_accuracy"); err != nil {
			return row, err
		}
		if row.Scores[i].CER, err = num(string(f) + "_cer"); err != nil {
			return row, err
		}
		if row.Scores[i].WER, err = num(string(f) + "_wer"); err != nil {
			return row, err
		}
	}
	if row.Overall.Accuracy, err = num("overall_accuracy"); err != nil {
		return row, err
	}
	if row.Overall.CER, err = num("overall_cer"); err != nil {
		return row, err
	}
	if row.Overall.WER, err = num("overall_wer"); err != nil {
		return row, err
	}
	return row, nil
}
