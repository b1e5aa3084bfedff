package results

import (
	"fmt"

	"github.com/lehigh-university-libraries/entryeval/internal/eval/evaluator"
	"github.com/lehigh-university-libraries/entryeval/internal/eval/summary"
	"github.com/xuri/excelize/v2"
)

const (
	evaluationSheet = "evaluation"
	summarySheet    = "summary"
)

// SaveXLSX writes a workbook with the evaluation table on one sheet and
// the per-field summary on another.
func SaveXLSX(path string, rows []evaluator.Row, sum *summary.Summary) error {
	wb := excelize.NewFile()
	defer wb.Close()

	if err := wb.SetSheetName(wb.GetSheetName(0), evaluationSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := writeEvaluationSheet(wb, rows); err != nil {
		return err
	}

	if _, err := wb.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("failed to add summary sheet: %w", err)
	}
	if err := writeSummarySheet(wb, sum); err != nil {
		return err
	}

	if err := wb.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeEvaluationSheet(wb *excelize.File, rows []evaluator.Row) error {
	if err := setRow(wb, evaluationSheet, 1, stringsToCells(Header())); err != nil {
		return err
	}

	for i := range rows {
		r := &rows[i]
		cells := make([]interface{}, 0, len(Header()))
		cells = append(cells, r.ImageID)
		cells = append(cells, stringsToCells(r.Actual[:])...)
		cells = append(cells, stringsToCells(r.Predicted[:])...)
		cells = append(cells, r.PredictedDocDate)
		for _, s := range r.Scores {
			cells = append(cells, s.Accuracy, s.CER, s.WER)
		}
		cells = append(cells, r.Overall.Accuracy, r.Overall.CER, r.Overall.WER)

		if err := setRow(wb, evaluationSheet, i+2, cells); err != nil {
			return err
		}
	}
	return nil
}

func writeSummarySheet(wb *excelize.File, sum *summary.Summary) error {
	rows := [][]interface{}{
		{"Records", sum.Records},
		{"Average Accuracy", sum.Accuracy.Mean},
		{"Average CER", sum.CER.Mean},
		{"Average WER", sum.WER.Mean},
		{"Quality", sum.Quality},
		{},
		{"Field", "Accuracy", "Min", "Max", "StdDev", "CER", "WER", "Quality"},
	}
	for _, f := range sum.Ranked {
		rows = append(rows, []interface{}{
			f.Label, f.Accuracy.Mean, f.Accuracy.Min, f.Accuracy.Max, f.Accuracy.StdDev, f.CER, f.WER, f.Tier,
		})
	}

	for i, cells := range rows {
		if len(cells) == 0 {
			continue
		}
		if err := setRow(wb, summarySheet, i+1, cells); err != nil {
			return err
		}
	}
	return nil
}

func setRow(wb *excelize.File, sheet string, row int, cells []interface{}) error {
	axis, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := wb.SetSheetRow(sheet, axis, &cells); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func stringsToCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
