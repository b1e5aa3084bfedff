package models

import (
	"time"

	"github.com/lehigh-university-libraries/entryeval/internal/eval/evaluator"
	"github.com/lehigh-university-libraries/entryeval/internal/eval/metrics"
)

// RunMeta describes where a stored run came from.
type RunMeta struct {
	Name        string    `json:"name"`
	Entered     []string  `json:"entered"`
	GroundTruth string    `json:"ground_truth"`
	CreatedAt   time.Time `json:"created_at"`
}

// StoredRun is a run as the results store returns it, without its rows.
type StoredRun struct {
	ID         int64                 `json:"id"`
	Meta       RunMeta               `json:"meta"`
	Stats      evaluator.Stats       `json:"stats"`
	Diagnostic *evaluator.Diagnostic `json:"diagnostic,omitempty"`
	Unmatched  []evaluator.Unmatched `json:"unmatched"`
}

// FieldDetail is one field of a row laid out for review.
type FieldDetail struct {
	Field        evaluator.Field `json:"field"`
	Actual       string          `json:"actual"`
	Predicted    string          `json:"predicted"`
	Accuracy     float64         `json:"accuracy"`
	CER          float64         `json:"cer"`
	WER          float64         `json:"wer"`
	EditDistance int             `json:"edit_distance"`
}

// RowDetail is a stored row with per-field edit distances.
type RowDetail struct {
	RunID    int64                `json:"run_id"`
	Position int                  `json:"position"`
	ImageID  string               `json:"image_id"`
	Method   string               `json:"match_method,omitempty"`
	DocDate  string               `json:"predicted_doc_date"`
	Fields   []FieldDetail        `json:"fields"`
	Overall  evaluator.FieldScore `json:"overall"`
}

// NewRowDetail lays out row for review. position is the 0-based row
// position within its run.
func NewRowDetail(runID int64, position int, row *evaluator.Row) RowDetail {
	d := RowDetail{
		RunID:    runID,
		Position: position,
		ImageID:  row.ImageID,
		Method:   string(row.Method),
		DocDate:  row.PredictedDocDate,
		Fields:   make([]FieldDetail, 0, evaluator.NumFields),
		Overall:  row.Overall,
	}
	for i, f := range evaluator.Fields {
		d.Fields = append(d.Fields, FieldDetail{
			Field:        f,
			Actual:       row.Actual[i],
			Predicted:    row.Predicted[i],
			Accuracy:     row.Scores[i].Accuracy,
			CER:          row.Scores[i].CER,
			WER:          row.Scores[i].WER,
			EditDistance: metrics.EditDistance(row.Actual[i], row.Predicted[i]),
		})
	}
	return d
}
