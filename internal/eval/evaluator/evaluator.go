// Package evaluator scores entered records against ground truth.
package evaluator

import (
	"log/slog"

	"github.com/lehigh-university-libraries/entryeval/internal/eval/cell"
	"github.com/lehigh-university-libraries/entryeval/internal/eval/dataset"
	"github.com/lehigh-university-libraries/entryeval/internal/eval/matcher"
	"github.com/lehigh-university-libraries/entryeval/internal/eval/metrics"
	"github.com/lehigh-university-libraries/entryeval/internal/eval/normalize"
)

var fieldSpecs = [NumFields]fieldSpec{
	{
		field:     EnglishName,
		entered:   func(r *dataset.EnteredRecord) cell.Value { return r.EnglishName },
		reference: func(r *dataset.GroundTruthRecord) cell.Value { return r.NameEnglish },
	},
	{
		field:     BanglaName,
		entered:   func(r *dataset.EnteredRecord) cell.Value { return r.BanglaName },
		reference: func(r *dataset.GroundTruthRecord) cell.Value { return r.NameBangla },
	},
	{
		field:     FatherSpouse,
		entered:   func(r *dataset.EnteredRecord) cell.Value { return r.FatherSpouseName },
		reference: func(r *dataset.GroundTruthRecord) cell.Value { return r.FatherName },
	},
	{
		field:     Mother,
		entered:   func(r *dataset.EnteredRecord) cell.Value { return r.MotherName },
		reference: func(r *dataset.GroundTruthRecord) cell.Value { return r.MotherName },
	},
	{
		field:     DOB,
		entered:   func(r *dataset.EnteredRecord) cell.Value { return r.DOB },
		reference: func(r *dataset.GroundTruthRecord) cell.Value { return r.DOB },
		canon:     normalize.Date,
	},
	{
		field:     NIDNo,
		entered:   func(r *dataset.EnteredRecord) cell.Value { return r.NIDNo },
		reference: func(r *dataset.GroundTruthRecord) cell.Value { return r.NIDNo },
		canon:     normalize.ID,
	},
	{
		field:     Address,
		entered:   func(r *dataset.EnteredRecord) cell.Value { return r.PlainAddress },
		reference: func(r *dataset.GroundTruthRecord) cell.Value { return r.Address },
	},
}

// Evaluator matches and scores entered records. It holds no state between
// runs.
type Evaluator struct {
	logger *slog.Logger
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithLogger sets the logger used for per-record debug output.
func WithLogger(l *slog.Logger) Option {
	return func(e *Evaluator) {
		e.logger = l
	}
}

// New creates an Evaluator.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{logger: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate matches every entered record against groundTruth and scores the
// matched pairs. Rows follow the order of entered. Unmatched records are
// counted, not reported as errors; a run with no matches carries a
// Diagnostic instead of rows.
func (e *Evaluator) Evaluate(entered []dataset.EnteredRecord, groundTruth []dataset.GroundTruthRecord) *Run {
	idx := matcher.New(groundTruth)

	run := &Run{
		Rows: []Row{},
		Stats: Stats{
			Total:    len(entered),
			ByMethod: make(map[matcher.Method]int, len(matcher.Methods)),
		},
	}

	for i := range entered {
		rec := &entered[i]
		pair, ok := idx.Match(*rec)
		if !ok {
			run.Stats.Unmatched++
			run.Unmatched = append(run.Unmatched, unmatchedFrom(rec))
			e.logger.Debug("No ground truth match",
				"source", rec.Source,
				"line", rec.Line,
				"image_id", rec.ImageID.String(),
				"nid_no", rec.NIDNo.String())
			continue
		}

		row := ScorePair(pair)
		run.Rows = append(run.Rows, row)
		run.Stats.Matched++
		run.Stats.ByMethod[pair.Method]++
		e.logger.Debug("Scored record",
			"source", rec.Source,
			"line", rec.Line,
			"image_id", row.ImageID,
			"method", pair.Method,
			"overall_accuracy", row.Overall.Accuracy)
	}

	if run.Stats.Total > 0 {
		run.Stats.MatchRate = float64(run.Stats.Matched) / float64(run.Stats.Total) * 100
	}

	if run.Stats.Matched == 0 {
		run.Diagnostic = &Diagnostic{
			Total:           run.Stats.Total,
			GroundTruthRows: idx.Len(),
			Reasons:         ZeroMatchReasons,
		}
		e.logger.Debug("No records matched", "total", run.Stats.Total, "ground_truth_rows", idx.Len())
	}

	return run
}

// ScorePair computes the row for one matched pair.
func ScorePair(pair matcher.Pair) Row {
	row := Row{
		ImageID:          pair.Entered.ImageID.String(),
		Method:           pair.Method,
		PredictedDocDate: pair.GroundTruth.DocDate.String(),
	}

	var sum FieldScore
	for i, spec := range fieldSpecs {
		actual := spec.entered(&pair.Entered)
		predicted := spec.reference(&pair.GroundTruth)

		if spec.canon != nil {
			actual = cell.Of(spec.canon(actual))
			predicted = cell.Of(spec.canon(predicted))
		}

		score := FieldScore{
			Accuracy: metrics.FieldAccuracy(actual, predicted),
			CER:      metrics.CharacterErrorRate(actual, predicted),
			WER:      metrics.WordErrorRate(actual, predicted),
		}
		row.Actual[i] = actual.String()
		row.Predicted[i] = predicted.String()
		row.Scores[i] = score

		sum.Accuracy += score.Accuracy
		sum.CER += score.CER
		sum.WER += score.WER
	}

	row.Overall = FieldScore{
		Accuracy: metrics.Round2(sum.Accuracy / NumFields),
		CER:      metrics.Round2(sum.CER / NumFields),
		WER:      metrics.Round2(sum.WER / NumFields),
	}
	return row
}
