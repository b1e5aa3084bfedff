// Package evaluation runs a configured evaluation end to end: load the
// tables, score them, and write the results wherever the configuration
// asks.
package evaluation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lehigh-university-libraries/entryeval/internal/config"
	"github.com/lehigh-university-libraries/entryeval/internal/eval/dataset"
	"github.com/lehigh-university-libraries/entryeval/internal/eval/evaluator"
	"github.com/lehigh-university-libraries/entryeval/internal/eval/results"
	"github.com/lehigh-university-libraries/entryeval/internal/eval/summary"
	"github.com/lehigh-university-libraries/entryeval/internal/models"
	"github.com/lehigh-university-libraries/entryeval/internal/storage"
)

// Outcome is a finished evaluation and its summary.
type Outcome struct {
	Run     *evaluator.Run
	Summary *summary.Summary
	Meta    models.RunMeta
}

// Execute loads the inputs named by cfg and evaluates them. Nothing is
// written.
func Execute(cfg *config.Config, logger *slog.Logger) (*Outcome, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("Starting evaluation run", "entered", cfg.Entered, "ground_truth", cfg.GroundTruth)

	loader := dataset.NewLoader(cfg.LoaderOptions())
	entered, err := loader.LoadAllEntered(cfg.Entered)
	if err != nil {
		return nil, fmt.Errorf("failed to load entered data: %w", err)
	}
	groundTruth, err := loader.LoadGroundTruth(cfg.GroundTruth)
	if err != nil {
		return nil, fmt.Errorf("failed to load ground truth: %w", err)
	}
	logger.Info("Datasets loaded", "entered", len(entered), "ground_truth", len(groundTruth))

	run := evaluator.New(evaluator.WithLogger(logger)).Evaluate(entered, groundTruth)
	logger.Info("Evaluation finished",
		"total", run.Stats.Total,
		"matched", run.Stats.Matched,
		"unmatched", run.Stats.Unmatched,
		"match_rate", run.Stats.MatchRate,
	)

	return &Outcome{
		Run:     run,
		Summary: summary.Summarize(run.Rows),
		Meta: models.RunMeta{
			Name:        cfg.Name,
			Entered:     append([]string(nil), cfg.Entered...),
			GroundTruth: cfg.GroundTruth,
			CreatedAt:   time.Now(),
		},
	}, nil
}

// Written lists what Save produced. Empty fields were not requested or
// failed.
type Written struct {
	CSV      string
	XLSX     string
	Parquet  string
	Manifest string
	RunID    int64
}

// Save writes the CSV output, which must succeed, and then each optional
// sink. A failing optional sink is logged and skipped.
func (o *Outcome) Save(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Written, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if err := results.SaveCSV(cfg.Output, o.Run.Rows); err != nil {
		return nil, fmt.Errorf("failed to save results: %w", err)
	}
	w := &Written{CSV: cfg.Output}
	logger.Info("Results saved", "path", cfg.Output, "rows", len(o.Run.Rows))

	if cfg.XLSX != "" {
		if err := results.SaveXLSX(cfg.XLSX, o.Run.Rows, o.Summary); err != nil {
			logger.Warn("Failed to save spreadsheet", "path", cfg.XLSX, "error", err)
		} else {
			w.XLSX = cfg.XLSX
		}
	}

	if cfg.Parquet != "" {
		if err := results.SaveParquet(cfg.Parquet, o.Run.Rows); err != nil {
			logger.Warn("Failed to save parquet results", "path", cfg.Parquet, "error", err)
		} else {
			w.Parquet = cfg.Parquet
		}
	}

	if cfg.ManifestDir != "" {
		manifest := results.NewManifest(results.ManifestConfig{
			Name:        o.Meta.Name,
			Entered:     o.Meta.Entered,
			GroundTruth: o.Meta.GroundTruth,
			Output:      cfg.Output,
			Timestamp:   o.Meta.CreatedAt.Format("2006-01-02_15-04-05"),
		}, o.Run, o.Summary)
		path, err := results.SaveToYAML(cfg.ManifestDir, manifest)
		if err != nil {
			logger.Warn("Failed to save YAML manifest", "dir", cfg.ManifestDir, "error", err)
		} else {
			w.Manifest = path
		}
	}

	if cfg.DB != "" {
		id, err := o.store(ctx, cfg.DB)
		if err != nil {
			logger.Warn("Failed to store run", "db", cfg.DB, "error", err)
		} else {
			w.RunID = id
			logger.Info("Run stored", "db", cfg.DB, "run_id", id)
		}
	}

	return w, nil
}

func (o *Outcome) store(ctx context.Context, path string) (int64, error) {
	s, err := storage.Open(path)
	if err != nil {
		return 0, err
	}
	defer s.Close()
	return s.SaveRun(ctx, o.Run, o.Meta)
}
