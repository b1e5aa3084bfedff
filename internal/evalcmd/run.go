package evalcmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/lehigh-university-libraries/entryeval/internal/config"
	"github.com/lehigh-university-libraries/entryeval/internal/evaluation"
)

func setupLogging(verbose bool) {
	if !verbose {
		return
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	slog.SetDefault(logger)
}

func executeRun(ctx context.Context, w io.Writer, cfg *config.Config) error {
	out, err := evaluation.Execute(cfg, slog.Default())
	if err != nil {
		return err
	}

	written, err := out.Save(ctx, cfg, slog.Default())
	if err != nil {
		return err
	}

	out.Run.PrintReport(w)

	fmt.Fprintf(w, "\nResults saved to: %s\n", written.CSV)
	for _, extra := range []struct{ label, path string }{
		{"Spreadsheet", written.XLSX},
		{"Parquet", written.Parquet},
		{"Manifest", written.Manifest},
	} {
		if extra.path != "" {
			fmt.Fprintf(w, "%s saved to: %s\n", extra.label, extra.path)
		}
	}
	if written.RunID > 0 {
		fmt.Fprintf(w, "Stored as run %d in %s\n", written.RunID, cfg.DB)
	}
	fmt.Fprintf(w, "\nGenerate a detailed summary with:\n")
	fmt.Fprintf(w, "  entryeval eval summary --results %s\n", written.CSV)
	return nil
}
