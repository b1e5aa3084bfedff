package evalcmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/lehigh-university-libraries/entryeval/internal/config"
	"github.com/lehigh-university-libraries/entryeval/internal/eval/dataset"
)

func executeMerge(w io.Writer, cfg *config.Config, output string) error {
	opts := cfg.LoaderOptions()
	records, err := dataset.NewLoader(opts).LoadAllEntered(cfg.Entered)
	if err != nil {
		return fmt.Errorf("failed to load entered data: %w", err)
	}

	file, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create merged file: %w", err)
	}
	defer file.Close()

	if err := dataset.WriteEntered(file, opts.Entered, records); err != nil {
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close merged file: %w", err)
	}

	slog.Info("Merged entered tables", "inputs", len(cfg.Entered), "rows", len(records), "output", output)
	fmt.Fprintf(w, "Merged %d records from %d files into %s\n", len(records), len(cfg.Entered), output)
	return nil
}
