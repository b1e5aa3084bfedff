package evalcmd

import (
	"github.com/lehigh-university-libraries/entryeval/internal/config"
	"github.com/spf13/cobra"
)

// runFlags are the flags that override the loaded configuration.
type runFlags struct {
	configPath  string
	name        string
	entered     []string
	groundTruth string
	output      string
	xlsx        string
	parquet     string
	manifestDir string
	db          string
	verbose     bool
}

// apply copies every flag the user set onto cfg.
func (f *runFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("name") {
		cfg.Name = f.name
	}
	if flags.Changed("entered") {
		cfg.Entered = f.entered
	}
	if flags.Changed("ground-truth") {
		cfg.GroundTruth = f.groundTruth
	}
	if flags.Changed("output") {
		cfg.Output = f.output
	}
	if flags.Changed("xlsx") {
		cfg.XLSX = f.xlsx
	}
	if flags.Changed("parquet") {
		cfg.Parquet = f.parquet
	}
	if flags.Changed("yaml") {
		cfg.ManifestDir = f.manifestDir
	}
	if flags.Changed("db") {
		cfg.DB = f.db
	}
}

// NewRunCmd creates the run command
func NewRunCmd() *cobra.Command {
	var f runFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Evaluate entered records against ground truth",
		Long: `Match every entered record to a ground-truth record and score the seven
compared fields with accuracy, character error rate and word error rate.

Records are matched by front image id, then back image id, then NID number
when the image id is blank. The evaluation table is always written; the
spreadsheet, parquet, YAML manifest and database outputs are optional.`,
		Example: `  # Evaluate the default inputs
  entryeval eval run

  # Evaluate two operators against a parquet ground truth
  entryeval eval run --entered person1.csv --entered person2.csv --ground-truth truth.parquet

  # Also write a spreadsheet and store the run for the review API
  entryeval eval run --xlsx results.xlsx --db entryeval.db --verbose`,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(f.verbose)

			cfg, err := config.Load(f.configPath)
			if err != nil {
				return err
			}
			f.apply(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}

			return executeRun(cmd.Context(), cmd.OutOrStdout(), cfg)
		},
	}

	cmd.Flags().StringVar(&f.configPath, "config", "", "Path to a YAML config file")
	cmd.Flags().StringVar(&f.name, "name", "", "Name of the run in manifests and the database")
	cmd.Flags().StringArrayVar(&f.entered, "entered", nil, "Entered table (repeatable)")
	cmd.Flags().StringVar(&f.groundTruth, "ground-truth", "", "Ground-truth table (.tsv, .csv or .parquet)")
	cmd.Flags().StringVar(&f.output, "output", "", "Path to the evaluation CSV")
	cmd.Flags().StringVar(&f.xlsx, "xlsx", "", "Also write an .xlsx workbook")
	cmd.Flags().StringVar(&f.parquet, "parquet", "", "Also write a parquet table")
	cmd.Flags().StringVar(&f.manifestDir, "yaml", "", "Directory for a YAML run manifest")
	cmd.Flags().StringVar(&f.db, "db", "", "SQLite database to store the run in")
	cmd.Flags().BoolVar(&f.verbose, "verbose", false, "Verbose logging")

	return cmd
}

// NewMergeCmd creates the merge command
func NewMergeCmd() *cobra.Command {
	var (
		configPath string
		entered    []string
		output     string
	)

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Concatenate entered tables into one",
		Example: `  entryeval eval merge --entered person1.csv --entered person2.csv --output merged.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("entered") {
				cfg.Entered = entered
			}
			return executeMerge(cmd.OutOrStdout(), cfg, output)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	cmd.Flags().StringArrayVar(&entered, "entered", nil, "Entered table (repeatable)")
	cmd.Flags().StringVar(&output, "output", "data/merged_data_entry_results.csv", "Path to the merged CSV")

	return cmd
}

// NewSummaryCmd creates the summary command
func NewSummaryCmd() *cobra.Command {
	var (
		resultsPath string
		output      string
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Summarize an evaluation table",
		Long: `Print accuracy, CER and WER statistics, per-field means, accuracy
distribution, quality tiers and the best and worst records of an
evaluation table.`,
		Example: `  entryeval eval summary --results data/evaluation_results.csv

  # Save the summary to a file
  entryeval eval summary --results data/evaluation_results.csv --output summary.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeSummary(cmd.OutOrStdout(), resultsPath, output)
		},
	}

	cmd.Flags().StringVar(&resultsPath, "results", "data/evaluation_results.csv", "Evaluation table to summarize (.csv or .parquet)")
	cmd.Flags().StringVar(&output, "output", "", "Write the summary here instead of stdout")

	return cmd
}
