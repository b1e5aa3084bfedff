package cmd

import (
	"github.com/lehigh-university-libraries/entryeval/internal/evalcmd"
	"github.com/spf13/cobra"
)

func newEvalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Data entry evaluation tools",
		Long: `Evaluation tools for measuring the accuracy of manually entered NID records.

Supports merging per-operator entry tables, running evaluations against the
ground truth, summarizing evaluation tables and inspecting single rows.`,
	}

	// Add eval subcommands
	cmd.AddCommand(evalcmd.NewRunCmd())
	cmd.AddCommand(evalcmd.NewMergeCmd())
	cmd.AddCommand(evalcmd.NewSummaryCmd())
	cmd.AddCommand(evalcmd.NewInspectCmd())

	return cmd
}
