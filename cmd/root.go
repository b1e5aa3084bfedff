package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entryeval",
		Short: "Field-level evaluation of identity document data entry",
		Long: `Entryeval scores manually entered NID records against an OCR ground truth.

Entered records are matched to the ground truth by image id or NID number and
seven fields are compared with accuracy, character error rate and word error
rate after Bengali text, date and id normalization.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(newEvalCmd())
	cmd.AddCommand(newServeCmd())

	return cmd
}
