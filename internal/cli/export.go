package cli

import (
	"fmt"

	"aitekka-quiz/internal/content"
	"aitekka-quiz/internal/infra/file"
	"github.com/spf13/cobra"
)

// NewExportCmd writes the built-in bank as YAML, a starting point for new banks.
func NewExportCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the built-in question bank to a YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			bank := content.DefaultBank()
			if out == "" {
				out = bank.ID + ".yaml"
			}
			if err := file.WriteBank(out, bank); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output path (defaults to <bank id>.yaml)")
	return cmd
}
