package cli

import (
	"fmt"

	"aitekka-quiz/internal/infra/file"
	"github.com/spf13/cobra"
)

// NewValidateCmd checks bank files without storing them.
func NewValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE...",
		Short: "Validate question bank files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				bank, err := file.ReadBank(path)
				if err == nil {
					err = bank.Validate()
				}
				if err != nil {
					failed++
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%s, %d questions, max score %d)\n", path, bank.ID, bank.TotalQuestions(), bank.MaxScore())
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d bank files invalid", failed, len(args))
			}
			return nil
		},
	}
}
