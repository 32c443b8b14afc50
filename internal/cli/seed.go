package cli

import (
	"fmt"

	"aitekka-quiz/internal/config"
	"aitekka-quiz/internal/content"
	"aitekka-quiz/internal/infra/file"
	"aitekka-quiz/internal/infra/postgres"
	"github.com/spf13/cobra"
)

// NewSeedCmd stores a question bank in Postgres.
func NewSeedCmd(configPath *string) *cobra.Command {
	var bankFile string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Store a question bank in Postgres (the built-in bank by default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if cfg.Postgres.URL == "" {
				return fmt.Errorf("postgres url not configured")
			}
			log := newLogger(cmd, cfg)

			bank := content.DefaultBank()
			if bankFile != "" {
				if bank, err = file.ReadBank(bankFile); err != nil {
					return err
				}
			}

			db := postgres.OpenDB(cfg.Postgres.URL)
			defer db.Close()
			if _, err := postgres.Migrate(cmd.Context(), db); err != nil {
				return err
			}
			if err := postgres.NewBankWriter(db).SaveBank(cmd.Context(), bank); err != nil {
				return err
			}
			log.WithField("bank_id", bank.ID).WithField("questions", len(bank.Questions)).Info("bank stored")
			return nil
		},
	}
	cmd.Flags().StringVar(&bankFile, "file", "", "YAML or JSON bank file")
	return cmd
}

