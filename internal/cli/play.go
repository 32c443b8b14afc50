package cli

import (
	"os/signal"
	"syscall"

	"aitekka-quiz/internal/config"
	"aitekka-quiz/internal/infra/memory"
	"aitekka-quiz/internal/transport/terminal"
	"github.com/spf13/cobra"
)

// NewPlayCmd plays one quiz in the terminal.
func NewPlayCmd(configPath *string) *cobra.Command {
	var bankID string
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a quiz in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg, err := config.LoadOptional(*configPath)
			if err != nil {
				return err
			}
			log := newLogger(cmd, cfg)
			b, err := openBackends(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer b.Close()

			if bankID == "" {
				bankID = defaultBankID(cfg)
			}
			service := newService(cfg, memory.NewSessionStore(), b.bankRepository(cfg), log)
			session, err := service.Open(ctx, bankID)
			if err != nil {
				return err
			}
			defer service.Close(ctx, session.ID())

			return terminal.NewPlayer(session, cmd.InOrStdin(), cmd.OutOrStdout()).Run(ctx)
		},
	}
	cmd.Flags().StringVar(&bankID, "bank", "", "question bank id (defaults to quiz.bank)")
	return cmd
}
