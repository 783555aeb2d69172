package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spec-kit/seatboard/internal/app"
	"github.com/spec-kit/seatboard/internal/config"
	"github.com/spec-kit/seatboard/internal/observability"
	"github.com/spec-kit/seatboard/internal/service"
)

// session is the wired app shared by every subcommand.
type session struct {
	app    *app.App
	logger *zap.Logger
	json   bool
}

func newRootCmd() *cobra.Command {
	s := &session{}
	cmd := &cobra.Command{
		Use:           "seatboard",
		Short:         "Seating chart operator console",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger, err := observability.NewLogger(cfg.Logger, cfg.App.Env)
			if err != nil {
				return err
			}
			s.logger = logger
			a, err := app.New(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			s.app = a
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			s.close()
		},
	}
	cmd.PersistentFlags().BoolVar(&s.json, "json", false, "print results as JSON")
	cmd.AddCommand(newRunCmd(s), newReplCmd(s), newExportCmd(s), newKeywordsCmd(s))
	return cmd
}

func (s *session) close() {
	if s.app != nil {
		s.app.Close()
	}
	if s.logger != nil {
		_ = s.logger.Sync()
	}
}

func (s *session) ctx(cmd *cobra.Command) context.Context {
	return service.WithActor(cmd.Context(), "cli")
}
