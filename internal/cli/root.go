// Package cli wires configuration, storage and the HTTP server into the
// portfolio-server command.
package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio-server/internal/config"
	"github.com/Zachkp/portfolio-server/internal/logger"
)

// RootOptions holds state shared by every subcommand.
type RootOptions struct {
	Config *config.Config
	Log    *logrus.Logger
}

// NewRootCommand creates the portfolio-server command. Without a
// subcommand it serves.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "portfolio-server",
		Short:         "Portfolio website API and static front-end server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			opts.Config = cfg
			opts.Log = logger.New(cfg.LogLevel, cfg.LogFormat)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))

	return cmd
}
