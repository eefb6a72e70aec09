package main

import (
	"github.com/spf13/cobra"

	"github.com/vadimtrunov/PickFlick/internal/config"
	mcpserver "github.com/vadimtrunov/PickFlick/internal/mcp"
)

// newMCPServeCmd returns the hidden "mcp-serve" subcommand.
// It serves the random_title tool over stdin/stdout; logs go to stderr.
func newMCPServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "mcp-serve",
		Short:  "Start MCP server over stdio",
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			logger := config.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat, cmd.ErrOrStderr())
			srv := mcpserver.NewServer(initPicker(cfg, logger), version, logger)
			return srv.ServeStdio(cmd.Context())
		},
	}
}
