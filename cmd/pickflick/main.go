package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vadimtrunov/PickFlick/internal/picker"
)

const version = "0.1.0"

var configPath string

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, styleError.Render(err.Error()))
		cancel()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts pickOptions

	rootCmd := &cobra.Command{
		Use:   "pickflick [movie|tv|random]",
		Short: "Pick a random movie or TV series from TMDb",
		Long: "PickFlick samples TMDb's popularity-sorted discover listings and prints\n" +
			"a summary of one random movie or TV series.",
		Example: `  pickflick
  pickflick movie
  pickflick tv --json`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: picker.Categories(),
		RunE: func(cmd *cobra.Command, args []string) error {
			category := ""
			if len(args) == 1 {
				category = args[0]
			}
			return runPick(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), category, opts)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML or TOML configuration file")
	rootCmd.Flags().BoolVar(&opts.json, "json", false, "print the result as JSON")
	rootCmd.Flags().BoolVar(&opts.noSpinner, "no-spinner", false, "do not show a progress spinner")

	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	rootCmd.AddCommand(
		newVersionCmd(),
		newConfigCmd(),
		newMCPServeCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "PickFlick v%s\n", version)
		},
	}
}
