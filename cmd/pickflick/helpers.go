package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/vadimtrunov/PickFlick/internal/config"
	"github.com/vadimtrunov/PickFlick/internal/metadata/tmdb"
	"github.com/vadimtrunov/PickFlick/internal/picker"
)

// Lipgloss styles used across commands.
var (
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // red
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
	styleInfo    = lipgloss.NewStyle().Foreground(lipgloss.Color("12")) // blue
	styleDim     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))  // gray

	styleLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Width(10)
	styleTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))

	styleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("5"))
)

const dotEnvFile = ".env"

// loadConfig loads .env, then the configuration file and environment overrides.
func loadConfig(path string) (*config.Config, error) {
	if err := config.LoadDotEnv(dotEnvFile); err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return cfg, nil
}

// initPicker creates the TMDb client and the picker on top of it.
func initPicker(cfg *config.Config, logger *slog.Logger) *picker.Picker {
	client := tmdb.New(tmdb.Config{
		BaseURL: cfg.TMDb.BaseURL,
		APIKey:  cfg.TMDb.APIKey,
		Token:   cfg.TMDb.Token,
		Timeout: cfg.TMDb.Timeout,
	}, logger)
	logger.Debug("TMDb client initialized",
		slog.String("url", sanitizeURL(cfg.TMDb.BaseURL)),
		slog.Bool("bearer", cfg.TMDb.Token != ""),
		slog.Bool("api_key", cfg.TMDb.APIKey != ""),
	)

	return picker.New(client,
		picker.WithPosterSize(cfg.TMDb.PosterSize),
		picker.WithLogger(logger),
	)
}

// sanitizeURL strips credentials, query params, and fragment from a URL for safe logging.
func sanitizeURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || u.Scheme == "" {
		return "<redacted>"
	}
	u.User = nil
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
