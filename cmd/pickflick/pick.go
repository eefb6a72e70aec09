package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vadimtrunov/PickFlick/internal/config"
	"github.com/vadimtrunov/PickFlick/internal/picker"
)

const notAvailable = "n/a"

var errInterrupted = errors.New("interrupted")

type pickOptions struct {
	json      bool
	noSpinner bool
}

// titlePicker is what runPick needs from *picker.Picker.
type titlePicker interface {
	Pick(ctx context.Context, category picker.Category) (*picker.Title, error)
}

func runPick(ctx context.Context, stdout, stderr io.Writer, rawCategory string, opts pickOptions) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	logger := config.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat, stderr)

	if rawCategory == "" {
		rawCategory = cfg.App.DefaultCategory
	}
	category, err := picker.ParseCategory(rawCategory)
	if err != nil {
		return err
	}

	p := initPicker(cfg, logger)

	var title *picker.Title
	if !opts.noSpinner && !opts.json && isTerminal(stderr) {
		title, err = pickWithSpinner(ctx, p, category, stderr)
	} else {
		title, err = p.Pick(ctx, category)
	}
	if err != nil {
		return err
	}

	if opts.json {
		return writeJSON(stdout, title)
	}
	printTitle(stdout, title)
	return nil
}

// writeJSON prints the title, or {"found":false} when there is none.
func writeJSON(w io.Writer, title *picker.Title) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if title == nil {
		return enc.Encode(map[string]any{"found": false})
	}
	return enc.Encode(title)
}

func printTitle(w io.Writer, t *picker.Title) {
	if t == nil {
		fmt.Fprintln(w, styleDim.Render("No result found."))
		return
	}

	fmt.Fprintf(w, "%s %s\n", styleHeader.Render(t.Kind+":"), styleTitle.Render(orNA(t.Title)))
	printField(w, "Released", orNA(t.ReleaseDate))
	printField(w, "Overview", orNA(t.Overview))
	printField(w, "Poster", orNA(t.PosterURL))
	printField(w, "TMDb ID", strconv.Itoa(t.ID))
}

func printField(w io.Writer, label, value string) {
	fmt.Fprintf(w, "%s %s\n", styleLabel.Render(label), value)
}

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}

func pickWithSpinner(ctx context.Context, p titlePicker, category picker.Category, out io.Writer) (*picker.Title, error) {
	prog := tea.NewProgram(newPickModel(ctx, p, category), tea.WithOutput(out))
	m, err := prog.Run()
	if err != nil {
		return nil, fmt.Errorf("run spinner: %w", err)
	}

	pm, ok := m.(pickModel)
	if !ok {
		return nil, fmt.Errorf("unexpected model type from tea program")
	}
	if !pm.done {
		return nil, errInterrupted
	}
	return pm.title, pm.err
}

// pickResultMsg carries the pick outcome back to the TUI.
type pickResultMsg struct {
	title *picker.Title
	err   error
}

type pickModel struct {
	ctx      context.Context
	picker   titlePicker
	category picker.Category
	spinner  spinner.Model
	title    *picker.Title
	err      error
	done     bool
}

func newPickModel(ctx context.Context, p titlePicker, category picker.Category) pickModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styleInfo
	return pickModel{
		ctx:      ctx,
		picker:   p,
		category: category,
		spinner:  s,
	}
}

func (m pickModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.pick())
}

func (m pickModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case pickResultMsg:
		m.title = msg.title
		m.err = msg.err
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View clears itself once done; the report is printed to stdout afterwards.
func (m pickModel) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + styleDim.Render(" Picking a "+spinnerNoun(m.category)+"...") + "\n"
}

func (m pickModel) pick() tea.Cmd {
	return func() tea.Msg {
		title, err := m.picker.Pick(m.ctx, m.category)
		return pickResultMsg{title: title, err: err}
	}
}

func spinnerNoun(c picker.Category) string {
	switch c {
	case picker.Movie:
		return "movie"
	case picker.TV:
		return "series"
	}
	return "title"
}
