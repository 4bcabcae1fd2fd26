package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/phenixrizen/asciiflow/internal/config"
	"github.com/phenixrizen/asciiflow/internal/graphview"
	"github.com/phenixrizen/asciiflow/internal/state"
	"github.com/phenixrizen/asciiflow/internal/svgexport"
	"github.com/spf13/cobra"
)

// ErrNoInput is returned when a command needs diagram text and gets none.
var ErrNoInput = errors.New("no diagram input")

type App struct {
	ConfigPath string
	StatePath  string
	Debug      bool
	Logger     *slog.Logger
}

func Execute() error {
	root, err := NewRootCommand()
	if err != nil {
		return err
	}
	return root.Execute()
}

func NewRootCommand() (*cobra.Command, error) {
	defaultConfigPath, err := config.DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	defaultStatePath, err := config.DefaultStatePath()
	if err != nil {
		return nil, err
	}

	app := &App{
		ConfigPath: defaultConfigPath,
		StatePath:  defaultStatePath,
	}

	cmd := &cobra.Command{
		Use:           "asciiflow",
		Short:         "Asciiflow draws box-and-arrow diagrams as ASCII art",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return app.initialize()
		},
	}
	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", app.ConfigPath, "Path to config.yaml (or .ini)")
	cmd.PersistentFlags().StringVar(&app.StatePath, "state", app.StatePath, "Path to the layout snapshot")
	cmd.PersistentFlags().BoolVar(&app.Debug, "debug", false, "Enable debug logging")

	cmd.AddCommand(
		newRenderCmd(app),
		newInspectCmd(app),
		newInitCmd(app),
		newUICmd(app),
		newVersionCmd(),
	)
	return cmd, nil
}

func (a *App) initialize() error {
	configPath, err := config.ResolvePath(a.ConfigPath)
	if err != nil {
		return err
	}
	statePath, err := config.ResolvePath(a.StatePath)
	if err != nil {
		return err
	}
	a.ConfigPath = configPath
	a.StatePath = statePath

	level := slog.LevelInfo
	if a.Debug {
		level = slog.LevelDebug
	}
	a.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	return nil
}

func (a *App) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return a.Logger
}

func (a *App) loadConfig() (config.Config, error) {
	cfg, err := config.Load(a.ConfigPath)
	if err != nil {
		return cfg, fmt.Errorf("load config %s: %w", a.ConfigPath, err)
	}
	return cfg, nil
}

func (a *App) loadState() (state.State, error) {
	st, err := state.Load(a.StatePath)
	if err != nil {
		return st, fmt.Errorf("load layout %s: %w", a.StatePath, err)
	}
	return st, nil
}

// graphOptions builds conversion options for one input. A config gap of 0
// asks for no separator lines, which graphview spells as a negative gap.
func (a *App) graphOptions(cfg config.Config, input string) graphview.Options {
	gap := cfg.ComponentGap
	if gap <= 0 {
		gap = -1
	}
	return graphview.Options{
		ProbeLimit:   cfg.ProbeLimit,
		ComponentGap: gap,
		Logger:       a.logger().With("input", input),
	}
}

// layout converts source and warns about edges that could not be drawn.
func (a *App) layout(cfg config.Config, input, source string) *graphview.Map {
	m := graphview.Layout(source, a.graphOptions(cfg, input))
	if undrawn := m.Undrawn(); len(undrawn) > 0 {
		a.logger().Warn("edges left undrawn", "input", input, "count", len(undrawn))
	}
	return m
}

func svgOptions(cfg config.Config) svgexport.Options {
	return svgexport.Options{
		FontSize:   cfg.SVG.FontSize,
		FontFamily: cfg.SVG.FontFamily,
		Background: cfg.SVG.Background,
		Foreground: cfg.SVG.Foreground,
	}
}

// readSource reads a diagram file, or stdin for "-".
func readSource(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

func println(w io.Writer, lines ...string) {
	for _, line := range lines {
		_, _ = fmt.Fprintln(w, strings.TrimRight(line, "\n"))
	}
}
