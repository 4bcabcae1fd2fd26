package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/phenixrizen/asciiflow/internal/config"
	"github.com/phenixrizen/asciiflow/internal/graphview"
	"github.com/phenixrizen/asciiflow/internal/naming"
	"github.com/phenixrizen/asciiflow/internal/svgexport"
	"github.com/phenixrizen/asciiflow/internal/version"
	"github.com/spf13/cobra"
)

// writeClipboard is swapped out in tests; headless machines have no clipboard.
var writeClipboard = clipboard.WriteAll

const untitled = "untitled"

func newUICmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ui [file]",
		Short: "Edit a diagram with a live preview",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig()
			if err != nil {
				return err
			}
			path, src := "", ""
			if len(args) == 1 {
				path = args[0]
				data, err := os.ReadFile(path)
				if err != nil && !errors.Is(err, os.ErrNotExist) {
					return fmt.Errorf("read %s: %w", path, err)
				}
				src = string(data)
			}
			model := newUIModel(app, cfg, path, src)
			prog := tea.NewProgram(model, tea.WithAltScreen())
			_, err = prog.Run()
			return err
		},
	}
	return cmd
}

type uiModel struct {
	app     *App
	cfg     config.Config
	path    string
	editor  textarea.Model
	preview viewport.Model
	output  string
	status  string
	width   int
	height  int
	commit  string
	undrawn int
}

func newUIModel(app *App, cfg config.Config, path, src string) uiModel {
	ta := textarea.New()
	ta.Placeholder = "a -> b"
	ta.ShowLineNumbers = true
	ta.CharLimit = 0
	ta.SetWidth(40)
	ta.SetHeight(20)
	ta.SetValue(src)
	ta.Focus()

	m := uiModel{
		app:     app,
		cfg:     cfg,
		path:    path,
		editor:  ta,
		preview: viewport.New(60, 20),
		status:  "type a diagram; the preview follows",
		commit:  version.ShortCommit(),
	}
	m.refresh()
	return m
}

func (m uiModel) Init() tea.Cmd {
	return textarea.Blink
}

// refresh re-renders the editor contents into the preview pane.
func (m *uiModel) refresh() {
	name := m.path
	if name == "" {
		name = untitled
	}
	// stderr belongs to the alt screen here; undrawn edges show in the header
	opts := m.app.graphOptions(m.cfg, name)
	opts.Logger = slog.New(slog.DiscardHandler)
	layout := graphview.Layout(m.editor.Value(), opts)
	m.undrawn = len(layout.Undrawn())
	m.output = layout.Render()
	m.preview.SetContent(clipLines(m.output, m.preview.Width))
}

// clipLines cuts every line to width cells so wide diagrams do not wrap.
func clipLines(text string, width int) string {
	if width <= 0 || text == "" {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = ansi.Truncate(line, width, "…")
	}
	return strings.Join(lines, "\n")
}

func (m uiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "ctrl+y":
			if err := writeClipboard(m.output); err != nil {
				m.status = "copy failed: " + err.Error()
			} else {
				m.status = "copied diagram to clipboard"
			}
			return m, nil
		case "ctrl+e":
			path, err := m.exportSVG()
			if err != nil {
				m.status = "export failed: " + err.Error()
			} else {
				m.status = "exported " + path
			}
			return m, nil
		case "ctrl+s":
			if m.path == "" {
				m.status = "no file to save to; start with: asciiflow ui <file>"
				return m, nil
			}
			if err := os.WriteFile(m.path, []byte(m.editor.Value()), 0o644); err != nil {
				m.status = "save failed: " + err.Error()
			} else {
				m.status = "saved " + m.path
			}
			return m, nil
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.preview, cmd = m.preview.Update(msg)
			return m, cmd
		}
	}

	before := m.editor.Value()
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	if m.editor.Value() != before {
		m.refresh()
	}
	return m, cmd
}

func (m *uiModel) resize() {
	paneHeight := max(m.height-4, 3)
	editorWidth := max(m.width*2/5, 20)
	previewWidth := max(m.width-editorWidth-4, 10)
	m.editor.SetWidth(editorWidth)
	m.editor.SetHeight(paneHeight)
	m.preview.Width = previewWidth
	m.preview.Height = paneHeight
	m.preview.SetContent(clipLines(m.output, previewWidth))
}

// exportSVG writes the preview next to the source file, or to the working
// directory for an unsaved diagram.
func (m uiModel) exportSVG() (string, error) {
	src := m.path
	if src == "" {
		src = untitled
	}
	path := filepath.Join(filepath.Dir(src), naming.OutputNames([]string{src}, config.FormatSVG)[0])
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := svgexport.Render(f, m.output, svgOptions(m.cfg)); err != nil {
		_ = f.Close()
		return "", err
	}
	return path, f.Close()
}

func (m uiModel) View() string {
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("111")).Bold(true).Padding(0, 1)
	versionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("246"))
	name := m.path
	if name == "" {
		name = untitled
	}
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		titleStyle.Render("ASCIIFLOW"),
		versionStyle.Render(name+"  version: "+m.commit),
	)
	if m.undrawn > 0 {
		warn := lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Padding(0, 1)
		header = lipgloss.JoinHorizontal(lipgloss.Top, header, warn.Render(fmt.Sprintf("%d edges undrawn", m.undrawn)))
	}

	pane := lipgloss.NewStyle().Border(lipgloss.NormalBorder())
	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		pane.Render(m.editor.View()),
		pane.Render(m.preview.View()),
	)
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render(m.status)
	screen := lipgloss.JoinVertical(lipgloss.Left, header, panes, status, m.hotkeysLineView())
	if m.width > 0 {
		screen = lipgloss.NewStyle().MaxWidth(m.width).Render(screen)
	}
	return screen
}

func (m uiModel) hotkeysLineView() string {
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("45")).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("246"))
	sep := lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Render("  ")

	parts := []string{
		keyStyle.Render("<ctrl+s>") + " " + labelStyle.Render("save"),
		keyStyle.Render("<ctrl+y>") + " " + labelStyle.Render("copy"),
		keyStyle.Render("<ctrl+e>") + " " + labelStyle.Render("export svg"),
		keyStyle.Render("<pgup/pgdn>") + " " + labelStyle.Render("scroll preview"),
		keyStyle.Render("<esc>") + " " + labelStyle.Render("quit"),
	}
	return strings.Join(parts, sep)
}
