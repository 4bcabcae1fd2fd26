package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/phenixrizen/asciiflow/internal/config"
	"github.com/spf13/cobra"
)

func newInitCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively write the asciiflow config",
		RunE: func(cmd *cobra.Command, _ []string) error {
			defaults := config.Default()
			if cfg, err := app.loadConfig(); err == nil {
				defaults = cfg
			}

			reader := bufio.NewReader(cmd.InOrStdin())
			out := cmd.OutOrStdout()
			format, err := prompt(reader, out, "Output format (ascii|json|svg)", defaults.Format)
			if err != nil {
				return err
			}
			workers, err := promptInt(reader, out, "Concurrent renders", defaults.Workers)
			if err != nil {
				return err
			}
			probe, err := promptInt(reader, out, "Probe limit (0 = automatic)", defaults.ProbeLimit)
			if err != nil {
				return err
			}
			gap, err := promptInt(reader, out, "Blank lines between components (0 = none)", defaults.ComponentGap)
			if err != nil {
				return err
			}
			font, err := prompt(reader, out, "SVG font family", defaults.SVG.FontFamily)
			if err != nil {
				return err
			}

			defaults.Format = format
			defaults.Workers = workers
			defaults.ProbeLimit = probe
			defaults.ComponentGap = gap
			defaults.SVG.FontFamily = font

			if err := config.Save(app.ConfigPath, defaults); err != nil {
				return err
			}
			println(out, "Wrote config: "+app.ConfigPath, "Initialization complete.")
			return nil
		},
	}
	return cmd
}

func prompt(reader *bufio.Reader, out io.Writer, label, defaultValue string) (string, error) {
	if defaultValue != "" {
		fmt.Fprintf(out, "%s [%s]: ", label, defaultValue)
	} else {
		fmt.Fprintf(out, "%s: ", label)
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", err
		}
	}
	value := strings.TrimSpace(line)
	if value == "" {
		value = defaultValue
	}
	return value, nil
}

func promptInt(reader *bufio.Reader, out io.Writer, label string, defaultValue int) (int, error) {
	value, err := prompt(reader, out, label, strconv.Itoa(defaultValue))
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number", strings.ToLower(label), value)
	}
	return n, nil
}
