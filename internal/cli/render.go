package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/phenixrizen/asciiflow/internal/batch"
	"github.com/phenixrizen/asciiflow/internal/config"
	"github.com/phenixrizen/asciiflow/internal/naming"
	"github.com/phenixrizen/asciiflow/internal/state"
	"github.com/phenixrizen/asciiflow/internal/svgexport"
	"github.com/spf13/cobra"
)

type renderFlags struct {
	format     string
	outDir     string
	probeLimit int
	gap        int
	workers    int
}

func newRenderCmd(app *App) *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render [file...]",
		Short: "Render diagram files (or stdin) as ASCII, JSON or SVG",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig()
			if err != nil {
				return err
			}
			applyRenderFlags(cmd, flags, &cfg)
			cfg.Normalize()
			if !config.ValidFormat(cfg.Format) {
				return fmt.Errorf("invalid --format %q (expected ascii|json|svg)", cfg.Format)
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			if len(args) == 0 {
				args = []string{"-"}
			}
			jobs := make([]batch.Job, 0, len(args))
			for _, path := range args {
				src, err := readSource(cmd, path)
				if err != nil {
					return err
				}
				jobs = append(jobs, batch.Job{Name: path, Source: src})
			}

			convert := func(_ context.Context, job batch.Job) ([]byte, error) {
				return app.convert(cfg, job)
			}
			results, summary, err := batch.Run(cmd.Context(), jobs, cfg.Workers, convert, app.logger())
			if err != nil {
				return err
			}
			if err := writeResults(cmd, results, args, cfg.Format, flags.outDir); err != nil {
				return err
			}
			if summary.Failed > 0 {
				return fmt.Errorf("%d of %d inputs failed", summary.Failed, summary.Tried)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", config.FormatASCII, "Output format ascii|json|svg")
	cmd.Flags().StringVar(&flags.outDir, "out-dir", "", "Write one file per input into this directory")
	cmd.Flags().IntVar(&flags.probeLimit, "probe-limit", 0, "Collision probe limit (0 = automatic)")
	cmd.Flags().IntVar(&flags.gap, "gap", 1, "Blank lines between components (0 = none)")
	cmd.Flags().IntVar(&flags.workers, "workers", batch.DefaultWorkers, "Files rendered concurrently")
	return cmd
}

// applyRenderFlags overrides config values with flags given on the command line.
func applyRenderFlags(cmd *cobra.Command, flags renderFlags, cfg *config.Config) {
	set := cmd.Flags().Changed
	if set("format") {
		cfg.Format = flags.format
	}
	if set("probe-limit") {
		cfg.ProbeLimit = flags.probeLimit
	}
	if set("gap") {
		cfg.ComponentGap = flags.gap
	}
	if set("workers") {
		cfg.Workers = flags.workers
	}
}

// convert renders one job in the configured format. Every call builds its own
// map, so jobs can run concurrently.
func (a *App) convert(cfg config.Config, job batch.Job) ([]byte, error) {
	m := a.layout(cfg, job.Name, job.Source)
	out := m.Render()
	switch cfg.Format {
	case config.FormatJSON:
		st := state.FromMap(m, job.Source, time.Now())
		st.Output = out
		data, err := state.Marshal(st)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", job.Name, err)
		}
		return data, nil
	case config.FormatSVG:
		return svgexport.Bytes(out, svgOptions(cfg)), nil
	default:
		if out == "" {
			return nil, nil
		}
		return []byte(out + "\n"), nil
	}
}

func writeResults(cmd *cobra.Command, results []batch.Result, inputs []string, format, outDir string) error {
	out := cmd.OutOrStdout()
	if outDir == "" {
		for i, r := range results {
			if r.Err != nil {
				continue
			}
			if i > 0 && len(results) > 1 {
				fmt.Fprintln(out)
			}
			if _, err := out.Write(r.Output); err != nil {
				return err
			}
		}
		return nil
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	names := naming.OutputNames(inputs, format)
	for i, r := range results {
		if r.Err != nil {
			continue
		}
		path := filepath.Join(outDir, names[i])
		if err := os.WriteFile(path, r.Output, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		fmt.Fprintf(out, "Wrote %s\n", path)
	}
	return nil
}
