package cli

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/phenixrizen/asciiflow/internal/state"
	"github.com/phenixrizen/asciiflow/internal/tableview"
	"github.com/spf13/cobra"
)

func newInspectCmd(app *App) *cobra.Command {
	var find string
	var edges, save, fromState bool

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "List where every node was placed",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var st state.State
			if fromState {
				loaded, err := app.loadState()
				if err != nil {
					if errors.Is(err, os.ErrNotExist) {
						return fmt.Errorf("layout snapshot not found; run: asciiflow inspect --save <file>")
					}
					return err
				}
				st = loaded
			} else {
				cfg, err := app.loadConfig()
				if err != nil {
					return err
				}
				path := "-"
				if len(args) == 1 {
					path = args[0]
				}
				src, err := readSource(cmd, path)
				if err != nil {
					return err
				}
				if strings.TrimSpace(src) == "" {
					return ErrNoInput
				}
				m := app.layout(cfg, path, src)
				st = state.FromMap(m, src, time.Now())
				st.Output = m.Render()
			}

			components := st.Components
			if find != "" {
				filtered, err := findNodes(components, find)
				if err != nil {
					return err
				}
				components = filtered
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, tableview.RenderNodes(components))
			if edges {
				fmt.Fprintln(out)
				fmt.Fprint(out, tableview.RenderEdges(st.Components))
			}
			if save {
				if err := state.Save(app.StatePath, st); err != nil {
					return fmt.Errorf("write layout: %w", err)
				}
				fmt.Fprintf(out, "Wrote layout: %s\n", app.StatePath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&find, "find", "", "Only list nodes whose id fuzzy-matches this filter")
	cmd.Flags().BoolVar(&edges, "edges", false, "Also list edges and whether they were drawn")
	cmd.Flags().BoolVar(&save, "save", false, "Write the layout snapshot to --state")
	cmd.Flags().BoolVar(&fromState, "from-state", false, "Read the layout snapshot instead of a diagram")
	return cmd
}

// findNodes keeps the nodes whose id matches filter, best matches first.
func findNodes(components []state.ComponentRecord, filter string) ([]state.ComponentRecord, error) {
	var ids []string
	for _, c := range components {
		for _, n := range c.Nodes {
			ids = append(ids, n.ID)
		}
	}
	ranks := fuzzy.RankFindNormalizedFold(filter, ids)
	if len(ranks) == 0 {
		return nil, fmt.Errorf("no node matches %q", filter)
	}
	sort.Sort(ranks)
	order := make(map[string]int, len(ranks))
	for i, r := range ranks {
		order[r.Target] = i
	}

	out := make([]state.ComponentRecord, 0, len(components))
	for _, c := range components {
		kept := c
		kept.Nodes = nil
		for _, n := range c.Nodes {
			if _, ok := order[n.ID]; ok {
				kept.Nodes = append(kept.Nodes, n)
			}
		}
		if len(kept.Nodes) == 0 {
			continue
		}
		sort.SliceStable(kept.Nodes, func(i, j int) bool {
			return order[kept.Nodes[i].ID] < order[kept.Nodes[j].ID]
		})
		out = append(out, kept)
	}
	return out, nil
}
