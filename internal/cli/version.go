package cli

import (
	"encoding/json"
	"fmt"

	"github.com/phenixrizen/asciiflow/internal/version"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print asciiflow version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(version.Current())
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version.ResolveCommit())
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print build details as JSON")
	return cmd
}
