package version

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cloudcare/helpdesk/internal/shared/version"
)

var asJSON bool

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE:  run,
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	info := version.Get()
	out := cmd.OutOrStdout()

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}

	fmt.Fprintf(out, "helpdesk %s (%s)\n", info.Version, info.GoVersion)
	if !info.Release {
		fmt.Fprintln(out, "development build")
	}
	if info.Commit != "" {
		fmt.Fprintf(out, "commit:  %s\n", info.Commit)
	}
	if info.BuildTime != "" {
		fmt.Fprintf(out, "built:   %s\n", info.BuildTime)
	}
	return nil
}
