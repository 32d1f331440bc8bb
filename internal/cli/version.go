package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/dread/pkg/dread"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the dread version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			info := dread.Info()
			fmt.Fprintf(cmd.OutOrStdout(), "dread %s (%s)\n", info.Version, info.Codename)
		},
	}
}
