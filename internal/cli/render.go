package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/dread/pkg/dread"
)

func newRenderCmd(a *app) *cobra.Command {
	var flags bindingFlags

	cmd := &cobra.Command{
		Use:   "render NAME",
		Short: "Bind values into a stored template",
		Example: `  dread --store templates.db render cookie -b cookie.yaml`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := flags.bindings()
			if err != nil {
				return err
			}
			var extra []dread.Option
			action, set, err := flags.missingAction()
			if err != nil {
				return err
			}
			if set {
				extra = append(extra, dread.WithMissingAction(action))
			}

			kit, err := a.open(cmd, extra...)
			if err != nil {
				return err
			}
			defer a.close(cmd.Context())

			out, err := kit.Render(cmd.Context(), args[0], b)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
