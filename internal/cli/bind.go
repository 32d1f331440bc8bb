package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/dread/pkg/dread"
)

func newBindCmd(a *app) *cobra.Command {
	var (
		file  string
		flags bindingFlags
	)

	cmd := &cobra.Command{
		Use:   "bind [TEMPLATE]",
		Short: "Bind values into a template and print the result",
		Example: `  dread bind '{name}={value}; path={{path="/"}}' --set name=sid --set value='"abc"'
  dread bind -f cookie.tmpl -b cookie.yaml
  echo 'Hello {name}' | dread bind -f - --env-file .env`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tmpl, err := readTemplate(cmd, args, file)
			if err != nil {
				return err
			}
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

			out, err := kit.Bind(cmd.Context(), tmpl, b)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", `template file ("-" for stdin)`)
	flags.register(cmd)
	return cmd
}
