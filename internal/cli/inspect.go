package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/dread/pkg/dread/template"
)

type placeholderJSON struct {
	Name       string `json:"name"`
	Default    string `json:"default,omitempty"`
	HasDefault bool   `json:"hasDefault"`
}

func newInspectCmd(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "inspect [TEMPLATE]",
		Short: "List the placeholders of a template",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tmpl, err := readTemplate(cmd, args, file)
			if err != nil {
				return err
			}
			found := template.Placeholders(tmpl)

			if a.jsonOutput {
				out := make([]placeholderJSON, 0, len(found))
				for _, p := range found {
					out = append(out, placeholderJSON(p))
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tDEFAULT")
			for _, p := range found {
				def := "-"
				if p.HasDefault {
					def = fmt.Sprintf("%q", p.Default)
				}
				fmt.Fprintf(w, "%s\t%s\n", p.Name, def)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", `template file ("-" for stdin)`)
	return cmd
}
