package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/dread/pkg/dread/store"
)

type infoJSON struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Revision int       `json:"revision"`
	Updated  time.Time `json:"updated"`
	Size     int64     `json:"size"`
}

func newStoreCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage named templates",
		Long: `Manage named templates.

Without --store (or a store setting) templates live in memory and
vanish when the command exits.`,
	}
	cmd.AddCommand(
		newStoreSaveCmd(a),
		newStoreShowCmd(a),
		newStoreListCmd(a),
		newStoreDeleteCmd(a),
	)
	return cmd
}

func newStoreSaveCmd(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "save NAME [TEMPLATE]",
		Short: "Save a named template",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readTemplate(cmd, args[1:], file)
			if err != nil {
				return err
			}
			kit, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer a.close(cmd.Context())

			info, err := kit.Save(cmd.Context(), args[0], body)
			if err != nil {
				return err
			}
			if a.jsonOutput {
				return writeJSON(cmd, toInfoJSON(info))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (revision %d)\n", info.Name, info.Revision)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", `template file ("-" for stdin)`)
	return cmd
}

func newStoreShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show NAME",
		Short: "Print a named template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kit, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer a.close(cmd.Context())

			body, err := kit.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), body)
			return nil
		},
	}
}

func newStoreListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List named templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kit, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer a.close(cmd.Context())

			infos, err := kit.List(cmd.Context())
			if err != nil {
				return err
			}

			if a.jsonOutput {
				out := make([]infoJSON, 0, len(infos))
				for _, info := range infos {
					out = append(out, toInfoJSON(info))
				}
				return writeJSON(cmd, out)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tREVISION\tSIZE\tUPDATED")
			for _, info := range infos {
				fmt.Fprintf(w, "%s\t%d\t%d\t%s\n",
					info.Name, info.Revision, info.Size, info.Updated.Format(time.RFC3339))
			}
			return w.Flush()
		},
	}
}

func newStoreDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a named template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kit, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer a.close(cmd.Context())

			if err := kit.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}

func toInfoJSON(info store.Info) infoJSON {
	return infoJSON{
		ID:       info.ID,
		Name:     info.Name,
		Revision: info.Revision,
		Updated:  info.Updated,
		Size:     info.Size,
	}
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
