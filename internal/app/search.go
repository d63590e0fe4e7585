package app

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

type searchResult struct {
	Barcode string `json:"barcode"`
	Found   bool   `json:"found"`
	Cell    string `json:"cell,omitempty"`
	Label   string `json:"label,omitempty"`
}

func newSearchCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "search <barcode>",
		Short: "Find the slot holding a notebook",
		Long: `Find which slot holds the notebook with the given barcode.
Matching ignores case and surrounding spaces but is otherwise exact.

Exits with status 1 when no notebook matches.

Examples:
  shelfscribe search 9780321765723
  shelfscribe search nb-0042 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := searchResult{Barcode: args[0]}
			if key, found := shelfStore.Search(args[0]); found {
				res.Found, res.Cell, res.Label = true, key, slotLabel(key)
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(res); err != nil {
					return err
				}
			} else if res.Found {
				fmt.Fprintf(out, "%s is in %s (%s)\n", res.Barcode, res.Label, res.Cell)
			}

			if !res.Found {
				return fmt.Errorf("no notebook with barcode %q", args[0])
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}
