package app

import (
	"encoding/json"
	"fmt"

	"github.com/blackwell-systems/shelfscribe/internal/shelf"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

type cellListing struct {
	Cell      string           `json:"cell"`
	Label     string           `json:"label"`
	Notebooks []shelf.Notebook `json:"notebooks"`
}

func newListCmd() *cobra.Command {
	var (
		jsonOut bool
		table   bool
		empty   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List slots and the notebooks they hold",
		Long: `List every slot holding notebooks, in grid order.

Examples:
  shelfscribe list
  shelfscribe list --empty
  shelfscribe list --table
  shelfscribe list --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d := shelfStore.Snapshot()
			out := cmd.OutOrStdout()

			listing := []cellListing{}
			for _, key := range d.Cells() {
				if len(d[key]) == 0 && !empty {
					continue
				}
				listing = append(listing, cellListing{Cell: key, Label: slotLabel(key), Notebooks: d[key]})
			}

			if jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(listing)
			}

			if len(listing) == 0 {
				fmt.Fprintln(out, "The shelf is empty.")
				return nil
			}
			if table {
				fmt.Fprintln(out, listingTable(listing))
			} else {
				for _, c := range listing {
					printCell(out, c.Cell, c.Notebooks)
				}
			}
			fmt.Fprintf(out, "\n%d notebook(s) in %d slot(s)\n", d.Count(), len(listing))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	cmd.Flags().BoolVarP(&table, "table", "t", false, "One row per notebook in aligned columns")
	cmd.Flags().BoolVar(&empty, "empty", false, "Include empty slots")
	return cmd
}

// listingTable lays the listing out one notebook per row.
func listingTable(listing []cellListing) *uitable.Table {
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("SLOT"), bold.Sprint("CELL"), bold.Sprint("#"), bold.Sprint("BARCODE"), bold.Sprint("TITLE"))
	for _, c := range listing {
		if len(c.Notebooks) == 0 {
			tbl.AddRow(c.Label, c.Cell, "-", "", "")
			continue
		}
		for i, nb := range c.Notebooks {
			tbl.AddRow(c.Label, c.Cell, i+1, nb.Barcode, nb.Title)
		}
	}
	return tbl
}
