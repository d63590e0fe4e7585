package app

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <cell> <barcode>...",
		Short: "Replace the contents of a slot",
		Long: `Replace the notebooks in a slot with the given barcodes, in order.
Use 'shelfscribe delete' to empty a slot.

Examples:
  shelfscribe set 3-2 NB-0001 NB-0002`,
		Args:              cobra.MinimumNArgs(2),
		ValidArgsFunction: completeCells(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := parseCell(args[0])
			if err != nil {
				return err
			}
			nbs := notebooksFrom(args[1:])
			if len(nbs) == 0 {
				return fmt.Errorf("every barcode is blank")
			}
			if err := persisted(shelfStore.Save(key, nbs)); err != nil {
				return err
			}
			ok("%s now holds %d notebook(s)", slotLabel(key), len(nbs))
			return nil
		},
	}
}
