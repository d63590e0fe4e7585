package app

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/shelfscribe/internal/move"
	"github.com/blackwell-systems/shelfscribe/internal/shelf"
	"github.com/spf13/cobra"
)

func newMoveCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "move <source> <target> [barcode...]",
		Short: "Move notebooks between slots",
		Long: `Move the named notebooks from one slot to another. Moved notebooks are
appended to the target slot. Copies of one barcode move together as a
single notebook.

Examples:
  shelfscribe move 1-1 2-3 NB-0001 NB-0002
  shelfscribe move 4-1 4-2 --all`,
		Args:              cobra.MinimumNArgs(2),
		ValidArgsFunction: completeCells(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := parseCell(args[0])
			if err != nil {
				return err
			}
			barcodes := args[2:]
			if all == (len(barcodes) > 0) {
				return fmt.Errorf("name the barcodes to move or pass --all")
			}

			current, _ := shelfStore.Cell(source)
			if len(current) == 0 {
				return fmt.Errorf("%s is empty", slotLabel(source))
			}

			if all {
				for _, nb := range current {
					barcodes = append(barcodes, nb.Barcode)
				}
			}

			// One record per barcode, as the editor selection does.
			var selected []shelf.Notebook
			for _, b := range barcodes {
				b = strings.TrimSpace(b)
				if !shelf.HasBarcode(current, b) {
					return fmt.Errorf("%s is not in %s", b, slotLabel(source))
				}
				if shelf.HasBarcode(selected, b) {
					continue
				}
				for _, nb := range current {
					if nb.Barcode == b {
						selected = append(selected, nb)
						break
					}
				}
			}

			var flow move.Workflow
			flow.Open(source)
			if err := flow.Arm(selected); err != nil {
				return err
			}
			if err := persisted(flow.CompleteTyped(args[1], shelfStore)); err != nil {
				return err
			}
			ok("Moved %d notebook(s) from %s to %s", len(selected), slotLabel(source), slotLabel(strings.TrimSpace(args[1])))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Move every notebook in the source slot")
	return cmd
}
