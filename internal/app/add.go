package app

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/shelfscribe/internal/shelf"
	"github.com/spf13/cobra"
)

func newAddCmd() *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "add <cell> <barcode>",
		Short: "Add a notebook to a slot",
		Long: `Append a notebook to a slot. A barcode already in the slot is left alone.

Examples:
  shelfscribe add 1-1 9780321765723
  shelfscribe add 2-3 NB-0042 --title "Lab notes 2024"`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeCells(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := parseCell(args[0])
			if err != nil {
				return err
			}
			nb := shelf.Notebook{Barcode: strings.TrimSpace(args[1]), Title: strings.TrimSpace(title)}
			if nb.Blank() {
				return fmt.Errorf("barcode must not be blank")
			}

			current, _ := shelfStore.Cell(key)
			if shelf.HasBarcode(current, nb.Barcode) {
				warn("%s is already in %s", nb.Barcode, slotLabel(key))
				return nil
			}
			if err := persisted(shelfStore.Save(key, append(current, nb))); err != nil {
				return err
			}
			ok("Added %s to %s", nb.Barcode, slotLabel(key))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Optional notebook title")
	return cmd
}
