package app

import (
	"github.com/spf13/cobra"
)

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "delete <cell>",
		Aliases:           []string{"clear"},
		Short:             "Empty a slot",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeCells(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := parseCell(args[0])
			if err != nil {
				return err
			}
			if _, exists := shelfStore.Cell(key); !exists {
				warn("%s is not in use", slotLabel(key))
				return nil
			}
			if err := persisted(shelfStore.Delete(key)); err != nil {
				return err
			}
			ok("Cleared %s", slotLabel(key))
			return nil
		},
	}
}
