package app

import (
	"fmt"

	"github.com/blackwell-systems/shelfscribe/internal/util"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newResetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear every slot",
		Long: `Remove every notebook and leave only the empty first slot.
Export first if you may want the data back.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				if !util.IsInteractive() {
					return fmt.Errorf("refusing to reset without --yes")
				}
				n := shelfStore.Snapshot().Count()
				q := color.YellowString("Reset the shelf and drop %d notebook(s)?", n)
				if !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), q) {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}
			if err := persisted(shelfStore.Reset()); err != nil {
				return err
			}
			ok("Shelf reset")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
