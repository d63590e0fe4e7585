package app

import (
	"fmt"

	"github.com/blackwell-systems/shelfscribe/internal/grid"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newGridCmd() *cobra.Command {
	var showAll bool

	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Print the shelf grid",
		Long: `Print the shelf grid. Each square is a notebook (up to 4 per slot),
'+' marks an empty slot you can fill.

Only slots in use and their neighbours are shown unless --all is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			layout, err := cfg.Layout()
			if err != nil {
				return err
			}
			g := grid.Build(layout, shelfStore.Snapshot(), grid.Options{
				ShowAll: showAll || cfg.Grid.ShowAll,
			})
			fmt.Fprintln(cmd.OutOrStdout(), grid.Render(g, grid.RenderOptions{Plain: color.NoColor}))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&showAll, "all", "a", false, "Show every slot of the layout")
	return cmd
}
