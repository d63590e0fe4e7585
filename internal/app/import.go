package app

import (
	"fmt"

	"github.com/blackwell-systems/shelfscribe/internal/shelf"
	"github.com/blackwell-systems/shelfscribe/internal/transfer"
	"github.com/spf13/cobra"
)

func newImportCmd() *cobra.Command {
	var (
		modeFlag string
		dryRun   bool
	)

	cmd := &cobra.Command{
		Use:   "import <file|->",
		Short: "Import shelf data from a JSON export",
		Long: `Import a JSON export written by 'shelfscribe export'.

  merge    adds the file's notebooks to the current shelf, skipping barcodes
           a slot already holds
  replace  discards the current shelf and uses the file as is

The file is validated first; an invalid file changes nothing.

Examples:
  shelfscribe import backup.json
  shelfscribe import backup.json --mode replace --dry-run
  cat backup.json | shelfscribe import -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := shelf.ParseImportMode(modeFlag)
			if err != nil {
				return err
			}

			incoming, err := transfer.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("import failed: %w", err)
			}

			summary := transfer.Preview(shelfStore.Snapshot(), incoming, mode)
			if dryRun {
				header("Dry run, nothing changed")
				fmt.Fprintln(cmd.OutOrStdout(), summary.String())
				return nil
			}

			if err := persisted(shelfStore.Import(incoming, mode)); err != nil {
				return err
			}
			ok("Imported %s", summary)
			return nil
		},
	}

	cmd.Flags().StringVarP(&modeFlag, "mode", "m", "merge", "Import mode: merge or replace")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what the import would change without doing it")
	return cmd
}
