package app

import (
	"github.com/blackwell-systems/shelfscribe/internal/transfer"
	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export [file|-]",
		Short: "Export shelf data as JSON or a spreadsheet",
		Long: `Write the shelf data as indented JSON. The file defaults to
shelfscribe_data.json in the current directory; '-' writes to stdout.

A path ending in .xlsx, or --format xlsx, writes a spreadsheet with one row
per notebook instead. Spreadsheets cannot be imported back.`,
		Example: `  shelfscribe export
  shelfscribe export - > backup.json
  shelfscribe export inventory.xlsx`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := transfer.DefaultExportName
			if len(args) > 0 {
				path = args[0]
			}
			f, err := transfer.ParseFormat(format, path)
			if err != nil {
				return err
			}

			d := shelfStore.Snapshot()
			if path == "-" {
				if f == transfer.FormatXLSX {
					return transfer.ExportSheet(cmd.OutOrStdout(), d)
				}
				return transfer.Export(cmd.OutOrStdout(), d)
			}

			if f == transfer.FormatXLSX {
				err = transfer.ExportSheetFile(path, d)
			} else {
				err = transfer.ExportFile(path, d)
			}
			if err != nil {
				return err
			}
			ok("Exported %d notebook(s) to %s", d.Count(), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: json or xlsx (default: from the file extension)")
	return cmd
}
