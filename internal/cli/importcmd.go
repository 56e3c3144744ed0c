package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/me/smecert/internal/importer"
)

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Bulk-import participants from a spreadsheet",
		Long:  "Parse a .xlsx or .csv file with Nome/Email/CPF columns and submit all rows as one batch.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open %s: %w", path, err)
			}
			defer f.Close()

			pipeline := importer.New(client, logger)
			result, err := pipeline.Run(cmd.Context(), f, filepath.Base(path))
			if err != nil {
				return fmt.Errorf("import: %w", err)
			}

			if result.Message != "" {
				fmt.Println(result.Message)
			}
			fmt.Printf("%d of %d rows imported.\n", result.SuccessCount(), len(result.Results))
			for _, row := range result.Results {
				if row.ImportStatus == "success" {
					continue
				}
				fmt.Printf("  %s: %s", row.RowID, row.ImportStatus)
				if row.Error != "" {
					fmt.Printf(" - %s", row.Error)
				}
				fmt.Println()
			}
			if !result.Success {
				return fmt.Errorf("import finished with errors")
			}
			return nil
		},
	}
}
