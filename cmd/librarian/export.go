// Export command writes a snapshot of the catalog to disk.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shelfmark/internal/sqlite"
)

var (
	exportDir    string
	exportFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog as JSON or JSONL files",
	Long: `Export writes books, members, and loans to one file per table plus
a manifest.json recording counts and the snapshot identity. The manifest
is written last, so its presence marks a complete snapshot.

Example:
  librarian export
  librarian export --dir ./backup --format json`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportDir, "dir", "", "target directory (default: data directory)")
	exportCmd.Flags().StringVar(&exportFormat, "format", sqlite.FormatJSONL, "snapshot format: json or jsonl")
}

func runExport(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	snapshot, err := store.ExportSnapshot(exportDir, exportFormat)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	if flagJSON {
		return printJSON(snapshot)
	}
	fmt.Printf("Exported %d book(s), %d member(s), %d loan(s)\n",
		snapshot.Books, snapshot.Members, snapshot.Loans)
	fmt.Println("Snapshot:", snapshot.SnapshotID)
	return nil
}
