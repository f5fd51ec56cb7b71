// Shared helpers for librarian CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/mesh-intelligence/shelfmark/internal/sqlite"
	"github.com/mesh-intelligence/shelfmark/pkg/types"
)

// openStore resolves the data directory, creates a SQLite store, and
// opens it. The caller must defer store.Close().
func openStore() (*sqlite.Store, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	config := types.Config{
		Backend:  types.BackendSQLite,
		DataDir:  dataDir,
		LoanDays: configLoanDays,
	}

	store := sqlite.NewStore(storeOptions()...)
	if err := store.Open(config); err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	return store, nil
}

// storeOptions wires a debug logger into the store when --verbose is set.
// Logs go to stderr so table and JSON output stay clean on stdout.
func storeOptions() []sqlite.Option {
	if !flagVerbose {
		return nil
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	return []sqlite.Option{sqlite.WithLogger(logger)}
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(output))
	return nil
}

// parseID parses a positional numeric identifier argument.
func parseID(arg, what string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q must be a number", types.ErrInvalidInput, what, arg)
	}
	return id, nil
}

// orDash substitutes a dash for optional fields that were never set.
func orDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}

// yearText renders an optional year, with a dash when unset.
func yearText(year int) string {
	if year == 0 {
		return "-"
	}
	return strconv.Itoa(year)
}
