// Root command for the librarian CLI.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shelfmark/internal/paths"
	"github.com/mesh-intelligence/shelfmark/internal/shell"
)

// Exit codes: 0 success, 1 user error, 2 system error.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagJSON      bool
	flagVerbose   bool
)

// Config values loaded from config.yaml by PersistentPreRunE, so all
// subcommands can use them.
var (
	configDataDir  string
	configLoanDays int
)

var rootCmd = &cobra.Command{
	Use:     "librarian",
	Short:   "Librarian is a local library catalog manager",
	Version: version,
	Long: `Librarian manages a small library catalog of books, members, and
loans in a local SQLite database. Run it without arguments to use the
interactive menu, or use the subcommands directly.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		configDataDir = cfg.GetString(cfgKeyDataDir)
		configLoanDays = cfg.GetInt(cfgKeyLoanDays)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		sh := shell.New(store, os.Stdin, os.Stdout,
			shell.WithLoanDays(store.Config().GetLoanDays()))
		return sh.Run()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: $(CWD)/.shelfmark)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory holding library.db (default: $(CWD))")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "log store operations to stderr")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(bookCmd)
	rootCmd.AddCommand(memberCmd)
	rootCmd.AddCommand(loanCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(exportCmd)
}

// resolveDataDir returns the data directory path following the
// flag > config.yaml > SHELFMARK_DATA_DIR env > $(CWD) precedence.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, configDataDir)
}

// resolveConfigDir returns the configuration directory following the
// flag > SHELFMARK_CONFIG_DIR env > $(CWD)/.shelfmark precedence.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}
