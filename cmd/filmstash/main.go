package main

import (
	"fmt"
	"os"

	"github.com/filmstash/filmstash/internal/config"
	"github.com/filmstash/filmstash/internal/logging"
	"github.com/spf13/cobra"
)

var (
	version = "dev" // Set by build flags: -ldflags="-X main.version=1.0.0"
	cfgFile string
	verbose bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "filmstash",
		Short: "Fuzzy-searchable catalog for media files",
		Long: `filmstash maintains a catalog of media files indexed by normalized
titles. Arbitrary release filenames are cleaned, their title, year, and
season/episode extracted, and the result becomes the canonical catalog key.
Lookups and deletions tolerate typos and word reordering via token-set
fuzzy matching.`,
		Version: version,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.config/filmstash/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newDeleteCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newActivityCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.LoadPath(cfgFile)
	}
	return config.Load()
}

func newLogger(cfg *config.Config) (*logging.Logger, error) {
	logCfg := cfg.Logging
	if verbose {
		logCfg.Level = "debug"
	}
	return logging.New(logCfg)
}
