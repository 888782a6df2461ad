// Package cli provides the command-line interface for secdigest.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/ppiankov/secdigest/internal/config"
)

// Version and Commit are set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
)

var (
	configPath string
	verbose    bool

	// appFs is where the config file is read from and written to.
	appFs afero.Fs = afero.NewOsFs()
)

var rootCmd = &cobra.Command{
	Use:          "secdigest",
	Short:        "Print a digest of security news and exploited vulnerabilities",
	Long:         "secdigest fetches a fixed set of security news feeds and the CISA Known Exploited Vulnerabilities catalog, and prints the latest items as a terminal digest.",
	SilenceUsage: true,
	RunE:         digestAction,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "secdigest %s (%s)\n", Version, Commit)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath(), "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log fetch diagnostics to stderr")
	addDigestFlags(rootCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(config.DefaultConfigDir, config.DefaultConfigFile)
	}
	return filepath.Join(home, config.DefaultConfigDir, config.DefaultConfigFile)
}

// newLogger returns the diagnostics logger. Warnings only, unless --verbose.
func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
