package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set via ldflags at build time
var (
	Version   = "dev"
	BuildTime = ""
	GitCommit = ""
)

var rootCmd = &cobra.Command{
	Use:     "blockwarden",
	Short:   "Blockwarden - local blocked-authors backend",
	Long:    `A single-binary backend with SQLite, serving a PIN-gated blocked-authors list to the browser extension.`,
	Version: Version,
}

func init() {
	// Set version template to include build info when available
	rootCmd.SetVersionTemplate("blockwarden version {{.Version}}\n")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
