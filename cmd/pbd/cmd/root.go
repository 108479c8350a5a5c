package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "pbd",
	Short: "Programming-by-demonstration synthesis engine",
	Long: `pbd is a programming-by-demonstration engine: it records a user's
example-driven trace of function applications and branch choices into a
branch-tree instruction stream, solves the type constraints gathered along
the way by first-order unification, and synthesizes a callable function
from the result.

Registers and lists hold the live values the demonstration operates over;
built-in and synthesized functions share one calling contract, so a
function still under construction can call itself recursively and report
"unknown" on the paths not yet demonstrated rather than failing outright.`,
	Version: Version,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}
