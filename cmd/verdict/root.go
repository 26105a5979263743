package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "verdict",
	Short: "Verdict - eligibility rule evaluation engine",
	Long: `Verdict evaluates declarative eligibility rulesets against applicant
attributes and reports, rule by rule, why an application passed, failed,
or could not be fully assessed.

It provides:
  - Recursive rule evaluation with nested conditions and alternatives
  - Required, optional, and disqualifying requirement levels
  - Human-readable expectation strings for every outcome
  - An in-memory audit log of validation runs (names only, never values)

For more information, visit: https://github.com/civium-hq/verdict`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
