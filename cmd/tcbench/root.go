// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for tcbench.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"tcbench/internal/config"
	"tcbench/internal/issue"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "tcbench",
		Short: "Benchmark LLVM toolchain build-time optimizations",
		Long: TitleStyle.Render("tcbench") + SubtitleStyle.Render(" - Benchmark LLVM toolchain build-time optimizations") + `

tcbench times LLVM toolchain builds across a matrix of build-time
optimization strategies (multi-stage, ThinLTO, full LTO, PGO, BOLT),
then times Linux kernel builds performed with each resulting toolchain
against a GCC baseline. The timing itself is done by hyperfine; kernel
and LLVM builds run through their own build systems.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Check out llvm-project and a recent Linux kernel source tree
  2. Install hyperfine and the LLVM/kernel build dependencies
  3. Run: tcbench bench -b ./build -i ./install -k ./linux -l ./llvm-project

` + SubtitleStyle.Render("Examples:") + `
  tcbench validate -k ./linux -l ./llvm-project   Check sources and host
  tcbench bench -d ...                            Dry run, print commands only
  tcbench results                                 List generated reports
  tcbench config show                             Show effective configuration`,
	}
)

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/tcbench/config.toml)")

	// Add subcommands
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(rustCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(configCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// loadConfig loads the effective configuration, honoring the --config flag.
func loadConfig() (config.Config, error) {
	return config.Load(cfgFile)
}

// newLogger builds the logger shared by all subcommands.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          config.AppName,
		ReportTimestamp: true,
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// printHeader renders a section header for the major phases of a run.
func printHeader(title string) {
	fmt.Println(TitleStyle.Render("==== " + title + " ===="))
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// reportError prints an error through the palette and wraps it in an
// ExitError so Execute exits non-zero without a duplicate cobra print.
func reportError(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return &ExitError{Code: 1, Err: err}
}
