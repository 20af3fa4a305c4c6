// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"tcbench/internal/report"
)

var (
	// resultsBuildFolder is the build folder the reports were generated under
	resultsBuildFolder string

	resultsCmd = &cobra.Command{
		Use:   "results [name]",
		Short: "List or render generated benchmark reports",
		Long: `List or render generated benchmark reports.

Without arguments, lists the reports available under <build>/results.
With a report name, renders that report's markdown to the terminal.

Examples:
  tcbench results                    List available reports
  tcbench results llvm               Render the LLVM matrix report
  tcbench results x86_64-defconfig   Render one kernel matrix report`,
		Args: cobra.MaximumNArgs(1),
		RunE: runResults,
	}
)

func init() {
	resultsCmd.Flags().StringVarP(&resultsBuildFolder, "build-folder", "b", "build", "build folder the benchmark ran with")
}

func runResults(cmd *cobra.Command, args []string) error {
	build, err := filepath.Abs(resultsBuildFolder)
	if err != nil {
		return reportError(cmd, fmt.Errorf("resolving build folder: %w", err))
	}
	resultsFolder := filepath.Join(build, "results")

	if len(args) == 1 {
		out, err := report.Render(resultsFolder, args[0])
		if err != nil {
			return reportError(cmd, err)
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	}

	names, err := report.List(resultsFolder)
	if err != nil {
		return reportError(cmd, err)
	}
	if len(names) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), WarningStyle.Render("No reports found in ")+resultsFolder)
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), TitleStyle.Render("Available reports:"))
	for _, name := range names {
		fmt.Fprintln(cmd.OutOrStdout(), "  "+CmdStyle.Render(name))
	}
	return nil
}
