// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"tcbench/internal/precheck"
	"tcbench/internal/sysinfo"
)

var (
	// validateKernelFolder is the Linux kernel source tree to probe
	validateKernelFolder string
	// validateLLVMFolder is the LLVM source tree to probe
	validateLLVMFolder string

	validateCmd = &cobra.Command{
		Use:   "validate",
		Short: "Check the host and source trees without benchmarking",
		Long: `Check the host and source trees without benchmarking.

Runs the same precondition validation the bench command runs before it
commits to a multi-hour run: host architecture support, hyperfine on
PATH, kernel tree shape and minimum version, and LLVM tree shape. The
initial validation builds are not performed; use 'tcbench bench' for
those.`,
		RunE: runValidate,
	}
)

func init() {
	validateCmd.Flags().StringVarP(&validateKernelFolder, "kernel-folder", "k", "", "Linux kernel source folder (required)")
	validateCmd.Flags().StringVarP(&validateLLVMFolder, "llvm-folder", "l", "", "LLVM source folder (required)")

	_ = validateCmd.MarkFlagRequired("kernel-folder")
	_ = validateCmd.MarkFlagRequired("llvm-folder")
}

func runValidate(cmd *cobra.Command, _ []string) error {
	host, err := sysinfo.Detect()
	if err != nil {
		return reportError(cmd, err)
	}

	kernel, err := filepath.Abs(validateKernelFolder)
	if err != nil {
		return reportError(cmd, fmt.Errorf("resolving kernel folder: %w", err))
	}
	llvm, err := filepath.Abs(validateLLVMFolder)
	if err != nil {
		return reportError(cmd, fmt.Errorf("resolving llvm folder: %w", err))
	}

	if err := precheck.Validate(kernel, llvm); err != nil {
		return reportError(cmd, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s host %s with %d GiB memory and %d build jobs, sources look good\n",
		SuccessStyle.Render("OK:"), host.Machine, host.MemGiB, host.BuildJobs)
	return nil
}
