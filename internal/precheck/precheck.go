// SPDX-License-Identifier: MPL-2.0

package precheck

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"tcbench/internal/issue"
	"tcbench/internal/kernel"
)

// TimingTool is the external benchmark harness every run depends on.
const TimingTool = "hyperfine"

//nolint:gochecknoglobals // Test seam for exec.LookPath.
var lookPath = exec.LookPath

// CheckTimingTool verifies hyperfine is on PATH.
func CheckTimingTool() error {
	if _, err := lookPath(TimingTool); err != nil {
		return issue.NewErrorContext().
			WithOperation("locate " + TimingTool).
			WithSuggestion("Install hyperfine from your distribution or https://github.com/sharkdp/hyperfine").
			WithSuggestion("Make sure the binary's directory is on PATH").
			Wrap(err).
			Build()
	}
	return nil
}

// CheckKernelTree verifies the kernel source folder exists, looks like a
// kernel tree, is pristine, and is new enough for the matrix.
func CheckKernelTree(folder string) error {
	tree := kernel.SourceTree{Folder: folder}

	if !tree.Exists() {
		return issue.NewErrorContext().
			WithOperation("validate kernel source").
			WithResource(folder).
			WithSuggestion("Check the --kernel-folder path").
			Wrap(fmt.Errorf("folder does not exist")).
			Build()
	}
	if !tree.LooksLikeKernel() {
		return issue.NewErrorContext().
			WithOperation("validate kernel source").
			WithResource(folder).
			WithSuggestion("Point --kernel-folder at a Linux kernel checkout").
			Wrap(fmt.Errorf("no top-level Makefile, does not appear to be a Linux kernel source tree")).
			Build()
	}
	if !tree.IsPristine() {
		return issue.NewErrorContext().
			WithOperation("validate kernel source").
			WithResource(folder).
			WithSuggestion("Run 'make mrproper' so out of tree builds will not error").
			Wrap(fmt.Errorf("tree is not clean, found a leftover .config")).
			Build()
	}

	version, err := tree.ReadVersion()
	if err != nil {
		return issue.WrapWithContext(err, "validate kernel source", folder)
	}
	if version.OlderThan(kernel.MinimumSupportedVersion) {
		return issue.NewErrorContext().
			WithOperation("validate kernel source").
			WithResource(folder).
			WithSuggestion("Provide a kernel at or above " + kernel.MinimumSupportedVersion.String()).
			Wrap(fmt.Errorf("kernel version %s is older than the minimum supported version %s", version, kernel.MinimumSupportedVersion)).
			Build()
	}

	return nil
}

// CheckLLVMTree verifies the LLVM source folder exists and carries the
// monorepo's build manifest.
func CheckLLVMTree(folder string) error {
	if info, err := os.Stat(folder); err != nil || !info.IsDir() {
		return issue.NewErrorContext().
			WithOperation("validate LLVM source").
			WithResource(folder).
			WithSuggestion("Check the --llvm-folder path").
			Wrap(fmt.Errorf("folder does not exist")).
			Build()
	}
	if _, err := os.Stat(filepath.Join(folder, "llvm", "CMakeLists.txt")); err != nil {
		return issue.NewErrorContext().
			WithOperation("validate LLVM source").
			WithResource(folder).
			WithSuggestion("Point --llvm-folder at an llvm-project monorepo checkout").
			Wrap(fmt.Errorf("no llvm/CMakeLists.txt, does not appear to be an LLVM source tree")).
			Build()
	}
	return nil
}

// Validate runs every precondition check in order and returns the first
// failure.
func Validate(kernelFolder, llvmFolder string) error {
	if err := CheckTimingTool(); err != nil {
		return err
	}
	if err := CheckKernelTree(kernelFolder); err != nil {
		return err
	}
	return CheckLLVMTree(llvmFolder)
}
