// SPDX-License-Identifier: MPL-2.0

package kernel

import (
	"context"

	"tcbench/internal/issue"
	"tcbench/internal/matrix"
	"tcbench/internal/run"
)

// ValidationBuilder builds the full kernel matrix once with a single
// toolchain. It exists purely to surface source or host environment
// problems before the multi-hour benchmark run commits, so any failure
// aborts immediately with context.
type ValidationBuilder struct {
	// Source is the kernel source tree.
	Source SourceTree
	// BuildFolder is the out-of-tree build directory, wiped per build by
	// the kernel's own build system.
	BuildFolder string
	// ToolchainBin is the bin folder of the freshly built stage-1 LLVM
	// toolchain.
	ToolchainBin string
	// Jobs is the make parallelism.
	Jobs int
	// Runner executes the make commands.
	Runner run.Runner
}

// Build runs every kernel matrix cell with the validation toolchain.
func (b *ValidationBuilder) Build(ctx context.Context) error {
	params := matrix.KernelParams{
		SourceFolder: b.Source.Folder,
		BuildFolder:  b.BuildFolder,
		Jobs:         b.Jobs,
	}

	for _, ke := range matrix.KernelEntries() {
		cmd := matrix.LLVMKernelCommand(params, ke, b.ToolchainBin)
		if err := b.Runner.Run(ctx, cmd); err != nil {
			return issue.NewErrorContext().
				WithOperation("validate kernel build").
				WithResource("ARCH=" + ke.Arch + " " + ke.Config).
				WithSuggestion("Check the LLVM and Linux source revisions for known breakage").
				WithSuggestion("Check the host for missing kernel build dependencies").
				Wrap(err).
				Build()
		}
	}
	return nil
}
