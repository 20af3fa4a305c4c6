// SPDX-License-Identifier: MPL-2.0

package matrix

import (
	"fmt"
	"path/filepath"
	"slices"
	"sort"
	"strconv"
)

// CheckTargets are the LLVM test suites exercised by every variant build.
//
//nolint:gochecknoglobals // Static table.
var CheckTargets = []string{"clang", "lld", "llvm", "llvm-unit"}

// Targets are the LLVM backends built by every variant, matching the
// architectures of the kernel matrix.
//
//nolint:gochecknoglobals // Static table.
var Targets = []string{"ARM", "AArch64", "X86"}

type (
	// LLVMParams holds everything LLVM build command assembly needs. All
	// paths are absolute; host facts come from sysinfo at startup.
	LLVMParams struct {
		// BuildScript is the invocation head for the LLVM build helper,
		// e.g. ["/usr/bin/python3", "/path/to/build-llvm.py"].
		BuildScript []string
		// BuildFolder is where LLVM build artifacts go.
		BuildFolder string
		// SourceFolder is the LLVM monorepo checkout.
		SourceFolder string
		// KernelFolder is the Linux source tree used as the PGO workload.
		KernelFolder string
		// InstallRoot is the parent of all per-variant install folders.
		InstallRoot string
		// MemGiB is the host's physical memory in GiB.
		MemGiB int
		// FullLTODivisor and ThinLTODivisor bound link parallelism: the
		// link job count is MemGiB divided by the divisor.
		FullLTODivisor int
		ThinLTODivisor int
	}

	// KernelParams holds everything kernel build command assembly needs.
	KernelParams struct {
		// SourceFolder is the Linux kernel source tree.
		SourceFolder string
		// BuildFolder is the out-of-tree build directory (make O=).
		BuildFolder string
		// Jobs is the make parallelism, normally the host affinity CPU count.
		Jobs int
		// GCCBinFolder is the bin directory of the baseline GCC install.
		GCCBinFolder string
		// AllmodConfig is the KCONFIG_ALLCONFIG override file forced into
		// baseline GCC builds.
		AllmodConfig string
	}
)

// LinkJobs computes the LTO link parallelism for a host with memGiB of
// physical memory. The result never drops below one so that a small host
// still links, just slowly.
func LinkJobs(memGiB, divisor int) int {
	if jobs := memGiB / divisor; jobs > 1 {
		return jobs
	}
	return 1
}

// BaseLLVMCommand assembles the flags shared by every LLVM build variant.
func BaseLLVMCommand(p LLVMParams) []string {
	cmd := slices.Clone(p.BuildScript)
	cmd = append(cmd, "--build-folder", p.BuildFolder)
	cmd = append(cmd, "--check-targets")
	cmd = append(cmd, CheckTargets...)
	cmd = append(cmd, "--llvm-folder", p.SourceFolder)
	cmd = append(cmd, "--no-ccache", "--quiet-cmake")
	cmd = append(cmd, "--targets")
	cmd = append(cmd, Targets...)
	return cmd
}

// LLVMCommand assembles the full build command for one variant: the base
// command, the variant's install folder, its own flags, the kernel source
// when PGO profiling needs a workload, and link-job caps when an LTO mode
// would otherwise run the linker out of memory.
func LLVMCommand(p LLVMParams, e Entry) []string {
	cmd := BaseLLVMCommand(p)
	cmd = append(cmd, "--install-folder", e.InstallFolder(p.InstallRoot))
	cmd = append(cmd, e.Args...)

	if slices.Contains(e.Args, "--pgo") {
		cmd = append(cmd, "--linux-folder", p.KernelFolder)
	}
	if slices.Contains(e.Args, "full") {
		cmd = append(cmd, "--defines", fmt.Sprintf("LLVM_PARALLEL_LINK_JOBS=%d", LinkJobs(p.MemGiB, p.FullLTODivisor)))
	}
	if slices.Contains(e.Args, "thin") {
		cmd = append(cmd, "--defines", fmt.Sprintf("LLVM_PARALLEL_LINK_JOBS=%d", LinkJobs(p.MemGiB, p.ThinLTODivisor)))
	}

	return cmd
}

// ValidationLLVMCommand assembles the reduced single-stage build used to
// smoke-test the host and sources before committing to the full run.
func ValidationLLVMCommand(p LLVMParams) []string {
	return append(BaseLLVMCommand(p), "--build-stage1-only")
}

// BaselineKernelCommand assembles the kernel build command for the GCC
// baseline of one matrix entry. The cross compiler comes from the fetched
// kernel.org toolchain and the allmod override is forced through
// KCONFIG_ALLCONFIG.
func BaselineKernelCommand(p KernelParams, ke KernelEntry) []string {
	return kernelMakeCommand(p, ke, map[string]string{
		"CROSS_COMPILE":     filepath.Join(p.GCCBinFolder, ke.CrossCompile),
		"KCONFIG_ALLCONFIG": p.AllmodConfig,
	})
}

// LLVMKernelCommand assembles the kernel build command for one matrix
// entry using the toolchain installed at toolchainBin. The trailing slash
// on the LLVM value makes kbuild resolve tools from that directory instead
// of PATH.
func LLVMKernelCommand(p KernelParams, ke KernelEntry, toolchainBin string) []string {
	return kernelMakeCommand(p, ke, map[string]string{
		"LLVM": toolchainBin + "/",
	})
}

// kernelMakeCommand builds the make invocation shared by baseline and
// variant kernel builds: the base command, all make variables sorted by
// key, then the config target and "all".
func kernelMakeCommand(p KernelParams, ke KernelEntry, toolchainVars map[string]string) []string {
	vars := map[string]string{
		"ARCH":    ke.Arch,
		"KCFLAGS": "-Wno-error",
		"O":       p.BuildFolder,
	}
	for k, v := range toolchainVars {
		vars[k] = v
	}

	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	cmd := []string{
		"make",
		"--directory", p.SourceFolder,
		"--keep-going",
		"--jobs", strconv.Itoa(p.Jobs),
		"--silent",
	}
	for _, k := range keys {
		cmd = append(cmd, k+"="+vars[k])
	}
	return append(cmd, ke.Config, "all")
}
