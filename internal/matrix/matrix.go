// SPDX-License-Identifier: MPL-2.0

package matrix

import (
	"path/filepath"
	"slices"

	"tcbench/internal/sysinfo"
)

type (
	// Entry describes one LLVM toolchain build variant: a short name that
	// keys its install folder, a full description used as the report column
	// name, and the flags it adds to the shared base build command.
	Entry struct {
		Short string
		Full  string
		Args  []string
	}

	// KernelEntry describes one kernel build target: the kernel ARCH value,
	// the configuration make target, and the prefix of the baseline GCC
	// cross compiler.
	KernelEntry struct {
		Arch         string
		Config       string
		CrossCompile string
	}
)

// llvmEntries are the LLVM build variants benchmarked on every host, in
// report column order.
//
//nolint:gochecknoglobals // Static table, cloned on access.
var llvmEntries = []Entry{
	{
		Short: "stage-one",
		Full:  "Stage one only",
		Args:  []string{"--build-stage1-only"},
	},
	{
		Short: "normal",
		Full:  "Default two stage build",
		Args:  []string{},
	},
	{
		Short: "thinlto",
		Full:  "Two stage build with ThinLTO",
		Args:  []string{"--lto", "thin"},
	},
	{
		Short: "lto",
		Full:  "Two stage build with LTO",
		Args:  []string{"--lto", "full"},
	},
	{
		Short: "pgo-defconfig",
		Full:  "Three stage build with PGO against defconfig",
		Args:  []string{"--pgo", "kernel-defconfig"},
	},
	{
		Short: "pgo-defconfig-allmodconfig",
		Full:  "Three stage build with PGO against defconfig and allmodconfig",
		Args:  []string{"--pgo", "kernel-defconfig", "kernel-allmodconfig"},
	},
	{
		Short: "pgo-defconfig-thinlto",
		Full:  "Three stage build with ThinLTO and PGO against defconfig",
		Args:  []string{"--lto", "thin", "--pgo", "kernel-defconfig"},
	},
	{
		Short: "pgo-defconfig-lto",
		Full:  "Three stage build with LTO and PGO against defconfig",
		Args:  []string{"--lto", "full", "--pgo", "kernel-defconfig"},
	},
}

// boltEntries extend the matrix on x86_64, the only architecture BOLT has
// been validated on for this workload.
//
//nolint:gochecknoglobals // Static table, cloned on access.
var boltEntries = []Entry{
	{
		Short: "pgo-defconfig-bolt",
		Full:  "Three stage build with BOLT and PGO against defconfig",
		Args:  []string{"--bolt", "--pgo", "kernel-defconfig"},
	},
	{
		Short: "pgo-defconfig-bolt-thinlto",
		Full:  "Three stage build with BOLT, ThinLTO, and PGO against defconfig",
		Args:  []string{"--bolt", "--lto", "thin", "--pgo", "kernel-defconfig"},
	},
	{
		Short: "pgo-defconfig-bolt-lto",
		Full:  "Three stage build with BOLT, LTO, and PGO against defconfig",
		Args:  []string{"--bolt", "--lto", "full", "--pgo", "kernel-defconfig"},
	},
}

// kernelEntries are the kernel build targets, in report order.
//
//nolint:gochecknoglobals // Static table, cloned on access.
var kernelEntries = []KernelEntry{
	{Arch: "arm", Config: "multi_v7_defconfig", CrossCompile: "arm-linux-gnueabi-"},
	{Arch: "arm64", Config: "defconfig", CrossCompile: "aarch64-linux-"},
	{Arch: "x86_64", Config: "defconfig", CrossCompile: "x86_64-linux-"},
	{Arch: "arm", Config: "allmodconfig", CrossCompile: "arm-linux-gnueabi-"},
	{Arch: "arm64", Config: "allmodconfig", CrossCompile: "aarch64-linux-"},
	{Arch: "x86_64", Config: "allmodconfig", CrossCompile: "x86_64-linux-"},
}

// LLVMEntries returns the LLVM build variants for the given host machine.
// BOLT variants are only included on x86_64.
func LLVMEntries(machine string) []Entry {
	entries := slices.Clone(llvmEntries)
	if machine == sysinfo.MachineX86_64 {
		entries = append(entries, boltEntries...)
	}
	return entries
}

// KernelEntries returns the kernel build targets.
func KernelEntries() []KernelEntry {
	return slices.Clone(kernelEntries)
}

// InstallFolder returns the install location of this variant's toolchain
// under the given LLVM install root.
func (e Entry) InstallFolder(installRoot string) string {
	return filepath.Join(installRoot, e.Short)
}

// BinFolder returns the bin directory of this variant's installed
// toolchain.
func (e Entry) BinFolder(installRoot string) string {
	return filepath.Join(e.InstallFolder(installRoot), "bin")
}
