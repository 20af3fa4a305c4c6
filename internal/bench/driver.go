// SPDX-License-Identifier: MPL-2.0

package bench

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"tcbench/internal/config"
	"tcbench/internal/hyperfine"
	"tcbench/internal/issue"
	"tcbench/internal/kernel"
	"tcbench/internal/matrix"
	"tcbench/internal/run"
	"tcbench/internal/sysinfo"
)

type (
	// Paths are the resolved absolute locations of a run, computed once
	// from the CLI flags.
	Paths struct {
		// Build holds all build artifacts.
		Build string
		// Install holds the per-variant toolchain installs.
		Install string
		// Kernel is the Linux kernel source tree.
		Kernel string
		// LLVM is the LLVM source tree.
		LLVM string
		// Results receives the generated reports.
		Results string
	}

	// Fetcher provides the baseline GCC toolchains.
	Fetcher interface {
		FetchAll(ctx context.Context, tuples []string) error
		BinFolder() string
	}

	// Driver owns one benchmark run.
	Driver struct {
		// Config is the effective configuration.
		Config config.Config
		// Host holds the resolved host facts.
		Host sysinfo.Host
		// Paths are the resolved run locations.
		Paths Paths
		// BuildScript is the invocation head for the LLVM build helper.
		BuildScript []string
		// SkipValidation skips the initial throwaway builds.
		SkipValidation bool
		// Fetcher downloads the GCC baselines.
		Fetcher Fetcher
		// Exec runs validation build commands.
		Exec run.Runner
		// Bench runs the assembled hyperfine invocations.
		Bench *hyperfine.Runner
		// Logger reports progress.
		Logger *log.Logger
		// Header renders a section header; the CLI injects its styling.
		Header func(string)
	}
)

// LLVMBuildFolder is where the LLVM variants build.
func (p Paths) LLVMBuildFolder() string { return filepath.Join(p.Build, "llvm") }

// LinuxBuildFolder is the kernel's out-of-tree build directory.
func (p Paths) LinuxBuildFolder() string { return filepath.Join(p.Build, "linux") }

// LLVMInstallRoot is the parent of the per-variant LLVM installs.
func (p Paths) LLVMInstallRoot() string { return filepath.Join(p.Install, "llvm") }

// Run executes the whole pipeline. Each phase runs at most once and any
// error aborts the remainder.
func (d *Driver) Run(ctx context.Context) error {
	if err := os.MkdirAll(d.Paths.Results, 0o755); err != nil {
		return fmt.Errorf("creating results folder: %w", err)
	}

	if !d.SkipValidation {
		d.header("Validating host environment and provided sources")
		if err := d.validationPass(ctx); err != nil {
			return err
		}
	}

	d.header("Downloading GCC from kernel.org if necessary")
	if err := d.Fetcher.FetchAll(ctx, d.Config.GCC.Tuples); err != nil {
		return err
	}

	d.header("LLVM build benchmarking")
	if err := d.llvmBenchmark(ctx); err != nil {
		return err
	}

	d.header("Linux kernel build benchmarking")
	return d.kernelBenchmark(ctx)
}

// validationPass builds LLVM once in a single stage configuration, then
// builds the full kernel matrix with that toolchain. It exists to fail in
// minutes on problems that would otherwise fail hours into hyperfine with
// no useful output.
func (d *Driver) validationPass(ctx context.Context) error {
	d.logger().Info("building a stage one LLVM toolchain and a series of kernels to validate the source trees and host environment")

	if err := d.Exec.Run(ctx, matrix.ValidationLLVMCommand(d.llvmParams())); err != nil {
		return issue.NewErrorContext().
			WithOperation("validate host environment").
			WithResource(d.Paths.LLVM).
			WithSuggestion("Check the LLVM source revision and the host's LLVM build dependencies").
			Wrap(err).
			Build()
	}

	builder := &kernel.ValidationBuilder{
		Source:       kernel.SourceTree{Folder: d.Paths.Kernel},
		BuildFolder:  d.Paths.LinuxBuildFolder(),
		ToolchainBin: filepath.Join(d.Paths.LLVMBuildFolder(), "final", "bin"),
		Jobs:         d.Host.BuildJobs,
		Runner:       d.Exec,
	}
	return builder.Build(ctx)
}

// llvmBenchmark times every LLVM build variant in one hyperfine
// invocation.
func (d *Driver) llvmBenchmark(ctx context.Context) error {
	params := d.llvmParams()

	var names, commands []string
	for _, entry := range matrix.LLVMEntries(d.Host.Machine) {
		names = append(names, entry.Full)
		commands = append(commands, hyperfine.JoinCommand(matrix.LLVMCommand(params, entry)))
	}

	return d.Bench.Run(ctx, hyperfine.Invocation{
		CommandNames:   names,
		ExportMarkdown: filepath.Join(d.Paths.Results, "llvm.md"),
		Prepare:        "rm -fr " + d.Paths.LLVMBuildFolder(),
		Runs:           d.Config.Benchmark.LLVMRuns,
		Warmup:         d.Config.Benchmark.Warmup,
		Commands:       commands,
	})
}

// kernelBenchmark times every kernel matrix cell, comparing the GCC
// baseline against every LLVM variant, one hyperfine invocation per cell.
func (d *Driver) kernelBenchmark(ctx context.Context) error {
	allmod, err := kernel.WriteAllmodConfig(d.Paths.Build)
	if err != nil {
		return err
	}

	params := matrix.KernelParams{
		SourceFolder: d.Paths.Kernel,
		BuildFolder:  d.Paths.LinuxBuildFolder(),
		Jobs:         d.Host.BuildJobs,
		GCCBinFolder: d.Fetcher.BinFolder(),
		AllmodConfig: allmod,
	}
	entries := matrix.LLVMEntries(d.Host.Machine)

	for _, ke := range matrix.KernelEntries() {
		names := []string{"GCC " + d.Config.GCC.Version}
		commands := []string{hyperfine.JoinCommand(matrix.BaselineKernelCommand(params, ke))}
		for _, entry := range entries {
			names = append(names, "LLVM ("+entry.Full+")")
			commands = append(commands, hyperfine.JoinCommand(
				matrix.LLVMKernelCommand(params, ke, entry.BinFolder(d.Paths.LLVMInstallRoot()))))
		}

		runs := d.Config.Benchmark.KernelAllmodRuns
		if strings.Contains(ke.Config, "defconfig") {
			runs = d.Config.Benchmark.KernelDefconfigRuns
		}

		d.logger().Info("benchmarking kernel build", "arch", ke.Arch, "config", ke.Config)
		err := d.Bench.Run(ctx, hyperfine.Invocation{
			CommandNames:   names,
			ExportMarkdown: filepath.Join(d.Paths.Results, ke.Arch+"-"+ke.Config+".md"),
			Prepare:        "rm -fr " + d.Paths.LinuxBuildFolder(),
			Runs:           runs,
			Warmup:         d.Config.Benchmark.Warmup,
			Commands:       commands,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (d *Driver) llvmParams() matrix.LLVMParams {
	return matrix.LLVMParams{
		BuildScript:    d.BuildScript,
		BuildFolder:    d.Paths.LLVMBuildFolder(),
		SourceFolder:   d.Paths.LLVM,
		KernelFolder:   d.Paths.Kernel,
		InstallRoot:    d.Paths.LLVMInstallRoot(),
		MemGiB:         d.Host.MemGiB,
		FullLTODivisor: d.Config.LTO.FullDivisor,
		ThinLTODivisor: d.Config.LTO.ThinDivisor,
	}
}

func (d *Driver) header(title string) {
	if d.Header != nil {
		d.Header(title)
		return
	}
	fmt.Println("==== " + title)
}

func (d *Driver) logger() *log.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return log.Default()
}
