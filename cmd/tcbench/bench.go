// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/cobra"

	"tcbench/internal/bench"
	"tcbench/internal/gcc"
	"tcbench/internal/hyperfine"
	"tcbench/internal/issue"
	"tcbench/internal/precheck"
	"tcbench/internal/run"
	"tcbench/internal/sysinfo"
)

//nolint:gochecknoglobals // Test seam for exec.LookPath.
var lookPath = exec.LookPath

var (
	// benchBuildFolder holds all build artifacts
	benchBuildFolder string
	// benchInstallFolder holds the per-variant toolchain installs
	benchInstallFolder string
	// benchKernelFolder is the Linux kernel source tree
	benchKernelFolder string
	// benchLLVMFolder is the LLVM source tree
	benchLLVMFolder string
	// benchDryRun assembles everything but never launches hyperfine
	benchDryRun bool
	// benchShowCommands echoes the assembled hyperfine command lines
	benchShowCommands bool
	// benchSkipValidation skips the initial throwaway builds
	benchSkipValidation bool

	benchCmd = &cobra.Command{
		Use:   "bench",
		Short: "Run the full toolchain and kernel benchmark matrix",
		Long: `Run the full benchmark matrix.

First builds a stage-one LLVM toolchain and the whole kernel matrix once
to validate the source trees and host environment (skippable once
known-good), then downloads the baseline GCC cross toolchains, then
times every LLVM build variant and every kernel configuration under
hyperfine. Reports land as markdown files under <build>/results.

This takes many hours on capable hardware. Use --dry-run together with
--show-commands to inspect the exact hyperfine invocations first.`,
		RunE: runBench,
	}
)

func init() {
	benchCmd.Flags().StringVarP(&benchBuildFolder, "build-folder", "b", "build", "folder for build artifacts")
	benchCmd.Flags().StringVarP(&benchInstallFolder, "install-folder", "i", "install", "folder for toolchain installs")
	benchCmd.Flags().StringVarP(&benchKernelFolder, "kernel-folder", "k", "", "Linux kernel source folder (required)")
	benchCmd.Flags().StringVarP(&benchLLVMFolder, "llvm-folder", "l", "", "LLVM source folder (required)")
	benchCmd.Flags().BoolVarP(&benchDryRun, "dry-run", "d", false, "assemble and print but never run hyperfine")
	benchCmd.Flags().BoolVarP(&benchShowCommands, "show-commands", "v", false, "print assembled hyperfine command lines")
	benchCmd.Flags().BoolVar(&benchSkipValidation, "skip-initial-validation", false, "skip the initial validation builds")

	_ = benchCmd.MarkFlagRequired("kernel-folder")
	_ = benchCmd.MarkFlagRequired("llvm-folder")
}

func runBench(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return reportError(cmd, err)
	}

	host, err := sysinfo.Detect()
	if err != nil {
		return reportError(cmd, err)
	}

	paths, err := resolveBenchPaths()
	if err != nil {
		return reportError(cmd, err)
	}

	printHeader("Validating preconditions")
	if err := precheck.Validate(paths.Kernel, paths.LLVM); err != nil {
		return reportError(cmd, err)
	}

	buildScript, err := resolveBuildScript(cfg.LLVM.BuildScript)
	if err != nil {
		return reportError(cmd, err)
	}

	logger := newLogger()
	logger.Info("host detected", "machine", host.Machine, "mem_gib", host.MemGiB, "build_jobs", host.BuildJobs)

	fetcher, err := gcc.NewFetcher(
		filepath.Join(paths.Install, "gcc", cfg.GCC.Version),
		host.Machine,
		cfg.GCC.Version,
		cfg.GCC.MirrorURL,
		cfg.Fetch.Timeout,
	)
	if err != nil {
		return reportError(cmd, err)
	}

	driver := &bench.Driver{
		Config:         cfg,
		Host:           host,
		Paths:          paths,
		BuildScript:    buildScript,
		SkipValidation: benchSkipValidation,
		Fetcher:        fetcher,
		Exec:           &run.ExecRunner{},
		Bench: &hyperfine.Runner{
			ShowCommands: benchShowCommands,
			DryRun:       benchDryRun,
			Exec:         &run.ExecRunner{},
			Logger:       logger,
		},
		Logger: logger,
		Header: printHeader,
	}

	if err := driver.Run(cmd.Context()); err != nil {
		return reportError(cmd, err)
	}

	if !benchDryRun {
		fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("Benchmark complete.")+
			" Reports are in "+CmdStyle.Render(paths.Results))
	}
	return nil
}

// resolveBenchPaths makes every folder flag absolute so that assembled
// commands stay valid regardless of subprocess working directories.
func resolveBenchPaths() (bench.Paths, error) {
	abs := func(p string) (string, error) { return filepath.Abs(p) }

	build, err := abs(benchBuildFolder)
	if err != nil {
		return bench.Paths{}, fmt.Errorf("resolving build folder: %w", err)
	}
	install, err := abs(benchInstallFolder)
	if err != nil {
		return bench.Paths{}, fmt.Errorf("resolving install folder: %w", err)
	}
	kernel, err := abs(benchKernelFolder)
	if err != nil {
		return bench.Paths{}, fmt.Errorf("resolving kernel folder: %w", err)
	}
	llvm, err := abs(benchLLVMFolder)
	if err != nil {
		return bench.Paths{}, fmt.Errorf("resolving llvm folder: %w", err)
	}

	return bench.Paths{
		Build:   build,
		Install: install,
		Kernel:  kernel,
		LLVM:    llvm,
		Results: filepath.Join(build, "results"),
	}, nil
}

// resolveBuildScript locates the LLVM build helper script and the python
// interpreter that runs it. Relative script paths resolve against the
// current working directory.
func resolveBuildScript(script string) ([]string, error) {
	path, err := filepath.Abs(script)
	if err != nil {
		return nil, fmt.Errorf("resolving build script path: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("locate LLVM build script").
			WithResource(path).
			WithSuggestion("Check out the LLVM build helper next to your working directory").
			WithSuggestion("Or set llvm.build_script in the tcbench configuration").
			Wrap(err).
			Build()
	}

	python, err := lookPath("python3")
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("locate python3").
			WithSuggestion("Install python3, the LLVM build script needs it").
			Wrap(err).
			Build()
	}

	return []string{python, path}, nil
}
