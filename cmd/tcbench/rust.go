// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"tcbench/internal/run"
	"tcbench/internal/rust"
)

var (
	// rustSourceFolder is the rust-lang/rust checkout
	rustSourceFolder string
	// rustBuildFolder receives build artifacts
	rustBuildFolder string
	// rustInstallFolder is the install prefix (defaults to the build folder)
	rustInstallFolder string
	// rustLLVMInstallFolder is the LLVM install the Rust build links against
	rustLLVMInstallFolder string
	// rustDebug enables debug assertions in the built compiler
	rustDebug bool
	// rustVendorString is embedded in the toolchain description
	rustVendorString string
	// rustSkipBuild only writes the bootstrap configuration
	rustSkipBuild bool

	rustCmd = &cobra.Command{
		Use:   "rust",
		Short: "Build a Rust toolchain against a benchmarked LLVM install",
		Long: `Build a Rust toolchain against an LLVM install.

Writes a bootstrap configuration into the Rust source tree pointing the
build at an existing LLVM install instead of a downloaded CI LLVM, wipes
the build folder, runs './x.py install', and prints how to use the
resulting toolchain together with the version of every installed tool.

Use --skip-build to only generate the bootstrap configuration.`,
		RunE: runRust,
	}
)

func init() {
	rustCmd.Flags().StringVar(&rustSourceFolder, "rust-folder", "", "Rust source folder (required)")
	rustCmd.Flags().StringVarP(&rustBuildFolder, "build-folder", "b", "build", "folder for build artifacts")
	rustCmd.Flags().StringVarP(&rustInstallFolder, "install-folder", "i", "", "install prefix (default: the build folder)")
	rustCmd.Flags().StringVar(&rustLLVMInstallFolder, "llvm-install-folder", "", "LLVM install to link against (required)")
	rustCmd.Flags().BoolVar(&rustDebug, "debug", false, "enable debug assertions in the compiler")
	rustCmd.Flags().StringVar(&rustVendorString, "vendor-string", "tcbench", "vendor string for the toolchain description")
	rustCmd.Flags().BoolVar(&rustSkipBuild, "skip-build", false, "only write the bootstrap configuration")

	_ = rustCmd.MarkFlagRequired("rust-folder")
	_ = rustCmd.MarkFlagRequired("llvm-install-folder")
}

func runRust(cmd *cobra.Command, _ []string) error {
	source, err := filepath.Abs(rustSourceFolder)
	if err != nil {
		return reportError(cmd, fmt.Errorf("resolving rust folder: %w", err))
	}
	build, err := filepath.Abs(rustBuildFolder)
	if err != nil {
		return reportError(cmd, fmt.Errorf("resolving build folder: %w", err))
	}
	llvmInstall, err := filepath.Abs(rustLLVMInstallFolder)
	if err != nil {
		return reportError(cmd, fmt.Errorf("resolving llvm install folder: %w", err))
	}
	install := ""
	if rustInstallFolder != "" {
		if install, err = filepath.Abs(rustInstallFolder); err != nil {
			return reportError(cmd, fmt.Errorf("resolving install folder: %w", err))
		}
	}

	builder := &rust.Builder{
		SourceFolder:      source,
		BuildFolder:       build,
		InstallFolder:     install,
		LLVMInstallFolder: llvmInstall,
		Debug:             rustDebug,
		VendorString:      rustVendorString,
		Exec:              &run.ExecRunner{Dir: source},
		Logger:            newLogger(),
	}

	printHeader("Configuring Rust bootstrap")
	if err := builder.Configure(); err != nil {
		return reportError(cmd, err)
	}
	if rustSkipBuild {
		fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("Bootstrap configuration written to ")+
			CmdStyle.Render(filepath.Join(source, rust.BootstrapFileName)))
		return nil
	}

	printHeader("Building Rust toolchain")
	if err := builder.Build(cmd.Context()); err != nil {
		return reportError(cmd, err)
	}

	if err := builder.InstallInfo(cmd.Context(), cmd.OutOrStdout()); err != nil {
		return reportError(cmd, err)
	}
	return nil
}
