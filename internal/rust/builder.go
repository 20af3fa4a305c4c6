// SPDX-License-Identifier: MPL-2.0

package rust

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pelletier/go-toml/v2"

	"tcbench/internal/issue"
	"tcbench/internal/run"
)

// BootstrapFileName is the build configuration consumed by the Rust
// bootstrap.
const BootstrapFileName = "bootstrap.toml"

// tools are the binaries an extended install ships; InstallInfo reports
// the version of each one present.
//
//nolint:gochecknoglobals // Static table.
var tools = []string{"rustc", "rustdoc", "rustfmt", "clippy-driver", "cargo"}

type (
	// Builder drives one Rust toolchain build against an LLVM install.
	Builder struct {
		// SourceFolder is the rust-lang/rust checkout.
		SourceFolder string
		// BuildFolder receives build artifacts and is wiped by Configure.
		BuildFolder string
		// InstallFolder is the install prefix; when empty the build folder
		// doubles as the install location.
		InstallFolder string
		// LLVMInstallFolder is the LLVM toolchain the Rust build links
		// against instead of downloading its own.
		LLVMInstallFolder string
		// Debug enables debug assertions in the built compiler.
		Debug bool
		// VendorString is embedded in the toolchain description.
		VendorString string
		// Exec runs ./x.py and the version probes.
		Exec run.Runner
		// Logger reports progress.
		Logger *log.Logger
	}

	bootstrapConfig struct {
		ChangeID string                     `toml:"change-id"`
		LLVM     bootstrapLLVM              `toml:"llvm"`
		Build    bootstrapBuild             `toml:"build"`
		Install  bootstrapInstall           `toml:"install"`
		Rust     bootstrapRust              `toml:"rust"`
		Target   map[string]bootstrapTarget `toml:"target"`
	}

	bootstrapLLVM struct {
		DownloadCILLVM bool `toml:"download-ci-llvm"`
	}

	bootstrapBuild struct {
		Description               string   `toml:"description"`
		BuildDir                  string   `toml:"build-dir"`
		Docs                      bool     `toml:"docs"`
		LockedDeps                bool     `toml:"locked-deps"`
		Extended                  bool     `toml:"extended"`
		Tools                     []string `toml:"tools"`
		OptimizedCompilerBuiltins bool     `toml:"optimized-compiler-builtins"`
	}

	bootstrapInstall struct {
		Prefix     string `toml:"prefix"`
		Sysconfdir string `toml:"sysconfdir"`
	}

	bootstrapRust struct {
		Debug        bool `toml:"debug"`
		CodegenTests bool `toml:"codegen-tests"`
	}

	bootstrapTarget struct {
		LLVMConfig string `toml:"llvm-config"`
	}
)

// hostTriple returns the Rust target triple of the running host.
func hostTriple() string {
	if runtime.GOARCH == "arm64" {
		return "aarch64-unknown-linux-gnu"
	}
	return "x86_64-unknown-linux-gnu"
}

// effectiveInstall is the install prefix, falling back to the build
// folder when none is set.
func (b *Builder) effectiveInstall() string {
	if b.InstallFolder != "" {
		return b.InstallFolder
	}
	return b.BuildFolder
}

func (b *Builder) logger() *log.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return log.Default()
}

// Configure generates bootstrap.toml in the source tree and wipes the
// build folder so stale artifacts cannot leak into the new toolchain.
//
// 'codegen-tests' stays off because it requires -DLLVM_INSTALL_UTILS=ON
// in the LLVM install being linked against.
func (b *Builder) Configure() error {
	if b.LLVMInstallFolder == "" {
		return fmt.Errorf("no LLVM install folder set")
	}
	if b.SourceFolder == "" {
		return fmt.Errorf("no source folder set")
	}
	if b.BuildFolder == "" {
		return fmt.Errorf("no build folder set")
	}

	cfg := bootstrapConfig{
		ChangeID: "ignore",
		LLVM: bootstrapLLVM{
			DownloadCILLVM: false,
		},
		Build: bootstrapBuild{
			Description:               b.VendorString,
			BuildDir:                  b.BuildFolder,
			Docs:                      false,
			LockedDeps:                true,
			Extended:                  true,
			Tools:                     []string{"cargo", "clippy", "rustdoc", "rustfmt", "src"},
			OptimizedCompilerBuiltins: true,
		},
		Install: bootstrapInstall{
			Prefix:     b.effectiveInstall(),
			Sysconfdir: "etc",
		},
		Rust: bootstrapRust{
			Debug:        b.Debug,
			CodegenTests: false,
		},
		Target: map[string]bootstrapTarget{
			hostTriple(): {
				LLVMConfig: filepath.Join(b.LLVMInstallFolder, "bin", "llvm-config"),
			},
		},
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", BootstrapFileName, err)
	}
	if err := os.WriteFile(filepath.Join(b.SourceFolder, BootstrapFileName), data, 0o644); err != nil {
		return issue.WrapWithContext(err, "write bootstrap configuration", b.SourceFolder)
	}

	if err := os.RemoveAll(b.BuildFolder); err != nil {
		return fmt.Errorf("cleaning build folder: %w", err)
	}
	if err := os.MkdirAll(b.BuildFolder, 0o755); err != nil {
		return fmt.Errorf("recreating build folder: %w", err)
	}
	return nil
}

// Build runs the Rust bootstrap. 'install' is used for simplicity: it
// builds and installs in one step.
func (b *Builder) Build(ctx context.Context) error {
	if b.BuildFolder == "" {
		return fmt.Errorf("no build folder set, run Configure first")
	}
	if _, err := os.Stat(filepath.Join(b.SourceFolder, BootstrapFileName)); err != nil {
		return fmt.Errorf("no %s in source folder, run Configure first", BootstrapFileName)
	}

	start := time.Now()
	if err := b.Exec.Run(ctx, []string{"./x.py", "install"}); err != nil {
		return issue.WrapWithContext(err, "build Rust toolchain", b.SourceFolder)
	}
	b.logger().Info("build finished", "duration", time.Since(start).Round(time.Second))
	return nil
}

// InstallInfo validates the install and prints how to use it, plus the
// version of every installed tool.
func (b *Builder) InstallInfo(ctx context.Context, w io.Writer) error {
	install := b.effectiveInstall()
	if install == "" {
		return fmt.Errorf("installation folder not set")
	}
	if _, err := os.Stat(install); err != nil {
		return fmt.Errorf("installation folder does not exist, run Build first")
	}
	binFolder := filepath.Join(install, "bin")
	if _, err := os.Stat(binFolder); err != nil {
		return fmt.Errorf("bin folder does not exist in installation folder, run Build first")
	}

	fmt.Fprintf(w, "Toolchain is available at: %s\n\n", install)
	fmt.Fprintf(w, "To use, either run:\n\n\t$ export PATH=%s:$PATH\n\n", binFolder)
	fmt.Fprintf(w, "or add:\n\n\tPATH=%s:$PATH\n\n", binFolder)
	fmt.Fprintf(w, "before the command you want to use this toolchain.\n\n")

	for _, tool := range tools {
		binary := filepath.Join(binFolder, tool)
		if _, err := os.Stat(binary); err != nil {
			continue
		}
		if err := b.Exec.Run(ctx, []string{binary, "--version", "--verbose"}); err != nil {
			return issue.WrapWithContext(err, "query tool version", binary)
		}
		fmt.Fprintln(w)
	}
	return nil
}
