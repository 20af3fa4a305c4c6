// SPDX-License-Identifier: MPL-2.0

package rust

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
)

type fakeExec struct {
	calls [][]string
}

func (f *fakeExec) Run(_ context.Context, argv []string) error {
	f.calls = append(f.calls, argv)
	return nil
}

func testBuilder(t *testing.T) *Builder {
	t.Helper()
	return &Builder{
		SourceFolder:      t.TempDir(),
		BuildFolder:       filepath.Join(t.TempDir(), "build"),
		InstallFolder:     "/opt/rust",
		LLVMInstallFolder: "/opt/llvm",
		VendorString:      "tcbench",
		Exec:              &fakeExec{},
	}
}

func TestConfigure_WritesBootstrapConfig(t *testing.T) {
	b := testBuilder(t)

	if err := b.Configure(); err != nil {
		t.Fatalf("Configure() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(b.SourceFolder, BootstrapFileName))
	if err != nil {
		t.Fatal(err)
	}

	var cfg bootstrapConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("generated bootstrap.toml is not valid TOML: %v", err)
	}

	if cfg.ChangeID != "ignore" {
		t.Errorf("change-id = %q, want ignore", cfg.ChangeID)
	}
	if cfg.LLVM.DownloadCILLVM {
		t.Error("download-ci-llvm must be false; the benchmarked LLVM is used")
	}
	if cfg.Build.BuildDir != b.BuildFolder {
		t.Errorf("build-dir = %q, want %q", cfg.Build.BuildDir, b.BuildFolder)
	}
	if cfg.Build.Description != "tcbench" {
		t.Errorf("description = %q, want tcbench", cfg.Build.Description)
	}
	if !cfg.Build.LockedDeps || !cfg.Build.Extended || !cfg.Build.OptimizedCompilerBuiltins {
		t.Errorf("build table lost fixed options: %+v", cfg.Build)
	}
	if cfg.Install.Prefix != "/opt/rust" || cfg.Install.Sysconfdir != "etc" {
		t.Errorf("install table = %+v", cfg.Install)
	}
	if cfg.Rust.CodegenTests {
		t.Error("codegen-tests must stay off")
	}

	target, ok := cfg.Target[hostTriple()]
	if !ok {
		t.Fatalf("no target table for %s: %+v", hostTriple(), cfg.Target)
	}
	if target.LLVMConfig != "/opt/llvm/bin/llvm-config" {
		t.Errorf("llvm-config = %q", target.LLVMConfig)
	}

	// Build folder is wiped and recreated empty.
	entries, err := os.ReadDir(b.BuildFolder)
	if err != nil {
		t.Fatalf("build folder missing after Configure: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("build folder not empty after Configure: %v", entries)
	}
}

func TestConfigure_InstallDefaultsToBuildFolder(t *testing.T) {
	b := testBuilder(t)
	b.InstallFolder = ""

	if err := b.Configure(); err != nil {
		t.Fatalf("Configure() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(b.SourceFolder, BootstrapFileName))
	if err != nil {
		t.Fatal(err)
	}
	var cfg bootstrapConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Install.Prefix != b.BuildFolder {
		t.Errorf("install prefix = %q, want build folder %q", cfg.Install.Prefix, b.BuildFolder)
	}
}

func TestConfigure_Guards(t *testing.T) {
	b := testBuilder(t)
	b.LLVMInstallFolder = ""
	if err := b.Configure(); err == nil {
		t.Error("expected error without LLVM install folder")
	}

	b = testBuilder(t)
	b.BuildFolder = ""
	if err := b.Configure(); err == nil {
		t.Error("expected error without build folder")
	}
}

func TestBuild_RequiresConfigure(t *testing.T) {
	b := testBuilder(t)
	if err := b.Build(context.Background()); err == nil {
		t.Error("expected error without bootstrap.toml")
	}
	if !strings.Contains(b.Build(context.Background()).Error(), BootstrapFileName) {
		t.Error("error should mention the missing bootstrap file")
	}
}

func TestBuild_RunsBootstrap(t *testing.T) {
	b := testBuilder(t)
	if err := b.Configure(); err != nil {
		t.Fatal(err)
	}

	exec := b.Exec.(*fakeExec)
	if err := b.Build(context.Background()); err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(exec.calls) != 1 {
		t.Fatalf("expected 1 command, got %d", len(exec.calls))
	}
	if exec.calls[0][0] != "./x.py" || exec.calls[0][1] != "install" {
		t.Errorf("Build() ran %v, want ./x.py install", exec.calls[0])
	}
}

func TestInstallInfo(t *testing.T) {
	b := testBuilder(t)
	install := t.TempDir()
	b.InstallFolder = install

	// Missing bin folder is an error.
	var sb strings.Builder
	if err := b.InstallInfo(context.Background(), &sb); err == nil {
		t.Error("expected error without bin folder")
	}

	binFolder := filepath.Join(install, "bin")
	if err := os.MkdirAll(binFolder, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(binFolder, "rustc"), []byte("#!/bin/true\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	exec := b.Exec.(*fakeExec)
	sb.Reset()
	if err := b.InstallInfo(context.Background(), &sb); err != nil {
		t.Fatalf("InstallInfo() error = %v", err)
	}

	if !strings.Contains(sb.String(), "export PATH="+binFolder) {
		t.Errorf("missing PATH guidance: %q", sb.String())
	}
	// Only the one existing tool is probed.
	if len(exec.calls) != 1 {
		t.Fatalf("expected 1 version probe, got %d", len(exec.calls))
	}
	if got := exec.calls[0]; got[0] != filepath.Join(binFolder, "rustc") {
		t.Errorf("probed %v, want rustc", got)
	}
}
