// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestResolveBenchPaths(t *testing.T) {
	origBuild, origInstall, origKernel, origLLVM := benchBuildFolder, benchInstallFolder, benchKernelFolder, benchLLVMFolder
	t.Cleanup(func() {
		benchBuildFolder, benchInstallFolder, benchKernelFolder, benchLLVMFolder = origBuild, origInstall, origKernel, origLLVM
	})

	root := t.TempDir()
	benchBuildFolder = filepath.Join(root, "build")
	benchInstallFolder = filepath.Join(root, "install")
	benchKernelFolder = filepath.Join(root, "linux")
	benchLLVMFolder = filepath.Join(root, "llvm-project")

	paths, err := resolveBenchPaths()
	if err != nil {
		t.Fatalf("resolveBenchPaths() error = %v", err)
	}

	for name, p := range map[string]string{
		"Build":   paths.Build,
		"Install": paths.Install,
		"Kernel":  paths.Kernel,
		"LLVM":    paths.LLVM,
		"Results": paths.Results,
	} {
		if !filepath.IsAbs(p) {
			t.Errorf("%s = %q, want absolute", name, p)
		}
	}
	if want := filepath.Join(paths.Build, "results"); paths.Results != want {
		t.Errorf("Results = %q, want %q", paths.Results, want)
	}
}

func TestResolveBuildScript(t *testing.T) {
	origLookPath := lookPath
	t.Cleanup(func() { lookPath = origLookPath })
	lookPath = func(name string) (string, error) {
		return "/usr/bin/" + name, nil
	}

	script := filepath.Join(t.TempDir(), "build-llvm.py")
	if err := os.WriteFile(script, []byte("#!/usr/bin/env python3\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := resolveBuildScript(script)
	if err != nil {
		t.Fatalf("resolveBuildScript() error = %v", err)
	}
	want := []string{"/usr/bin/python3", script}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("resolveBuildScript() = %v, want %v", got, want)
	}
}

func TestResolveBuildScriptMissing(t *testing.T) {
	if _, err := resolveBuildScript(filepath.Join(t.TempDir(), "nope.py")); err == nil {
		t.Error("resolveBuildScript() should fail for a missing script")
	}
}

func TestResolveBuildScriptNoPython(t *testing.T) {
	origLookPath := lookPath
	t.Cleanup(func() { lookPath = origLookPath })
	lookPath = func(string) (string, error) {
		return "", errors.New("not found")
	}

	script := filepath.Join(t.TempDir(), "build-llvm.py")
	if err := os.WriteFile(script, []byte(""), 0o755); err != nil {
		t.Fatal(err)
	}

	if _, err := resolveBuildScript(script); err == nil {
		t.Error("resolveBuildScript() should fail when python3 is absent")
	}
}
