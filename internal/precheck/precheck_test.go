// SPDX-License-Identifier: MPL-2.0

package precheck

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validMakefile = "VERSION = 6\nPATCHLEVEL = 8\nSUBLEVEL = 0\n"

func validKernelTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Makefile"), []byte(validMakefile), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func validLLVMTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "llvm"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "llvm", "CMakeLists.txt"), []byte("project(LLVM)\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestCheckKernelTree(t *testing.T) {
	t.Run("valid tree", func(t *testing.T) {
		if err := CheckKernelTree(validKernelTree(t)); err != nil {
			t.Errorf("CheckKernelTree() error = %v", err)
		}
	})

	t.Run("missing folder", func(t *testing.T) {
		err := CheckKernelTree(filepath.Join(t.TempDir(), "nope"))
		if err == nil {
			t.Fatal("expected error for missing folder")
		}
		if !strings.Contains(err.Error(), "does not exist") {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("no Makefile", func(t *testing.T) {
		if err := CheckKernelTree(t.TempDir()); err == nil {
			t.Error("expected error for folder without Makefile")
		}
	})

	t.Run("leftover .config", func(t *testing.T) {
		dir := validKernelTree(t)
		if err := os.WriteFile(filepath.Join(dir, ".config"), []byte("CONFIG_X=y\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		err := CheckKernelTree(dir)
		if err == nil {
			t.Fatal("expected error for dirty tree")
		}
		if !strings.Contains(err.Error(), "not clean") {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("too old", func(t *testing.T) {
		dir := t.TempDir()
		old := "VERSION = 5\nPATCHLEVEL = 15\nSUBLEVEL = 0\n"
		if err := os.WriteFile(filepath.Join(dir, "Makefile"), []byte(old), 0o644); err != nil {
			t.Fatal(err)
		}
		err := CheckKernelTree(dir)
		if err == nil {
			t.Fatal("expected error for old kernel")
		}
		if !strings.Contains(err.Error(), "older than the minimum supported version") {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestCheckLLVMTree(t *testing.T) {
	t.Run("valid tree", func(t *testing.T) {
		if err := CheckLLVMTree(validLLVMTree(t)); err != nil {
			t.Errorf("CheckLLVMTree() error = %v", err)
		}
	})

	t.Run("missing folder", func(t *testing.T) {
		if err := CheckLLVMTree(filepath.Join(t.TempDir(), "nope")); err == nil {
			t.Error("expected error for missing folder")
		}
	})

	t.Run("no manifest", func(t *testing.T) {
		err := CheckLLVMTree(t.TempDir())
		if err == nil {
			t.Fatal("expected error for folder without llvm/CMakeLists.txt")
		}
		if !strings.Contains(err.Error(), "LLVM source tree") {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestCheckTimingTool(t *testing.T) {
	restore := lookPath
	defer func() { lookPath = restore }()

	lookPath = func(string) (string, error) { return "/usr/bin/hyperfine", nil }
	if err := CheckTimingTool(); err != nil {
		t.Errorf("CheckTimingTool() error = %v", err)
	}

	lookPath = func(string) (string, error) { return "", errors.New("not found") }
	if err := CheckTimingTool(); err == nil {
		t.Error("expected error when hyperfine is absent")
	}
}

func TestValidate_Order(t *testing.T) {
	restore := lookPath
	defer func() { lookPath = restore }()
	lookPath = func(string) (string, error) { return "/usr/bin/hyperfine", nil }

	if err := Validate(validKernelTree(t), validLLVMTree(t)); err != nil {
		t.Errorf("Validate() error = %v", err)
	}

	// First failure wins: missing timing tool is reported before tree problems.
	lookPath = func(string) (string, error) { return "", errors.New("not found") }
	err := Validate(filepath.Join(t.TempDir(), "nope"), t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "hyperfine") {
		t.Errorf("expected timing tool error first, got %v", err)
	}
}
