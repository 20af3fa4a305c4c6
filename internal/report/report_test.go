// SPDX-License-Identifier: MPL-2.0

package report

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestList(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"llvm.md", "arm64-defconfig.md", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("# report\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.MkdirAll(filepath.Join(dir, "sub.md"), 0o755); err != nil {
		t.Fatal(err)
	}

	names, err := List(dir)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	want := []string{"arm64-defconfig", "llvm"}
	if !slices.Equal(names, want) {
		t.Errorf("List() = %v, want %v", names, want)
	}
}

func TestList_MissingFolder(t *testing.T) {
	if _, err := List(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing results folder")
	}
}

func TestRender(t *testing.T) {
	restore := render
	defer func() { render = restore }()
	render = func(in, _ string) (string, error) { return "RENDERED:" + in, nil }

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "llvm.md"), []byte("| Command | Mean |\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := Render(dir, "llvm")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.HasPrefix(out, "RENDERED:") {
		t.Errorf("Render() = %q", out)
	}

	if _, err := Render(dir, "missing"); err == nil {
		t.Error("expected error for unknown report")
	}
}
