// SPDX-License-Identifier: MPL-2.0

package kernel

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// fakeRunner records commands instead of executing them.
type fakeRunner struct {
	commands [][]string
	failOn   string
}

func (f *fakeRunner) Run(_ context.Context, argv []string) error {
	f.commands = append(f.commands, argv)
	if f.failOn != "" && strings.Contains(strings.Join(argv, " "), f.failOn) {
		return errors.New("build failed")
	}
	return nil
}

func TestValidationBuilder_BuildsFullMatrix(t *testing.T) {
	runner := &fakeRunner{}
	b := &ValidationBuilder{
		Source:       SourceTree{Folder: "/src/linux"},
		BuildFolder:  "/bench/build/linux",
		ToolchainBin: "/bench/build/llvm/final/bin",
		Jobs:         16,
		Runner:       runner,
	}

	if err := b.Build(context.Background()); err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if len(runner.commands) != 6 {
		t.Fatalf("expected 6 validation builds, got %d", len(runner.commands))
	}
	for _, cmd := range runner.commands {
		joined := strings.Join(cmd, " ")
		if !strings.Contains(joined, "LLVM=/bench/build/llvm/final/bin/") {
			t.Errorf("validation build does not select the stage-1 toolchain: %s", joined)
		}
		if strings.Contains(joined, "CROSS_COMPILE=") {
			t.Errorf("validation build must not use the GCC baseline: %s", joined)
		}
	}
}

func TestValidationBuilder_StopsOnFirstFailure(t *testing.T) {
	runner := &fakeRunner{failOn: "multi_v7_defconfig"}
	b := &ValidationBuilder{
		Source:       SourceTree{Folder: "/src/linux"},
		BuildFolder:  "/bench/build/linux",
		ToolchainBin: "/tc/bin",
		Jobs:         16,
		Runner:       runner,
	}

	err := b.Build(context.Background())
	if err == nil {
		t.Fatal("expected error when a validation build fails")
	}
	if len(runner.commands) != 1 {
		t.Errorf("expected to stop after first failure, ran %d builds", len(runner.commands))
	}
	if !strings.Contains(err.Error(), "ARCH=arm") {
		t.Errorf("error should name the failing cell: %v", err)
	}
}
