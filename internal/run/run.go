// SPDX-License-Identifier: MPL-2.0

package run

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

type (
	// Runner executes one command and blocks until it finishes. A non-nil
	// error means the command did not complete successfully; there are no
	// retries anywhere in tcbench.
	Runner interface {
		Run(ctx context.Context, argv []string) error
	}

	// ExecRunner runs commands on the host, inheriting standard streams by
	// default so the child's progress output reaches the user unmodified.
	ExecRunner struct {
		// Dir is the working directory for the command (empty = inherit).
		Dir string
		// Stdout and Stderr override the inherited streams when non-nil.
		Stdout io.Writer
		Stderr io.Writer
	}

	// ExitError reports a command that ran but exited non-zero.
	ExitError struct {
		Argv []string
		Code int
	}
)

// Error implements the error interface.
func (e *ExitError) Error() string {
	return fmt.Sprintf("command %q exited with status %d", strings.Join(e.Argv, " "), e.Code)
}

// Run executes argv[0] with the remaining arguments. The child inherits
// stdin so interactive prompts from build tools still work.
func (r ExecRunner) Run(ctx context.Context, argv []string) error {
	if len(argv) == 0 {
		return fmt.Errorf("empty command")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = r.Dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = r.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = r.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return &ExitError{Argv: argv, Code: exitErr.ExitCode()}
		}
		return fmt.Errorf("failed to execute %q: %w", argv[0], err)
	}
	return nil
}

// Capture executes argv and returns its combined output, for short
// informational commands like `rustc --version`.
func (r ExecRunner) Capture(ctx context.Context, argv []string) (string, error) {
	if len(argv) == 0 {
		return "", fmt.Errorf("empty command")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = r.Dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return string(out), &ExitError{Argv: argv, Code: exitErr.ExitCode()}
		}
		return string(out), fmt.Errorf("failed to execute %q: %w", argv[0], err)
	}
	return string(out), nil
}
