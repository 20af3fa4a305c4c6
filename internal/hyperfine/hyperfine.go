// SPDX-License-Identifier: MPL-2.0

package hyperfine

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"mvdan.cc/sh/v3/syntax"

	"tcbench/internal/issue"
	"tcbench/internal/run"
)

type (
	// Invocation is one fully described hyperfine run: the commands being
	// compared, their report column names, and the shared options. The
	// order of CommandNames and Commands must match; it fixes the report's
	// column order.
	Invocation struct {
		// CommandNames are the --command-name values, one per command.
		CommandNames []string
		// ExportMarkdown is the report file hyperfine writes.
		ExportMarkdown string
		// Prepare is run before every timed run, normally a build folder wipe.
		Prepare string
		// Runs is the number of timed runs per command.
		Runs int
		// Warmup is the number of untimed warm-up runs per command.
		Warmup int
		// Commands are the benchmarked command lines, pre-joined because
		// hyperfine receives each as a single argument (--shell none).
		Commands []string
	}

	// Runner executes assembled invocations, honoring the dry-run and
	// show-commands toggles. Assembly always happens; only the final
	// subprocess launch is skipped in dry-run mode.
	Runner struct {
		// ShowCommands prints the fully quoted invocation before running.
		ShowCommands bool
		// DryRun skips execution entirely.
		DryRun bool
		// Exec runs the subprocess.
		Exec run.Runner
		// Logger reports progress and the dry-run warning.
		Logger *log.Logger
		// Stdout receives the echoed command lines.
		Stdout io.Writer
	}
)

// JoinCommand flattens an argument vector into the single string hyperfine
// expects for one benchmarked command under --shell none.
func JoinCommand(argv []string) string {
	return strings.Join(argv, " ")
}

// Validate rejects invocations that hyperfine itself would refuse.
func (inv Invocation) Validate() error {
	if len(inv.Commands) == 0 {
		return fmt.Errorf("invocation has no commands")
	}
	if len(inv.CommandNames) != len(inv.Commands) {
		return fmt.Errorf("invocation has %d command names for %d commands", len(inv.CommandNames), len(inv.Commands))
	}
	if inv.ExportMarkdown == "" {
		return fmt.Errorf("invocation has no report file")
	}
	return nil
}

// Argv builds the complete hyperfine argument vector.
func (inv Invocation) Argv() []string {
	cmd := []string{"hyperfine"}
	for _, name := range inv.CommandNames {
		cmd = append(cmd, "--command-name", name)
	}
	cmd = append(cmd,
		"--export-markdown", inv.ExportMarkdown,
		"--prepare", inv.Prepare,
		"--runs", strconv.Itoa(inv.Runs),
		"--shell", "none",
		"--warmup", strconv.Itoa(inv.Warmup),
	)
	return append(cmd, inv.Commands...)
}

// Quote renders an argument vector as a copy-pasteable shell command line.
func Quote(argv []string) string {
	quoted := make([]string, len(argv))
	for i, arg := range argv {
		q, err := syntax.Quote(arg, syntax.LangBash)
		if err != nil {
			q = arg
		}
		quoted[i] = q
	}
	return strings.Join(quoted, " ")
}

// Run executes one invocation. The invocation is validated and assembled
// identically in dry-run mode so that a dry run exercises everything but
// the subprocess launch.
func (r *Runner) Run(ctx context.Context, inv Invocation) error {
	if err := inv.Validate(); err != nil {
		return err
	}

	argv := inv.Argv()

	if r.ShowCommands {
		out := r.Stdout
		if out == nil {
			out = os.Stdout
		}
		fmt.Fprintf(out, "$ %s\n", Quote(argv))
	}

	if r.DryRun {
		r.logger().Warn("dry run requested, not running hyperfine")
		return nil
	}

	if err := r.Exec.Run(ctx, argv); err != nil {
		return issue.WrapWithContext(err, "run benchmark", inv.ExportMarkdown)
	}
	return nil
}

func (r *Runner) logger() *log.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return log.Default()
}
