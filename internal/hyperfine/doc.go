// SPDX-License-Identifier: MPL-2.0

// Package hyperfine assembles and runs invocations of the external timing
// tool.
//
// tcbench never computes statistics of its own: each benchmarking pass is
// exactly one hyperfine invocation with one command per compared toolchain,
// and hyperfine owns repetition, warm-up, and report generation. This
// package only builds the argument vector and decides whether to print it,
// run it, or both.
package hyperfine
