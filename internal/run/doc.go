// SPDX-License-Identifier: MPL-2.0

// Package run executes external commands synchronously.
//
// Everything tcbench does ends in a subprocess: the LLVM build helper,
// make, hyperfine, tar's replacement, ./x.py. The Runner interface is the
// single seam between command assembly (pure, heavily tested) and process
// execution (thin, swapped out in tests).
package run
