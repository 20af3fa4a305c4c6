// SPDX-License-Identifier: MPL-2.0

// Package report browses the markdown reports hyperfine exported.
//
// No statistics are computed here; hyperfine's own reports are the single
// source of truth. This package only lists them and renders one in the
// terminal.
package report
