// SPDX-License-Identifier: MPL-2.0

// Package matrix defines the benchmarked configuration dimensions and
// assembles the external build commands for each cell.
//
// Two static tables drive the run: LLVM build variants (stage count, LTO
// mode, PGO, BOLT) and kernel build targets (architecture × config ×
// cross-compiler prefix). Entries are immutable values; the tables'
// definition order fixes the column order of the generated reports.
//
// Assembly is pure string construction over resolved paths and host facts,
// so every property of the emitted commands is unit-testable without
// touching the filesystem or running anything.
package matrix
