// SPDX-License-Identifier: MPL-2.0

// Package issue provides structured, user-facing errors for tcbench.
//
// Benchmark runs take hours, so every failure that can be caught up front
// must tell the user exactly what was being attempted, which path or tool
// was involved, and what to do about it. ActionableError carries that
// context; the CLI layer decides how to render it (concise by default,
// full error chain with --verbose).
package issue
