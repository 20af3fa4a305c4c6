// SPDX-License-Identifier: MPL-2.0

// Package rust builds a Rust toolchain against an installed LLVM
// toolchain.
//
// The Rust bootstrap owns the actual build; this package generates its
// bootstrap.toml, wipes the build folder, and invokes ./x.py install. It
// exists so a benchmarked LLVM install can immediately back a rustc,
// which is how LLVM build regressions tend to get noticed second.
package rust
