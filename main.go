// SPDX-License-Identifier: MPL-2.0

// tcbench benchmarks LLVM toolchain build-time optimization strategies
// by timing LLVM builds and Linux kernel builds under hyperfine.
package main

import cmd "tcbench/cmd/tcbench"

func main() {
	cmd.Execute()
}
