// SPDX-License-Identifier: MPL-2.0

// Package bench sequences a full benchmark run.
//
// The driver moves strictly through validation build, dependency fetch,
// LLVM matrix benchmarking, and kernel matrix benchmarking, one external
// command at a time. There is no parallelism here on purpose: every
// invoked tool saturates the machine on its own, and concurrent matrix
// cells would corrupt each other's timings. Any failure is terminal for
// the whole run; with multi-hour builds, a flaky cell should be diagnosed,
// not retried.
package bench
