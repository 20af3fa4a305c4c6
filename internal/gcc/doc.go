// SPDX-License-Identifier: MPL-2.0

// Package gcc fetches the baseline GCC cross toolchains from the
// kernel.org crosstool mirror.
//
// One archive per target tuple, keyed by host architecture and GCC
// version. Fetching is idempotent: a tuple whose marker binary is already
// installed is skipped. Archives are extracted in-process (xz + tar) with
// the two leading path components stripped so every tuple lands in the
// shared install folder's bin directory. Network and extraction failures
// abort the run; there is nothing to benchmark without the baseline.
package gcc
