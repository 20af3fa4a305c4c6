// SPDX-License-Identifier: MPL-2.0

// Package kernel knows just enough about a Linux source tree to validate
// it before a benchmark run: whether it looks like a kernel tree, whether
// it is pristine, and which version it is. It also drives the throwaway
// kernel builds of the validation pass and writes the kconfig override
// that disables GCC plugins for the baseline builds.
package kernel
