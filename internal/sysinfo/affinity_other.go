// SPDX-License-Identifier: MPL-2.0

//go:build !linux

package sysinfo

import "runtime"

// AffinityCPUs falls back to the logical CPU count on platforms without
// sched_getaffinity.
func AffinityCPUs() int {
	return runtime.NumCPU()
}
