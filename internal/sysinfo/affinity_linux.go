// SPDX-License-Identifier: MPL-2.0

//go:build linux

package sysinfo

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// AffinityCPUs returns the number of CPUs in the calling process's
// affinity mask. Containers and taskset restrict the mask below the
// machine total, and make should not be handed more jobs than that.
func AffinityCPUs() int {
	var set unix.CPUSet
	if err := unix.SchedGetaffinity(0, &set); err != nil {
		return runtime.NumCPU()
	}
	if n := set.Count(); n > 0 {
		return n
	}
	return runtime.NumCPU()
}
