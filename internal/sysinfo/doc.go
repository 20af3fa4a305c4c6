// SPDX-License-Identifier: MPL-2.0

// Package sysinfo probes the facts about the host that shape build commands:
// the machine architecture string, the amount of physical memory (which
// bounds LTO link parallelism), and the number of CPUs in the process
// affinity mask (which becomes the make job count).
package sysinfo
