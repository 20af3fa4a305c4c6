// SPDX-License-Identifier: MPL-2.0

package sysinfo

import (
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v4/mem"
)

// Supported machine strings, named the way `uname -m` reports them.
const (
	MachineAArch64 = "aarch64"
	MachineX86_64  = "x86_64"
)

//nolint:gochecknoglobals // Test seam for mem.VirtualMemory().
var virtualMemory = mem.VirtualMemory

// Host holds the host facts resolved once at startup and passed down to
// command assembly, so that assembly logic stays testable without touching
// the live system.
type Host struct {
	// Machine is the host architecture (aarch64 or x86_64).
	Machine string
	// MemGiB is the total physical memory in GiB, truncated.
	MemGiB int
	// BuildJobs is the number of CPUs available to this process.
	BuildJobs int
}

// Machine maps the Go architecture of the running binary to the
// corresponding `uname -m` string. Architectures the benchmark has not
// been validated on are rejected.
func Machine() (string, error) {
	switch runtime.GOARCH {
	case "arm64":
		return MachineAArch64, nil
	case "amd64":
		return MachineX86_64, nil
	default:
		return "", fmt.Errorf("unsupported host architecture %q: only aarch64 and x86_64 are supported", runtime.GOARCH)
	}
}

// PhysicalMemGiB returns the total physical memory of the host in GiB,
// truncated toward zero.
func PhysicalMemGiB() (int, error) {
	vm, err := virtualMemory()
	if err != nil {
		return 0, fmt.Errorf("querying physical memory: %w", err)
	}
	return int(vm.Total / (1 << 30)), nil
}

// Detect resolves all host facts in one call.
func Detect() (Host, error) {
	machine, err := Machine()
	if err != nil {
		return Host{}, err
	}

	memGiB, err := PhysicalMemGiB()
	if err != nil {
		return Host{}, err
	}

	return Host{
		Machine:   machine,
		MemGiB:    memGiB,
		BuildJobs: AffinityCPUs(),
	}, nil
}
