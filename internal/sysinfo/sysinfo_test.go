// SPDX-License-Identifier: MPL-2.0

package sysinfo

import (
	"runtime"
	"testing"

	"github.com/shirou/gopsutil/v4/mem"
)

func TestMachine(t *testing.T) {
	machine, err := Machine()

	switch runtime.GOARCH {
	case "arm64":
		if err != nil {
			t.Fatalf("Machine() error = %v", err)
		}
		if machine != MachineAArch64 {
			t.Errorf("Machine() = %q, want %q", machine, MachineAArch64)
		}
	case "amd64":
		if err != nil {
			t.Fatalf("Machine() error = %v", err)
		}
		if machine != MachineX86_64 {
			t.Errorf("Machine() = %q, want %q", machine, MachineX86_64)
		}
	default:
		if err == nil {
			t.Errorf("Machine() = %q, want error on %s", machine, runtime.GOARCH)
		}
	}
}

func TestPhysicalMemGiB(t *testing.T) {
	restore := virtualMemory
	defer func() { virtualMemory = restore }()

	virtualMemory = func() (*mem.VirtualMemoryStat, error) {
		return &mem.VirtualMemoryStat{Total: 64 << 30}, nil
	}

	got, err := PhysicalMemGiB()
	if err != nil {
		t.Fatalf("PhysicalMemGiB() error = %v", err)
	}
	if got != 64 {
		t.Errorf("PhysicalMemGiB() = %d, want 64", got)
	}
}

func TestPhysicalMemGiB_Truncates(t *testing.T) {
	restore := virtualMemory
	defer func() { virtualMemory = restore }()

	// 63.5 GiB of reported memory must truncate to 63, not round to 64.
	virtualMemory = func() (*mem.VirtualMemoryStat, error) {
		return &mem.VirtualMemoryStat{Total: 63<<30 + 1<<29}, nil
	}

	got, err := PhysicalMemGiB()
	if err != nil {
		t.Fatalf("PhysicalMemGiB() error = %v", err)
	}
	if got != 63 {
		t.Errorf("PhysicalMemGiB() = %d, want 63", got)
	}
}

func TestAffinityCPUs(t *testing.T) {
	if got := AffinityCPUs(); got < 1 {
		t.Errorf("AffinityCPUs() = %d, want >= 1", got)
	}
}
