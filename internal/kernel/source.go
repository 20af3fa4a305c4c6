// SPDX-License-Identifier: MPL-2.0

package kernel

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// MinimumSupportedVersion is the oldest kernel the benchmark matrix is
// known to build with every toolchain variant.
//
//nolint:gochecknoglobals // Constant-like value.
var MinimumSupportedVersion = Version{6, 5, 0}

type (
	// Version is a kernel version triplet (VERSION, PATCHLEVEL, SUBLEVEL).
	Version [3]int

	// SourceTree is a Linux kernel source checkout.
	SourceTree struct {
		Folder string
	}
)

// String formats the version as x.y.z.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v[0], v[1], v[2])
}

// OlderThan reports whether v predates other.
func (v Version) OlderThan(other Version) bool {
	for i := range v {
		if v[i] != other[i] {
			return v[i] < other[i]
		}
	}
	return false
}

// Exists reports whether the source folder is present.
func (t SourceTree) Exists() bool {
	info, err := os.Stat(t.Folder)
	return err == nil && info.IsDir()
}

// LooksLikeKernel reports whether the folder has a top-level Makefile,
// the cheapest marker of a kernel tree.
func (t SourceTree) LooksLikeKernel() bool {
	_, err := os.Stat(filepath.Join(t.Folder, "Makefile"))
	return err == nil
}

// IsPristine reports whether the tree is free of a leftover .config, which
// would break the out-of-tree builds the benchmark relies on.
func (t SourceTree) IsPristine() bool {
	_, err := os.Stat(filepath.Join(t.Folder, ".config"))
	return os.IsNotExist(err)
}

// ReadVersion parses the VERSION, PATCHLEVEL, and SUBLEVEL assignments
// from the top of the kernel Makefile.
func (t SourceTree) ReadVersion() (Version, error) {
	file, err := os.Open(filepath.Join(t.Folder, "Makefile"))
	if err != nil {
		return Version{}, fmt.Errorf("opening kernel Makefile: %w", err)
	}
	defer file.Close()

	var version Version
	found := 0

	scanner := bufio.NewScanner(file)
	for scanner.Scan() && found < 3 {
		key, value, ok := strings.Cut(scanner.Text(), "=")
		if !ok {
			continue
		}

		idx := -1
		switch strings.TrimSpace(key) {
		case "VERSION":
			idx = 0
		case "PATCHLEVEL":
			idx = 1
		case "SUBLEVEL":
			idx = 2
		default:
			continue
		}

		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return Version{}, fmt.Errorf("parsing kernel Makefile %s value %q: %w", strings.TrimSpace(key), strings.TrimSpace(value), err)
		}
		version[idx] = n
		found++
	}
	if err := scanner.Err(); err != nil {
		return Version{}, fmt.Errorf("reading kernel Makefile: %w", err)
	}
	if found < 3 {
		return Version{}, fmt.Errorf("kernel Makefile is missing VERSION, PATCHLEVEL, or SUBLEVEL")
	}

	return version, nil
}
