// SPDX-License-Identifier: MPL-2.0

package gcc

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"
)

// extractTarXz unpacks an xz-compressed tar stream into dest, dropping the
// first strip path components of every entry. Entries that would escape
// dest are rejected.
func extractTarXz(r io.Reader, dest string, strip int) error {
	xzr, err := xz.NewReader(r)
	if err != nil {
		return fmt.Errorf("opening xz stream: %w", err)
	}

	tr := tar.NewReader(xzr)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading tar stream: %w", err)
		}

		name, ok := stripComponents(hdr.Name, strip)
		if !ok {
			continue
		}

		target, err := securePath(dest, name)
		if err != nil {
			return err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, os.FileMode(hdr.Mode)|0o700); err != nil {
				return fmt.Errorf("creating directory %s: %w", target, err)
			}
		case tar.TypeReg:
			if err := writeFile(target, tr, os.FileMode(hdr.Mode)); err != nil {
				return err
			}
		case tar.TypeSymlink:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return fmt.Errorf("creating directory for %s: %w", target, err)
			}
			// Re-extraction over an existing install must not fail.
			_ = os.Remove(target)
			if err := os.Symlink(hdr.Linkname, target); err != nil {
				return fmt.Errorf("creating symlink %s: %w", target, err)
			}
		case tar.TypeLink:
			linkName, ok := stripComponents(hdr.Linkname, strip)
			if !ok {
				continue
			}
			linkTarget, err := securePath(dest, linkName)
			if err != nil {
				return err
			}
			_ = os.Remove(target)
			if err := os.Link(linkTarget, target); err != nil {
				return fmt.Errorf("creating hard link %s: %w", target, err)
			}
		default:
			// Device nodes and the like have no business in a toolchain
			// archive; skip them.
		}
	}
}

// stripComponents drops the first n path components from name. The second
// return value is false when nothing remains.
func stripComponents(name string, n int) (string, bool) {
	parts := strings.Split(filepath.ToSlash(strings.TrimPrefix(name, "./")), "/")
	if len(parts) <= n {
		return "", false
	}
	rest := strings.Join(parts[n:], "/")
	if rest == "" {
		return "", false
	}
	return rest, true
}

// securePath joins name onto dest and rejects escapes above dest.
func securePath(dest, name string) (string, error) {
	target := filepath.Join(dest, filepath.FromSlash(name))
	if !strings.HasPrefix(target, filepath.Clean(dest)+string(os.PathSeparator)) {
		return "", fmt.Errorf("archive entry %q escapes extraction folder", name)
	}
	return target, nil
}

func writeFile(target string, r io.Reader, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", target, err)
	}

	file, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode)
	if err != nil {
		return fmt.Errorf("creating file %s: %w", target, err)
	}
	defer file.Close()

	if _, err := io.Copy(file, r); err != nil {
		return fmt.Errorf("writing file %s: %w", target, err)
	}
	return nil
}
