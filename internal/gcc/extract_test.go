// SPDX-License-Identifier: MPL-2.0

package gcc

import (
	"bytes"
	"testing"
)

func TestStripComponents(t *testing.T) {
	tests := []struct {
		name   string
		strip  int
		want   string
		wantOK bool
	}{
		{"gcc-13.2.0-nolibc/aarch64-linux/bin/gcc", 2, "bin/gcc", true},
		{"./gcc-13.2.0-nolibc/aarch64-linux/bin/gcc", 2, "bin/gcc", true},
		{"gcc-13.2.0-nolibc/aarch64-linux", 2, "", false},
		{"a/b", 0, "a/b", true},
		{"a", 2, "", false},
	}
	for _, tt := range tests {
		got, ok := stripComponents(tt.name, tt.strip)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("stripComponents(%q, %d) = (%q, %v), want (%q, %v)", tt.name, tt.strip, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestSecurePath_RejectsEscape(t *testing.T) {
	dest := t.TempDir()

	if _, err := securePath(dest, "../outside"); err == nil {
		t.Error("expected error for path escaping the extraction folder")
	}
	if _, err := securePath(dest, "bin/gcc"); err != nil {
		t.Errorf("securePath() error = %v for safe path", err)
	}
}

func TestExtractTarXz_BadStream(t *testing.T) {
	if err := extractTarXz(bytes.NewReader([]byte("not xz data")), t.TempDir(), 0); err == nil {
		t.Error("expected error for invalid xz stream")
	}
}
