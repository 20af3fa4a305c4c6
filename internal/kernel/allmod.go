// SPDX-License-Identifier: MPL-2.0

package kernel

import (
	"fmt"
	"os"
	"path/filepath"
)

// AllmodConfigName is the kconfig override file written into the build
// folder and forced into baseline GCC builds via KCONFIG_ALLCONFIG.
const AllmodConfigName = ".allmod.config"

// allmodConfigContent disables the GCC plugins. The kernel.org crosstool
// toolchains sometimes fail to build and link them, and they have no
// meaningful impact on compile time, so they are kept out of the
// measurement entirely.
const allmodConfigContent = "CONFIG_GCC_PLUGINS=n\n"

// WriteAllmodConfig ensures the override file exists under buildFolder and
// returns its path. An existing file is left untouched.
func WriteAllmodConfig(buildFolder string) (string, error) {
	path := filepath.Join(buildFolder, AllmodConfigName)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	if err := os.MkdirAll(buildFolder, 0o755); err != nil {
		return "", fmt.Errorf("creating build folder: %w", err)
	}
	if err := os.WriteFile(path, []byte(allmodConfigContent), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", AllmodConfigName, err)
	}
	return path, nil
}
