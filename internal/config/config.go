// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"

	"tcbench/internal/issue"
)

const (
	// AppName is the application name.
	AppName = "tcbench"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "toml"
)

//nolint:gochecknoglobals // Test seam for ConfigDir().
var configDirOverride = ""

type (
	// Config is the effective tcbench configuration. It is immutable after
	// Load and passed down to the components that need it.
	Config struct {
		GCC       GCCConfig       `mapstructure:"gcc" toml:"gcc"`
		LLVM      LLVMConfig      `mapstructure:"llvm" toml:"llvm"`
		Benchmark BenchmarkConfig `mapstructure:"benchmark" toml:"benchmark"`
		LTO       LTOConfig       `mapstructure:"lto" toml:"lto"`
		Fetch     FetchConfig     `mapstructure:"fetch" toml:"fetch"`
	}

	// GCCConfig describes the baseline GCC toolchains fetched from the
	// kernel.org crosstool mirror.
	GCCConfig struct {
		// Version is the crosstool GCC release to download.
		Version string `mapstructure:"version" toml:"version"`
		// Tuples are the target triples the kernel matrix needs.
		Tuples []string `mapstructure:"tuples" toml:"tuples"`
		// MirrorURL is the base URL of the crosstool file tree.
		MirrorURL string `mapstructure:"mirror_url" toml:"mirror_url"`
	}

	// LLVMConfig describes how the external LLVM build helper is invoked.
	LLVMConfig struct {
		// BuildScript is the path to the LLVM build helper script. Relative
		// values are resolved against the LLVM benchmark working directory.
		BuildScript string `mapstructure:"build_script" toml:"build_script"`
	}

	// BenchmarkConfig holds hyperfine repetition counts.
	BenchmarkConfig struct {
		// LLVMRuns is the number of timed runs per LLVM build variant.
		LLVMRuns int `mapstructure:"llvm_runs" toml:"llvm_runs"`
		// KernelDefconfigRuns is the run count for defconfig kernel builds.
		KernelDefconfigRuns int `mapstructure:"kernel_defconfig_runs" toml:"kernel_defconfig_runs"`
		// KernelAllmodRuns is the run count for allmodconfig kernel builds.
		KernelAllmodRuns int `mapstructure:"kernel_allmod_runs" toml:"kernel_allmod_runs"`
		// Warmup is the number of untimed warm-up runs per command.
		Warmup int `mapstructure:"warmup" toml:"warmup"`
	}

	// LTOConfig holds the empirical memory divisors that bound link
	// parallelism for LTO builds. A full LTO link of clang peaks around
	// 30 GiB of memory and a ThinLTO link around half of that; the
	// divisors are tuning values with no derivation beyond observation,
	// so they stay configurable rather than computed.
	LTOConfig struct {
		FullDivisor int `mapstructure:"full_divisor" toml:"full_divisor"`
		ThinDivisor int `mapstructure:"thin_divisor" toml:"thin_divisor"`
	}

	// FetchConfig bounds network operations.
	FetchConfig struct {
		// Timeout is the upper bound on a single toolchain download.
		Timeout time.Duration `mapstructure:"timeout" toml:"timeout"`
	}
)

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		GCC: GCCConfig{
			Version: "13.2.0",
			Tuples: []string{
				"aarch64-linux",
				"arm-linux-gnueabi",
				"x86_64-linux",
			},
			MirrorURL: "https://mirrors.edge.kernel.org/pub/tools/crosstool/files/bin",
		},
		LLVM: LLVMConfig{
			BuildScript: "build-llvm.py",
		},
		Benchmark: BenchmarkConfig{
			LLVMRuns:            5,
			KernelDefconfigRuns: 10,
			KernelAllmodRuns:    5,
			Warmup:              1,
		},
		LTO: LTOConfig{
			FullDivisor: 30,
			ThinDivisor: 15,
		},
		Fetch: FetchConfig{
			Timeout: time.Hour,
		},
	}
}

// ConfigDir returns the tcbench configuration directory using
// platform-specific conventions: Windows uses %APPDATA%, macOS uses
// ~/Library/Application Support, and Linux/others use $XDG_CONFIG_HOME
// (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	// Allow tests to override the config directory
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// SetConfigDirOverride redirects ConfigDir for tests.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}

// Load reads the configuration. When cfgFile is non-empty it is used
// exclusively and must exist; otherwise the default location is consulted
// and a missing file is not an error.
func Load(cfgFile string) (Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("gcc.version", defaults.GCC.Version)
	v.SetDefault("gcc.tuples", defaults.GCC.Tuples)
	v.SetDefault("gcc.mirror_url", defaults.GCC.MirrorURL)
	v.SetDefault("llvm.build_script", defaults.LLVM.BuildScript)
	v.SetDefault("benchmark.llvm_runs", defaults.Benchmark.LLVMRuns)
	v.SetDefault("benchmark.kernel_defconfig_runs", defaults.Benchmark.KernelDefconfigRuns)
	v.SetDefault("benchmark.kernel_allmod_runs", defaults.Benchmark.KernelAllmodRuns)
	v.SetDefault("benchmark.warmup", defaults.Benchmark.Warmup)
	v.SetDefault("lto.full_divisor", defaults.LTO.FullDivisor)
	v.SetDefault("lto.thin_divisor", defaults.LTO.ThinDivisor)
	v.SetDefault("fetch.timeout", defaults.Fetch.Timeout)

	v.SetEnvPrefix("TCBENCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(cfgFile).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Check that the file is valid TOML").
				Wrap(err).
				Build()
		}
	} else {
		dir, err := ConfigDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolving config directory: %w", err)
		}
		v.AddConfigPath(dir)
		v.SetConfigName(ConfigFileName)
		v.SetConfigType(ConfigFileExt)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, issue.NewErrorContext().
					WithOperation("load configuration").
					WithResource(filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)).
					WithSuggestion("Check that the file is valid TOML").
					Wrap(err).
					Build()
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshaling configuration: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// validate rejects configurations that would assemble nonsense commands.
func (c Config) validate() error {
	if c.LTO.FullDivisor <= 0 || c.LTO.ThinDivisor <= 0 {
		return fmt.Errorf("lto divisors must be positive (full=%d, thin=%d)", c.LTO.FullDivisor, c.LTO.ThinDivisor)
	}
	if c.Benchmark.LLVMRuns <= 0 || c.Benchmark.KernelDefconfigRuns <= 0 || c.Benchmark.KernelAllmodRuns <= 0 {
		return fmt.Errorf("benchmark run counts must be positive")
	}
	if c.Benchmark.Warmup < 0 {
		return fmt.Errorf("benchmark warmup count must not be negative")
	}
	if c.GCC.Version == "" {
		return fmt.Errorf("gcc.version must not be empty")
	}
	if len(c.GCC.Tuples) == 0 {
		return fmt.Errorf("gcc.tuples must not be empty")
	}
	return nil
}
