// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper.
//
// Configuration is loaded from $XDG_CONFIG_HOME/tcbench/config.toml (or the
// platform equivalent), with TCBENCH_* environment variables layered on top.
// Everything has a sensible default, so no config file is required: the file
// exists to override empirical tuning values (LTO link-job divisors, run
// counts, the GCC mirror) without rebuilding the tool.
//
// The loaded Config is constructed once at startup and passed down
// explicitly; nothing reads Viper after Load returns.
package config
