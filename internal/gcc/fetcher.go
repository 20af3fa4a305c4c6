// SPDX-License-Identifier: MPL-2.0

package gcc

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"tcbench/internal/issue"
	"tcbench/internal/sysinfo"
)

// archiveStripComponents is how many leading path components the crosstool
// archives carry before the usable tree (release folder, then tuple folder).
const archiveStripComponents = 2

type (
	// Fetcher downloads and installs crosstool GCC releases for one host
	// architecture and GCC version.
	Fetcher struct {
		httpClient    *http.Client
		logger        *log.Logger
		mirrorURL     string
		version       string
		hostArch      string
		installFolder string
	}

	// FetcherOption configures a Fetcher during construction.
	FetcherOption func(*Fetcher)
)

// WithHTTPClient sets a custom HTTP client, useful for tests or proxy
// configurations.
func WithHTTPClient(c *http.Client) FetcherOption {
	return func(f *Fetcher) {
		f.httpClient = c
	}
}

// WithMirrorURL overrides the crosstool mirror base URL, primarily for
// test servers.
func WithMirrorURL(base string) FetcherOption {
	return func(f *Fetcher) {
		f.mirrorURL = base
	}
}

// WithLogger sets the progress logger.
func WithLogger(l *log.Logger) FetcherOption {
	return func(f *Fetcher) {
		f.logger = l
	}
}

// HostArchDir maps a host machine string to the crosstool mirror's
// directory name for it.
func HostArchDir(machine string) (string, error) {
	switch machine {
	case sysinfo.MachineAArch64:
		return "arm64", nil
	case sysinfo.MachineX86_64:
		return "x86_64", nil
	default:
		return "", fmt.Errorf("no crosstool toolchains for host architecture %q", machine)
	}
}

// NewFetcher creates a Fetcher installing GCC version for machine under
// installFolder. The default HTTP client enforces timeout as the upper
// bound on a whole download.
func NewFetcher(installFolder, machine, version, mirrorURL string, timeout time.Duration, opts ...FetcherOption) (*Fetcher, error) {
	hostArch, err := HostArchDir(machine)
	if err != nil {
		return nil, err
	}

	f := &Fetcher{
		mirrorURL:     mirrorURL,
		version:       version,
		hostArch:      hostArch,
		installFolder: installFolder,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.httpClient == nil {
		f.httpClient = &http.Client{Timeout: timeout}
	}
	if f.logger == nil {
		f.logger = log.Default()
	}
	return f, nil
}

// InstallFolder returns where this fetcher installs toolchains.
func (f *Fetcher) InstallFolder() string {
	return f.installFolder
}

// BinFolder returns the shared bin directory of the installed toolchains.
func (f *Fetcher) BinFolder() string {
	return filepath.Join(f.installFolder, "bin")
}

// ArchiveURL returns the download URL for one target tuple.
func (f *Fetcher) ArchiveURL(tuple string) string {
	return fmt.Sprintf("%s/%s/%s/%s-gcc-%s-nolibc-%s.tar.xz",
		f.mirrorURL, f.hostArch, f.version, f.hostArch, f.version, tuple)
}

// markerBinary is the file whose presence means a tuple is installed.
func (f *Fetcher) markerBinary(tuple string) string {
	return filepath.Join(f.BinFolder(), tuple+"-gcc")
}

// FetchAll ensures every tuple is installed, downloading the missing ones.
func (f *Fetcher) FetchAll(ctx context.Context, tuples []string) error {
	if err := os.MkdirAll(f.installFolder, 0o755); err != nil {
		return fmt.Errorf("creating GCC install folder: %w", err)
	}

	for _, tuple := range tuples {
		if marker := f.markerBinary(tuple); fileExists(marker) {
			f.logger.Info("toolchain found, skipping download", "binary", marker)
			continue
		}
		if err := f.fetch(ctx, tuple); err != nil {
			return err
		}
	}
	return nil
}

// fetch downloads one tuple's archive and extracts it into the install
// folder.
func (f *Fetcher) fetch(ctx context.Context, tuple string) error {
	url := f.ArchiveURL(tuple)
	f.logger.Info("downloading and extracting toolchain", "url", url, "into", f.installFolder)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("building request for %s: %w", url, err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("fetch GCC toolchain").
			WithResource(url).
			WithSuggestion("Check network connectivity to mirrors.edge.kernel.org").
			Wrap(err).
			Build()
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return issue.NewErrorContext().
			WithOperation("fetch GCC toolchain").
			WithResource(url).
			WithSuggestion("Check that gcc.version exists on the crosstool mirror for this host architecture").
			Wrap(fmt.Errorf("unexpected status %s", resp.Status)).
			Build()
	}

	if err := extractTarXz(resp.Body, f.installFolder, archiveStripComponents); err != nil {
		return issue.WrapWithContext(err, "extract GCC toolchain", url)
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
