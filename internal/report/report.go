// SPDX-License-Identifier: MPL-2.0

package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"

	"tcbench/internal/issue"
)

//nolint:gochecknoglobals // Test seam for glamour.Render.
var render = glamour.Render

// List returns the report names (file names without extension) available
// in the results folder, sorted.
func List(resultsFolder string) ([]string, error) {
	entries, err := os.ReadDir(resultsFolder)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("list benchmark reports").
			WithResource(resultsFolder).
			WithSuggestion("Run 'tcbench bench' to generate reports first").
			Wrap(err).
			Build()
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".md"))
	}
	sort.Strings(names)
	return names, nil
}

// Render reads one report by name and renders its markdown for the
// terminal.
func Render(resultsFolder, name string) (string, error) {
	path := filepath.Join(resultsFolder, name+".md")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", issue.NewErrorContext().
			WithOperation("read benchmark report").
			WithResource(path).
			WithSuggestion("Use 'tcbench results' to list available reports").
			Wrap(err).
			Build()
	}

	out, err := render(string(data), "auto")
	if err != nil {
		return "", fmt.Errorf("rendering report %s: %w", name, err)
	}
	return out, nil
}
