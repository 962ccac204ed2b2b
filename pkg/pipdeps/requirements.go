// SPDX-License-Identifier: MPL-2.0

package pipdeps

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// ParseRequirementsFile reads a pip requirements file and returns its
// specifiers in declaration order. Blank lines and '#' comment lines are
// skipped; trailing comments on a specifier line are preserved as-is, since
// pip itself owns that grammar.
func ParseRequirementsFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open requirements file %q: %w", path, err)
	}
	defer f.Close()

	var specs []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		specs = append(specs, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read requirements file %q: %w", path, err)
	}
	return specs, nil
}

// EffectiveRequirements merges a target's inline requirement specifiers with
// the entries of its requirements file, inline specifiers first. A missing
// requirements file contributes nothing; any other read failure is an error.
func EffectiveRequirements(inline []string, requirementsTxt string) ([]string, error) {
	specs := make([]string, 0, len(inline))
	for _, spec := range inline {
		if spec = strings.TrimSpace(spec); spec != "" {
			specs = append(specs, spec)
		}
	}

	if requirementsTxt != "" {
		fileSpecs, err := ParseRequirementsFile(requirementsTxt)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return specs, nil
			}
			return nil, err
		}
		specs = append(specs, fileSpecs...)
	}

	return specs, nil
}
