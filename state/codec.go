package state

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/viant/icongen/layout"
)

const separator = "\n"

// Encode serializes absolute output paths relative to outputRoot. The first line is the
// deepest directory shared by all paths (relative to outputRoot, empty when it is
// outputRoot itself); each following line is one path relative to that directory.
// Lines are sorted so that the encoding is stable.
func Encode(outputRoot string, outputs []string) (string, error) {
	if len(outputs) == 0 {
		return "", errors.New("no outputs to encode")
	}
	relatives := make([]string, 0, len(outputs))
	for _, output := range outputs {
		if err := layout.Within(outputRoot, output); err != nil {
			return "", err
		}
		rel, err := filepath.Rel(outputRoot, output)
		if err != nil {
			return "", fmt.Errorf("failed to relativize %s: %w", output, err)
		}
		relatives = append(relatives, filepath.ToSlash(rel))
	}

	common := commonDirectory(relatives)
	lines := make([]string, 0, len(relatives))
	seen := make(map[string]bool, len(relatives))
	for _, rel := range relatives {
		if common != "" {
			rel = strings.TrimPrefix(rel, common+"/")
		}
		if seen[rel] {
			continue
		}
		seen[rel] = true
		lines = append(lines, rel)
	}
	sort.Strings(lines)
	return common + separator + strings.Join(lines, separator), nil
}

// Decode restores the absolute output paths of an encoded state
func Decode(outputRoot string, encoded string) ([]string, error) {
	if err := layout.Absolute("output root", outputRoot); err != nil {
		return nil, err
	}
	encoded = strings.ReplaceAll(encoded, "\r\n", separator)
	if strings.TrimSpace(encoded) == "" {
		return nil, nil
	}
	lines := strings.Split(encoded, separator)
	base := filepath.Join(outputRoot, filepath.FromSlash(lines[0]))
	var outputs []string
	for _, line := range lines[1:] {
		if line == "" {
			continue
		}
		output := filepath.Join(base, filepath.FromSlash(line))
		if !layout.IsSubPath(outputRoot, output) {
			return nil, fmt.Errorf("corrupted state: %q resolves outside of %s", line, outputRoot)
		}
		outputs = append(outputs, output)
	}
	return outputs, nil
}

// commonDirectory returns the deepest directory shared by all slash separated paths
func commonDirectory(relatives []string) string {
	var common []string
	for i, rel := range relatives {
		dir := path.Dir(rel)
		var segments []string
		if dir != "." {
			segments = strings.Split(dir, "/")
		}
		if i == 0 {
			common = segments
			continue
		}
		n := 0
		for n < len(common) && n < len(segments) && common[n] == segments[n] {
			n++
		}
		common = common[:n]
	}
	return strings.Join(common, "/")
}
