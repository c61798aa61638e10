package layout

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/viant/icongen/extractor"
)

// ErrConfiguration marks a fatal misconfiguration, such as output paths escaping the output root
var ErrConfiguration = errors.New("invalid configuration")

// Derive maps an icon to its output path: owner package segments become directories,
// followed by <fieldName>.<extension>, resolved under outputRoot
func Derive(icon *extractor.Icon, outputRoot string) (string, error) {
	if err := Absolute("output root", outputRoot); err != nil {
		return "", err
	}
	extension := icon.Extension
	if extension == "" {
		extension = extractor.DefaultExtension
	}
	segments := append([]string{outputRoot}, strings.Split(icon.Owner, ".")...)
	segments = append(segments, icon.FieldName+"."+extension)
	location := filepath.Join(segments...)
	if err := Within(outputRoot, location); err != nil {
		return "", err
	}
	return location, nil
}

// Absolute checks that location is an absolute path
func Absolute(name, location string) error {
	if !filepath.IsAbs(location) {
		return fmt.Errorf("%w: %s must be absolute: %q", ErrConfiguration, name, location)
	}
	return nil
}

// Within checks that location is absolute and strictly below root
func Within(root, location string) error {
	if err := Absolute("output root", root); err != nil {
		return err
	}
	if err := Absolute("output path", location); err != nil {
		return err
	}
	if !IsSubPath(root, location) {
		return fmt.Errorf("%w: output path %q is not under output root %q", ErrConfiguration, location, root)
	}
	return nil
}

// IsSubPath reports whether location lies strictly below root; both must be absolute
func IsSubPath(root, location string) bool {
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(location))
	if err != nil || rel == "." {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// Overlaps reports whether one directory equals or contains the other
func Overlaps(first, second string) bool {
	first, second = filepath.Clean(first), filepath.Clean(second)
	return first == second || IsSubPath(first, second) || IsSubPath(second, first)
}
