package repository

import (
	"os"
	"path/filepath"
)

// Detector identifies project root folders
type Detector struct {
	// Common project root marker files/directories, most specific first
	markers []string
}

// New creates a new project detector instance
func New() *Detector {
	return &Detector{
		markers: []string{
			"settings.gradle.kts", // Gradle multi-project builds
			"settings.gradle",
			"build.gradle.kts", // Gradle projects
			"build.gradle",
			"pom.xml",      // Maven projects
			"icongen.yaml", // standalone configuration
			".git",         // Generic VCS marker
		},
	}
}

// DetectProject identifies the project root for the given path and returns project info.
// When no marker is found the path itself (or its directory for files) is the root.
func (d *Detector) DetectProject(location string) (*Project, error) {
	absPath, err := filepath.Abs(location)
	if err != nil {
		return nil, err
	}

	startDir := absPath
	fileInfo, err := os.Stat(absPath)
	if err != nil {
		return nil, err
	}
	if !fileInfo.IsDir() {
		startDir = filepath.Dir(absPath)
	}

	project := &Project{Type: "unknown", RootPath: startDir}
	if rootPath, marker := d.findProjectRoot(startDir); rootPath != "" {
		project.RootPath = rootPath
		project.Type = determineProjectType(marker)
	}

	relPath, err := filepath.Rel(project.RootPath, absPath)
	if err != nil {
		relPath = filepath.Base(absPath)
	}
	project.RelativePath = filepath.ToSlash(relPath)
	return project, nil
}

// findProjectRoot searches up from the start directory for project markers.
// The outermost Gradle settings file wins so that subprojects share the build root.
func (d *Detector) findProjectRoot(startDir string) (string, string) {
	dir := startDir
	var found, foundMarker string
	for {
		for _, marker := range d.markers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				if found == "" {
					found, foundMarker = dir, marker
				} else if isSettings(marker) {
					found, foundMarker = dir, marker
				}
				break
			}
		}
		if found != "" && determineProjectType(foundMarker) != "gradle" {
			return found, foundMarker
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return found, foundMarker
}

func isSettings(marker string) bool {
	return marker == "settings.gradle" || marker == "settings.gradle.kts"
}

// determineProjectType identifies the type of project based on the marker file
func determineProjectType(marker string) string {
	switch marker {
	case "settings.gradle", "settings.gradle.kts", "build.gradle", "build.gradle.kts":
		return "gradle"
	case "pom.xml":
		return "maven"
	case "icongen.yaml":
		return "icongen"
	case ".git":
		return "git"
	default:
		return "unknown"
	}
}
