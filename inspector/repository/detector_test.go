package repository_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/icongen/inspector/repository"
)

func TestDetector_DetectProject(t *testing.T) {
	root := t.TempDir()
	touch := func(parts ...string) string {
		location := filepath.Join(append([]string{root}, parts...)...)
		assert.NoError(t, os.MkdirAll(filepath.Dir(location), 0o755))
		assert.NoError(t, os.WriteFile(location, nil, 0o644))
		return location
	}
	touch("settings.gradle.kts")
	touch("app", "build.gradle.kts")
	source := touch("app", "src", "main", "java", "foo", "AIcons.java")
	touch("lib", "pom.xml")
	mavenSource := touch("lib", "src", "BIcons.java")

	detector := repository.New()

	project, err := detector.DetectProject(source)
	if assert.NoError(t, err) {
		assert.Equal(t, root, project.RootPath)
		assert.Equal(t, "gradle", project.Type)
		assert.Equal(t, "app/src/main/java/foo/AIcons.java", project.RelativePath)
	}

	project, err = detector.DetectProject(mavenSource)
	if assert.NoError(t, err) {
		assert.Equal(t, filepath.Join(root, "lib"), project.RootPath)
		assert.Equal(t, "maven", project.Type)
		assert.Equal(t, "src/BIcons.java", project.RelativePath)
	}

	_, err = detector.DetectProject(filepath.Join(root, "missing"))
	assert.Error(t, err)
}
