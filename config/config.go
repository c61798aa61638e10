package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/viant/afs"
	"github.com/viant/icongen/change"
	"github.com/viant/icongen/extractor"
	"github.com/viant/icongen/fingerprint"
	"github.com/viant/icongen/inspector/repository"
	"github.com/viant/icongen/layout"
	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up at the project root when no configuration file is given
const DefaultFile = "icongen.yaml"

const (
	DefaultSourceDir = "src"
	DefaultOutputDir = "build/icons"
	DefaultStateDir  = "build/icongen"
)

// Config describes one icon generation setup
type Config struct {
	ProjectRoot string   `yaml:"projectRoot,omitempty"`
	Sources     []string `yaml:"sources,omitempty"`
	Pattern     string   `yaml:"pattern,omitempty"`
	OutputDir   string   `yaml:"outputDir,omitempty"`
	StateDir    string   `yaml:"stateDir,omitempty"`
	FieldType   string   `yaml:"fieldType,omitempty"`
	Extension   string   `yaml:"extension,omitempty"`
	Concurrency int      `yaml:"concurrency,omitempty"`
}

// Load reads a YAML configuration file
func Load(ctx context.Context, location string) (*Config, error) {
	data, err := afs.New().DownloadWithURL(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", location, err)
	}
	ret := &Config{}
	if err = yaml.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", location, err)
	}
	if ret.ProjectRoot != "" && !filepath.IsAbs(ret.ProjectRoot) {
		ret.ProjectRoot = filepath.Join(filepath.Dir(location), ret.ProjectRoot)
	}
	if ret.ProjectRoot == "" {
		ret.ProjectRoot = filepath.Dir(location)
	}
	return ret, nil
}

// Merge overrides c's fields with the non-zero fields of other
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.ProjectRoot != "" {
		c.ProjectRoot = other.ProjectRoot
	}
	if len(other.Sources) > 0 {
		c.Sources = other.Sources
	}
	if other.Pattern != "" {
		c.Pattern = other.Pattern
	}
	if other.OutputDir != "" {
		c.OutputDir = other.OutputDir
	}
	if other.StateDir != "" {
		c.StateDir = other.StateDir
	}
	if other.FieldType != "" {
		c.FieldType = other.FieldType
	}
	if other.Extension != "" {
		c.Extension = other.Extension
	}
	if other.Concurrency > 0 {
		c.Concurrency = other.Concurrency
	}
}

// Init applies defaults and resolves every directory to an absolute path. The project
// root defaults to the detected project of the working directory.
func (c *Config) Init() error {
	if c.ProjectRoot == "" {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		project, err := repository.New().DetectProject(wd)
		if err != nil {
			return fmt.Errorf("failed to detect project root: %w", err)
		}
		c.ProjectRoot = project.RootPath
	}
	root, err := filepath.Abs(c.ProjectRoot)
	if err != nil {
		return err
	}
	c.ProjectRoot = root
	if len(c.Sources) == 0 {
		c.Sources = []string{DefaultSourceDir}
	}
	for i, source := range c.Sources {
		c.Sources[i] = c.resolve(source)
	}
	if c.Pattern == "" {
		c.Pattern = change.DefaultPattern
	}
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	c.OutputDir = c.resolve(c.OutputDir)
	if c.StateDir == "" {
		c.StateDir = DefaultStateDir
	}
	c.StateDir = c.resolve(c.StateDir)
	if c.FieldType == "" {
		c.FieldType = extractor.DefaultFieldType
	}
	if c.Extension == "" {
		c.Extension = extractor.DefaultExtension
	}
	if c.Concurrency <= 0 {
		c.Concurrency = runtime.NumCPU()
	}
	return nil
}

// Validate checks the invariants that must hold before any source is processed
func (c *Config) Validate() error {
	if err := layout.Absolute("project root", c.ProjectRoot); err != nil {
		return err
	}
	if err := layout.Absolute("output directory", c.OutputDir); err != nil {
		return err
	}
	if err := layout.Absolute("state directory", c.StateDir); err != nil {
		return err
	}
	if layout.Overlaps(c.OutputDir, c.StateDir) {
		return fmt.Errorf("%w: output directory %s and state directory %s must not be nested in one another", layout.ErrConfiguration, c.OutputDir, c.StateDir)
	}
	for _, source := range c.Sources {
		if err := layout.Absolute("source directory", source); err != nil {
			return err
		}
		if layout.Overlaps(c.OutputDir, source) {
			return fmt.Errorf("%w: output directory %s overlaps source directory %s", layout.ErrConfiguration, c.OutputDir, source)
		}
	}
	if c.FieldType == "" {
		return fmt.Errorf("%w: field type is required", layout.ErrConfiguration)
	}
	return nil
}

// ManifestLocation returns where source fingerprints are committed
func (c *Config) ManifestLocation() string {
	return filepath.Join(c.StateDir, "sources.yaml")
}

// Fingerprint identifies the settings that shape generated outputs; sources processed
// under a different fingerprint must be processed again
func (c *Config) Fingerprint() (string, error) {
	settings := struct {
		Pattern   string `yaml:"pattern"`
		OutputDir string `yaml:"outputDir"`
		FieldType string `yaml:"fieldType"`
		Extension string `yaml:"extension"`
	}{
		Pattern:   c.Pattern,
		OutputDir: c.relative(c.OutputDir),
		FieldType: c.FieldType,
		Extension: c.Extension,
	}
	data, err := yaml.Marshal(settings)
	if err != nil {
		return "", fmt.Errorf("failed to encode settings: %w", err)
	}
	value, err := fingerprint.Hash(data)
	if err != nil {
		return "", err
	}
	return fingerprint.Hex(value), nil
}

// relative returns location relative to the project root when it lies below it
func (c *Config) relative(location string) string {
	if layout.IsSubPath(c.ProjectRoot, location) {
		if rel, err := filepath.Rel(c.ProjectRoot, location); err == nil {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.ToSlash(location)
}

func (c *Config) resolve(location string) string {
	if filepath.IsAbs(location) {
		return filepath.Clean(location)
	}
	return filepath.Join(c.ProjectRoot, location)
}
