package change

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/viant/afs"
	"github.com/viant/icongen/fingerprint"
	"github.com/viant/icongen/layout"
)

// DefaultPattern selects the sources considered for extraction
const DefaultPattern = "**/*Icons.java"

// Detector derives source change events by comparing source fingerprints with the
// manifest committed by the previous pass
type Detector struct {
	fs               afs.Service
	projectRoot      string
	sourceDirs       []string
	pattern          string
	manifestLocation string
	settings         string

	mux      sync.Mutex
	manifest *Manifest
}

// Option customises a Detector
type Option func(d *Detector)

// WithSettings sets the fingerprint of the settings sources are processed with; when it
// differs from the committed one every source is reported again
func WithSettings(settings string) Option {
	return func(d *Detector) {
		d.settings = settings
	}
}

// NewDetector creates a detector scanning sourceDirs for files matching pattern
func NewDetector(fs afs.Service, projectRoot string, sourceDirs []string, pattern, manifestLocation string, options ...Option) *Detector {
	if fs == nil {
		fs = afs.New()
	}
	if pattern == "" {
		pattern = DefaultPattern
	}
	ret := &Detector{
		fs:               fs,
		projectRoot:      projectRoot,
		sourceDirs:       sourceDirs,
		pattern:          pattern,
		manifestLocation: manifestLocation,
	}
	for _, option := range options {
		option(ret)
	}
	return ret
}

// Scan returns the fingerprint of every matching source keyed by absolute path
func (d *Detector) Scan(ctx context.Context) (map[string]string, error) {
	if !doublestar.ValidatePattern(d.pattern) {
		return nil, fmt.Errorf("%w: invalid source pattern %q", layout.ErrConfiguration, d.pattern)
	}
	result := map[string]string{}
	for _, dir := range d.sourceDirs {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			continue
		}
		matches, err := doublestar.Glob(os.DirFS(dir), d.pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
		}
		for _, match := range matches {
			location := filepath.Join(dir, filepath.FromSlash(match))
			hash, err := d.hash(ctx, location)
			if err != nil {
				return nil, err
			}
			result[location] = hash
		}
	}
	return result, nil
}

// Detect returns Added, Modified and Removed events sorted by path. After a settings
// change every scanned source is reported, unchanged ones as Modified.
func (d *Detector) Detect(ctx context.Context) ([]Source, error) {
	current, err := d.Scan(ctx)
	if err != nil {
		return nil, err
	}
	manifest, err := d.loadManifest(ctx)
	if err != nil {
		return nil, err
	}

	d.mux.Lock()
	defer d.mux.Unlock()
	var changes []Source
	seen := map[string]bool{}
	settingsChanged := d.settingsChanged(manifest)
	for location, hash := range current {
		key := d.key(location)
		seen[key] = true
		previous, ok := manifest.Sources[key]
		switch {
		case !ok:
			changes = append(changes, Source{Kind: Added, Path: location, Hash: hash})
		case settingsChanged || previous != hash:
			changes = append(changes, Source{Kind: Modified, Path: location, Hash: hash})
		}
	}
	for _, key := range manifest.Paths() {
		if !seen[key] {
			changes = append(changes, Source{Kind: Removed, Path: d.location(key)})
		}
	}
	sort.Slice(changes, func(i, j int) bool {
		return changes[i].Path < changes[j].Path
	})
	return changes, nil
}

// Commit records processed events in the manifest and persists it; events whose
// processing failed must not be committed so that they are detected again.
// Committing under new settings invalidates the fingerprints of sources left out of
// processed, so that they are reported again as well.
func (d *Detector) Commit(ctx context.Context, processed []Source) error {
	manifest, err := d.loadManifest(ctx)
	if err != nil {
		return err
	}
	d.mux.Lock()
	defer d.mux.Unlock()
	if d.settingsChanged(manifest) {
		for key := range manifest.Sources {
			manifest.Sources[key] = ""
		}
		manifest.Settings = d.settings
	}
	for _, source := range processed {
		key := d.key(source.Path)
		if source.Kind == Removed {
			delete(manifest.Sources, key)
			continue
		}
		hash := source.Hash
		if hash == "" {
			if hash, err = d.hash(ctx, source.Path); err != nil {
				return err
			}
		}
		manifest.Sources[key] = hash
	}
	return manifest.Store(ctx, d.fs, d.manifestLocation)
}

func (d *Detector) loadManifest(ctx context.Context) (*Manifest, error) {
	d.mux.Lock()
	defer d.mux.Unlock()
	if d.manifest != nil {
		return d.manifest, nil
	}
	manifest, err := LoadManifest(ctx, d.fs, d.manifestLocation)
	if err != nil {
		return nil, err
	}
	d.manifest = manifest
	return manifest, nil
}

func (d *Detector) settingsChanged(manifest *Manifest) bool {
	return d.settings != "" && manifest.Settings != d.settings
}

func (d *Detector) hash(ctx context.Context, location string) (string, error) {
	reader, err := d.fs.OpenURL(ctx, location)
	if err != nil {
		return "", fmt.Errorf("failed to open source %s: %w", location, err)
	}
	defer reader.Close()
	value, err := fingerprint.HashReader(reader)
	if err != nil {
		return "", fmt.Errorf("failed to read source %s: %w", location, err)
	}
	return fingerprint.Hex(value), nil
}

// key returns the portable manifest key of a source
func (d *Detector) key(location string) string {
	if rel, err := filepath.Rel(d.projectRoot, location); err == nil && layout.IsSubPath(d.projectRoot, location) {
		return filepath.ToSlash(rel)
	}
	return filepath.ToSlash(location)
}

func (d *Detector) location(key string) string {
	if filepath.IsAbs(filepath.FromSlash(key)) {
		return filepath.FromSlash(key)
	}
	return filepath.Join(d.projectRoot, filepath.FromSlash(key))
}
