package change

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

// ManifestVersion identifies the manifest layout
const ManifestVersion = 1

// Manifest records the fingerprint of every source processed successfully, and the
// fingerprint of the settings those sources were processed with
type Manifest struct {
	Version  int               `yaml:"version"`
	Settings string            `yaml:"settings,omitempty"`
	Sources  map[string]string `yaml:"sources"` // slash separated project relative path -> fingerprint
}

// NewManifest creates an empty manifest
func NewManifest() *Manifest {
	return &Manifest{Version: ManifestVersion, Sources: map[string]string{}}
}

// LoadManifest reads the manifest at location, an absent file yields an empty manifest
func LoadManifest(ctx context.Context, fs afs.Service, location string) (*Manifest, error) {
	exists, err := fs.Exists(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to check manifest %s: %w", location, err)
	}
	if !exists {
		return NewManifest(), nil
	}
	data, err := fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", location, err)
	}
	ret := NewManifest()
	if err = yaml.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to decode manifest %s: %w", location, err)
	}
	if ret.Sources == nil {
		ret.Sources = map[string]string{}
	}
	return ret, nil
}

// Store writes the manifest to location
func (m *Manifest) Store(ctx context.Context, fs afs.Service, location string) error {
	buffer := &bytes.Buffer{}
	encoder := yaml.NewEncoder(buffer)
	encoder.SetIndent(2)
	if err := encoder.Encode(m); err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return err
	}
	if err := fs.Upload(ctx, location, 0o644, buffer); err != nil {
		return fmt.Errorf("failed to write manifest %s: %w", location, err)
	}
	return nil
}

// Paths returns the recorded source paths in sorted order
func (m *Manifest) Paths() []string {
	paths := make([]string, 0, len(m.Sources))
	for aPath := range m.Sources {
		paths = append(paths, aPath)
	}
	sort.Strings(paths)
	return paths
}
