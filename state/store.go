package state

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/icongen/fingerprint"
	"github.com/viant/icongen/layout"
)

// RecordsFolder holds one state record per source file under the state root
const RecordsFolder = "outputs"

// Store persists, per source file, the set of outputs produced by the last reconciliation
type Store struct {
	fs          afs.Service
	root        string
	projectRoot string
	outputRoot  string
}

// NewStore creates a store rooted at stateRoot; record names are derived from source
// paths relative to projectRoot and output paths are encoded relative to outputRoot
func NewStore(fs afs.Service, stateRoot, projectRoot, outputRoot string) *Store {
	if fs == nil {
		fs = afs.New()
	}
	return &Store{
		fs:          fs,
		root:        stateRoot,
		projectRoot: projectRoot,
		outputRoot:  outputRoot,
	}
}

// OutputRoot returns the directory all recorded outputs live under
func (s *Store) OutputRoot() string {
	return s.outputRoot
}

// Name returns a portable record name for the source: its project relative path with
// separators flattened to '_', suffixed with a hash of that path so that names stay
// unique even when flattening collides (a_b/c vs a/b_c)
func (s *Store) Name(source string) string {
	rel := source
	if s.projectRoot != "" {
		if candidate, err := filepath.Rel(s.projectRoot, source); err == nil && layout.IsSubPath(s.projectRoot, source) {
			rel = candidate
		}
	}
	rel = strings.TrimLeft(filepath.ToSlash(filepath.Clean(rel)), "/")
	hash, _ := fingerprint.Hash([]byte(rel))
	flat := strings.NewReplacer("/", "_", ":", "_").Replace(rel)
	return flat + "." + fingerprint.Hex(hash)
}

// Location returns the state record location of the source
func (s *Store) Location(source string) string {
	return filepath.Join(s.root, RecordsFolder, s.Name(source))
}

// Load returns the outputs recorded for the source, empty when no record exists
func (s *Store) Load(ctx context.Context, source string) ([]string, error) {
	location := s.Location(source)
	exists, err := s.fs.Exists(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to check state %s: %w", location, err)
	}
	if !exists {
		return nil, nil
	}
	data, err := s.fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to read state %s: %w", location, err)
	}
	outputs, err := Decode(s.outputRoot, string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode state %s: %w", location, err)
	}
	return outputs, nil
}

// Save replaces the record of the source; an empty output set deletes the record instead
func (s *Store) Save(ctx context.Context, source string, outputs []string) error {
	if len(outputs) == 0 {
		return s.Delete(ctx, source)
	}
	encoded, err := Encode(s.outputRoot, outputs)
	if err != nil {
		return err
	}
	location := s.Location(source)
	if err = s.fs.Upload(ctx, location, 0o644, strings.NewReader(encoded)); err != nil {
		return fmt.Errorf("failed to write state %s: %w", location, err)
	}
	return nil
}

// Delete removes the record of the source if present
func (s *Store) Delete(ctx context.Context, source string) error {
	location := s.Location(source)
	exists, err := s.fs.Exists(ctx, location)
	if err != nil || !exists {
		return err
	}
	if err = s.fs.Delete(ctx, location); err != nil {
		return fmt.Errorf("failed to delete state %s: %w", location, err)
	}
	return nil
}
