package reconciler

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/viant/afs"
	"github.com/viant/icongen/change"
	"github.com/viant/icongen/extractor"
	"github.com/viant/icongen/layout"
	"github.com/viant/icongen/state"
)

// Reconciler keeps the artifacts of one source consistent with its latest icons
type Reconciler struct {
	fs    afs.Service
	store *state.Store
}

// Result lists the filesystem effects of one reconciliation
type Result struct {
	Written []string
	Deleted []string
}

// New creates a reconciler writing under the store's output root
func New(fs afs.Service, store *state.Store) *Reconciler {
	if fs == nil {
		fs = afs.New()
	}
	return &Reconciler{fs: fs, store: store}
}

// Reconcile applies one source change: outputs recorded by the previous pass but no
// longer produced are deleted, every current icon is (re)written, then the new output
// set replaces the record (or the record is deleted when the set is empty).
// Icons are ignored for removed sources.
func (r *Reconciler) Reconcile(ctx context.Context, source change.Source, icons []*extractor.Icon) (*Result, error) {
	outputRoot := r.store.OutputRoot()
	if err := layout.Absolute("output root", outputRoot); err != nil {
		return nil, err
	}
	if source.Kind == change.Removed {
		icons = nil
	}

	current := make(map[string]*extractor.Icon, len(icons))
	for _, icon := range icons {
		location, err := layout.Derive(icon, outputRoot)
		if err != nil {
			return nil, err
		}
		current[location] = icon
	}
	outputs := make([]string, 0, len(current))
	for location := range current {
		outputs = append(outputs, location)
	}
	sort.Strings(outputs)

	previous, err := r.store.Load(ctx, source.Path)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	for _, location := range previous {
		if _, ok := current[location]; ok {
			continue
		}
		deleted, err := r.deleteIfExists(ctx, location)
		if err != nil {
			return result, err
		}
		if deleted {
			result.Deleted = append(result.Deleted, location)
		}
	}

	for _, location := range outputs {
		if err = r.fs.Upload(ctx, location, 0o644, bytes.NewReader(current[location].Content)); err != nil {
			return result, fmt.Errorf("failed to write icon %s: %w", location, err)
		}
		result.Written = append(result.Written, location)
	}

	if err = r.store.Save(ctx, source.Path, outputs); err != nil {
		return result, err
	}
	return result, nil
}

func (r *Reconciler) deleteIfExists(ctx context.Context, location string) (bool, error) {
	exists, err := r.fs.Exists(ctx, location)
	if err != nil || !exists {
		return false, err
	}
	if err = r.fs.Delete(ctx, location); err != nil {
		return false, fmt.Errorf("failed to delete stale icon %s: %w", location, err)
	}
	return true, nil
}
