package reconciler_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/afs"
	"github.com/viant/icongen/change"
	"github.com/viant/icongen/extractor"
	"github.com/viant/icongen/layout"
	"github.com/viant/icongen/reconciler"
	"github.com/viant/icongen/state"
)

type fixture struct {
	project    string
	outputRoot string
	source     string
	store      *state.Store
	reconciler *reconciler.Reconciler
}

func newFixture(t *testing.T) *fixture {
	project := t.TempDir()
	outputRoot := filepath.Join(project, "build", "icons")
	store := state.NewStore(afs.New(), filepath.Join(project, "build", "icongen"), project, outputRoot)
	return &fixture{
		project:    project,
		outputRoot: outputRoot,
		source:     filepath.Join(project, "src", "foo", "AIcons.java"),
		store:      store,
		reconciler: reconciler.New(afs.New(), store),
	}
}

func (f *fixture) path(parts ...string) string {
	return filepath.Join(append([]string{f.outputRoot}, parts...)...)
}

func (f *fixture) stateContent(t *testing.T) string {
	data, err := os.ReadFile(f.store.Location(f.source))
	assert.NoError(t, err)
	return string(data)
}

func icon(field, content string) *extractor.Icon {
	return &extractor.Icon{Owner: "foo.AIcons", FieldName: field, Content: []byte(content), Extension: "png"}
}

func assertFile(t *testing.T, location, content string) {
	data, err := os.ReadFile(location)
	if assert.NoError(t, err, location) {
		assert.Equal(t, content, string(data))
	}
}

func assertMissing(t *testing.T, location string) {
	_, err := os.Stat(location)
	assert.True(t, os.IsNotExist(err), "expected %s to be absent", location)
}

func TestReconciler_Lifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	// added
	result, err := f.reconciler.Reconcile(ctx, change.Source{Kind: change.Added, Path: f.source}, []*extractor.Icon{icon("AIcon", "a")})
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, []string{f.path("foo", "AIcons", "AIcon.png")}, result.Written)
	assert.Empty(t, result.Deleted)
	assertFile(t, f.path("foo", "AIcons", "AIcon.png"), "a")
	assert.Equal(t, "foo/AIcons\nAIcon.png", f.stateContent(t))

	// second field added
	result, err = f.reconciler.Reconcile(ctx, change.Source{Kind: change.Modified, Path: f.source}, []*extractor.Icon{icon("AIcon", "a"), icon("BIcon", "b")})
	if !assert.NoError(t, err) {
		return
	}
	assert.Empty(t, result.Deleted)
	assertFile(t, f.path("foo", "AIcons", "AIcon.png"), "a")
	assertFile(t, f.path("foo", "AIcons", "BIcon.png"), "b")
	assert.Equal(t, "foo/AIcons\nAIcon.png\nBIcon.png", f.stateContent(t))

	// BIcon renamed to CIcon
	result, err = f.reconciler.Reconcile(ctx, change.Source{Kind: change.Modified, Path: f.source}, []*extractor.Icon{icon("AIcon", "a"), icon("CIcon", "b")})
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, []string{f.path("foo", "AIcons", "BIcon.png")}, result.Deleted)
	assertFile(t, f.path("foo", "AIcons", "AIcon.png"), "a")
	assertFile(t, f.path("foo", "AIcons", "CIcon.png"), "b")
	assertMissing(t, f.path("foo", "AIcons", "BIcon.png"))

	// removed
	result, err = f.reconciler.Reconcile(ctx, change.Source{Kind: change.Removed, Path: f.source}, []*extractor.Icon{icon("AIcon", "a")})
	if !assert.NoError(t, err) {
		return
	}
	assert.ElementsMatch(t, []string{f.path("foo", "AIcons", "AIcon.png"), f.path("foo", "AIcons", "CIcon.png")}, result.Deleted)
	assert.Empty(t, result.Written)
	assertMissing(t, f.path("foo", "AIcons", "AIcon.png"))
	assertMissing(t, f.path("foo", "AIcons", "CIcon.png"))
	assertMissing(t, f.store.Location(f.source))
}

func TestReconciler_Idempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	icons := []*extractor.Icon{icon("AIcon", "a"), {Owner: "foo.AIcons.Nested", FieldName: "BIcon", Content: []byte("b"), Extension: "png"}}

	var states []string
	for i := 0; i < 2; i++ {
		result, err := f.reconciler.Reconcile(ctx, change.Source{Kind: change.Modified, Path: f.source}, icons)
		if !assert.NoError(t, err) {
			return
		}
		assert.Empty(t, result.Deleted)
		assert.Len(t, result.Written, 2)
		states = append(states, f.stateContent(t))
	}
	assert.Equal(t, states[0], states[1])
	assert.Equal(t, "foo/AIcons\nAIcon.png\nNested/BIcon.png", states[0])
}

func TestReconciler_AddedAgainstExistingState(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.reconciler.Reconcile(ctx, change.Source{Kind: change.Added, Path: f.source}, []*extractor.Icon{icon("AIcon", "a"), icon("BIcon", "b")})
	assert.NoError(t, err)

	// re-added after external deletion, with one icon gone
	result, err := f.reconciler.Reconcile(ctx, change.Source{Kind: change.Added, Path: f.source}, []*extractor.Icon{icon("AIcon", "a")})
	if assert.NoError(t, err) {
		assert.Equal(t, []string{f.path("foo", "AIcons", "BIcon.png")}, result.Deleted)
	}
	assertMissing(t, f.path("foo", "AIcons", "BIcon.png"))
}

func TestReconciler_NoIcons(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	result, err := f.reconciler.Reconcile(ctx, change.Source{Kind: change.Added, Path: f.source}, nil)
	if assert.NoError(t, err) {
		assert.Empty(t, result.Written)
	}
	assertMissing(t, f.store.Location(f.source))
}

func TestReconciler_StaleAlreadyDeleted(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.reconciler.Reconcile(ctx, change.Source{Kind: change.Added, Path: f.source}, []*extractor.Icon{icon("AIcon", "a")})
	assert.NoError(t, err)
	assert.NoError(t, os.Remove(f.path("foo", "AIcons", "AIcon.png")))

	result, err := f.reconciler.Reconcile(ctx, change.Source{Kind: change.Removed, Path: f.source}, nil)
	if assert.NoError(t, err) {
		assert.Empty(t, result.Deleted)
	}
	assertMissing(t, f.store.Location(f.source))
}

func TestReconciler_RelativeOutputRoot(t *testing.T) {
	store := state.NewStore(afs.New(), t.TempDir(), "", filepath.Join("build", "icons"))
	_, err := reconciler.New(afs.New(), store).Reconcile(context.Background(), change.Source{Kind: change.Added, Path: "/src/AIcons.java"}, []*extractor.Icon{icon("AIcon", "a")})
	assert.True(t, errors.Is(err, layout.ErrConfiguration), "got %v", err)
}
