package state_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/icongen/layout"
	"github.com/viant/icongen/state"
)

func TestEncode(t *testing.T) {
	root := t.TempDir()
	tests := []struct {
		name    string
		root    string
		outputs []string
		expect  string
		wantErr error
	}{
		{
			name: "common directory",
			root: root,
			outputs: []string{
				root + "/foo/bar/Icons/A.png",
				root + "/foo/bar/Icons/Nested/C.png",
				root + "/foo/bar/Icons/B.png",
			},
			expect: "foo/bar/Icons\nA.png\nB.png\nNested/C.png",
		},
		{
			name: "shallowest common directory wins over deeper pairs",
			root: root,
			outputs: []string{
				root + "/foo/bar/Icons/Nested/Nested2/Nested3/A.png",
				root + "/foo/bar/Icons/Nested/Nested2/B.png",
				root + "/foo/bar/Icons/C.png",
			},
			expect: "foo/bar/Icons\nC.png\nNested/Nested2/B.png\nNested/Nested2/Nested3/A.png",
		},
		{
			name: "no common directory",
			root: root,
			outputs: []string{
				root + "/one/bar/Icons/A.png",
				root + "/two/bar/Nested/C.png",
				root + "/three/bar/B.png",
			},
			expect: "\none/bar/Icons/A.png\nthree/bar/B.png\ntwo/bar/Nested/C.png",
		},
		{
			name: "only files at the root",
			root: root,
			outputs: []string{
				root + "/A.png",
				root + "/C.png",
				root + "/B.png",
			},
			expect: "\nA.png\nB.png\nC.png",
		},
		{
			name:    "single path uses its parent",
			root:    root,
			outputs: []string{root + "/foo/AIcons/AIcon.png"},
			expect:  "foo/AIcons\nAIcon.png",
		},
		{
			name:    "output directory is not absolute",
			root:    filepath.Join("foo", "bar"),
			outputs: []string{"foo/bar/A.png"},
			wantErr: layout.ErrConfiguration,
		},
		{
			name:    "one path is not absolute",
			root:    root,
			outputs: []string{root + "/A.png", "foo/B.png"},
			wantErr: layout.ErrConfiguration,
		},
		{
			name:    "one path is not a sub path of the output directory",
			root:    root,
			outputs: []string{root + "/A.png", "/foo/B.png"},
			wantErr: layout.ErrConfiguration,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outputs := make([]string, 0, len(tt.outputs))
			for _, output := range tt.outputs {
				outputs = append(outputs, filepath.FromSlash(output))
			}
			actual, err := state.Encode(tt.root, outputs)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			if !assert.NoError(t, err) {
				return
			}
			assert.Equal(t, tt.expect, actual)

			decoded, err := state.Decode(tt.root, actual)
			assert.NoError(t, err)
			assert.ElementsMatch(t, outputs, decoded)
		})
	}
}

func TestEncode_Empty(t *testing.T) {
	_, err := state.Encode(t.TempDir(), nil)
	assert.Error(t, err)
}

func TestDecode(t *testing.T) {
	root := t.TempDir()
	tests := []struct {
		name    string
		encoded string
		expect  []string
		wantErr bool
	}{
		{name: "empty", encoded: ""},
		{name: "blank", encoded: "\n\n"},
		{
			name:    "trailing newline and CRLF",
			encoded: "foo/AIcons\r\nAIcon.png\r\nBIcon.png\r\n",
			expect: []string{
				filepath.Join(root, "foo", "AIcons", "AIcon.png"),
				filepath.Join(root, "foo", "AIcons", "BIcon.png"),
			},
		},
		{
			name:    "root relative",
			encoded: "\nA.png",
			expect:  []string{filepath.Join(root, "A.png")},
		},
		{name: "escaping line", encoded: "foo\n../../etc/passwd", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := state.Decode(root, tt.encoded)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expect, actual)
		})
	}
}
