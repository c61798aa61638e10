package change

import "fmt"

// Kind describes how a source differs from the previous build pass
type Kind int

const (
	Added Kind = iota
	Modified
	Removed
)

var kindNames = []string{"added", "modified", "removed"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Source is a single source change event
type Source struct {
	Kind Kind
	Path string // absolute source path
	Hash string // content fingerprint, empty for removed sources
}

func (s Source) String() string {
	return s.Kind.String() + " " + s.Path
}
