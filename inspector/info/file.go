package info

import "strings"

// File represents a parsed source file with its top level type declarations
type File struct {
	Path    string  // File path
	Package string  // Declared package, empty for the default package
	Types   []*Type // Top level types in declaration order
}

// QualifiedName returns the fully qualified name of the innermost type of the chain.
// The chain lists enclosing types from the top level type down; the result is false
// when any element is local or anonymous, since such types have no canonical name.
func (f *File) QualifiedName(chain []*Type) (string, bool) {
	if len(chain) == 0 {
		return "", false
	}
	parts := make([]string, 0, len(chain)+1)
	if f.Package != "" {
		parts = append(parts, f.Package)
	}
	for _, t := range chain {
		if t.Local || t.Name == "" {
			return "", false
		}
		parts = append(parts, t.Name)
	}
	return strings.Join(parts, "."), true
}
