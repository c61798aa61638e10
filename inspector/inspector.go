package inspector

import (
	"context"

	"github.com/viant/icongen/inspector/info"
)

// Inspector turns source code into toolkit agnostic declarations
type Inspector interface {
	// InspectSource parses source code from a byte slice and extracts type declarations
	InspectSource(ctx context.Context, src []byte) (*info.File, error)

	// InspectFile parses a source file and extracts type declarations
	InspectFile(ctx context.Context, filename string) (*info.File, error)
}
