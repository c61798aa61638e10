package extractor

import (
	"bytes"
	"fmt"
	"log/slog"
)

// DefaultExtension is the artifact extension of decoded icons
const DefaultExtension = "png"

// DefaultFieldType is the declared field type qualifying for extraction
const DefaultFieldType = "String"

// Icon is a decoded binary payload extracted from a qualifying field
type Icon struct {
	Content   []byte
	FieldName string
	Owner     string // fully qualified name of the nearest enclosing class
	Extension string
}

// Equal reports whether both icons carry the same payload and placement
func (i *Icon) Equal(other *Icon) bool {
	return i.FieldName == other.FieldName &&
		i.Owner == other.Owner &&
		i.Extension == other.Extension &&
		bytes.Equal(i.Content, other.Content)
}

func (i *Icon) String() string {
	return fmt.Sprintf("%s.%s (%d bytes)", i.Owner, i.FieldName, len(i.Content))
}

// WarningKind classifies a rejected candidate
type WarningKind string

const (
	WarningParse      WarningKind = "parse"
	WarningStructural WarningKind = "structural"
	WarningDecode     WarningKind = "decode"
)

// Warning describes a candidate that did not produce an icon
type Warning struct {
	Kind    WarningKind
	Path    string
	Line    int
	Subject string // field or variable name, empty for file level warnings
	Message string
}

// Level returns the log severity of the warning; decode failures are an expected
// "not actually an icon" case and rank below structural rejections.
func (w *Warning) Level() slog.Level {
	if w.Kind == WarningDecode {
		return slog.LevelInfo
	}
	return slog.LevelWarn
}

func (w *Warning) String() string {
	location := w.Path
	if w.Line > 0 {
		location = fmt.Sprintf("%s:%d", w.Path, w.Line)
	}
	if w.Subject == "" {
		return fmt.Sprintf("%s: ignoring file, %s", location, w.Message)
	}
	return fmt.Sprintf("%s: [%s] ignoring, %s", location, w.Subject, w.Message)
}

// Result holds the icons and warnings of one source file
type Result struct {
	Icons    []*Icon
	Warnings []*Warning
}
