package extractor

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/viant/icongen/inspector"
	"github.com/viant/icongen/inspector/info"
	"github.com/viant/icongen/inspector/java"
)

// Extractor finds public final fields of a configured type initialized with a
// base64 string literal and decodes them into icons
type Extractor struct {
	inspector inspector.Inspector
	decode    func(text string) ([]byte, error)
	warn      func(warning *Warning)
	extension string
}

// Option customises an Extractor
type Option func(e *Extractor)

// WithDecoder replaces the base64 decoder
func WithDecoder(decode func(text string) ([]byte, error)) Option {
	return func(e *Extractor) {
		e.decode = decode
	}
}

// WithWarn registers a callback invoked for every warning as it is emitted
func WithWarn(warn func(warning *Warning)) Option {
	return func(e *Extractor) {
		e.warn = warn
	}
}

// WithExtension sets the artifact extension of produced icons
func WithExtension(extension string) Option {
	return func(e *Extractor) {
		if extension != "" {
			e.extension = extension
		}
	}
}

// WithInspector replaces the syntax tree adapter
func WithInspector(anInspector inspector.Inspector) Option {
	return func(e *Extractor) {
		e.inspector = anInspector
	}
}

// New creates an extractor
func New(options ...Option) *Extractor {
	ret := &Extractor{
		decode:    DecodeBase64,
		warn:      func(*Warning) {},
		extension: DefaultExtension,
	}
	for _, option := range options {
		option(ret)
	}
	if ret.inspector == nil {
		ret.inspector = java.NewInspector(info.DefaultConfig())
	}
	return ret
}

// DecodeBase64 decodes standard alphabet base64 with optional padding
func DecodeBase64(text string) ([]byte, error) {
	if len(text)%4 == 0 {
		return base64.StdEncoding.DecodeString(text)
	}
	return base64.RawStdEncoding.DecodeString(text)
}

// Extract parses the source file and returns its icons. A file that does not parse
// yields no icons and a single parse warning; only read failures return an error.
func (e *Extractor) Extract(ctx context.Context, path string, fieldType string) (*Result, error) {
	aFile, err := e.inspector.InspectFile(ctx, path)
	return e.extract(aFile, err, path, fieldType)
}

// ExtractSource is Extract for in-memory source
func (e *Extractor) ExtractSource(ctx context.Context, src []byte, fieldType string) (*Result, error) {
	aFile, err := e.inspector.InspectSource(ctx, src)
	return e.extract(aFile, err, "source.java", fieldType)
}

func (e *Extractor) extract(aFile *info.File, err error, path string, fieldType string) (*Result, error) {
	result := &Result{}
	if err != nil {
		var parseErr *java.ParseError
		if !errors.As(err, &parseErr) {
			return nil, err
		}
		e.report(result, &Warning{
			Kind:    WarningParse,
			Path:    path,
			Message: "not a valid Java file: " + strings.Join(parseErr.Problems, "; "),
		})
		return result, nil
	}
	if fieldType == "" {
		fieldType = DefaultFieldType
	}

	// breadth first over type declarations; each entry carries its enclosing chain
	queue := make([][]*info.Type, 0, len(aFile.Types))
	for _, aType := range aFile.Types {
		queue = append(queue, []*info.Type{aType})
	}
	for len(queue) > 0 {
		chain := queue[0]
		queue = queue[1:]
		owner := chain[len(chain)-1]
		for _, field := range owner.Fields {
			e.fieldIcons(result, aFile, chain, field, fieldType)
		}
		for _, nested := range owner.Types {
			next := make([]*info.Type, len(chain), len(chain)+1)
			copy(next, chain)
			queue = append(queue, append(next, nested))
		}
	}
	return result, nil
}

func (e *Extractor) fieldIcons(result *Result, aFile *info.File, chain []*info.Type, field *info.Field, fieldType string) {
	owner := chain[len(chain)-1]
	reject := func(message string) {
		e.report(result, &Warning{
			Kind:    WarningStructural,
			Path:    aFile.Path,
			Line:    lineOf(field.Location),
			Subject: variableNames(field),
			Message: message,
		})
	}

	if owner.Kind != info.KindClass || field.InInterface {
		reject("interface fields are unsupported, only class fields are")
		return
	}
	qualifiedName, ok := aFile.QualifiedName(chain)
	if !ok {
		reject("local and anonymous classes are unsupported (cannot find fully qualified name)")
		return
	}
	if !field.IsPublic || !field.IsFinal {
		reject("only public and final fields are supported")
		return
	}
	if field.TypeName != fieldType {
		reject(fmt.Sprintf("declared type %s does not match %s", field.TypeName, fieldType))
		return
	}

	for _, variable := range field.Variables {
		if icon := e.variableIcon(result, aFile.Path, variable, qualifiedName); icon != nil {
			result.Icons = append(result.Icons, icon)
		}
	}
}

func (e *Extractor) variableIcon(result *Result, path string, variable *info.Variable, owner string) *Icon {
	initializer := variable.Initializer
	if initializer == nil || initializer.Kind != info.ExpressionStringLiteral {
		found := "no initializer"
		if initializer != nil {
			found = initializer.Kind.String()
		}
		e.report(result, &Warning{
			Kind:    WarningStructural,
			Path:    path,
			Line:    lineOf(variable.Location),
			Subject: variable.Name,
			Message: "initializer must be a string literal expression, found " + found,
		})
		return nil
	}
	content, err := e.decode(initializer.Value)
	if err != nil {
		e.report(result, &Warning{
			Kind:    WarningDecode,
			Path:    path,
			Line:    lineOf(variable.Location),
			Subject: variable.Name,
			Message: "string literal initializer is not a valid base64 representation",
		})
		return nil
	}
	return &Icon{
		Content:   content,
		FieldName: variable.Name,
		Owner:     owner,
		Extension: e.extension,
	}
}

func (e *Extractor) report(result *Result, warning *Warning) {
	result.Warnings = append(result.Warnings, warning)
	e.warn(warning)
}

func variableNames(field *info.Field) string {
	names := make([]string, 0, len(field.Variables))
	for _, variable := range field.Variables {
		names = append(names, variable.Name)
	}
	return strings.Join(names, ", ")
}

func lineOf(location *info.Location) int {
	if location == nil {
		return 0
	}
	return location.Line
}
