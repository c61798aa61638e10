package java

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/viant/afs"
	"github.com/viant/icongen/inspector/info"
)

// Inspector parses Java source into toolkit-agnostic declaration nodes
type Inspector struct {
	config *info.Config
	fs     afs.Service
}

// ParseError reports a source file that does not parse as valid Java
type ParseError struct {
	Path     string
	Problems []string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("not a valid Java file %s: %s", e.Path, strings.Join(e.Problems, "; "))
}

// NewInspector creates a new Java Inspector with the provided configuration
func NewInspector(config *info.Config) *Inspector {
	if config == nil {
		config = info.DefaultConfig()
	}
	return &Inspector{
		config: config,
		fs:     afs.New(),
	}
}

// InspectSource parses Java source code from a byte slice
func (i *Inspector) InspectSource(ctx context.Context, src []byte) (*info.File, error) {
	return i.inspect(ctx, src, "source.java")
}

// InspectFile reads and parses a Java source file
func (i *Inspector) InspectFile(ctx context.Context, filename string) (*info.File, error) {
	src, err := i.fs.DownloadWithURL(ctx, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return i.inspect(ctx, src, filename)
}

func (i *Inspector) inspect(ctx context.Context, src []byte, filename string) (*info.File, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(java.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse file %s: %w", filename, err)
	}
	defer tree.Close()

	rootNode := tree.RootNode()
	if rootNode.HasError() {
		return nil, &ParseError{Path: filename, Problems: collectProblems(rootNode, src)}
	}
	return i.processJavaFile(rootNode, src, filename)
}

// processJavaFile extracts the package and the type declarations of a compilation unit
func (i *Inspector) processJavaFile(rootNode *sitter.Node, src []byte, filename string) (*info.File, error) {
	aFile := &info.File{Path: filename}
	publicTypes := 0
	for j := 0; j < int(rootNode.NamedChildCount()); j++ {
		childNode := rootNode.NamedChild(j)
		switch childNode.Type() {
		case "package_declaration":
			aFile.Package = parsePackageDeclaration(childNode, src)
		case "class_declaration", "interface_declaration":
			if aType := i.parseTypeDeclaration(childNode, src, false); aType != nil {
				aFile.Types = append(aFile.Types, aType)
			}
			if hasModifier(childNode, "public") {
				publicTypes++
			}
		case "enum_declaration", "record_declaration", "annotation_type_declaration":
			if hasModifier(childNode, "public") {
				publicTypes++
			}
		}
	}
	if i.config.SinglePublicTypes && publicTypes > 1 {
		return nil, &ParseError{
			Path:     filename,
			Problems: []string{fmt.Sprintf("%d public top level types declared, at most one is allowed", publicTypes)},
		}
	}
	return aFile, nil
}

// collectProblems lists syntax errors of a tree, descending only into erroneous subtrees
func collectProblems(node *sitter.Node, src []byte) []string {
	var problems []string
	var visit func(n *sitter.Node)
	visit = func(n *sitter.Node) {
		point := n.StartPoint()
		switch {
		case n.Type() == "ERROR":
			problems = append(problems, fmt.Sprintf("%d:%d: unexpected %q", point.Row+1, point.Column+1, abbreviate(n.Content(src))))
			return
		case n.IsMissing():
			problems = append(problems, fmt.Sprintf("%d:%d: missing %q", point.Row+1, point.Column+1, n.Type()))
			return
		}
		for j := 0; j < int(n.ChildCount()); j++ {
			if child := n.Child(j); child != nil && (child.HasError() || child.IsMissing()) {
				visit(child)
			}
		}
	}
	visit(node)
	if len(problems) == 0 {
		problems = append(problems, "syntax error")
	}
	return problems
}

func abbreviate(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	if len(text) > 40 {
		return text[:40] + "..."
	}
	return text
}
