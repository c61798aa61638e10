package java

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/icongen/inspector/info"
)

// parsePackageDeclaration extracts the package name from a Java source file
func parsePackageDeclaration(node *sitter.Node, source []byte) string {
	for j := 0; j < int(node.NamedChildCount()); j++ {
		child := node.NamedChild(j)
		switch child.Type() {
		case "scoped_identifier", "identifier":
			return child.Content(source)
		}
	}
	return ""
}

// parseTypeDeclaration extracts a class or interface declaration with its body
func (i *Inspector) parseTypeDeclaration(node *sitter.Node, source []byte, local bool) *info.Type {
	aType := &info.Type{
		Kind:     info.KindClass,
		IsPublic: hasModifier(node, "public"),
		Local:    local,
		Location: location(node),
	}
	switch node.Type() {
	case "class_declaration":
	case "interface_declaration":
		aType.Kind = info.KindInterface
	default:
		return nil
	}
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	aType.Name = nameNode.Content(source)
	if bodyNode := node.ChildByFieldName("body"); bodyNode != nil {
		i.parseBody(aType, bodyNode, source)
	}
	return aType
}

// parseBody collects fields and nested types of a class or interface body.
// Executable members are only scanned for local and anonymous classes.
func (i *Inspector) parseBody(aType *info.Type, bodyNode *sitter.Node, source []byte) {
	for j := 0; j < int(bodyNode.NamedChildCount()); j++ {
		child := bodyNode.NamedChild(j)
		switch child.Type() {
		case "field_declaration", "constant_declaration":
			field := parseFieldDeclaration(child, source)
			if field == nil {
				continue
			}
			field.InInterface = aType.Kind == info.KindInterface
			aType.Fields = append(aType.Fields, field)
			if i.config.LocalTypes {
				for _, declarator := range declarators(child) {
					if value := declarator.ChildByFieldName("value"); value != nil {
						aType.Types = append(aType.Types, i.localTypes(value, source)...)
					}
				}
			}
		case "class_declaration", "interface_declaration":
			if nested := i.parseTypeDeclaration(child, source, aType.Local); nested != nil {
				aType.Types = append(aType.Types, nested)
			}
		case "method_declaration", "constructor_declaration", "block", "static_initializer":
			if i.config.LocalTypes {
				aType.Types = append(aType.Types, i.localTypes(child, source)...)
			}
		}
	}
}

// localTypes finds local class declarations and anonymous class bodies below node
func (i *Inspector) localTypes(node *sitter.Node, source []byte) []*info.Type {
	var result []*info.Type
	for j := 0; j < int(node.NamedChildCount()); j++ {
		child := node.NamedChild(j)
		switch child.Type() {
		case "class_declaration", "interface_declaration":
			if aType := i.parseTypeDeclaration(child, source, true); aType != nil {
				result = append(result, aType)
			}
		case "enum_declaration", "record_declaration", "annotation_type_declaration":
		case "class_body":
			if node.Type() != "object_creation_expression" {
				result = append(result, i.localTypes(child, source)...)
				continue
			}
			anonymous := &info.Type{Kind: info.KindClass, Local: true, Location: location(child)}
			i.parseBody(anonymous, child, source)
			result = append(result, anonymous)
		default:
			result = append(result, i.localTypes(child, source)...)
		}
	}
	return result
}

// parseFieldDeclaration extracts a field declaration with all of its declarators
func parseFieldDeclaration(node *sitter.Node, source []byte) *info.Field {
	typeNode := node.ChildByFieldName("type")
	if typeNode == nil {
		return nil
	}
	field := &info.Field{
		TypeName: typeNode.Content(source),
		IsPublic: hasModifier(node, "public"),
		IsStatic: hasModifier(node, "static"),
		IsFinal:  hasModifier(node, "final"),
		Location: location(node),
	}
	for _, declarator := range declarators(node) {
		nameNode := declarator.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		variable := &info.Variable{
			Name:     nameNode.Content(source),
			Location: location(declarator),
		}
		if value := declarator.ChildByFieldName("value"); value != nil {
			variable.Initializer = parseExpression(value, source)
		}
		field.Variables = append(field.Variables, variable)
	}
	return field
}

func declarators(node *sitter.Node) []*sitter.Node {
	var result []*sitter.Node
	for j := 0; j < int(node.NamedChildCount()); j++ {
		if child := node.NamedChild(j); child.Type() == "variable_declarator" {
			result = append(result, child)
		}
	}
	return result
}

// parseExpression classifies an initializer expression
func parseExpression(node *sitter.Node, source []byte) *info.Expression {
	text := node.Content(source)
	expr := &info.Expression{Text: text}
	switch node.Type() {
	case "string_literal":
		if strings.HasPrefix(text, `"""`) {
			expr.Kind = info.ExpressionTextBlock
			break
		}
		expr.Kind = info.ExpressionStringLiteral
		body := strings.TrimSuffix(strings.TrimPrefix(text, `"`), `"`)
		value, err := unescape(body)
		if err != nil { // the raw text is kept and later fails base64 decoding
			value = body
		}
		expr.Value = value
	case "text_block":
		expr.Kind = info.ExpressionTextBlock
	case "method_invocation":
		expr.Kind = info.ExpressionMethodCall
	case "binary_expression":
		expr.Kind = info.ExpressionBinary
	case "identifier", "field_access":
		expr.Kind = info.ExpressionReference
	default:
		expr.Kind = info.ExpressionOther
	}
	return expr
}

// hasModifier reports whether the declaration carries the given keyword modifier
func hasModifier(node *sitter.Node, keyword string) bool {
	for j := 0; j < int(node.NamedChildCount()); j++ {
		modifiers := node.NamedChild(j)
		if modifiers.Type() != "modifiers" {
			continue
		}
		for k := 0; k < int(modifiers.ChildCount()); k++ {
			if modifiers.Child(k).Type() == keyword {
				return true
			}
		}
	}
	return false
}

func location(node *sitter.Node) *info.Location {
	return &info.Location{
		Start: int(node.StartByte()),
		End:   int(node.EndByte()),
		Line:  int(node.StartPoint().Row) + 1,
	}
}
