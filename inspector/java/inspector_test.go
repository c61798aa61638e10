package java_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/icongen/inspector"
	"github.com/viant/icongen/inspector/info"
	"github.com/viant/icongen/inspector/java"
)

func TestInspector_InspectSource(t *testing.T) {
	tests := []struct {
		name        string
		source      string
		wantPackage string
		wantTypes   []string
		wantErr     bool
	}{
		{
			name: "simple class",
			source: `package com.example;
public class Person {
    private String name;
    public Person(String name) { this.name = name; }
}`,
			wantPackage: "com.example",
			wantTypes:   []string{"Person"},
		},
		{
			name: "default package with interface and class",
			source: `interface Shape {}
class Circle {}`,
			wantTypes: []string{"Shape", "Circle"},
		},
		{
			name: "enum is not traversed",
			source: `package a.b;
enum Day { MONDAY }`,
			wantPackage: "a.b",
		},
		{
			name:    "missing semicolon",
			source:  "package foo\n\npublic class Invalid {}",
			wantErr: true,
		},
		{
			name: "two public top level types",
			source: `package foo;
public class A {}
public class B {}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := java.NewInspector(nil)
			aFile, err := srv.InspectSource(context.Background(), []byte(tt.source))
			if tt.wantErr {
				var parseErr *java.ParseError
				assert.True(t, errors.As(err, &parseErr), "expected ParseError, got %v", err)
				assert.NotEmpty(t, parseErr.Problems)
				return
			}
			if !assert.NoError(t, err) {
				return
			}
			assert.Equal(t, tt.wantPackage, aFile.Package)
			var names []string
			for _, aType := range aFile.Types {
				names = append(names, aType.Name)
			}
			assert.Equal(t, tt.wantTypes, names)
		})
	}
}

func TestInspector_Fields(t *testing.T) {
	source := `package foo;

public class Example {
    public static final String A = "aGVsbG8=", B = call("x");
    final String C;
    public String[] D = null;

    public interface Named {
        String E = "ZQ==";
    }

    static class Nested {
        public final String F = "Zg==";
    }
}`
	aFile, err := java.NewInspector(nil).InspectSource(context.Background(), []byte(source))
	if !assert.NoError(t, err) {
		return
	}
	example := aFile.Types[0]
	assert.Equal(t, info.KindClass, example.Kind)
	assert.True(t, example.IsPublic)
	if !assert.Len(t, example.Fields, 3) {
		return
	}

	first := example.Fields[0]
	assert.Equal(t, "String", first.TypeName)
	assert.True(t, first.IsPublic)
	assert.True(t, first.IsStatic)
	assert.True(t, first.IsFinal)
	if assert.Len(t, first.Variables, 2) {
		assert.Equal(t, "A", first.Variables[0].Name)
		assert.Equal(t, info.ExpressionStringLiteral, first.Variables[0].Initializer.Kind)
		assert.Equal(t, "aGVsbG8=", first.Variables[0].Initializer.Value)
		assert.Equal(t, "B", first.Variables[1].Name)
		assert.Equal(t, info.ExpressionMethodCall, first.Variables[1].Initializer.Kind)
	}

	second := example.Fields[1]
	assert.False(t, second.IsPublic)
	assert.True(t, second.IsFinal)
	assert.Nil(t, second.Variables[0].Initializer)

	assert.Equal(t, "String[]", example.Fields[2].TypeName)

	if assert.Len(t, example.Types, 2) {
		named := example.Types[0]
		assert.Equal(t, info.KindInterface, named.Kind)
		if assert.Len(t, named.Fields, 1) {
			assert.True(t, named.Fields[0].InInterface)
		}
		nested := example.Types[1]
		assert.Equal(t, "Nested", nested.Name)
		assert.False(t, nested.Local)
		assert.Len(t, nested.Fields, 1)
	}

	name, ok := aFile.QualifiedName([]*info.Type{example, example.Types[1]})
	assert.True(t, ok)
	assert.Equal(t, "foo.Example.Nested", name)
}

func TestInspector_LocalTypes(t *testing.T) {
	source := `package foo;

public class Holder {
    public final Object listener = new Object() {
        public final String A = "YQ==";
    };

    void method() {
        class Local {
            public final String B = "Yg==";
        }
    }
}`
	aFile, err := java.NewInspector(nil).InspectSource(context.Background(), []byte(source))
	if !assert.NoError(t, err) {
		return
	}
	holder := aFile.Types[0]
	if !assert.Len(t, holder.Types, 2) {
		return
	}
	anonymous, local := holder.Types[0], holder.Types[1]
	assert.True(t, anonymous.Local)
	assert.Equal(t, "", anonymous.Name)
	assert.Len(t, anonymous.Fields, 1)
	assert.True(t, local.Local)
	assert.Equal(t, "Local", local.Name)

	_, ok := aFile.QualifiedName([]*info.Type{holder, local})
	assert.False(t, ok)

	withoutLocals := java.NewInspector(&info.Config{})
	aFile, err = withoutLocals.InspectSource(context.Background(), []byte(source))
	if assert.NoError(t, err) {
		assert.Empty(t, aFile.Types[0].Types)
	}
}

func TestInspector_InspectFile(t *testing.T) {
	location := filepath.Join(t.TempDir(), "AIcons.java")
	err := os.WriteFile(location, []byte("package foo;\npublic class AIcons {}\n"), 0o644)
	if !assert.NoError(t, err) {
		return
	}
	aFile, err := java.NewInspector(nil).InspectFile(context.Background(), location)
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, location, aFile.Path)
	assert.Equal(t, "foo", aFile.Package)

	_, err = java.NewInspector(nil).InspectFile(context.Background(), filepath.Join(t.TempDir(), "Missing.java"))
	assert.Error(t, err)
}

func TestInspector_ImplementsInspector(t *testing.T) {
	var anInspector inspector.Inspector = java.NewInspector(nil)
	aFile, err := anInspector.InspectSource(context.Background(), []byte("package foo;\npublic class AIcons {}\n"))
	if assert.NoError(t, err) && assert.Len(t, aFile.Types, 1) {
		assert.Equal(t, "AIcons", aFile.Types[0].Name)
	}
}
