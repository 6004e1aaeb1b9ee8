package parser

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elauffenburger/protoparse/ast"
	"github.com/elauffenburger/protoparse/reporter"
)

// Most structural assertions ignore positions; they are covered by
// their own tests and by the corpus goldens.
var ignorePositions = cmp.Options{
	cmpopts.IgnoreTypes(ast.SourcePos{}),
	cmpopts.EquateEmpty(),
}

func parseFile(t *testing.T, dialect Dialect, source string) *ast.FileNode {
	t.Helper()
	f, err := ParseString("test.proto", source, dialect, reporter.NewHandler(nil))
	require.NoError(t, err)
	require.NotNil(t, f)
	return f
}

func parseErr(t *testing.T, dialect Dialect, source string) error {
	t.Helper()
	f, err := ParseString("test.proto", source, dialect, reporter.NewHandler(nil))
	require.Error(t, err)
	require.Nil(t, f)
	return err
}

const pointSource = `syntax = "proto3";
package foo.bar;
message Point {
  int32 x = 1;
  int32 y = 2;
}
enum Color {
  RED = 0;
  GREEN = 1;
}
`

func TestParsePoint(t *testing.T) {
	t.Parallel()
	f, err := Parse("test.proto", strings.NewReader(pointSource), DialectProto, reporter.NewHandler(nil))
	require.NoError(t, err)

	want := &ast.FileNode{Decls: []ast.FileElement{
		&ast.SyntaxNode{Syntax: "proto3"},
		&ast.PackageNode{Name: "foo.bar"},
		&ast.MessageNode{Name: "Point", Decls: []ast.MessageElement{
			&ast.FieldNode{Type: &ast.PrimitiveTypeNode{Kind: ast.KindInt32}, Name: "x", Tag: 1},
			&ast.FieldNode{Type: &ast.PrimitiveTypeNode{Kind: ast.KindInt32}, Name: "y", Tag: 2},
		}},
		&ast.EnumNode{Name: "Color", Decls: []ast.EnumElement{
			&ast.EnumValueNode{Name: "RED", Tag: 0},
			&ast.EnumValueNode{Name: "GREEN", Tag: 1},
		}},
	}}
	if diff := cmp.Diff(want, f, ignorePositions); diff != "" {
		t.Errorf("unexpected AST (-want, +got):\n%s", diff)
	}

	require.NotNil(t, f.Syntax())
	assert.Equal(t, "proto3", f.Syntax().Syntax)
	require.NotNil(t, f.Package())
	assert.Equal(t, "foo.bar", f.Package().Name)
	require.Len(t, f.Definitions(), 2)
}

func TestParseDeterministic(t *testing.T) {
	t.Parallel()
	first := parseFile(t, DialectProto, pointSource)
	second := parseFile(t, DialectProto, pointSource)
	// positions included: two parses of the same text are identical
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("parses differ (-first, +second):\n%s", diff)
	}
}

func TestWhitespaceAndCommentInsensitivity(t *testing.T) {
	t.Parallel()
	noisy := `// file header
syntax   =   "proto3";
package foo.bar;  // our package

message   Point {
	// coordinates
	int32 x = 1;   // horizontal
	int32 y = 2;
}
enum Color {
	RED = 0;
	GREEN = 1;
}
`
	plain := parseFile(t, DialectProto, pointSource)
	commented := parseFile(t, DialectProto, noisy)
	if diff := cmp.Diff(plain, commented, ignorePositions); diff != "" {
		t.Errorf("comments changed the AST (-plain, +commented):\n%s", diff)
	}
}

func TestNestedMessages(t *testing.T) {
	t.Parallel()
	f := parseFile(t, DialectProto, `syntax = "proto3";
message Outer {
  message Middle {
    message Inner {
      string leaf = 1;
    }
  }
}
`)
	outer := f.Definitions()[0].(*ast.MessageNode)
	assert.Equal(t, "Outer", outer.Name)
	middle := outer.Messages()[0]
	assert.Equal(t, "Middle", middle.Name)
	inner := middle.Messages()[0]
	assert.Equal(t, "Inner", inner.Name)
	require.Len(t, inner.Fields(), 1)
	leaf := inner.Fields()[0]
	assert.Equal(t, "leaf", leaf.Name)
	assert.Equal(t, uint64(1), leaf.Tag)
	assert.Equal(t, &ast.PrimitiveTypeNode{Kind: ast.KindString}, setZeroPos(leaf.Type))
}

// setZeroPos clears the position of a freshly-parsed type node so it
// can be compared with require/assert directly.
func setZeroPos(ty ast.TypeNode) ast.TypeNode {
	switch n := ty.(type) {
	case *ast.PrimitiveTypeNode:
		n.Pos = ast.SourcePos{}
	case *ast.NamedTypeNode:
		n.Pos = ast.SourcePos{}
	case *ast.MapTypeNode:
		n.Pos = ast.SourcePos{}
		setZeroPos(n.Key)
		setZeroPos(n.Value)
	}
	return ty
}

func TestTagNumericDomain(t *testing.T) {
	t.Parallel()
	t.Run("leading zeros canonicalize", func(t *testing.T) {
		f := parseFile(t, DialectProto, `syntax = "proto3";
message M {
  int32 a = 007;
}
`)
		m := f.Definitions()[0].(*ast.MessageNode)
		assert.Equal(t, uint64(7), m.Fields()[0].Tag)
	})
	t.Run("negative tag fails", func(t *testing.T) {
		parseErr(t, DialectProto, `syntax = "proto3";
message M {
  int32 a = -1;
}
`)
	})
	t.Run("fractional tag fails", func(t *testing.T) {
		parseErr(t, DialectProto, `syntax = "proto3";
message M {
  int32 a = 1.5;
}
`)
	})
}

func TestMapTypes(t *testing.T) {
	t.Parallel()
	f := parseFile(t, DialectProto, `syntax = "proto3";
message Registry {
  map<string, map<int32, MyMessage>> lookup = 1;
}
`)
	m := f.Definitions()[0].(*ast.MessageNode)
	want := &ast.MapTypeNode{
		Key: &ast.PrimitiveTypeNode{Kind: ast.KindString},
		Value: &ast.MapTypeNode{
			Key:   &ast.PrimitiveTypeNode{Kind: ast.KindInt32},
			Value: &ast.NamedTypeNode{Path: "MyMessage"},
		},
	}
	if diff := cmp.Diff(ast.TypeNode(want), m.Fields()[0].Type, ignorePositions); diff != "" {
		t.Errorf("unexpected map type (-want, +got):\n%s", diff)
	}
}

func TestDialectDivergence(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name     string
		source   string
		legacyOK bool
		protoOK  bool
	}{
		{
			name:     "unrestricted syntax value",
			source:   "syntax = \"proto4\";\n",
			legacyOK: true,
			protoOK:  false,
		},
		{
			name: "nested enum in message",
			source: `syntax = "proto3";
message M {
  enum E {
    A = 0;
  }
}
`,
			legacyOK: true,
			protoOK:  false,
		},
		{
			name: "field options",
			source: `syntax = "rsproto";
message M {
  int32 a = 1 [deprecated = true];
}
`,
			legacyOK: true,
			protoOK:  false,
		},
		{
			name: "enum value options",
			source: `syntax = "rsproto";
enum E {
  A = 0 [legacy_name = "a"];
}
`,
			legacyOK: true,
			protoOK:  false,
		},
		{
			name:     "repeated public import modifier",
			source:   "syntax = \"proto3\";\nimport public public \"dep.proto\";\n",
			legacyOK: false,
			protoOK:  true,
		},
		{
			name:     "single public import modifier",
			source:   "syntax = \"proto3\";\nimport public \"dep.proto\";\n",
			legacyOK: true,
			protoOK:  true,
		},
		{
			name:     "empty document",
			source:   "",
			legacyOK: false,
			protoOK:  true,
		},
		{
			name:     "comment at end of file without newline",
			source:   "syntax = \"proto3\";\n// no trailing newline",
			legacyOK: false,
			protoOK:  true,
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, legacyErr := ParseString("test.proto", tc.source, DialectLegacy, reporter.NewHandler(nil))
			_, protoErr := ParseString("test.proto", tc.source, DialectProto, reporter.NewHandler(nil))
			if tc.legacyOK {
				assert.NoError(t, legacyErr, "legacy dialect")
			} else {
				assert.Error(t, legacyErr, "legacy dialect")
			}
			if tc.protoOK {
				assert.NoError(t, protoErr, "proto dialect")
			} else {
				assert.Error(t, protoErr, "proto dialect")
			}
		})
	}
}

func TestSyntaxErrorDetails(t *testing.T) {
	t.Parallel()
	err := parseErr(t, DialectProto, "syntax = \"proto4\";\n")

	var ewp reporter.ErrorWithPos
	require.ErrorAs(t, err, &ewp)
	assert.Equal(t, "test.proto", ewp.GetPosition().Filename)
	assert.Equal(t, 1, ewp.GetPosition().Line)
	assert.Equal(t, 10, ewp.GetPosition().Col)

	var synErr *SyntaxError
	require.ErrorAs(t, err, &synErr)
	assert.Equal(t, `"proto4"`, synErr.Got)
	assert.Equal(t, []string{`"proto2"`, `"proto3"`}, synErr.Expecting)

	assert.EqualError(t, err, `test.proto:1:10: syntax error: unexpected "proto4", expecting "proto2" or "proto3"`)
}

func TestFurthestFailureWins(t *testing.T) {
	t.Parallel()
	// The matcher backtracks all the way to the top on failure; the
	// reported position must be the deepest point reached, not where
	// the last alternative gave up.
	err := parseErr(t, DialectProto, `syntax = "proto3";
message M {
  int32 a = ;
}
`)
	var ewp reporter.ErrorWithPos
	require.ErrorAs(t, err, &ewp)
	assert.Equal(t, 3, ewp.GetPosition().Line)
	assert.Equal(t, 13, ewp.GetPosition().Col)
	var synErr *SyntaxError
	require.ErrorAs(t, err, &synErr)
	assert.Equal(t, `";"`, synErr.Got)
	assert.Contains(t, synErr.Expecting, "integer")
}

func TestKeywordPrefixBacktracking(t *testing.T) {
	t.Parallel()
	// "enumvalue" starts with the enum keyword and "option" is a legal
	// value name; ordered choice with backtracking must recover both.
	f := parseFile(t, DialectLegacy, `syntax = "rsproto";
message M {
  enumvalue x = 1;
}
enum E {
  option = 1;
}
`)
	m := f.Definitions()[0].(*ast.MessageNode)
	require.Len(t, m.Fields(), 1)
	assert.Equal(t, &ast.NamedTypeNode{Path: "enumvalue"}, setZeroPos(m.Fields()[0].Type))

	e := f.Definitions()[1].(*ast.EnumNode)
	require.Len(t, e.Values(), 1)
	assert.Equal(t, "option", e.Values()[0].Name)
	assert.Equal(t, uint64(1), e.Values()[0].Tag)
}

func TestNoSemanticValidation(t *testing.T) {
	t.Parallel()
	// duplicate tags, duplicate names, and dangling type references
	// are all structurally valid
	f := parseFile(t, DialectProto, `syntax = "proto3";
message M {
  int32 a = 1;
  int32 a = 1;
  NoSuchType b = 1;
}
`)
	m := f.Definitions()[0].(*ast.MessageNode)
	assert.Len(t, m.Fields(), 3)
}

func TestOptions(t *testing.T) {
	t.Parallel()
	f := parseFile(t, DialectProto, `syntax = "proto3";
option java_package = "com.example.demo";
option (custom).a.b = 42;
option cc_enable_arenas = true;
`)
	opts := f.Options()
	require.Len(t, opts, 3)

	assert.Equal(t, "java_package", opts[0].Name.Name)
	assert.False(t, opts[0].Name.Extension)
	assert.Equal(t, &ast.StringLiteralNode{Val: "com.example.demo"}, setZeroValuePos(opts[0].Value))

	assert.Equal(t, "custom", opts[1].Name.Name)
	assert.True(t, opts[1].Name.Extension)
	assert.Equal(t, []string{"a", "b"}, opts[1].Name.Suffix)
	assert.Equal(t, &ast.UintLiteralNode{Val: 42}, setZeroValuePos(opts[1].Value))

	assert.Equal(t, &ast.BoolLiteralNode{Val: true}, setZeroValuePos(opts[2].Value))
}

func setZeroValuePos(val ast.ValueNode) ast.ValueNode {
	switch n := val.(type) {
	case *ast.UintLiteralNode:
		n.Pos = ast.SourcePos{}
	case *ast.StringLiteralNode:
		n.Pos = ast.SourcePos{}
	case *ast.BoolLiteralNode:
		n.Pos = ast.SourcePos{}
	}
	return val
}

func TestFieldOptions(t *testing.T) {
	t.Parallel()
	f := parseFile(t, DialectLegacy, `syntax = "rsproto";
message Job {
  Status status = 1 [default = "UNKNOWN"] [weight = 10];
}
`)
	m := f.Definitions()[0].(*ast.MessageNode)
	opts := m.Fields()[0].Options
	require.Len(t, opts, 2)
	assert.Equal(t, "default", opts[0].Name.Name)
	assert.Equal(t, &ast.StringLiteralNode{Val: "UNKNOWN"}, setZeroValuePos(opts[0].Value))
	assert.Equal(t, "weight", opts[1].Name.Name)
	assert.Equal(t, &ast.UintLiteralNode{Val: 10}, setZeroValuePos(opts[1].Value))
}

func TestImports(t *testing.T) {
	t.Parallel()
	var warnings []reporter.ErrorWithPos
	handler := reporter.NewHandler(reporter.NewReporter(nil, func(w reporter.ErrorWithPos) {
		warnings = append(warnings, w)
	}))
	f, err := ParseString("test.proto", `syntax = "proto3";
import "a.proto";
import public "b.proto";
import public public "c.proto";
`, DialectProto, handler)
	require.NoError(t, err)

	imports := f.Imports()
	require.Len(t, imports, 3)
	assert.Equal(t, "a.proto", imports[0].Path)
	assert.False(t, imports[0].Public)
	assert.Equal(t, "b.proto", imports[1].Path)
	assert.True(t, imports[1].Public)
	assert.Equal(t, "c.proto", imports[2].Path)
	assert.True(t, imports[2].Public)

	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Error(), "repeated")
	assert.Equal(t, 4, warnings[0].GetPosition().Line)
}

func TestSyntaxWarnings(t *testing.T) {
	t.Parallel()
	collect := func(source string, dialect Dialect) []reporter.ErrorWithPos {
		var warnings []reporter.ErrorWithPos
		handler := reporter.NewHandler(reporter.NewReporter(nil, func(w reporter.ErrorWithPos) {
			warnings = append(warnings, w)
		}))
		_, err := ParseString("test.proto", source, dialect, handler)
		require.NoError(t, err)
		return warnings
	}

	t.Run("missing syntax", func(t *testing.T) {
		warnings := collect("package foo;\n", DialectProto)
		require.Len(t, warnings, 1)
		require.ErrorIs(t, warnings[0], ErrNoSyntax)
	})
	t.Run("misplaced syntax", func(t *testing.T) {
		warnings := collect("package foo;\nsyntax = \"proto3\";\n", DialectProto)
		require.Len(t, warnings, 1)
		assert.Contains(t, warnings[0].Error(), "first statement")
		assert.Equal(t, 2, warnings[0].GetPosition().Line)
	})
	t.Run("leading syntax is clean", func(t *testing.T) {
		warnings := collect("syntax = \"proto3\";\npackage foo;\n", DialectProto)
		assert.Empty(t, warnings)
	})
}

func TestSwallowedErrorsBecomeErrInvalidSource(t *testing.T) {
	t.Parallel()
	handler := reporter.NewHandler(reporter.NewReporter(func(reporter.ErrorWithPos) error {
		return nil // swallow
	}, nil))
	f, err := ParseString("test.proto", "not a schema", DialectProto, handler)
	assert.Nil(t, f)
	assert.ErrorIs(t, err, reporter.ErrInvalidSource)
}

func TestJunkInputDoesNotPanic(t *testing.T) {
	t.Parallel()
	inputs := []string{
		"}",
		"{{{{",
		"message",
		"message M",
		"message M {",
		"enum E { A = }",
		`"`,
		"syntax",
		"syntax = ",
		"import ;",
		"option = 1;",
		"\x00\x01\x02",
		"message M { map<int32 a = 1; }",
	}
	for _, dialect := range []Dialect{DialectLegacy, DialectProto} {
		for _, input := range inputs {
			f, err := ParseString("test.proto", input, dialect, reporter.NewHandler(nil))
			assert.Error(t, err, "dialect %v, input %q", dialect, input)
			assert.Nil(t, f, "dialect %v, input %q", dialect, input)
		}
	}
}
