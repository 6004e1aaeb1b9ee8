package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/elauffenburger/protoparse/ast"
	"github.com/elauffenburger/protoparse/reporter"
)

// Parse reads a complete schema document from r and parses it under
// the given dialect, returning the file's AST. The entire input is
// buffered; there is no streaming interface. filename is used only
// for positions in errors and warnings.
//
// On failure the error is reported through handler and carries the
// furthest position the matcher reached along with the grammar
// alternatives expected there. A parse is all-or-nothing: no partial
// AST is ever returned. Each call is independent and reentrant, so
// distinct documents may be parsed concurrently.
func Parse(filename string, r io.Reader, dialect Dialect, handler *reporter.Handler) (*ast.FileNode, error) {
	if handler == nil {
		handler = reporter.NewHandler(nil)
	}
	contents, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	s := newScanner(dialect, contents)
	p := &parser{
		scanner: s,
		dialect: dialect,
		info:    ast.NewFileInfo(filename, s.data),
		handler: handler,
	}
	f, err := p.file()
	if err != nil {
		_ = handler.HandleError(err)
		return nil, handler.Error()
	}
	p.reportWarnings(f)
	return f, nil
}

// ParseString is a convenience for parsing an in-memory document.
func ParseString(filename, source string, dialect Dialect, handler *reporter.Handler) (*ast.FileNode, error) {
	return Parse(filename, strings.NewReader(source), dialect, handler)
}

// parser matches the grammar over the scanner's input. Alternatives
// are tried in grammar order; a failed production restores the
// position it started at, and fail records what was expected at the
// furthest position any alternative reached.
type parser struct {
	*scanner
	dialect Dialect
	info    *ast.FileInfo
	handler *reporter.Handler

	failPos  int
	expected []string
	pending  []pendingWarning
}

type pendingWarning struct {
	offset int
	err    error
}

func (p *parser) sourcePos(offset int) ast.SourcePos {
	return p.info.SourcePos(offset)
}

// fail records want as an expected alternative at the current
// position and always returns false.
func (p *parser) fail(want string) bool {
	if p.err != nil {
		return false
	}
	p.failAt(p.pos, want)
	return false
}

func (p *parser) failAt(pos int, want string) {
	if pos > p.failPos {
		p.failPos = pos
		p.expected = p.expected[:0]
	}
	if pos == p.failPos && !slices.Contains(p.expected, want) {
		p.expected = append(p.expected, want)
	}
}

// warn queues a warning to be reported if the parse succeeds.
func (p *parser) warn(offset int, err error) {
	p.pending = append(p.pending, pendingWarning{offset: offset, err: err})
}

// lit matches the exact text as a token: leading whitespace and
// comments are skipped first.
func (p *parser) lit(text string) bool {
	p.skip()
	if p.literal(text) {
		return true
	}
	return p.fail(`"` + text + `"`)
}

func (p *parser) identifier(want string) (string, bool) {
	p.skip()
	if id, ok := p.ident(); ok {
		return id, true
	}
	p.fail(want)
	return "", false
}

// qualifiedName matches a dotted path of identifiers. A trailing dot
// with no identifier after it is not consumed.
func (p *parser) qualifiedName(want string) (string, bool) {
	first, ok := p.identifier(want)
	if !ok {
		return "", false
	}
	parts := []string{first}
	for {
		mark := p.pos
		p.skip()
		if !p.literal(".") {
			p.pos = mark
			break
		}
		id, ok := p.identifier("identifier")
		if !ok {
			p.pos = mark
			break
		}
		parts = append(parts, id)
	}
	return strings.Join(parts, "."), true
}

func (p *parser) integer() (uint64, bool) {
	p.skip()
	start := p.pos
	digits, ok := p.number()
	if !ok {
		p.fail("integer")
		return 0, false
	}
	v, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		p.failAt(start, "integer")
		return 0, false
	}
	return v, true
}

func (p *parser) stringLiteral() (string, bool) {
	p.skip()
	if s, ok := p.stringLit(); ok {
		return s, true
	}
	p.fail("string literal")
	return "", false
}

// optionalNewline consumes a single newline if one follows, matching
// the grammar's NEWLINE? suffix after each statement.
func (p *parser) optionalNewline() {
	mark := p.pos
	p.skip()
	if !p.newline() {
		p.pos = mark
	}
}

// file matches the whole document: a repetition of statements and
// bare newlines that must consume the entire input. The legacy
// grammar requires at least one element; the proto grammar accepts an
// empty document.
func (p *parser) file() (*ast.FileNode, error) {
	f := &ast.FileNode{Pos: p.sourcePos(0)}
	n := 0
	for p.element(f) {
		n++
	}
	p.skip()
	if p.err != nil {
		return nil, reporter.Error(p.sourcePos(p.errPos), p.err)
	}
	if !p.eof() {
		p.failAt(p.pos, "end of input")
		return nil, p.syntaxError()
	}
	if n == 0 && !p.dialect.allowsEmptyFile() {
		return nil, p.syntaxError()
	}
	return f, nil
}

func (p *parser) element(f *ast.FileNode) bool {
	if decl, ok := p.topLevelStatement(); ok {
		p.optionalNewline()
		f.Decls = append(f.Decls, decl)
		return true
	}
	if p.err != nil {
		return false
	}
	mark := p.pos
	p.skip()
	if p.newline() {
		return true
	}
	p.fail("newline")
	p.pos = mark
	return false
}

func (p *parser) topLevelStatement() (ast.FileElement, bool) {
	if n, ok := p.syntaxDecl(); ok {
		return n, true
	}
	if n, ok := p.packageDecl(); ok {
		return n, true
	}
	if n, ok := p.importDecl(); ok {
		return n, true
	}
	if n, ok := p.optionDecl(); ok {
		return n, true
	}
	if n, ok := p.enumDecl(); ok {
		return n, true
	}
	if n, ok := p.messageDecl(); ok {
		return n, true
	}
	return nil, false
}

func (p *parser) syntaxDecl() (*ast.SyntaxNode, bool) {
	mark := p.pos
	p.skip()
	start := p.pos
	if !p.lit("syntax") || !p.lit("=") {
		p.pos = mark
		return nil, false
	}
	val, ok := p.syntaxValue()
	if !ok || !p.lit(";") {
		p.pos = mark
		return nil, false
	}
	return &ast.SyntaxNode{Pos: p.sourcePos(start), Syntax: val}, true
}

// syntaxValue matches the quoted value of a syntax statement. The
// proto grammar encodes the proto2/proto3 restriction as literal
// alternatives, so a bad value is a plain syntax error; the legacy
// grammar accepts any identifier between the quotes.
func (p *parser) syntaxValue() (string, bool) {
	p.skip()
	if p.dialect.restrictsSyntax() {
		if p.literal(`"proto2"`) {
			return "proto2", true
		}
		if p.literal(`"proto3"`) {
			return "proto3", true
		}
		p.fail(`"proto2"`)
		p.fail(`"proto3"`)
		return "", false
	}
	mark := p.pos
	if p.literal(`"`) {
		if id, ok := p.ident(); ok {
			if p.literal(`"`) {
				return id, true
			}
			p.fail(`'"'`)
		} else {
			p.fail("identifier")
		}
		p.pos = mark
		return "", false
	}
	p.fail("syntax value")
	return "", false
}

func (p *parser) packageDecl() (*ast.PackageNode, bool) {
	mark := p.pos
	p.skip()
	start := p.pos
	if !p.lit("package") {
		p.pos = mark
		return nil, false
	}
	name, ok := p.qualifiedName("identifier")
	if !ok || !p.lit(";") {
		p.pos = mark
		return nil, false
	}
	return &ast.PackageNode{Pos: p.sourcePos(start), Name: name}, true
}

func (p *parser) importDecl() (*ast.ImportNode, bool) {
	mark := p.pos
	p.skip()
	start := p.pos
	if !p.lit("import") {
		p.pos = mark
		return nil, false
	}
	public := false
	if p.dialect.repeatsImportModifier() {
		// The proto grammar repeats the modifier zero or more times;
		// that looseness is preserved as written, not tightened.
		count := 0
		for {
			m := p.pos
			p.skip()
			if !p.literal("public") {
				p.fail(`"public"`)
				p.pos = m
				break
			}
			count++
		}
		public = count > 0
		if count > 1 {
			p.warn(start, errors.New(`"public" modifier repeated on import`))
		}
	} else {
		m := p.pos
		p.skip()
		if p.literal("public") {
			public = true
		} else {
			p.fail(`"public"`)
			p.pos = m
		}
	}
	path, ok := p.stringLiteral()
	if !ok || !p.lit(";") {
		p.pos = mark
		return nil, false
	}
	return &ast.ImportNode{Pos: p.sourcePos(start), Public: public, Path: path}, true
}

func (p *parser) optionDecl() (*ast.OptionNode, bool) {
	mark := p.pos
	p.skip()
	start := p.pos
	if !p.lit("option") {
		p.pos = mark
		return nil, false
	}
	opt, ok := p.optionBody()
	if !ok || !p.lit(";") {
		p.pos = mark
		return nil, false
	}
	opt.Pos = p.sourcePos(start)
	return opt, true
}

// optionBody matches `name = constant`, shared by option statements
// and bracketed field options. The caller restores position on
// failure.
func (p *parser) optionBody() (*ast.OptionNode, bool) {
	p.skip()
	start := p.pos
	name, ok := p.optionName()
	if !ok {
		return nil, false
	}
	if !p.lit("=") {
		return nil, false
	}
	val, ok := p.constant()
	if !ok {
		return nil, false
	}
	return &ast.OptionNode{Pos: p.sourcePos(start), Name: name, Value: val}, true
}

func (p *parser) optionName() (ast.OptionNameNode, bool) {
	p.skip()
	start := p.pos
	name := ast.OptionNameNode{Pos: p.sourcePos(start)}
	if p.literal("(") {
		id, ok := p.identifier("identifier")
		if !ok || !p.lit(")") {
			return ast.OptionNameNode{}, false
		}
		name.Name = id
		name.Extension = true
	} else if id, ok := p.ident(); ok {
		name.Name = id
	} else {
		p.fail("option name")
		return ast.OptionNameNode{}, false
	}
	for {
		mark := p.pos
		p.skip()
		if !p.literal(".") {
			p.pos = mark
			break
		}
		id, ok := p.identifier("identifier")
		if !ok {
			p.pos = mark
			break
		}
		name.Suffix = append(name.Suffix, id)
	}
	return name, true
}

func (p *parser) constant() (ast.ValueNode, bool) {
	p.skip()
	start := p.pos
	if p.literal("true") {
		return &ast.BoolLiteralNode{Pos: p.sourcePos(start), Val: true}, true
	}
	if p.literal("false") {
		return &ast.BoolLiteralNode{Pos: p.sourcePos(start), Val: false}, true
	}
	if digits, ok := p.number(); ok {
		v, err := strconv.ParseUint(digits, 10, 64)
		if err != nil {
			p.failAt(start, "integer")
			return nil, false
		}
		return &ast.UintLiteralNode{Pos: p.sourcePos(start), Val: v}, true
	}
	if s, ok := p.stringLit(); ok {
		return &ast.StringLiteralNode{Pos: p.sourcePos(start), Val: s}, true
	}
	if p.err != nil {
		return nil, false
	}
	p.fail(`"true"`)
	p.fail(`"false"`)
	p.fail("integer")
	p.fail("string literal")
	return nil, false
}

// fieldOptions matches zero or more bracket groups, each wrapping
// exactly one option body. A malformed group is not consumed; the
// enclosing production's following token will fail there instead.
func (p *parser) fieldOptions() []*ast.OptionNode {
	var opts []*ast.OptionNode
	for {
		mark := p.pos
		p.skip()
		if !p.literal("[") {
			p.fail(`"["`)
			p.pos = mark
			return opts
		}
		opt, ok := p.optionBody()
		if !ok || !p.lit("]") {
			p.pos = mark
			return opts
		}
		opts = append(opts, opt)
	}
}

func (p *parser) enumDecl() (*ast.EnumNode, bool) {
	mark := p.pos
	p.skip()
	start := p.pos
	if !p.lit("enum") {
		p.pos = mark
		return nil, false
	}
	name, ok := p.identifier("identifier")
	if !ok || !p.lit("{") {
		p.pos = mark
		return nil, false
	}
	e := &ast.EnumNode{Pos: p.sourcePos(start), Name: name}
	for p.enumElement(e) {
	}
	if !p.lit("}") {
		p.pos = mark
		return nil, false
	}
	return e, true
}

func (p *parser) enumElement(e *ast.EnumNode) bool {
	if opt, ok := p.optionDecl(); ok {
		e.Decls = append(e.Decls, opt)
		p.optionalNewline()
		return true
	}
	if val, ok := p.enumValueDecl(); ok {
		e.Decls = append(e.Decls, val)
		p.optionalNewline()
		return true
	}
	if p.err != nil {
		return false
	}
	mark := p.pos
	p.skip()
	if p.newline() {
		return true
	}
	p.fail("newline")
	p.pos = mark
	return false
}

func (p *parser) enumValueDecl() (*ast.EnumValueNode, bool) {
	mark := p.pos
	p.skip()
	start := p.pos
	name, ok := p.identifier("identifier")
	if !ok || !p.lit("=") {
		p.pos = mark
		return nil, false
	}
	tag, ok := p.integer()
	if !ok {
		p.pos = mark
		return nil, false
	}
	var opts []*ast.OptionNode
	if p.dialect.allowsFieldOptions() {
		opts = p.fieldOptions()
	}
	if !p.lit(";") {
		p.pos = mark
		return nil, false
	}
	return &ast.EnumValueNode{Pos: p.sourcePos(start), Name: name, Tag: tag, Options: opts}, true
}

func (p *parser) messageDecl() (*ast.MessageNode, bool) {
	mark := p.pos
	p.skip()
	start := p.pos
	if !p.lit("message") {
		p.pos = mark
		return nil, false
	}
	name, ok := p.identifier("identifier")
	if !ok || !p.lit("{") {
		p.pos = mark
		return nil, false
	}
	m := &ast.MessageNode{Pos: p.sourcePos(start), Name: name}
	for p.messageElement(m) {
	}
	if !p.lit("}") {
		p.pos = mark
		return nil, false
	}
	return m, true
}

func (p *parser) messageElement(m *ast.MessageNode) bool {
	if opt, ok := p.optionDecl(); ok {
		m.Decls = append(m.Decls, opt)
		p.optionalNewline()
		return true
	}
	if msg, ok := p.messageDecl(); ok {
		m.Decls = append(m.Decls, msg)
		p.optionalNewline()
		return true
	}
	if p.dialect.allowsNestedEnum() {
		if e, ok := p.enumDecl(); ok {
			m.Decls = append(m.Decls, e)
			p.optionalNewline()
			return true
		}
	}
	if fld, ok := p.fieldDecl(); ok {
		m.Decls = append(m.Decls, fld)
		p.optionalNewline()
		return true
	}
	if p.err != nil {
		return false
	}
	mark := p.pos
	p.skip()
	if p.newline() {
		return true
	}
	p.fail("newline")
	p.pos = mark
	return false
}

func (p *parser) fieldDecl() (*ast.FieldNode, bool) {
	mark := p.pos
	p.skip()
	start := p.pos
	mod := ast.ModifierNone
	if p.literal("repeated") {
		mod = ast.ModifierRepeated
	} else if p.literal("optional") {
		mod = ast.ModifierOptional
	} else {
		p.fail(`"repeated"`)
		p.fail(`"optional"`)
	}
	ty, ok := p.typeRef()
	if !ok {
		p.pos = mark
		return nil, false
	}
	name, ok := p.identifier("identifier")
	if !ok || !p.lit("=") {
		p.pos = mark
		return nil, false
	}
	tag, ok := p.integer()
	if !ok {
		p.pos = mark
		return nil, false
	}
	var opts []*ast.OptionNode
	if p.dialect.allowsFieldOptions() {
		opts = p.fieldOptions()
	}
	if !p.lit(";") {
		p.pos = mark
		return nil, false
	}
	return &ast.FieldNode{
		Pos:      p.sourcePos(start),
		Modifier: mod,
		Type:     ty,
		Name:     name,
		Tag:      tag,
		Options:  opts,
	}, true
}

var primitiveKinds = []ast.PrimitiveKind{
	ast.KindInt32,
	ast.KindInt64,
	ast.KindString,
	ast.KindBool,
}

// typeRef matches a type reference with ordered choice: a map
// construct, then a primitive keyword, then a dotted path naming a
// message or enum defined elsewhere.
func (p *parser) typeRef() (ast.TypeNode, bool) {
	if mt, ok := p.mapType(); ok {
		return mt, true
	}
	if p.err != nil {
		return nil, false
	}
	p.skip()
	start := p.pos
	for _, kind := range primitiveKinds {
		if p.literal(kind.String()) {
			return &ast.PrimitiveTypeNode{Pos: p.sourcePos(start), Kind: kind}, true
		}
		p.fail(`"` + kind.String() + `"`)
	}
	if path, ok := p.qualifiedName("identifier"); ok {
		return &ast.NamedTypeNode{Pos: p.sourcePos(start), Path: path}, true
	}
	return nil, false
}

func (p *parser) mapType() (*ast.MapTypeNode, bool) {
	mark := p.pos
	p.skip()
	start := p.pos
	if !p.literal("map") {
		p.fail(`"map"`)
		p.pos = mark
		return nil, false
	}
	if !p.lit("<") {
		p.pos = mark
		return nil, false
	}
	key, ok := p.typeRef()
	if !ok || !p.lit(",") {
		p.pos = mark
		return nil, false
	}
	val, ok := p.typeRef()
	if !ok || !p.lit(">") {
		p.pos = mark
		return nil, false
	}
	return &ast.MapTypeNode{Pos: p.sourcePos(start), Key: key, Value: val}, true
}

func (p *parser) syntaxError() error {
	pos := p.sourcePos(p.failPos)
	got, lexErr := p.describe(p.failPos)
	if lexErr != nil {
		return reporter.Error(pos, lexErr)
	}
	return reporter.Error(pos, &SyntaxError{Got: got, Expecting: slices.Clone(p.expected)})
}

// describe renders the input at the given offset for an error
// message. A byte that cannot begin any token is a lexical error.
func (p *parser) describe(offset int) (string, *LexicalError) {
	if offset >= len(p.data) {
		return "end of input", nil
	}
	c := p.data[offset]
	switch {
	case isIdentChar(c):
		end := offset
		for end < len(p.data) && isIdentChar(p.data[end]) {
			end++
		}
		return `"` + string(p.data[offset:end]) + `"`, nil
	case c == '"':
		// show the whole literal when the closing quote is nearby
		if i := bytes.IndexByte(p.data[offset+1:], '"'); i >= 0 && i+2 <= 32 {
			return string(p.data[offset : offset+i+2]), nil
		}
		return `'"'`, nil
	case c == '\n' || c == '\r':
		return "newline", nil
	case c >= 0x20 && c < 0x7f:
		return `"` + string(c) + `"`, nil
	default:
		return "", &LexicalError{Reason: fmt.Sprintf("invalid character %#x", c)}
	}
}

func (p *parser) reportWarnings(f *ast.FileNode) {
	for _, w := range p.pending {
		p.handler.HandleWarning(p.sourcePos(w.offset), w.err)
	}
	for i, decl := range f.Decls {
		if s, ok := decl.(*ast.SyntaxNode); ok {
			if i > 0 {
				p.handler.HandleWarning(s.Pos, errMisplacedSyntax)
			}
			return
		}
	}
	p.handler.HandleWarning(p.sourcePos(0), ErrNoSyntax)
}
