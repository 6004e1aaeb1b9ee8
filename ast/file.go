package ast

// FileNode is the root of the AST for a single schema document.
//
// Decls preserves every top-level statement in declaration order. The
// grammar does not constrain the order or repetition of statement
// kinds (a syntax statement conventionally appears once and first, but
// that is convention, not a rule), so consumers that care about order
// should walk Decls directly. The accessor methods below provide the
// flattened views most consumers want.
type FileNode struct {
	Pos   SourcePos
	Decls []FileElement
}

func (f *FileNode) Start() SourcePos { return f.Pos }

// Syntax returns the file's first syntax declaration, or nil if the
// file has none.
func (f *FileNode) Syntax() *SyntaxNode {
	for _, decl := range f.Decls {
		if s, ok := decl.(*SyntaxNode); ok {
			return s
		}
	}
	return nil
}

// Package returns the file's first package declaration, or nil.
func (f *FileNode) Package() *PackageNode {
	for _, decl := range f.Decls {
		if p, ok := decl.(*PackageNode); ok {
			return p
		}
	}
	return nil
}

// Imports returns the file's imports in declaration order. Duplicates
// are preserved; de-duplication is a consumer concern.
func (f *FileNode) Imports() []*ImportNode {
	var imps []*ImportNode
	for _, decl := range f.Decls {
		if imp, ok := decl.(*ImportNode); ok {
			imps = append(imps, imp)
		}
	}
	return imps
}

// Options returns the file's top-level options in declaration order.
func (f *FileNode) Options() []*OptionNode {
	var opts []*OptionNode
	for _, decl := range f.Decls {
		if opt, ok := decl.(*OptionNode); ok {
			opts = append(opts, opt)
		}
	}
	return opts
}

// Definitions returns the file's message and enum definitions in
// declaration order.
func (f *FileNode) Definitions() []DefinitionNode {
	var defs []DefinitionNode
	for _, decl := range f.Decls {
		if def, ok := decl.(DefinitionNode); ok {
			defs = append(defs, def)
		}
	}
	return defs
}

// SyntaxNode represents a syntax declaration:
//
//	syntax = "proto3";
//
// In the proto dialect the grammar restricts Syntax to "proto2" or
// "proto3"; the legacy dialect accepts any identifier.
type SyntaxNode struct {
	Pos    SourcePos
	Syntax string
}

func (n *SyntaxNode) Start() SourcePos { return n.Pos }
func (n *SyntaxNode) fileElement()     {}

// PackageNode represents a package declaration:
//
//	package foo.bar;
type PackageNode struct {
	Pos SourcePos
	// Name is the dotted package path.
	Name string
}

func (n *PackageNode) Start() SourcePos { return n.Pos }
func (n *PackageNode) fileElement()     {}

// ImportNode represents an import statement:
//
//	import public "other.proto";
type ImportNode struct {
	Pos    SourcePos
	Public bool
	// Path is the raw contents of the quoted import path.
	Path string
}

func (n *ImportNode) Start() SourcePos { return n.Pos }
func (n *ImportNode) fileElement()     {}
