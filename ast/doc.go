// Package ast defines the abstract syntax tree for a parsed schema
// document. The tree is a pure value: every node is constructed once,
// during parsing, and never mutated afterward. There are no
// back-references or shared nodes, so the tree rooted at a FileNode
// can be handed freely between goroutines.
//
// Type references in the tree are unresolved: a NamedTypeNode retains
// the dotted path exactly as written, and resolving it to a message or
// enum definition (possibly in another file) is the responsibility of
// downstream consumers.
package ast
