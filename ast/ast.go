package ast

// Node is a single element of the syntax tree. Every node records the
// position at which it begins in the source file.
type Node interface {
	Start() SourcePos
}

// FileElement is a top-level statement in a file: a syntax, package,
// import, or option declaration, or a message or enum definition.
type FileElement interface {
	Node
	fileElement()
}

// MessageElement is a statement in a message body. The legacy dialect
// permits options, nested messages, nested enums, and fields; the
// proto dialect's grammar omits nested enums.
type MessageElement interface {
	Node
	msgElement()
}

// EnumElement is a statement in an enum body: an option or an enum
// value.
type EnumElement interface {
	Node
	enumElement()
}

// DefinitionNode is a type definition: a message or an enum.
type DefinitionNode interface {
	Node
	definitionNode()
}
