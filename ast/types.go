package ast

// TypeNode is a field's type reference. It is one of
// *PrimitiveTypeNode, *MapTypeNode, or *NamedTypeNode.
type TypeNode interface {
	Node
	typeNode()
}

// PrimitiveKind enumerates the grammar's primitive type keywords.
type PrimitiveKind int

const (
	KindInt32 PrimitiveKind = iota
	KindInt64
	KindString
	KindBool
)

// String returns the keyword as it appears in source. Note that the
// boolean keyword in this grammar is "boolean", not "bool".
func (k PrimitiveKind) String() string {
	switch k {
	case KindInt32:
		return "int32"
	case KindInt64:
		return "int64"
	case KindString:
		return "string"
	case KindBool:
		return "boolean"
	default:
		return "<invalid>"
	}
}

// PrimitiveTypeNode is a primitive type keyword.
type PrimitiveTypeNode struct {
	Pos  SourcePos
	Kind PrimitiveKind
}

func (n *PrimitiveTypeNode) Start() SourcePos { return n.Pos }
func (n *PrimitiveTypeNode) typeNode()        {}

// MapTypeNode is a map<K, V> type. Keys and values recurse to
// arbitrary depth; map<string, map<int32, string>> is representable.
type MapTypeNode struct {
	Pos   SourcePos
	Key   TypeNode
	Value TypeNode
}

func (n *MapTypeNode) Start() SourcePos { return n.Pos }
func (n *MapTypeNode) typeNode()        {}

// NamedTypeNode is a dotted path naming a message or enum defined
// elsewhere. The reference is unresolved: forward references are
// legal and the parser does not check that the target exists.
type NamedTypeNode struct {
	Pos  SourcePos
	Path string
}

func (n *NamedTypeNode) Start() SourcePos { return n.Pos }
func (n *NamedTypeNode) typeNode()        {}
