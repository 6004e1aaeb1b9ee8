package ast

// OptionNode represents an option, either standing alone as a
// statement:
//
//	option java_package = "com.example.foo";
//
// or attached to a field or enum value in bracket form:
//
//	int32 x = 1 [deprecated = true];
//
// Each bracket group carries exactly one option; a field may carry
// multiple consecutive bracket groups.
type OptionNode struct {
	Pos   SourcePos
	Name  OptionNameNode
	Value ValueNode
}

func (n *OptionNode) Start() SourcePos { return n.Pos }
func (n *OptionNode) fileElement()     {}
func (n *OptionNode) msgElement()      {}
func (n *OptionNode) enumElement()     {}

// OptionNameNode is an option key: a bare identifier, or a
// parenthesized extension identifier, optionally followed by dotted
// suffix identifiers, as in (my_option).a.
type OptionNameNode struct {
	Pos SourcePos
	// Name is the leading identifier.
	Name string
	// Extension is true when Name was written parenthesized.
	Extension bool
	// Suffix holds the trailing dot-joined identifiers, if any.
	Suffix []string
}

func (n OptionNameNode) Start() SourcePos { return n.Pos }

// ValueNode is a constant value in an option. It is one of
// *UintLiteralNode, *StringLiteralNode, or *BoolLiteralNode.
type ValueNode interface {
	Node
	valueNode()
}

// UintLiteralNode is a non-negative integer constant. The grammar
// admits only unsigned digit sequences: no sign, no decimal point, no
// exponent. Leading zeros are not preserved; "007" yields 7.
type UintLiteralNode struct {
	Pos SourcePos
	Val uint64
}

func (n *UintLiteralNode) Start() SourcePos { return n.Pos }
func (n *UintLiteralNode) valueNode()       {}

// StringLiteralNode is a string constant. Val holds the raw bytes
// between the quotes; the grammar has no escape sequences.
type StringLiteralNode struct {
	Pos SourcePos
	Val string
}

func (n *StringLiteralNode) Start() SourcePos { return n.Pos }
func (n *StringLiteralNode) valueNode()       {}

// BoolLiteralNode is a true or false constant.
type BoolLiteralNode struct {
	Pos SourcePos
	Val bool
}

func (n *BoolLiteralNode) Start() SourcePos { return n.Pos }
func (n *BoolLiteralNode) valueNode()       {}
