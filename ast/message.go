package ast

// MessageNode represents a message definition. Decls preserves the
// body statements in declaration order: options, nested definitions,
// and fields, interleaved however the source wrote them. Nested
// messages are owned solely by their parent body; the tree is a strict
// hierarchy with no sharing.
type MessageNode struct {
	Pos   SourcePos
	Name  string
	Decls []MessageElement
}

func (n *MessageNode) Start() SourcePos { return n.Pos }
func (n *MessageNode) fileElement()     {}
func (n *MessageNode) msgElement()      {}
func (n *MessageNode) definitionNode()  {}

// Fields returns the message's fields in declaration order.
func (n *MessageNode) Fields() []*FieldNode {
	var fields []*FieldNode
	for _, decl := range n.Decls {
		if f, ok := decl.(*FieldNode); ok {
			fields = append(fields, f)
		}
	}
	return fields
}

// Messages returns the message's nested messages in declaration order.
func (n *MessageNode) Messages() []*MessageNode {
	var msgs []*MessageNode
	for _, decl := range n.Decls {
		if m, ok := decl.(*MessageNode); ok {
			msgs = append(msgs, m)
		}
	}
	return msgs
}

// FieldModifier is the optional modifier preceding a field's type.
type FieldModifier int

const (
	ModifierNone FieldModifier = iota
	ModifierOptional
	ModifierRepeated
)

func (m FieldModifier) String() string {
	switch m {
	case ModifierOptional:
		return "optional"
	case ModifierRepeated:
		return "repeated"
	default:
		return ""
	}
}

// FieldNode represents a message field:
//
//	repeated int32 scores = 4 [packed = true];
//
// Options are populated only under the legacy dialect; the proto
// dialect's field grammar has no bracket options.
type FieldNode struct {
	Pos      SourcePos
	Modifier FieldModifier
	Type     TypeNode
	Name     string
	Tag      uint64
	Options  []*OptionNode
}

func (n *FieldNode) Start() SourcePos { return n.Pos }
func (n *FieldNode) msgElement()      {}
