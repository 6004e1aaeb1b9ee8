package ast

// EnumNode represents an enum definition. Decls preserves the body
// statements (options and values) in declaration order. The parser
// performs no uniqueness checks on value names or tags; duplicates are
// syntactically legal and semantic validation belongs to consumers.
type EnumNode struct {
	Pos   SourcePos
	Name  string
	Decls []EnumElement
}

func (n *EnumNode) Start() SourcePos { return n.Pos }
func (n *EnumNode) fileElement()     {}
func (n *EnumNode) msgElement()      {}
func (n *EnumNode) definitionNode()  {}

// Values returns the enum's values in declaration order.
func (n *EnumNode) Values() []*EnumValueNode {
	var vals []*EnumValueNode
	for _, decl := range n.Decls {
		if v, ok := decl.(*EnumValueNode); ok {
			vals = append(vals, v)
		}
	}
	return vals
}

// EnumValueNode represents a single enum value:
//
//	RUNNING = 2 [(custom_option) = "hello world"];
//
// Options are populated only under the legacy dialect.
type EnumValueNode struct {
	Pos     SourcePos
	Name    string
	Tag     uint64
	Options []*OptionNode
}

func (n *EnumValueNode) Start() SourcePos { return n.Pos }
func (n *EnumValueNode) enumElement()     {}
