package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// DebugString renders a deterministic, indented dump of the tree. Two
// parses of the same source always produce the same dump, which makes
// it suitable for golden-file tests and snapshots.
func (f *FileNode) DebugString() string {
	var sb strings.Builder
	sb.WriteString("file\n")
	for _, decl := range f.Decls {
		writeFileElement(&sb, decl, 1)
	}
	return sb.String()
}

func writeFileElement(sb *strings.Builder, decl FileElement, depth int) {
	indent(sb, depth)
	switch n := decl.(type) {
	case *SyntaxNode:
		fmt.Fprintf(sb, "syntax %q\n", n.Syntax)
	case *PackageNode:
		fmt.Fprintf(sb, "package %s\n", n.Name)
	case *ImportNode:
		if n.Public {
			fmt.Fprintf(sb, "import public \"%s\"\n", n.Path)
		} else {
			fmt.Fprintf(sb, "import \"%s\"\n", n.Path)
		}
	case *OptionNode:
		fmt.Fprintf(sb, "option %s = %s\n", formatOptionName(n.Name), formatValue(n.Value))
	case *MessageNode:
		fmt.Fprintf(sb, "message %s\n", n.Name)
		for _, elem := range n.Decls {
			writeMessageElement(sb, elem, depth+1)
		}
	case *EnumNode:
		fmt.Fprintf(sb, "enum %s\n", n.Name)
		for _, elem := range n.Decls {
			writeEnumElement(sb, elem, depth+1)
		}
	default:
		fmt.Fprintf(sb, "<unknown %T>\n", decl)
	}
}

func writeMessageElement(sb *strings.Builder, elem MessageElement, depth int) {
	switch n := elem.(type) {
	case *FieldNode:
		indent(sb, depth)
		if n.Modifier != ModifierNone {
			fmt.Fprintf(sb, "%s ", n.Modifier)
		}
		fmt.Fprintf(sb, "%s %s = %d%s\n", formatType(n.Type), n.Name, n.Tag, formatOptions(n.Options))
	default:
		// options and nested definitions render like their top-level
		// counterparts
		writeFileElement(sb, elem.(FileElement), depth)
	}
}

func writeEnumElement(sb *strings.Builder, elem EnumElement, depth int) {
	switch n := elem.(type) {
	case *EnumValueNode:
		indent(sb, depth)
		fmt.Fprintf(sb, "%s = %d%s\n", n.Name, n.Tag, formatOptions(n.Options))
	default:
		writeFileElement(sb, elem.(FileElement), depth)
	}
}

func formatOptionName(name OptionNameNode) string {
	var sb strings.Builder
	if name.Extension {
		sb.WriteString("(")
		sb.WriteString(name.Name)
		sb.WriteString(")")
	} else {
		sb.WriteString(name.Name)
	}
	for _, s := range name.Suffix {
		sb.WriteString(".")
		sb.WriteString(s)
	}
	return sb.String()
}

func formatOptions(opts []*OptionNode) string {
	var sb strings.Builder
	for _, opt := range opts {
		fmt.Fprintf(&sb, " [%s = %s]", formatOptionName(opt.Name), formatValue(opt.Value))
	}
	return sb.String()
}

func formatValue(val ValueNode) string {
	switch v := val.(type) {
	case *UintLiteralNode:
		return strconv.FormatUint(v.Val, 10)
	case *StringLiteralNode:
		// raw contents; the grammar has no escapes
		return "\"" + v.Val + "\""
	case *BoolLiteralNode:
		return strconv.FormatBool(v.Val)
	default:
		return fmt.Sprintf("<unknown %T>", val)
	}
}

func formatType(ty TypeNode) string {
	switch t := ty.(type) {
	case *PrimitiveTypeNode:
		return t.Kind.String()
	case *MapTypeNode:
		return fmt.Sprintf("map<%s, %s>", formatType(t.Key), formatType(t.Value))
	case *NamedTypeNode:
		return t.Path
	default:
		return fmt.Sprintf("<unknown %T>", ty)
	}
}

func indent(sb *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		sb.WriteString("  ")
	}
}
