package parser

// Dialect selects which of the two grammar variants a parse uses. The
// two grammars are nearly identical; the engine is shared and the
// handful of divergence points below are parameterized on the dialect,
// decided once when the parse starts. Dialect selection is never
// auto-detected from content.
type Dialect int

const (
	// DialectLegacy is the permissive grammar: the syntax value may be
	// any identifier, message bodies may contain nested enum
	// definitions, fields and enum values accept bracketed options,
	// and an import takes at most one "public" modifier.
	DialectLegacy Dialect = iota

	// DialectProto is the proto2/proto3-aware grammar: the syntax
	// value must be exactly "proto2" or "proto3", message bodies do
	// not admit nested enum definitions, bracketed options are not
	// accepted on fields or enum values, and the "public" import
	// modifier may be repeated.
	DialectProto
)

func (d Dialect) String() string {
	switch d {
	case DialectLegacy:
		return "legacy"
	case DialectProto:
		return "proto"
	default:
		return "<invalid dialect>"
	}
}

// restrictsSyntax reports whether the syntax value is limited to the
// "proto2" / "proto3" literals.
func (d Dialect) restrictsSyntax() bool { return d == DialectProto }

// allowsNestedEnum reports whether a message body may contain an enum
// definition.
func (d Dialect) allowsNestedEnum() bool { return d == DialectLegacy }

// allowsFieldOptions reports whether fields and enum values accept
// trailing bracket option groups.
func (d Dialect) allowsFieldOptions() bool { return d == DialectLegacy }

// repeatsImportModifier reports whether the "public" modifier may
// appear more than once on an import. The legacy grammar caps it at
// one; the proto grammar's zero-or-more repetition is preserved as
// written rather than tightened.
func (d Dialect) repeatsImportModifier() bool { return d == DialectProto }

// commentNeedsNewline reports whether a line comment must be
// terminated by a newline. When true, a comment at end-of-file
// without a trailing newline is a lexical error; when false, EOF
// terminates the comment.
func (d Dialect) commentNeedsNewline() bool { return d == DialectLegacy }

// allowsEmptyFile reports whether a document with no statements and
// no newlines is legal. The legacy grammar requires at least one
// statement-or-newline element.
func (d Dialect) allowsEmptyFile() bool { return d == DialectProto }
