package parser

import "bytes"

// scanner is the lexical layer: a cursor over the raw bytes of a
// source document. Spaces, tabs, and line comments are insignificant
// and consumed by skip between any two tokens; newlines are
// significant and only consumed when the grammar asks for one. The
// grammar matcher backtracks by saving and restoring pos directly.
type scanner struct {
	dialect Dialect
	data    []byte
	pos     int

	// A lexical error is terminal: once set, every subsequent match
	// fails and the parse surfaces the error.
	err    error
	errPos int
}

var utf8Bom = []byte{0xEF, 0xBB, 0xBF}

func newScanner(dialect Dialect, contents []byte) *scanner {
	// if the file has a UTF8 byte order marker preface, consume it
	contents = bytes.TrimPrefix(contents, utf8Bom)
	return &scanner{dialect: dialect, data: contents}
}

func (s *scanner) setErr(offset int, err *LexicalError) {
	if s.err == nil {
		s.err = err
		s.errPos = offset
	}
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.data)
}

// skip consumes runs of spaces and tabs and any line comments. A
// comment runs from "//" through end of line; the newline is consumed
// as part of the comment. A comment cut short by end-of-file is legal
// only in the dialect that does not require the terminating newline.
func (s *scanner) skip() {
	for s.err == nil && s.pos < len(s.data) {
		switch c := s.data[s.pos]; {
		case c == ' ' || c == '\t':
			s.pos++
		case c == '/' && s.pos+1 < len(s.data) && s.data[s.pos+1] == '/':
			start := s.pos
			s.pos += 2
			for s.pos < len(s.data) && s.data[s.pos] != '\n' && s.data[s.pos] != '\r' {
				s.pos++
			}
			if s.pos == len(s.data) {
				if s.dialect.commentNeedsNewline() {
					s.setErr(start, &LexicalError{Reason: "comment never terminates, unexpected EOF"})
				}
				return
			}
			s.consumeNewline()
		default:
			return
		}
	}
}

// newline consumes a single line terminator: "\r\n", "\n", or "\r".
func (s *scanner) newline() bool {
	if s.pos < len(s.data) && (s.data[s.pos] == '\n' || s.data[s.pos] == '\r') {
		s.consumeNewline()
		return true
	}
	return false
}

func (s *scanner) consumeNewline() {
	if s.data[s.pos] == '\r' && s.pos+1 < len(s.data) && s.data[s.pos+1] == '\n' {
		s.pos++
	}
	s.pos++
}

// literal consumes the exact text if it appears at the current
// position. Literals are not token-bounded: "message" matches the
// first seven bytes of "messages". Prefix overlap is resolved by the
// grammar's ordered choice and backtracking, as in the PEG formalism.
func (s *scanner) literal(text string) bool {
	if s.err == nil && bytes.HasPrefix(s.data[s.pos:], []byte(text)) {
		s.pos += len(text)
		return true
	}
	return false
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

// ident consumes an identifier: an ASCII letter or underscore
// followed by letters, digits, and underscores.
func (s *scanner) ident() (string, bool) {
	if s.err != nil || s.eof() || !isIdentStart(s.data[s.pos]) {
		return "", false
	}
	start := s.pos
	for s.pos < len(s.data) && isIdentChar(s.data[s.pos]) {
		s.pos++
	}
	return string(s.data[start:s.pos]), true
}

// number consumes a run of ASCII digits. The grammar's numeric domain
// is unsigned digit sequences only: no sign, no decimal point, no
// exponent.
func (s *scanner) number() (string, bool) {
	if s.err != nil || s.eof() || s.data[s.pos] < '0' || s.data[s.pos] > '9' {
		return "", false
	}
	start := s.pos
	for s.pos < len(s.data) && s.data[s.pos] >= '0' && s.data[s.pos] <= '9' {
		s.pos++
	}
	return string(s.data[start:s.pos]), true
}

// stringLit consumes a double-quoted string and returns the raw
// contents between the quotes. There is no escape processing; a quote
// always terminates the literal. Reaching end-of-file before the
// closing quote is a lexical error.
func (s *scanner) stringLit() (string, bool) {
	if s.err != nil || s.eof() || s.data[s.pos] != '"' {
		return "", false
	}
	start := s.pos
	s.pos++
	for s.pos < len(s.data) {
		if s.data[s.pos] == '"' {
			contents := string(s.data[start+1 : s.pos])
			s.pos++
			return contents, true
		}
		s.pos++
	}
	s.setErr(start, &LexicalError{Reason: "unterminated string literal"})
	return "", false
}
