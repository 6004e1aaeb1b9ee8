package reporter

import (
	"errors"
	"fmt"

	"github.com/elauffenburger/protoparse/ast"
)

// ErrInvalidSource is a sentinel error returned by Parse when syntax
// errors are encountered but the configured ErrorReporter swallowed
// them by returning nil.
var ErrInvalidSource = errors.New("parse failed: invalid source")

// ErrorWithPos is an error about a schema source file that carries the
// location in the file that caused the error.
//
// The value of Error() contains both the position and the underlying
// error. The value of Unwrap() is only the underlying error.
type ErrorWithPos interface {
	error
	GetPosition() ast.SourcePos
	Unwrap() error
}

// Error wraps err with the given position.
func Error(pos ast.SourcePos, err error) ErrorWithPos {
	return errorWithSourcePos{pos: pos, underlying: err}
}

// Errorf creates a new positioned error with the given message.
func Errorf(pos ast.SourcePos, format string, args ...any) ErrorWithPos {
	return errorWithSourcePos{pos: pos, underlying: fmt.Errorf(format, args...)}
}

type errorWithSourcePos struct {
	underlying error
	pos        ast.SourcePos
}

func (e errorWithSourcePos) Error() string {
	return fmt.Sprintf("%s: %v", e.pos, e.underlying)
}

func (e errorWithSourcePos) GetPosition() ast.SourcePos {
	return e.pos
}

func (e errorWithSourcePos) Unwrap() error {
	return e.underlying
}

var _ ErrorWithPos = errorWithSourcePos{}
