// Package reporter contains the types used for reporting errors and
// warnings out of the parser to calling code.
package reporter

import (
	"sync"

	"github.com/elauffenburger/protoparse/ast"
)

// ErrorReporter is responsible for reporting the given error. The
// parser has no error recovery, so the first reported error always
// terminates the parse; a reporter that returns nil merely converts
// the final result to ErrInvalidSource instead of the error itself.
type ErrorReporter func(err ErrorWithPos) error

// WarningReporter is responsible for reporting the given warning.
// Warnings indicate things that do not cause the parse to fail but
// are considered bad practice, such as a missing syntax statement.
// Though they are just warnings, the details are supplied via an
// error type.
type WarningReporter func(ErrorWithPos)

// Reporter receives the errors and warnings encountered during a
// parse.
type Reporter interface {
	Error(ErrorWithPos) error
	Warning(ErrorWithPos)
}

// NewReporter creates a Reporter from the given function values.
// Either may be nil: a nil errs simply returns each error as-is, and
// a nil warnings discards warnings.
func NewReporter(errs ErrorReporter, warnings WarningReporter) Reporter {
	return reporterFuncs{errs: errs, warnings: warnings}
}

type reporterFuncs struct {
	errs     ErrorReporter
	warnings WarningReporter
}

func (r reporterFuncs) Error(err ErrorWithPos) error {
	if r.errs == nil {
		return err
	}
	return r.errs(err)
}

func (r reporterFuncs) Warning(err ErrorWithPos) {
	if r.warnings != nil {
		r.warnings(err)
	}
}

// Handler mediates between the parser and a Reporter, tracking
// whether any error has been reported. A Handler is safe for use from
// multiple goroutines, though a single parse never needs that.
type Handler struct {
	reporter Reporter

	mu           sync.Mutex
	errsReported bool
	err          error
}

// NewHandler creates a Handler for the given reporter. A nil reporter
// means errors are returned as-is and warnings are discarded.
func NewHandler(rep Reporter) *Handler {
	if rep == nil {
		rep = NewReporter(nil, nil)
	}
	return &Handler{reporter: rep}
}

// HandleError reports the given error. If err is an ErrorWithPos it is
// passed to the reporter; the reporter's decision (or the error
// itself) is recorded as the terminal result.
func (h *Handler) HandleError(err error) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.err != nil {
		return h.err
	}
	if ewp, ok := err.(ErrorWithPos); ok {
		h.errsReported = true
		err = h.reporter.Error(ewp)
	}
	h.err = err
	return h.err
}

// HandleWarning reports a warning at the given position.
func (h *Handler) HandleWarning(pos ast.SourcePos, err error) {
	// no lock; warnings don't touch the mutable fields
	h.reporter.Warning(errorWithSourcePos{pos: pos, underlying: err})
}

// Error returns the handler's terminal result: nil if no error was
// reported, ErrInvalidSource if errors were reported but the reporter
// swallowed them, and the reporter's error otherwise.
func (h *Handler) Error() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.errsReported && h.err == nil {
		return ErrInvalidSource
	}
	return h.err
}
