// Package parser contains the logic for parsing schema source text
// into an AST (abstract syntax tree).
//
// The grammar is matched PEG-style: each production is a function that
// either consumes input and produces a typed node or fails and
// restores the input position, with alternatives tried in grammar
// order and the first success winning. The matcher tracks the furthest
// position any alternative reached and the set of alternatives
// expected there, which is what a failed parse reports.
//
// Two grammar dialects are supported behind one engine; see Dialect.
// The parser performs no semantic validation: duplicate tags,
// duplicate names, and unresolved type references all parse. A parse
// either produces a complete tree or a single terminal error; there is
// no recovery and no partial result.
//
// Worst-case parse time is governed by backtracking: deeply nested or
// pathologically malformed input can revisit positions repeatedly.
// The grammar is small enough that this has not mattered in practice,
// and the parser imposes no resource limits of its own.
package parser
