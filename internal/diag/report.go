// Package diag implements the two-status-flag diagnostics sink shared by
// the scanner, parser, resolver, and evaluator. It is the golox analog of
// go-dws's internal/errors package, adapted to the flag-and-format model
// described in spec.md §4.6 and §6 rather than go-dws's accumulated
// []*CompilerError list — the REPL needs to reset "had error" between
// lines while globals and resolution state persist, so the flags live on
// a single long-lived Report rather than being recomputed per parse.
package diag

import (
	"fmt"
	"io"

	"github.com/ochardlang/golox/internal/token"
)

// Report accumulates static diagnostics and tracks the two status flags
// that gate later pipeline stages and the process exit code.
type Report struct {
	out             io.Writer
	HadError        bool
	HadRuntimeError bool
}

// New creates a Report that writes formatted diagnostics to out (normally
// os.Stderr).
func New(out io.Writer) *Report {
	return &Report{out: out}
}

// Reset clears both status flags. Called between REPL lines; globals and
// resolver state are untouched.
func (r *Report) Reset() {
	r.HadError = false
	r.HadRuntimeError = false
}

// Error reports a generic line-addressed diagnostic: "[line L] Error: MSG".
// Used by the scanner; the parser and resolver report through ErrorAtToken.
func (r *Report) Error(line int, message string) {
	r.report(line, "", message)
}

// ErrorAtToken reports a parser-style diagnostic anchored to a token:
// "[line L] Error at 'LEXEME': MSG", or "Error at end: MSG" for EOF.
func (r *Report) ErrorAtToken(tok token.Token, message string) {
	if tok.Type == token.EOF {
		r.report(tok.Line, " at end", message)
	} else {
		r.report(tok.Line, fmt.Sprintf(" at '%s'", tok.Lexeme), message)
	}
}

func (r *Report) report(line int, where, message string) {
	fmt.Fprintf(r.out, "[line %d] Error%s: %s\n", line, where, message)
	r.HadError = true
}

// RuntimeError reports a runtime error in the "MSG\n[line L]" form and
// sets HadRuntimeError. err.Token supplies the line.
func (r *Report) RuntimeError(err *RuntimeError) {
	fmt.Fprintf(r.out, "%s\n[line %d]\n", err.Message, err.Token.Line)
	r.HadRuntimeError = true
}

// RuntimeError is a runtime-phase failure anchored to the token whose
// evaluation produced it. It implements the error interface so it can be
// threaded through ordinary Go error returns (see internal/interp).
type RuntimeError struct {
	Token   token.Token
	Message string
}

// NewRuntimeError constructs a RuntimeError for tok with a formatted message.
func NewRuntimeError(tok token.Token, format string, args ...any) *RuntimeError {
	return &RuntimeError{Token: tok, Message: fmt.Sprintf(format, args...)}
}

func (e *RuntimeError) Error() string {
	return e.Message
}
