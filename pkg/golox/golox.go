// Package golox is the embeddable entry point to the interpreter pipeline,
// mirroring the package-boundary role go-dws's pkg/dwscript played for its
// own CLI: a thin, dependency-light surface over the internal pipeline
// packages that cmd/golox (and any other embedder) drives instead of
// reaching into internal/* directly.
package golox

import (
	"io"

	"github.com/ochardlang/golox/internal/diag"
	"github.com/ochardlang/golox/internal/interp"
	"github.com/ochardlang/golox/internal/lexer"
	"github.com/ochardlang/golox/internal/parser"
	"github.com/ochardlang/golox/internal/resolver"
)

// Session is one REPL-style interpreter session: it owns a single
// long-lived diag.Report (and, behind it, a single globals environment),
// so variables and function declarations from one Run call stay visible
// to later Run calls, matching spec.md §6's REPL semantics. A freshly
// constructed Session starts each Run by resetting only the Report's
// status flags, never its bindings.
type Session struct {
	report  *diag.Report
	stdout  io.Writer
	interp  *interp.Interpreter
	resolvr *resolver.Resolver
}

// NewSession creates a Session that writes diagnostics to stderr and
// `print` output to stdout.
func NewSession(stderr, stdout io.Writer) *Session {
	report := diag.New(stderr)
	return &Session{
		report:  report,
		stdout:  stdout,
		resolvr: resolver.New(report),
	}
}

// Run lexes, parses, resolves, and (if those stages succeeded) evaluates
// source, reporting diagnostics through the Session's sink. It returns
// the two status flags spec.md §6 uses to pick a process exit code:
// hadError for a static (scan/parse/resolve) failure, hadRuntimeError for
// a failure during evaluation.
func (s *Session) Run(source string) (hadError, hadRuntimeError bool) {
	s.report.Reset()

	toks := lexer.New(source, s.report).ScanTokens()
	stmts := parser.New(toks, s.report).Parse()
	if s.report.HadError {
		return true, false
	}

	locals := s.resolvr.Resolve(stmts)
	if s.report.HadError {
		return true, false
	}

	if s.interp == nil {
		s.interp = interp.New(s.report, s.stdout, locals)
	} else {
		s.interp.UpdateLocals(locals)
	}
	s.interp.Interpret(stmts)
	return s.report.HadError, s.report.HadRuntimeError
}

// Run is a one-shot convenience wrapper for embedders that don't need
// REPL-style persisted state across multiple source chunks: it lexes,
// parses, resolves, and evaluates source once against a fresh Session.
func Run(source string, stdout, stderr io.Writer) (hadError, hadRuntimeError bool) {
	return NewSession(stderr, stdout).Run(source)
}
