// Package resolver implements the static variable-resolution pass
// described in spec.md §4.4: a single walk over the statement tree that
// tags every local Variable/Assign use with the number of lexical-scope
// hops to its declaration, leaving global references untagged.
//
// The side table this pass produces is consumed read-only by
// internal/interp's evaluator (spec.md §3 "Resolution side table", §8
// "Resolver/evaluator consistency"). It is keyed by ast.Expr.ExprID()
// rather than by a Go map[ast.Expr] — spec.md's Design Notes explicitly
// suggest a monotonic node-id key over relying on AST-node object
// identity, so the side table stays a simple, cheaply-hashed
// map[int]int.
//
// Structurally this is one static pass over the tree, the same shape as
// go-dws's internal/semantic/passes (a Pass type with a Run method and a
// stack-of-scope-maps symbol table, see declaration_pass.go /
// symbol_table.go) — narrowed to the single concern spec.md assigns it:
// depth tagging, not type checking or declaration collection.
package resolver

import (
	"github.com/ochardlang/golox/internal/ast"
	"github.com/ochardlang/golox/internal/diag"
	"github.com/ochardlang/golox/internal/token"
)

type functionType int

const (
	noFunction functionType = iota
	inFunction
)

// Locals is the resolution side table: ast.Expr.ExprID() -> hop count.
// Absence of a key means the reference resolves dynamically against
// globals at evaluation time.
type Locals map[int]int

// Resolver performs the static scope walk.
type Resolver struct {
	report *diag.Report
	locals Locals
	// scopes is a stack of scope maps; the bool records whether the
	// binding's initializer has finished resolving (false = declared but
	// not yet defined, matching spec.md's self-reference detection).
	scopes          []map[string]bool
	currentFunction functionType
}

// New creates a Resolver that reports diagnostics through report.
func New(report *diag.Report) *Resolver {
	return &Resolver{report: report, locals: make(Locals)}
}

// Resolve walks stmts and returns the completed side table. Each call
// starts from a fresh, empty table: node IDs are only unique within the
// lifetime of the Parser that produced stmts, so a table left over from a
// previous Resolve call (e.g. an earlier REPL line) must never bleed into
// this one.
func (r *Resolver) Resolve(stmts []ast.Stmt) Locals {
	r.locals = make(Locals)
	r.resolveStmts(stmts)
	return r.locals
}

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, stmt := range stmts {
		r.resolveStmt(stmt)
	}
}

func (r *Resolver) resolveStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.BlockStmt:
		r.beginScope()
		r.resolveStmts(s.Statements)
		r.endScope()

	case *ast.VarStmt:
		r.declare(s.Name)
		if s.Initializer != nil {
			r.resolveExpr(s.Initializer)
		}
		r.define(s.Name)

	case *ast.FunctionStmt:
		// Declare and define the name before resolving the body so the
		// function may call itself recursively.
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s, inFunction)

	case *ast.ExpressionStmt:
		r.resolveExpr(s.Expr)

	case *ast.PrintStmt:
		r.resolveExpr(s.Expr)

	case *ast.IfStmt:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Then)
		if s.Else != nil {
			r.resolveStmt(s.Else)
		}

	case *ast.WhileStmt:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Body)

	case *ast.ReturnStmt:
		if r.currentFunction == noFunction {
			r.report.ErrorAtToken(s.Keyword, "Can't return from top-level code.")
		}
		if s.Value != nil {
			r.resolveExpr(s.Value)
		}
	}
}

func (r *Resolver) resolveExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.Variable:
		if len(r.scopes) > 0 {
			if defined, ok := r.scopes[len(r.scopes)-1][e.Name.Lexeme]; ok && !defined {
				r.report.ErrorAtToken(e.Name, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(e, e.Name)

	case *ast.Assign:
		r.resolveExpr(e.Value)
		r.resolveLocal(e, e.Name)

	case *ast.Binary:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)

	case *ast.Logical:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)

	case *ast.Unary:
		r.resolveExpr(e.Right)

	case *ast.Grouping:
		r.resolveExpr(e.Inner)

	case *ast.Call:
		r.resolveExpr(e.Callee)
		for _, arg := range e.Args {
			r.resolveExpr(arg)
		}

	case *ast.Literal:
		// no-op

	}
}

func (r *Resolver) resolveFunction(fn *ast.FunctionStmt, fnType functionType) {
	enclosing := r.currentFunction
	r.currentFunction = fnType

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(fn.Body)
	r.endScope()

	r.currentFunction = enclosing
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[name.Lexeme]; ok {
		r.report.ErrorAtToken(name, "Already a variable with this name in this scope.")
	}
	scope[name.Lexeme] = false
}

func (r *Resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

// resolveLocal scans the scope stack from innermost outward; the first
// scope that declares name records the hop count in the side table. No
// match means the reference is left untagged and resolves against
// globals at evaluation time.
func (r *Resolver) resolveLocal(expr ast.Expr, name token.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.locals[expr.ExprID()] = len(r.scopes) - 1 - i
			return
		}
	}
}
