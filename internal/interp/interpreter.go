// Package interp implements the tree-walking evaluator of spec.md §4.5:
// direct recursive evaluation over internal/ast's tagged variants via Go
// type switches (no Visitor/accept() double dispatch, per spec.md's
// Design Notes), chained internal/interp.Environment scopes, and
// non-exception-based `return` control flow.
//
// Grounded on go-dws's internal/interp/interpreter.go Eval/Exec dispatch
// (a type switch per AST node returning a runtime.Value), diverging from
// it in exactly the two places spec.md's Design Notes call out: no
// visitor pattern, and `return` is carried home as an explicit flow value
// threaded through every statement-executing function rather than
// unwound via panic/recover (go-dws instead threads function results
// back through typed Exec return values for different reasons — this
// package's flow struct is the direct generalization spec.md asks for).
// Parser-level panic/recover (internal/parser) is a different, narrower
// mechanism and is untouched by this choice.
package interp

import (
	"fmt"
	"io"
	"time"

	"github.com/ochardlang/golox/internal/ast"
	"github.com/ochardlang/golox/internal/diag"
	"github.com/ochardlang/golox/internal/resolver"
	"github.com/ochardlang/golox/internal/token"
)

// flow carries a statement's control-flow outcome up through nested
// execution (block -> if/while/for-desugared-while -> function body)
// without unwinding the Go call stack. A zero flow means "ran to
// completion, keep going"; returning=true means a `return` was hit and
// value is the returned value (nil for a bare `return;`).
type flow struct {
	returning bool
	value     Value
}

// Interpreter evaluates a resolved program against a chain of
// environments rooted at globals.
type Interpreter struct {
	report  *diag.Report
	stdout  io.Writer
	locals  resolver.Locals
	globals *Environment
	env     *Environment
}

// New creates an Interpreter with a fresh globals environment seeded
// with the clock() native, and wires in the resolver's side table so
// Variable/Assign lookups can dispatch via GetAt/AssignAt instead of a
// dynamic chain search. Diagnostics go to report's sink; `print` output
// goes to stdout, a deliberately separate stream.
func New(report *diag.Report, stdout io.Writer, locals resolver.Locals) *Interpreter {
	globals := NewEnvironment()
	globals.Define("clock", &NativeFunction{
		name:  "clock",
		arity: 0,
		fn: func(it *Interpreter, args []Value) (Value, error) {
			return float64(time.Now().UnixMilli()) / 1000.0, nil
		},
	})
	return &Interpreter{report: report, stdout: stdout, locals: locals, globals: globals, env: globals}
}

// UpdateLocals swaps in the side table produced by resolving a new chunk
// of source against this Interpreter's persistent environment chain —
// the mechanism that lets a REPL session (pkg/golox.Session) keep its
// globals and function closures alive across lines while each line gets
// its own freshly resolved node-id space.
func (it *Interpreter) UpdateLocals(locals resolver.Locals) {
	it.locals = locals
}

// Interpret runs a full program (spec.md §4.6): each top-level statement
// executes in turn, and the first runtime error stops execution and is
// reported through the Interpreter's diag.Report, matching jlox's
// "run one statement, then stop" behavior rather than collecting every
// runtime error in the program.
func (it *Interpreter) Interpret(stmts []ast.Stmt) {
	for _, stmt := range stmts {
		if _, err := it.execute(stmt); err != nil {
			it.report.RuntimeError(err.(*diag.RuntimeError))
			return
		}
	}
}

func (it *Interpreter) execute(stmt ast.Stmt) (flow, error) {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		_, err := it.evaluate(s.Expr)
		return flow{}, err

	case *ast.PrintStmt:
		v, err := it.evaluate(s.Expr)
		if err != nil {
			return flow{}, err
		}
		fmt.Fprintln(it.stdout, stringify(v))
		return flow{}, nil

	case *ast.VarStmt:
		var value Value
		if s.Initializer != nil {
			var err error
			value, err = it.evaluate(s.Initializer)
			if err != nil {
				return flow{}, err
			}
		}
		it.env.Define(s.Name.Lexeme, value)
		return flow{}, nil

	case *ast.BlockStmt:
		return it.executeBlock(s.Statements, NewEnclosedEnvironment(it.env))

	case *ast.IfStmt:
		cond, err := it.evaluate(s.Cond)
		if err != nil {
			return flow{}, err
		}
		if isTruthy(cond) {
			return it.execute(s.Then)
		}
		if s.Else != nil {
			return it.execute(s.Else)
		}
		return flow{}, nil

	case *ast.WhileStmt:
		for {
			cond, err := it.evaluate(s.Cond)
			if err != nil {
				return flow{}, err
			}
			if !isTruthy(cond) {
				return flow{}, nil
			}
			f, err := it.execute(s.Body)
			if err != nil || f.returning {
				return f, err
			}
		}

	case *ast.FunctionStmt:
		fn := newFunction(s, it.env)
		fn.locals = it.locals
		it.env.Define(s.Name.Lexeme, fn)
		return flow{}, nil

	case *ast.ReturnStmt:
		var value Value
		if s.Value != nil {
			var err error
			value, err = it.evaluate(s.Value)
			if err != nil {
				return flow{}, err
			}
		}
		return flow{returning: true, value: value}, nil
	}
	return flow{}, nil
}

// executeBlock runs stmts in env, restoring the interpreter's previous
// environment on the way out (including when a runtime error or a
// `return` flow is propagating), matching go-dws's save/restore pattern
// around nested scope execution.
func (it *Interpreter) executeBlock(stmts []ast.Stmt, env *Environment) (flow, error) {
	previous := it.env
	it.env = env
	defer func() { it.env = previous }()

	for _, stmt := range stmts {
		f, err := it.execute(stmt)
		if err != nil || f.returning {
			return f, err
		}
	}
	return flow{}, nil
}

func (it *Interpreter) evaluate(expr ast.Expr) (Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return e.Value, nil

	case *ast.Grouping:
		return it.evaluate(e.Inner)

	case *ast.Variable:
		return it.lookupVariable(e.Name, e)

	case *ast.Assign:
		value, err := it.evaluate(e.Value)
		if err != nil {
			return nil, err
		}
		if distance, ok := it.locals[e.ExprID()]; ok {
			it.env.AssignAt(distance, e.Name, value)
		} else if err := it.globals.Assign(e.Name, value); err != nil {
			return nil, err
		}
		return value, nil

	case *ast.Logical:
		left, err := it.evaluate(e.Left)
		if err != nil {
			return nil, err
		}
		// Short-circuit: the right operand is never evaluated when the
		// left already determines the result (spec.md §8 "short-circuit
		// purity").
		if e.Op.Type == token.OR {
			if isTruthy(left) {
				return left, nil
			}
		} else {
			if !isTruthy(left) {
				return left, nil
			}
		}
		return it.evaluate(e.Right)

	case *ast.Unary:
		right, err := it.evaluate(e.Right)
		if err != nil {
			return nil, err
		}
		switch e.Op.Type {
		case token.MINUS:
			n, ok := right.(float64)
			if !ok {
				return nil, diag.NewRuntimeError(e.Op, "Operand must be a number.")
			}
			return -n, nil
		case token.BANG:
			return !isTruthy(right), nil
		}
		return nil, nil

	case *ast.Binary:
		return it.evalBinary(e)

	case *ast.Call:
		return it.evalCall(e)
	}
	return nil, nil
}

func (it *Interpreter) lookupVariable(name token.Token, expr ast.Expr) (Value, error) {
	if distance, ok := it.locals[expr.ExprID()]; ok {
		return it.env.GetAt(distance, name.Lexeme), nil
	}
	return it.globals.Get(name)
}

func (it *Interpreter) evalBinary(e *ast.Binary) (Value, error) {
	left, err := it.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := it.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Op.Type {
	case token.GREATER, token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL,
		token.MINUS, token.SLASH, token.STAR:
		ln, lok := left.(float64)
		rn, rok := right.(float64)
		if !lok || !rok {
			return nil, diag.NewRuntimeError(e.Op, "Operands must be numbers.")
		}
		switch e.Op.Type {
		case token.GREATER:
			return ln > rn, nil
		case token.GREATER_EQUAL:
			return ln >= rn, nil
		case token.LESS:
			return ln < rn, nil
		case token.LESS_EQUAL:
			return ln <= rn, nil
		case token.MINUS:
			return ln - rn, nil
		case token.SLASH:
			return ln / rn, nil
		case token.STAR:
			return ln * rn, nil
		}

	case token.PLUS:
		if ln, ok := left.(float64); ok {
			if rn, ok := right.(float64); ok {
				return ln + rn, nil
			}
		}
		if ls, ok := left.(string); ok {
			if rs, ok := right.(string); ok {
				return ls + rs, nil
			}
		}
		return nil, diag.NewRuntimeError(e.Op, "Operands must be two numbers or two strings.")

	case token.BANG_EQUAL:
		return !isEqual(left, right), nil
	case token.EQUAL_EQUAL:
		return isEqual(left, right), nil
	}
	return nil, nil
}

func (it *Interpreter) evalCall(e *ast.Call) (Value, error) {
	callee, err := it.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]Value, len(e.Args))
	for i, a := range e.Args {
		v, err := it.evaluate(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	fn, ok := callee.(Callable)
	if !ok {
		return nil, diag.NewRuntimeError(e.Paren, "Can only call functions and classes.")
	}
	if len(args) != fn.Arity() {
		return nil, diag.NewRuntimeError(e.Paren, "Expected %d arguments but got %d.", fn.Arity(), len(args))
	}
	return fn.Call(it, args)
}
