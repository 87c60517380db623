package interp

import (
	"fmt"

	"github.com/ochardlang/golox/internal/ast"
	"github.com/ochardlang/golox/internal/resolver"
)

// NativeFunction wraps a host-provided builtin, grounded on go-dws's
// builtins_datetime.go pattern of registering a Go closure under a fixed
// globals name (there: Now/DateTime builtins over time.Now().UTC()). The
// only native spec.md names is clock().
type NativeFunction struct {
	name  string
	arity int
	fn    func(it *Interpreter, args []Value) (Value, error)
}

func (n *NativeFunction) Arity() int { return n.arity }

func (n *NativeFunction) Call(it *Interpreter, args []Value) (Value, error) {
	return n.fn(it, args)
}

func (n *NativeFunction) String() string {
	return "<native fn>"
}

// Function is a user-declared function value: the declaration plus the
// environment active at the point of declaration (its closure), per
// spec.md §4.3's closure-capture invariant. Grounded on go-dws's
// interpreter function values (internal/interp/interpreter.go's
// user-routine call path), narrowed to the single FunctionStmt shape
// this language has (no methods, no bound `this`). locals is the resolver
// side table that was active when the declaration executed; the body runs
// against it, so a function declared on an earlier REPL line still finds
// its own locals after later lines have swapped in their tables.
type Function struct {
	decl    *ast.FunctionStmt
	closure *Environment
	locals  resolver.Locals
}

func newFunction(decl *ast.FunctionStmt, closure *Environment) *Function {
	return &Function{decl: decl, closure: closure}
}

func (f *Function) Arity() int { return len(f.decl.Params) }

// Call binds each argument into a fresh scope enclosed by the closure
// (not the caller's environment — that's what makes the closure lexical
// rather than dynamic), executes the body, and turns a flow.returning
// result back into a plain return value. A body that falls off the end
// implicitly returns nil.
func (f *Function) Call(it *Interpreter, args []Value) (Value, error) {
	env := NewEnclosedEnvironment(f.closure)
	for i, param := range f.decl.Params {
		env.Define(param.Lexeme, args[i])
	}

	callerLocals := it.locals
	it.locals = f.locals
	defer func() { it.locals = callerLocals }()

	result, err := it.executeBlock(f.decl.Body, env)
	if err != nil {
		return nil, err
	}
	if result.returning {
		return result.value, nil
	}
	return nil, nil
}

func (f *Function) String() string {
	return fmt.Sprintf("<fn %s>", f.decl.Name.Lexeme)
}
