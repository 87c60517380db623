package interp

import (
	"github.com/ochardlang/golox/internal/diag"
	"github.com/ochardlang/golox/internal/token"
)

// Environment is a chained name->value scope, matching spec.md §3's
// invariants: acyclic, rooted at one globals environment, shadowing
// permitted in local scopes.
//
// This is go-dws's internal/interp/runtime.Environment (Get/Set/Define
// over a store plus an enclosing pointer) adapted two ways: the store is
// a plain map[string]Value rather than go-dws's case-insensitive
// ident.Map — this language has no case-folding rule, so case-insensitive
// lookup would be an outright correctness bug, not a simplification — and
// it gains the GetAt/AssignAt pair spec.md §4.3 calls for, which walk
// exactly `distance` hops via enclosing and then do a single local lookup
// with no chain fallback. Those are the mechanism by which the
// resolver's static hop counts (internal/resolver) turn into O(distance)
// environment walks instead of a dynamic name search.
type Environment struct {
	values    map[string]Value
	enclosing *Environment
}

// NewEnvironment creates a root-level environment with no enclosing scope.
func NewEnvironment() *Environment {
	return &Environment{values: make(map[string]Value)}
}

// NewEnclosedEnvironment creates a scope enclosed by outer, e.g. for a
// block, function call, or for-loop desugared scope.
func NewEnclosedEnvironment(outer *Environment) *Environment {
	return &Environment{values: make(map[string]Value), enclosing: outer}
}

// Define unconditionally (re)binds name in this scope, overwriting any
// existing same-name binding here. Used for var declarations and function
// parameter binding.
func (e *Environment) Define(name string, value Value) {
	e.values[name] = value
}

// Get looks up name, checking this scope then walking enclosing scopes.
// Fails with "Undefined variable 'X'." if name is bound nowhere in the
// chain.
func (e *Environment) Get(name token.Token) (Value, error) {
	if v, ok := e.values[name.Lexeme]; ok {
		return v, nil
	}
	if e.enclosing != nil {
		return e.enclosing.Get(name)
	}
	return nil, diag.NewRuntimeError(name, "Undefined variable '%s'.", name.Lexeme)
}

// Assign walks the same chain as Get but writes, failing with the same
// message if name is undefined anywhere in the chain.
func (e *Environment) Assign(name token.Token, value Value) error {
	if _, ok := e.values[name.Lexeme]; ok {
		e.values[name.Lexeme] = value
		return nil
	}
	if e.enclosing != nil {
		return e.enclosing.Assign(name, value)
	}
	return diag.NewRuntimeError(name, "Undefined variable '%s'.", name.Lexeme)
}

// GetAt walks exactly distance hops through enclosing and returns the
// local binding with no further fallback — the resolver has already
// guaranteed the binding is present there.
func (e *Environment) GetAt(distance int, name string) Value {
	return e.ancestor(distance).values[name]
}

// AssignAt is the write-side counterpart of GetAt.
func (e *Environment) AssignAt(distance int, name token.Token, value Value) {
	e.ancestor(distance).values[name.Lexeme] = value
}

func (e *Environment) ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance; i++ {
		env = env.enclosing
	}
	return env
}
