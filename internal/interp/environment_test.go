package interp

import (
	"testing"

	"github.com/ochardlang/golox/internal/token"
)

func nameTok(lexeme string) token.Token {
	return token.Token{Type: token.IDENTIFIER, Lexeme: lexeme, Line: 1}
}

func TestEnvironmentDefineAndGet(t *testing.T) {
	env := NewEnvironment()
	env.Define("a", 1.0)
	v, err := env.Get(nameTok("a"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 1.0 {
		t.Errorf("expected 1.0, got %v", v)
	}
}

func TestEnvironmentGetUndefinedIsError(t *testing.T) {
	env := NewEnvironment()
	if _, err := env.Get(nameTok("missing")); err == nil {
		t.Fatalf("expected an error for an undefined variable")
	}
}

func TestEnvironmentGetWalksEnclosingChain(t *testing.T) {
	outer := NewEnvironment()
	outer.Define("a", "outer-value")
	inner := NewEnclosedEnvironment(outer)

	v, err := inner.Get(nameTok("a"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "outer-value" {
		t.Errorf("expected to find 'a' in the enclosing scope, got %v", v)
	}
}

func TestEnvironmentShadowingDoesNotMutateOuter(t *testing.T) {
	outer := NewEnvironment()
	outer.Define("a", "outer")
	inner := NewEnclosedEnvironment(outer)
	inner.Define("a", "inner")

	innerV, _ := inner.Get(nameTok("a"))
	outerV, _ := outer.Get(nameTok("a"))
	if innerV != "inner" || outerV != "outer" {
		t.Errorf("expected shadowing to leave the outer binding untouched, got inner=%v outer=%v", innerV, outerV)
	}
}

func TestEnvironmentAssignUndefinedIsError(t *testing.T) {
	env := NewEnvironment()
	if err := env.Assign(nameTok("missing"), 1.0); err == nil {
		t.Fatalf("expected an error assigning to an undefined variable")
	}
}

func TestEnvironmentAssignWalksEnclosingChain(t *testing.T) {
	outer := NewEnvironment()
	outer.Define("a", 1.0)
	inner := NewEnclosedEnvironment(outer)

	if err := inner.Assign(nameTok("a"), 2.0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, _ := outer.Get(nameTok("a"))
	if v != 2.0 {
		t.Errorf("expected assignment to reach the outer binding, got %v", v)
	}
}

func TestEnvironmentGetAtAndAssignAt(t *testing.T) {
	global := NewEnvironment()
	global.Define("a", "two-hops-away") // distance 2 from innermost
	mid := NewEnclosedEnvironment(global)
	mid.Define("a", "one-hop-away")
	inner := NewEnclosedEnvironment(mid)
	inner.Define("a", "zero-hops")

	if v := inner.GetAt(0, "a"); v != "zero-hops" {
		t.Errorf("GetAt(0) = %v, want zero-hops", v)
	}
	if v := inner.GetAt(1, "a"); v != "one-hop-away" {
		t.Errorf("GetAt(1) = %v, want one-hop-away", v)
	}
	if v := inner.GetAt(2, "a"); v != "two-hops-away" {
		t.Errorf("GetAt(2) = %v, want two-hops-away", v)
	}

	inner.AssignAt(1, nameTok("a"), "mutated")
	if v := mid.values["a"]; v != "mutated" {
		t.Errorf("AssignAt(1) did not mutate the mid scope, got %v", v)
	}
}
