package interp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/ochardlang/golox/internal/diag"
	"github.com/ochardlang/golox/internal/lexer"
	"github.com/ochardlang/golox/internal/parser"
	"github.com/ochardlang/golox/internal/resolver"
)

// run drives the full lexer -> parser -> resolver -> interpreter pipeline,
// the same wiring pkg/golox.Run exposes publicly, and returns stdout and
// stderr separately so tests can assert on `print` output and diagnostics
// independently.
func run(t *testing.T, source string) (stdout, stderr string) {
	t.Helper()
	var errBuf, outBuf bytes.Buffer
	report := diag.New(&errBuf)

	toks := lexer.New(source, report).ScanTokens()
	stmts := parser.New(toks, report).Parse()
	if report.HadError {
		return outBuf.String(), errBuf.String()
	}
	locals := resolver.New(report).Resolve(stmts)
	if report.HadError {
		return outBuf.String(), errBuf.String()
	}
	New(report, &outBuf, locals).Interpret(stmts)
	return outBuf.String(), errBuf.String()
}

func TestInterpretArithmeticAndPrint(t *testing.T) {
	stdout, stderr := run(t, `print 1 + 2 * 3;`)
	if stderr != "" {
		t.Fatalf("unexpected diagnostics: %s", stderr)
	}
	if stdout != "7\n" {
		t.Errorf("stdout = %q, want %q", stdout, "7\n")
	}
}

func TestInterpretNumberFormattingDropsTrailingZero(t *testing.T) {
	stdout, _ := run(t, `print 6 / 2; print 1.5; print 10 / 4;`)
	want := "3\n1.5\n2.5\n"
	if stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
}

func TestInterpretStringConcatenation(t *testing.T) {
	stdout, stderr := run(t, `print "foo" + "bar";`)
	if stderr != "" {
		t.Fatalf("unexpected diagnostics: %s", stderr)
	}
	if stdout != "foobar\n" {
		t.Errorf("stdout = %q, want %q", stdout, "foobar\n")
	}
}

func TestInterpretLexicalShadowingAcrossBlocks(t *testing.T) {
	// spec.md §8 "lexical shadowing": a block-local redeclaration must not
	// leak into, or be overwritten by, the outer scope's binding.
	src := `
	var a = "global";
	{
		var a = "block";
		print a;
	}
	print a;
	`
	stdout, stderr := run(t, src)
	if stderr != "" {
		t.Fatalf("unexpected diagnostics: %s", stderr)
	}
	want := "block\nglobal\n"
	if stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
}

func TestInterpretClosureCapturesDeclarationEnvironment(t *testing.T) {
	// spec.md §8 "closure capture": each call to makeCounter must capture
	// its own independent `count` binding.
	src := `
	fun makeCounter() {
		var count = 0;
		fun increment() {
			count = count + 1;
			return count;
		}
		return increment;
	}
	var counterA = makeCounter();
	var counterB = makeCounter();
	print counterA();
	print counterA();
	print counterB();
	`
	stdout, stderr := run(t, src)
	if stderr != "" {
		t.Fatalf("unexpected diagnostics: %s", stderr)
	}
	want := "1\n2\n1\n"
	if stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
}

func TestInterpretShortCircuitSkipsRightOperand(t *testing.T) {
	// The right side of `or`/`and` must never evaluate when the left side
	// already settles the result — here a call to a function that would
	// itself error if invoked proves it was skipped.
	src := `
	fun boom() {
		return 1 + "not a number";
	}
	print true or boom();
	print false and boom();
	`
	stdout, stderr := run(t, src)
	if stderr != "" {
		t.Fatalf("unexpected diagnostics (boom() should never have run): %s", stderr)
	}
	want := "true\nfalse\n"
	if stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
}

func TestInterpretReturnIsIdempotentAcrossNestedBlocks(t *testing.T) {
	// spec.md §8 "return idempotence": a `return` nested several blocks
	// deep inside a function must propagate all the way out without any
	// statement after it (in any enclosing block) running.
	src := `
	fun f() {
		{
			{
				return "early";
			}
			print "unreachable 1";
		}
		print "unreachable 2";
	}
	print f();
	`
	stdout, stderr := run(t, src)
	if stderr != "" {
		t.Fatalf("unexpected diagnostics: %s", stderr)
	}
	if stdout != "early\n" {
		t.Errorf("stdout = %q, want %q", stdout, "early\n")
	}
}

func TestInterpretReturnInsideLoopStopsIteration(t *testing.T) {
	src := `
	fun firstEven(limit) {
		for (var i = 0; i < limit; i = i + 1) {
			if (i == 2) return i;
		}
		return -1;
	}
	print firstEven(10);
	`
	stdout, _ := run(t, src)
	if stdout != "2\n" {
		t.Errorf("stdout = %q, want %q", stdout, "2\n")
	}
}

func TestInterpretFunctionFallsOffEndReturnsNil(t *testing.T) {
	stdout, _ := run(t, `fun f() { print "hi"; } print f();`)
	if stdout != "hi\nnil\n" {
		t.Errorf("stdout = %q, want %q", stdout, "hi\nnil\n")
	}
}

func TestInterpretUndefinedVariableIsRuntimeError(t *testing.T) {
	_, stderr := run(t, `print undefined_name;`)
	if !strings.Contains(stderr, "Undefined variable 'undefined_name'.") {
		t.Errorf("stderr = %q, expected undefined-variable message", stderr)
	}
	if !strings.Contains(stderr, "[line 1]") {
		t.Errorf("stderr = %q, expected a line tag", stderr)
	}
}

func TestInterpretTypeErrorOnArithmeticOperands(t *testing.T) {
	_, stderr := run(t, `print "foo" - 1;`)
	if !strings.Contains(stderr, "Operands must be numbers.") {
		t.Errorf("stderr = %q, expected numeric-operand error", stderr)
	}
}

func TestInterpretCallingNonCallableIsRuntimeError(t *testing.T) {
	_, stderr := run(t, `var x = 1; x();`)
	if !strings.Contains(stderr, "Can only call functions and classes.") {
		t.Errorf("stderr = %q, expected call-target error", stderr)
	}
}

func TestInterpretArityMismatchIsRuntimeError(t *testing.T) {
	_, stderr := run(t, `fun f(a, b) { return a + b; } f(1);`)
	if !strings.Contains(stderr, "Expected 2 arguments but got 1.") {
		t.Errorf("stderr = %q, expected arity-mismatch error", stderr)
	}
}

func TestInterpretRuntimeErrorStopsExecutionAtFirstStatement(t *testing.T) {
	// spec.md §4.6: the first runtime error halts the whole program; later
	// top-level statements never execute.
	stdout, _ := run(t, `print "before"; print 1 + "x"; print "after";`)
	if stdout != "before\n" {
		t.Errorf("stdout = %q, want only the pre-error output", stdout)
	}
}

func TestInterpretFibonacciEndToEnd(t *testing.T) {
	src := `
	fun fib(n) {
		if (n < 2) return n;
		return fib(n - 1) + fib(n - 2);
	}
	for (var i = 0; i < 8; i = i + 1) {
		print fib(i);
	}
	`
	stdout, stderr := run(t, src)
	if stderr != "" {
		t.Fatalf("unexpected diagnostics: %s", stderr)
	}
	snaps.MatchSnapshot(t, stdout)
}
