package scheme_test

import (
	"testing"

	scheme "github.com/dataronio/lisp-interpreter"
)

// runExpr reads, expands, and evaluates a single top-level form in
// ctx's global environment. No stdlib primitives are registered; each
// test defines inline only the primitives it needs, so these tests
// stick to what the evaluator itself guarantees.
func runExpr(t *testing.T, ctx *scheme.Context, src string) scheme.Value {
	t.Helper()
	v, err := scheme.Run(ctx, src, ctx.GlobalEnv())
	if err != nil {
		t.Fatalf("Run(%q): %v", src, err)
	}
	return v
}

func TestEvalArithmeticDefinedInline(t *testing.T) {
	ctx := scheme.Init()
	defer ctx.Shutdown()
	ctx.Define("+", scheme.NewPrimitive(func(ctx *scheme.Context, args []scheme.Value) (scheme.Value, error) {
		var sum int64
		for _, a := range args {
			sum += a.Int()
		}
		return scheme.NewInt(sum), nil
	}))

	v := runExpr(t, ctx, "(+ 1 2 3)")
	if v.Tag() != scheme.TagInt || v.Int() != 6 {
		t.Errorf("(+ 1 2 3) = %s, want 6", scheme.Write(v))
	}
}

func TestEvalIfIsTailCalled(t *testing.T) {
	ctx := scheme.Init()
	defer ctx.Shutdown()
	ctx.Define("-", scheme.NewPrimitive(func(ctx *scheme.Context, args []scheme.Value) (scheme.Value, error) {
		return scheme.NewInt(args[0].Int() - args[1].Int()), nil
	}))

	// a self tail-recursive countdown; constant-stack termination is
	// exercised at larger n in gc_test.go, this just checks correctness.
	src := `(begin
	  (define count (lambda (n) (if n (count (- n 1)) 0)))
	  (count 5))`
	v := runExpr(t, ctx, src)
	if v.Tag() != scheme.TagInt || v.Int() != 0 {
		t.Errorf("countdown result = %s, want 0", scheme.Write(v))
	}
}

func TestClosureCapturesDefinitionEnvironment(t *testing.T) {
	ctx := scheme.Init()
	defer ctx.Shutdown()
	ctx.Define("+", scheme.NewPrimitive(func(ctx *scheme.Context, args []scheme.Value) (scheme.Value, error) {
		return scheme.NewInt(args[0].Int() + args[1].Int()), nil
	}))

	src := `(begin
	  (define make-adder (lambda (x) (lambda (y) (+ x y))))
	  (define add5 (make-adder 5))
	  (define x 999)
	  (add5 1))`
	v := runExpr(t, ctx, src)
	if v.Tag() != scheme.TagInt || v.Int() != 6 {
		t.Errorf("closure should see x=5 captured at definition, got %s", scheme.Write(v))
	}
}

func TestDefineMutatesHeadFrameSetMutatesNearest(t *testing.T) {
	ctx := scheme.Init()
	defer ctx.Shutdown()

	src := `(begin
	  (define x 1)
	  (define f (lambda () (set! x 2)))
	  (f)
	  x)`
	v := runExpr(t, ctx, src)
	if v.Tag() != scheme.TagInt || v.Int() != 2 {
		t.Errorf("set! should mutate the outer binding, got %s", scheme.Write(v))
	}
}

func TestUnboundVariableError(t *testing.T) {
	ctx := scheme.Init()
	defer ctx.Shutdown()

	_, err := scheme.Run(ctx, "undefined-name", ctx.GlobalEnv())
	if err == nil || err.Kind != scheme.ErrUnknownVar {
		t.Fatalf("expected ErrUnknownVar, got %v", err)
	}
}

func TestCondScenario(t *testing.T) {
	ctx := scheme.Init()
	defer ctx.Shutdown()
	ctx.Define("=", scheme.NewPrimitive(func(ctx *scheme.Context, args []scheme.Value) (scheme.Value, error) {
		if args[0].Int() == args[1].Int() {
			return scheme.NewInt(1), nil
		}
		return scheme.NewInt(0), nil
	}))

	src := `(cond ((= 1 2) 10) ((= 1 1) 20) (else 30))`
	v := runExpr(t, ctx, src)
	if v.Tag() != scheme.TagInt || v.Int() != 20 {
		t.Errorf("cond should pick the first truthy clause, got %s", scheme.Write(v))
	}
}

func TestAndLoweringYieldsInnermostSuccessValue(t *testing.T) {
	ctx := scheme.Init()
	defer ctx.Shutdown()

	// AND lowers to right-folded nested IFs whose innermost success
	// value is the literal 1, so (and 1 2 3) evaluates to 1, not 3
	// (expandAnd's documented deliberate consequence of this lowering
	// — see expand.go).
	v := runExpr(t, ctx, "(and 1 2 3)")
	if v.Tag() != scheme.TagInt || v.Int() != 1 {
		t.Errorf("(and 1 2 3) = %s, want 1", scheme.Write(v))
	}
}

func TestReaderFiveElementList(t *testing.T) {
	ctx := scheme.Init()
	defer ctx.Shutdown()

	v, err := scheme.Read(ctx, "(a b c d e)")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if n := scheme.ListLen(v); n != 5 {
		t.Errorf("ListLen = %d, want 5", n)
	}
}
