package stdlib_test

import (
	"testing"

	scheme "github.com/dataronio/lisp-interpreter"
	"github.com/dataronio/lisp-interpreter/stdlib"
)

func run(t *testing.T, ctx *scheme.Context, src string) scheme.Value {
	t.Helper()
	v, err := scheme.Run(ctx, src, ctx.GlobalEnv())
	if err != nil {
		t.Fatalf("Run(%q): %v", src, err)
	}
	return v
}

func newCtx() *scheme.Context {
	ctx := scheme.Init()
	stdlib.Register(ctx)
	return ctx
}

func TestArithmeticScenario(t *testing.T) {
	ctx := newCtx()
	defer ctx.Shutdown()

	v := run(t, ctx, "(+ 1 2 3)")
	if v.Tag() != scheme.TagInt || v.Int() != 6 {
		t.Errorf("(+ 1 2 3) = %s, want 6", scheme.Write(v))
	}
}

func TestArithmeticKindMixing(t *testing.T) {
	ctx := newCtx()
	defer ctx.Shutdown()

	// accumulator's kind wins: an Int accumulator stays Int even when
	// a Float operand arrives.
	v := run(t, ctx, "(+ 1 2.5)")
	if v.Tag() != scheme.TagInt {
		t.Errorf("(+ 1 2.5) should stay Int (accumulator kind wins), got %s", scheme.Write(v))
	}

	// a Float accumulator stays Float even when an Int operand arrives.
	v2 := run(t, ctx, "(+ 1.0 2)")
	if v2.Tag() != scheme.TagFloat {
		t.Errorf("(+ 1.0 2) should stay Float (accumulator kind wins), got %s", scheme.Write(v2))
	}
}

func TestFactorialScenario(t *testing.T) {
	ctx := newCtx()
	defer ctx.Shutdown()

	src := `(begin
	  (define fact (lambda (n) (if (= n 0) 1 (* n (fact (- n 1))))))
	  (fact 10))`
	v := run(t, ctx, src)
	if v.Tag() != scheme.TagInt || v.Int() != 3628800 {
		t.Errorf("(fact 10) = %s, want 3628800", scheme.Write(v))
	}
}

func TestListPrimitives(t *testing.T) {
	ctx := newCtx()
	defer ctx.Shutdown()

	v := run(t, ctx, "(length (list 1 2 3 4))")
	if v.Int() != 4 {
		t.Errorf("length = %s, want 4", scheme.Write(v))
	}

	v = run(t, ctx, "(append (list 1 2) (list 3 4))")
	if scheme.Write(v) != "(1 2 3 4)" {
		t.Errorf("append = %s, want (1 2 3 4)", scheme.Write(v))
	}

	v = run(t, ctx, "(nth (list 10 20 30) 1)")
	if v.Int() != 20 {
		t.Errorf("nth = %s, want 20", scheme.Write(v))
	}

	v = run(t, ctx, "(nav (quote caddr) (list 1 (list 2 3) 4))")
	if v.Int() != 4 {
		t.Errorf("nav caddr = %s, want 4", scheme.Write(v))
	}
}

func TestMapUsesApply(t *testing.T) {
	ctx := newCtx()
	defer ctx.Shutdown()

	src := `(map (lambda (x) (* x x)) (list 1 2 3 4))`
	v := run(t, ctx, src)
	if scheme.Write(v) != "(1 4 9 16)" {
		t.Errorf("map = %s, want (1 4 9 16)", scheme.Write(v))
	}
}

func TestAssertFailureReportsOriginalForm(t *testing.T) {
	ctx := newCtx()
	defer ctx.Shutdown()

	_, err := scheme.Run(ctx, "(assert (= 1 2))", ctx.GlobalEnv())
	if err == nil {
		t.Fatal("expected assertion failure")
	}
	if err.Kind != scheme.ErrBadArg {
		t.Errorf("expected ErrBadArg, got %v", err.Kind)
	}
	if scheme.Write(err.Form) != "(= 1 2)" {
		t.Errorf("assertion error should report the original form, got %s", scheme.Write(err.Form))
	}
}

func TestReverseBang(t *testing.T) {
	ctx := newCtx()
	defer ctx.Shutdown()

	v := run(t, ctx, "(reverse! (list 1 2 3))")
	if scheme.Write(v) != "(3 2 1)" {
		t.Errorf("reverse! = %s, want (3 2 1)", scheme.Write(v))
	}
}

func TestEvenOdd(t *testing.T) {
	ctx := newCtx()
	defer ctx.Shutdown()

	if v := run(t, ctx, "(even? 4)"); v.Int() != 1 {
		t.Errorf("(even? 4) = %s, want 1", scheme.Write(v))
	}
	if v := run(t, ctx, "(odd? 4)"); v.Int() != 0 {
		t.Errorf("(odd? 4) = %s, want 0", scheme.Write(v))
	}
}
