package stdlib_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	scheme "github.com/dataronio/lisp-interpreter"
)

// TestScenariosOneThroughSix runs the input/result pairs numbered 1-6
// in spec.md's testable-properties section against the full
// Read+Expand+Eval+stdlib pipeline; scenario 7 is TestReaderScenario
// below and scenario 8 is gc_test.go's TestCollectPreservesRoot.
func TestScenariosOneThroughSix(t *testing.T) {
	ctx := newCtx()
	defer ctx.Shutdown()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{"1: sum", "(+ 1 2 3)", "6"},
		{"2: square via lambda", "((lambda (x) (* x x)) 5)", "25"},
		{"3: let binds two names", "(let ((a 1) (b 2)) (+ a b))", "3"},
		{
			"4: named factorial via define-with-params sugar",
			"(begin (define (fact n) (if (<= n 1) 1 (* n (fact (- n 1))))) (fact 6))",
			"720",
		},
		{"5: cond picks the matching clause", "(cond ((= 1 2) 'a) ((= 2 2) 'b) (else 'c))", "b"},
		{"6: and yields the innermost success value, not the last operand", "(and 1 2 3)", "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := scheme.Run(ctx, tt.src, ctx.GlobalEnv())
			assert.Nil(t, err, "Run(%q)", tt.src)
			assert.Equal(t, tt.want, scheme.Write(v), "Run(%q)", tt.src)
		})
	}
}

// TestReaderScenario is spec.md §8 scenario 7: a mixed-atom source
// reads to a 5-element list whose third element is the string "c".
func TestReaderScenario(t *testing.T) {
	ctx := newCtx()
	defer ctx.Shutdown()

	v, err := scheme.Read(ctx, `(a 'b "c" 1 2.5)`)
	assert.Nil(t, err)
	assert.Equal(t, 5, scheme.ListLen(v))

	items, ok := scheme.ListToSlice(v)
	assert.True(t, ok)
	assert.Equal(t, scheme.TagString, items[2].Tag())
	assert.Equal(t, "c", scheme.StringValue(items[2]))
}
