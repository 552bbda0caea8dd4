package scheme_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/kylelemons/godebug/pretty"

	scheme "github.com/dataronio/lisp-interpreter"
)

func TestSymbolInterning(t *testing.T) {
	ctx := scheme.Init()
	defer ctx.Shutdown()

	a := ctx.Intern("foo")
	b := ctx.Intern("FOO")
	c := ctx.Intern("bar")

	if !scheme.Eq(a, b) {
		t.Error("case-insensitive names must intern to the same symbol")
	}
	if scheme.Eq(a, c) {
		t.Error("distinct names must intern to distinct symbols")
	}
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		name string
		v    scheme.Value
		want bool
	}{
		{"zero is false", scheme.NewInt(0), false},
		{"nonzero int is true", scheme.NewInt(1), true},
		{"negative int is true", scheme.NewInt(-1), true},
		{"float zero is true", scheme.NewFloat(0), true},
		{"null is true", scheme.Null, true},
	}
	for _, tt := range tests {
		if got := tt.v.Truthy(); got != tt.want {
			t.Errorf("%s: Truthy() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestReadPrintRoundTrip(t *testing.T) {
	ctx := scheme.Init()
	defer ctx.Shutdown()

	sources := []string{
		"(1 2 3)",
		"(a b c)",
		`"hello"`,
		"3.5",
		"()",
		"(a . b)",
	}
	for _, src := range sources {
		v, err := scheme.Read(ctx, src)
		if err != nil {
			t.Fatalf("Read(%q): %v", src, err)
		}
		printed := scheme.Write(v)
		v2, err := scheme.Read(ctx, printed)
		if err != nil {
			t.Fatalf("Read(Write(Read(%q))): %v", src, err)
		}
		reprinted := scheme.Write(v2)
		if diff := cmp.Diff(printed, reprinted); diff != "" {
			t.Errorf("round trip not stable for %q (-first +second):\n%s", src, diff)
		}
	}
}

// TestReaderFiveElementListStructure is spec.md §8 scenario 7, checked
// against the exact printed shape rather than just the element count,
// with a human-readable diff on mismatch.
func TestReaderFiveElementListStructure(t *testing.T) {
	ctx := scheme.Init()
	defer ctx.Shutdown()

	v, err := scheme.Read(ctx, `(a 'b "c" 1 2.5)`)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	want := `(a (quote b) "c" 1 2.5)`
	got := scheme.Write(v)
	if diff := pretty.Compare(want, got); diff != "" {
		t.Errorf("reader scenario mismatch (-want +got):\n%s", diff)
	}
}
