package stdlib

import (
	"fmt"

	scheme "github.com/dataronio/lisp-interpreter"
)

// arity checks the exact argument count a primitive expects, the same
// check the teacher's op table performs before dispatching an
// operator's callback.
func arity(name string, args []Value, n int) error {
	if len(args) != n {
		return fmt.Errorf("%s: expected %d argument(s), got %d", name, n, len(args))
	}
	return nil
}

type Value = scheme.Value

func primCons(ctx *scheme.Context, args []Value) (Value, error) {
	if err := arity("cons", args, 2); err != nil {
		return scheme.Null, err
	}
	return scheme.Cons(ctx, args[0], args[1]), nil
}

func primCar(ctx *scheme.Context, args []Value) (Value, error) {
	if err := arity("car", args, 1); err != nil {
		return scheme.Null, err
	}
	if args[0].Tag() != scheme.TagPair {
		return scheme.Null, fmt.Errorf("car: not a pair")
	}
	return scheme.Car(args[0]), nil
}

func primCdr(ctx *scheme.Context, args []Value) (Value, error) {
	if err := arity("cdr", args, 1); err != nil {
		return scheme.Null, err
	}
	if args[0].Tag() != scheme.TagPair {
		return scheme.Null, fmt.Errorf("cdr: not a pair")
	}
	return scheme.Cdr(args[0]), nil
}

// primNav implements `nav`: args[0] is a path symbol/string like
// "cadr" spelling a sequence of car/cdr steps applied right to left
// (the rightmost letter is the innermost, first-applied step), args[1]
// is the target pair. Grounded on the same "a" then "d" directional
// convention Scheme's cXr accessors use.
func primNav(ctx *scheme.Context, args []Value) (Value, error) {
	if err := arity("nav", args, 2); err != nil {
		return scheme.Null, err
	}
	var path string
	switch args[0].Tag() {
	case scheme.TagSymbol:
		path = scheme.Name(args[0])
	case scheme.TagString:
		path = scheme.StringValue(args[0])
	default:
		return scheme.Null, fmt.Errorf("nav: path must be a symbol or string")
	}
	if len(path) < 1 || path[0] != 'c' || path[len(path)-1] != 'r' {
		return scheme.Null, fmt.Errorf("nav: malformed path %q", path)
	}
	steps := path[1 : len(path)-1]
	v := args[1]
	for i := len(steps) - 1; i >= 0; i-- {
		if v.Tag() != scheme.TagPair {
			return scheme.Null, &scheme.Error{Kind: scheme.ErrOutOfBounds, Detail: fmt.Sprintf("nav: not a pair at step %q", path)}
		}
		switch steps[i] {
		case 'a':
			v = scheme.Car(v)
		case 'd':
			v = scheme.Cdr(v)
		default:
			return scheme.Null, fmt.Errorf("nav: malformed path %q", path)
		}
	}
	return v, nil
}

func primEq(ctx *scheme.Context, args []Value) (Value, error) {
	if err := arity("eq?", args, 2); err != nil {
		return scheme.Null, err
	}
	return boolValue(scheme.Eq(args[0], args[1])), nil
}

func primNullP(ctx *scheme.Context, args []Value) (Value, error) {
	if err := arity("null?", args, 1); err != nil {
		return scheme.Null, err
	}
	return boolValue(args[0].IsNull()), nil
}

func primList(ctx *scheme.Context, args []Value) (Value, error) {
	return scheme.SliceToList(ctx, args), nil
}

func primAppend(ctx *scheme.Context, args []Value) (Value, error) {
	var all []Value
	for _, a := range args {
		items, ok := scheme.ListToSlice(a)
		if !ok {
			return scheme.Null, fmt.Errorf("append: improper list argument")
		}
		all = append(all, items...)
	}
	return scheme.SliceToList(ctx, all), nil
}

// primMap applies args[0] (a Lambda or Primitive) to the elements of
// args[1:] in lockstep, the same way the core evaluator applies an
// operator to its arguments, via the exported Apply entry point so
// this primitive never needs to reimplement dispatch.
func primMap(ctx *scheme.Context, args []Value) (Value, error) {
	if len(args) < 2 {
		return scheme.Null, fmt.Errorf("map: expected a function and at least one list")
	}
	fn := args[0]
	lists := make([][]Value, len(args)-1)
	n := -1
	for i, a := range args[1:] {
		items, ok := scheme.ListToSlice(a)
		if !ok {
			return scheme.Null, fmt.Errorf("map: improper list argument")
		}
		lists[i] = items
		if n == -1 || len(items) < n {
			n = len(items)
		}
	}
	result := make([]Value, n)
	for i := 0; i < n; i++ {
		callArgs := make([]Value, len(lists))
		for j, l := range lists {
			callArgs[j] = l[i]
		}
		v, err := scheme.Apply(ctx, fn, callArgs)
		if err != nil {
			return scheme.Null, err
		}
		result[i] = v
	}
	return scheme.SliceToList(ctx, result), nil
}

func primNth(ctx *scheme.Context, args []Value) (Value, error) {
	if err := arity("nth", args, 2); err != nil {
		return scheme.Null, err
	}
	if args[1].Tag() != scheme.TagInt {
		return scheme.Null, fmt.Errorf("nth: index must be an int")
	}
	idx := args[1].Int()
	v := args[0]
	for i := int64(0); i < idx; i++ {
		if v.Tag() != scheme.TagPair {
			return scheme.Null, &scheme.Error{Kind: scheme.ErrOutOfBounds}
		}
		v = scheme.Cdr(v)
	}
	if v.Tag() != scheme.TagPair {
		return scheme.Null, &scheme.Error{Kind: scheme.ErrOutOfBounds}
	}
	return scheme.Car(v), nil
}

func primLength(ctx *scheme.Context, args []Value) (Value, error) {
	if err := arity("length", args, 1); err != nil {
		return scheme.Null, err
	}
	n := scheme.ListLen(args[0])
	if n < 0 {
		return scheme.Null, fmt.Errorf("length: improper list")
	}
	return scheme.NewInt(int64(n)), nil
}

// primReverseBang reverses a list in place by relinking cdrs, matching
// the destructive reverse! naming convention (trailing bang).
func primReverseBang(ctx *scheme.Context, args []Value) (Value, error) {
	if err := arity("reverse!", args, 1); err != nil {
		return scheme.Null, err
	}
	var prev = scheme.Null
	cur := args[0]
	for cur.Tag() == scheme.TagPair {
		next := scheme.Cdr(cur)
		scheme.SetCdr(cur, prev)
		prev = cur
		cur = next
	}
	return prev, nil
}

// primAssoc searches an association list (a list of (key . value)
// pairs) for the first entry whose key is Eq to args[0].
func primAssoc(ctx *scheme.Context, args []Value) (Value, error) {
	if err := arity("assoc", args, 2); err != nil {
		return scheme.Null, err
	}
	key := args[0]
	v := args[1]
	for v.Tag() == scheme.TagPair {
		entry := scheme.Car(v)
		if entry.Tag() == scheme.TagPair && scheme.Eq(scheme.Car(entry), key) {
			return entry, nil
		}
		v = scheme.Cdr(v)
	}
	return scheme.Null, nil
}

func primDisplay(ctx *scheme.Context, args []Value) (Value, error) {
	if err := arity("display", args, 1); err != nil {
		return scheme.Null, err
	}
	fmt.Print(scheme.Display(args[0]))
	return scheme.Null, nil
}

func primNewline(ctx *scheme.Context, args []Value) (Value, error) {
	if err := arity("newline", args, 0); err != nil {
		return scheme.Null, err
	}
	fmt.Println()
	return scheme.Null, nil
}

// primAssert checks that args[0] (already evaluated by the expander's
// lowering of ASSERT to an ordinary application) is truthy, reporting
// the original unevaluated form (args[1], quoted by the expander) as
// the failure's Form when it is not.
func primAssert(ctx *scheme.Context, args []Value) (Value, error) {
	if err := arity("assert", args, 2); err != nil {
		return scheme.Null, err
	}
	if !args[0].Truthy() {
		return scheme.Null, &scheme.Error{Kind: scheme.ErrBadArg, Detail: "assertion failed", Form: args[1]}
	}
	return scheme.Null, nil
}

func primReadPath(ctx *scheme.Context, args []Value) (Value, error) {
	if err := arity("read-path", args, 1); err != nil {
		return scheme.Null, err
	}
	if args[0].Tag() != scheme.TagString {
		return scheme.Null, fmt.Errorf("read-path: expected a string path")
	}
	v, serr := scheme.ReadPath(ctx, scheme.StringValue(args[0]))
	if serr != nil {
		return scheme.Null, serr
	}
	return v, nil
}

func primExpand(ctx *scheme.Context, args []Value) (Value, error) {
	if err := arity("expand", args, 1); err != nil {
		return scheme.Null, err
	}
	v, serr := scheme.Expand(ctx, args[0])
	if serr != nil {
		return scheme.Null, serr
	}
	return v, nil
}

func boolValue(b bool) Value {
	if b {
		return scheme.NewInt(1)
	}
	return scheme.NewInt(0)
}
