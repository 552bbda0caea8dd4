package stdlib

import (
	"fmt"

	scheme "github.com/dataronio/lisp-interpreter"
)

// numKind distinguishes the two numeric Tags arithmetic operates over.
func numKind(v Value) (scheme.Tag, error) {
	switch v.Tag() {
	case scheme.TagInt, scheme.TagFloat:
		return v.Tag(), nil
	default:
		return 0, fmt.Errorf("not a number")
	}
}

func asFloat(v Value) float64 {
	if v.Tag() == scheme.TagInt {
		return float64(v.Int())
	}
	return v.Float()
}

// accumulate folds args left to right under the rule spec.md gives for
// mixed-kind arithmetic: the accumulator's own kind governs each step,
// converting the incoming operand to match rather than promoting the
// accumulator to the operand's kind. So `(+ 1 2.5)` stays an Int (3),
// while `(+ 1.0 2)` stays a Float (3.0) — kind is decided once, by
// whichever operand arrives first into the accumulator.
func accumulate(name string, args []Value, identity Value, step func(acc, v Value) Value) (Value, error) {
	if len(args) == 0 {
		return identity, nil
	}
	if _, err := numKind(args[0]); err != nil {
		return scheme.Null, fmt.Errorf("%s: %v", name, err)
	}
	acc := args[0]
	for _, v := range args[1:] {
		if _, err := numKind(v); err != nil {
			return scheme.Null, fmt.Errorf("%s: %v", name, err)
		}
		acc = step(acc, v)
	}
	return acc, nil
}

// addStep, subStep, mulStep, and divStep are the per-operator step
// functions that honor the accumulator-kind-wins rule: each computes
// in the accumulator's own kind, converting v if v's kind differs.
func addStep(acc, v Value) Value {
	if acc.Tag() == scheme.TagInt {
		if v.Tag() == scheme.TagInt {
			return scheme.NewInt(acc.Int() + v.Int())
		}
		return scheme.NewInt(acc.Int() + int64(v.Float()))
	}
	return scheme.NewFloat(acc.Float() + asFloat(v))
}

func subStep(acc, v Value) Value {
	if acc.Tag() == scheme.TagInt {
		if v.Tag() == scheme.TagInt {
			return scheme.NewInt(acc.Int() - v.Int())
		}
		return scheme.NewInt(acc.Int() - int64(v.Float()))
	}
	return scheme.NewFloat(acc.Float() - asFloat(v))
}

func mulStep(acc, v Value) Value {
	if acc.Tag() == scheme.TagInt {
		if v.Tag() == scheme.TagInt {
			return scheme.NewInt(acc.Int() * v.Int())
		}
		return scheme.NewInt(acc.Int() * int64(v.Float()))
	}
	return scheme.NewFloat(acc.Float() * asFloat(v))
}

func divStep(acc, v Value) Value {
	if acc.Tag() == scheme.TagInt {
		if v.Tag() == scheme.TagInt {
			return scheme.NewInt(acc.Int() / v.Int())
		}
		return scheme.NewInt(acc.Int() / int64(v.Float()))
	}
	return scheme.NewFloat(acc.Float() / asFloat(v))
}

func primAdd(ctx *scheme.Context, args []Value) (Value, error) {
	return accumulate("+", args, scheme.NewInt(0), addStep)
}

func primSub(ctx *scheme.Context, args []Value) (Value, error) {
	if len(args) == 1 {
		if _, err := numKind(args[0]); err != nil {
			return scheme.Null, fmt.Errorf("-: %v", err)
		}
		return subStep(scheme.NewInt(0), args[0]), nil
	}
	return accumulate("-", args, scheme.NewInt(0), subStep)
}

func primMul(ctx *scheme.Context, args []Value) (Value, error) {
	return accumulate("*", args, scheme.NewInt(1), mulStep)
}

func primDiv(ctx *scheme.Context, args []Value) (Value, error) {
	if len(args) == 0 {
		return scheme.NewInt(1), nil
	}
	intAcc := args[0].Tag() == scheme.TagInt
	for _, v := range args[1:] {
		// an Int accumulator truncates a Float divisor, so 0.5 divides as 0
		if (v.Tag() == scheme.TagInt && v.Int() == 0) || (v.Tag() == scheme.TagFloat && (v.Float() == 0 || (intAcc && int64(v.Float()) == 0))) {
			return scheme.Null, fmt.Errorf("/: division by zero")
		}
	}
	return accumulate("/", args, scheme.NewInt(1), divStep)
}

// chainCompare reports whether cmp(args[i], args[i+1]) holds for every
// adjacent pair, the usual Scheme chained-comparison semantics
// ((< 1 2 3) is true iff 1<2 and 2<3).
func chainCompare(name string, args []Value, cmp func(a, b float64) bool) (Value, error) {
	for _, v := range args {
		if _, err := numKind(v); err != nil {
			return scheme.Null, fmt.Errorf("%s: %v", name, err)
		}
	}
	for i := 0; i+1 < len(args); i++ {
		if !cmp(asFloat(args[i]), asFloat(args[i+1])) {
			return boolValue(false), nil
		}
	}
	return boolValue(true), nil
}

func primNumEq(ctx *scheme.Context, args []Value) (Value, error) {
	return chainCompare("=", args, func(a, b float64) bool { return a == b })
}

func primLt(ctx *scheme.Context, args []Value) (Value, error) {
	return chainCompare("<", args, func(a, b float64) bool { return a < b })
}

func primGt(ctx *scheme.Context, args []Value) (Value, error) {
	return chainCompare(">", args, func(a, b float64) bool { return a > b })
}

func primLe(ctx *scheme.Context, args []Value) (Value, error) {
	return chainCompare("<=", args, func(a, b float64) bool { return a <= b })
}

func primGe(ctx *scheme.Context, args []Value) (Value, error) {
	return chainCompare(">=", args, func(a, b float64) bool { return a >= b })
}

func primEven(ctx *scheme.Context, args []Value) (Value, error) {
	if err := arity("even?", args, 1); err != nil {
		return scheme.Null, err
	}
	if args[0].Tag() != scheme.TagInt {
		return scheme.Null, fmt.Errorf("even?: expected an int")
	}
	return boolValue(args[0].Int()%2 == 0), nil
}

func primOdd(ctx *scheme.Context, args []Value) (Value, error) {
	if err := arity("odd?", args, 1); err != nil {
		return scheme.Null, err
	}
	if args[0].Tag() != scheme.TagInt {
		return scheme.Null, fmt.Errorf("odd?: expected an int")
	}
	return boolValue(args[0].Int()%2 != 0), nil
}
