package scheme

// Eval is the trampolined tree-walking evaluator. Tail positions in
// IF, BEGIN, and lambda application reuse this function's loop
// iteration instead of recursing, so a self tail call runs in
// constant Go stack space; recursion is used only for sub-evaluations
// (predicates, the operator, and arguments).
func Eval(ctx *Context, expr, env Value) (Value, *Error) {
	for {
		switch expr.Tag() {
		case TagInt, TagFloat, TagString, TagLambda, TagNull, TagPrimitive, TagTable:
			return expr, nil

		case TagSymbol:
			v, ok := EnvLookup(env, expr)
			if !ok {
				return Null, newErrf(ErrUnknownVar, "%s", Name(expr))
			}
			return v, nil

		case TagPair:
			car := Car(expr)
			if car.Tag() == TagSymbol {
				switch {
				case Eq(car, ctx.sym.ifS):
					parts, ok := ListToSlice(Cdr(expr))
					if !ok || len(parts) != 3 {
						return Null, newErr(ErrUnknownEval)
					}
					p, err := Eval(ctx, parts[0], env)
					if err != nil {
						return Null, err
					}
					if p.Truthy() {
						expr = parts[1]
					} else {
						expr = parts[2]
					}
					continue

				case Eq(car, ctx.sym.begin):
					parts, ok := ListToSlice(Cdr(expr))
					if !ok {
						return Null, newErr(ErrUnknownEval)
					}
					if len(parts) == 0 {
						return Null, nil
					}
					for i := 0; i < len(parts)-1; i++ {
						if _, err := Eval(ctx, parts[i], env); err != nil {
							return Null, err
						}
					}
					expr = parts[len(parts)-1]
					continue

				case Eq(car, ctx.sym.quote):
					parts, ok := ListToSlice(Cdr(expr))
					if !ok || len(parts) != 1 {
						return Null, newErr(ErrBadQuote)
					}
					return parts[0], nil

				case Eq(car, ctx.sym.define):
					parts, ok := ListToSlice(Cdr(expr))
					if !ok || len(parts) != 2 || parts[0].Tag() != TagSymbol {
						return Null, newErr(ErrBadDefine)
					}
					v, err := Eval(ctx, parts[1], env)
					if err != nil {
						return Null, err
					}
					EnvDefine(ctx, env, parts[0], v)
					return Null, nil

				case Eq(car, ctx.sym.setBang):
					parts, ok := ListToSlice(Cdr(expr))
					if !ok || len(parts) != 2 || parts[0].Tag() != TagSymbol {
						return Null, newErr(ErrBadSet)
					}
					v, err := Eval(ctx, parts[1], env)
					if err != nil {
						return Null, err
					}
					if !EnvSet(ctx, env, parts[0], v) {
						return Null, newErrf(ErrUnknownVar, "%s", Name(parts[0]))
					}
					return Null, nil

				case Eq(car, ctx.sym.lambda):
					parts, ok := ListToSlice(Cdr(expr))
					if !ok || len(parts) != 2 {
						return Null, newErr(ErrBadLambda)
					}
					return NewLambda(ctx, parts[0], parts[1], env), nil
				}
				// ASSERT is not a form the evaluator recognizes
				// directly (spec.md §4.7 lists IF, BEGIN, QUOTE,
				// DEFINE, SET!, LAMBDA, and application only); the
				// expander's (ASSERT expanded-expr (QUOTE original))
				// output falls through to ordinary application of the
				// host-registered "assert" primitive below.
			}

			// Application: evaluate the operator, then each argument
			// left to right, collecting into a fresh list.
			opv, err := Eval(ctx, car, env)
			if err != nil {
				return Null, err
			}
			argExprs, ok := ListToSlice(Cdr(expr))
			if !ok {
				return Null, newErr(ErrUnknownEval)
			}
			args := make([]Value, len(argExprs))
			for i, a := range argExprs {
				v, err := Eval(ctx, a, env)
				if err != nil {
					return Null, err
				}
				args[i] = v
			}

			switch opv.Tag() {
			case TagPrimitive:
				res, err := callPrimitive(ctx, opv, args)
				if err != nil {
					return Null, err
				}
				return res, nil

			case TagLambda:
				newEnv, body, err := enterLambda(ctx, opv, args)
				if err != nil {
					return Null, err
				}
				expr = body
				env = newEnv
				continue

			default:
				return Null, newErr(ErrBadOp)
			}

		default:
			return Null, newErr(ErrUnknownEval)
		}
	}
}

// callPrimitive invokes a Primitive Value's host callback, converting
// a plain Go error into the ErrBadArg kind unless it is already a
// structured *Error.
func callPrimitive(ctx *Context, fn Value, args []Value) (Value, *Error) {
	res, err := fn.Primitive()(ctx, args)
	if err != nil {
		if se, ok := err.(*Error); ok {
			return Null, se
		}
		return Null, newErrf(ErrBadArg, "%v", err)
	}
	return res, nil
}

// enterLambda binds args to a Lambda's parameters in a fresh frame
// extending its captured environment, returning the new environment
// and the lambda's body — the (env, expr) pair a tail call continues
// with.
func enterLambda(ctx *Context, fn Value, args []Value) (env, body Value, err *Error) {
	params, ok := ListToSlice(LambdaParams(fn))
	if !ok {
		return Null, Null, newErr(ErrBadOp)
	}
	if len(params) != len(args) {
		return Null, Null, newErrf(ErrBadArg, "expected %d arguments, got %d", len(params), len(args))
	}
	newEnv := NewEnv(ctx, LambdaEnv(fn), DefaultFrameCapacity)
	for i, p := range params {
		EnvDefine(ctx, newEnv, p, args[i])
	}
	return newEnv, LambdaBody(fn), nil
}

// Apply invokes fn (a Primitive or Lambda Value) with args and
// returns its result. Unlike the trampoline inside Eval, a Lambda
// applied through Apply recurses into Eval rather than reusing a
// trampoline frame; it exists for host code (e.g. the stdlib's `map`)
// that needs to invoke a Scheme value as a callback without hand
// re-implementing application dispatch.
func Apply(ctx *Context, fn Value, args []Value) (Value, *Error) {
	switch fn.Tag() {
	case TagPrimitive:
		return callPrimitive(ctx, fn, args)
	case TagLambda:
		newEnv, body, err := enterLambda(ctx, fn, args)
		if err != nil {
			return Null, err
		}
		return Eval(ctx, body, newEnv)
	default:
		return Null, newErr(ErrBadOp)
	}
}
