package scheme

// Expand lowers surface forms to the small primitive language the
// evaluator understands: self-evaluating atoms, symbol references,
// IF, BEGIN, QUOTE, DEFINE, SET!, LAMBDA, and application. It never
// evaluates — only rewrites and validates structure — and is
// idempotent: Expand(Expand(e)) == Expand(e) for every well-formed e,
// since every rewrite target is itself already in the primitive
// language (and the primitive-language cases below are left alone or
// only re-expand their already-expanded children).
func Expand(ctx *Context, expr Value) (Value, *Error) {
	if expr.Tag() != TagPair {
		return expr, nil
	}
	car := Car(expr)
	if car.Tag() == TagSymbol {
		switch {
		case Eq(car, ctx.sym.quote):
			return expandQuote(ctx, expr)
		case Eq(car, ctx.sym.define):
			return expandDefine(ctx, expr)
		case Eq(car, ctx.sym.setBang):
			return expandSet(ctx, expr)
		case Eq(car, ctx.sym.cond):
			return expandCond(ctx, expr)
		case Eq(car, ctx.sym.and):
			return expandAnd(ctx, expr)
		case Eq(car, ctx.sym.or):
			return expandOr(ctx, expr)
		case Eq(car, ctx.sym.let):
			return expandLet(ctx, expr)
		case Eq(car, ctx.sym.lambda):
			return expandLambda(ctx, expr)
		case Eq(car, ctx.sym.assert):
			return expandAssert(ctx, expr)
		}
	}
	return expandEachElement(ctx, expr)
}

// expandEachElement recurses into both car and cdr of a generic Pair,
// which handles proper lists, dotted pairs, and application forms
// uniformly: Expand on a non-Pair tail just returns that atom.
func expandEachElement(ctx *Context, expr Value) (Value, *Error) {
	carE, err := Expand(ctx, Car(expr))
	if err != nil {
		return Null, err
	}
	cdrE, err := Expand(ctx, Cdr(expr))
	if err != nil {
		return Null, err
	}
	return Cons(ctx, carE, cdrE), nil
}

// expandQuote leaves (QUOTE x) untouched; its children are not
// recursed into.
func expandQuote(ctx *Context, expr Value) (Value, *Error) {
	if ListLen(expr) != 2 {
		return Null, newErr(ErrBadQuote)
	}
	return expr, nil
}

// expandDefine lowers both (DEFINE (name p...) body...) and
// (DEFINE name expr) forms.
func expandDefine(ctx *Context, expr Value) (Value, *Error) {
	rest, ok := ListToSlice(Cdr(expr))
	if !ok || len(rest) < 2 {
		return Null, newErr(ErrBadDefine)
	}
	target, bodies := rest[0], rest[1:]

	switch target.Tag() {
	case TagSymbol:
		if len(bodies) != 1 {
			return Null, newErr(ErrBadDefine)
		}
		exp, err := Expand(ctx, bodies[0])
		if err != nil {
			return Null, err
		}
		return SliceToList(ctx, []Value{ctx.sym.define, target, exp}), nil
	case TagPair:
		name := Car(target)
		if name.Tag() != TagSymbol {
			return Null, newErr(ErrBadDefine)
		}
		params := Cdr(target)
		lambdaForm := Cons(ctx, ctx.sym.lambda, Cons(ctx, params, SliceToList(ctx, bodies)))
		rewritten := SliceToList(ctx, []Value{ctx.sym.define, name, lambdaForm})
		return Expand(ctx, rewritten)
	default:
		return Null, newErr(ErrBadDefine)
	}
}

// expandSet lowers (SET! var expr); var must be a symbol.
func expandSet(ctx *Context, expr Value) (Value, *Error) {
	args, ok := ListToSlice(Cdr(expr))
	if !ok || len(args) != 2 || args[0].Tag() != TagSymbol {
		return Null, newErr(ErrBadSet)
	}
	exp, err := Expand(ctx, args[1])
	if err != nil {
		return Null, err
	}
	return SliceToList(ctx, []Value{ctx.sym.setBang, args[0], exp}), nil
}

// expandCond right-folds (COND (p0 e0) ... (ELSE en)) into nested IFs.
func expandCond(ctx *Context, expr Value) (Value, *Error) {
	clauses, ok := ListToSlice(Cdr(expr))
	if !ok {
		return Null, newErr(ErrBadCond)
	}
	acc := Null
	for i := len(clauses) - 1; i >= 0; i-- {
		parts, ok := ListToSlice(clauses[i])
		if !ok || len(parts) != 2 {
			return Null, newErr(ErrBadCond)
		}
		pred, conseq := parts[0], parts[1]
		if i == len(clauses)-1 && pred.Tag() == TagSymbol && Eq(pred, ctx.sym.elseSym) {
			exp, err := Expand(ctx, conseq)
			if err != nil {
				return Null, err
			}
			acc = exp
			continue
		}
		expPred, err := Expand(ctx, pred)
		if err != nil {
			return Null, err
		}
		expConseq, err := Expand(ctx, conseq)
		if err != nil {
			return Null, err
		}
		acc = SliceToList(ctx, []Value{ctx.sym.ifS, expPred, expConseq, acc})
	}
	return acc, nil
}

// expandAnd right-folds (AND a0 ... an) into nested IFs; the
// innermost success value is integer 1, so (AND 1 2 3) evaluates to
// 1, not 3 — a deliberate consequence of this lowering (spec.md §8
// scenario 6).
func expandAnd(ctx *Context, expr Value) (Value, *Error) {
	args, ok := ListToSlice(Cdr(expr))
	if !ok || len(args) < 1 {
		return Null, newErr(ErrBadAnd)
	}
	acc := NewInt(1)
	for i := len(args) - 1; i >= 0; i-- {
		exp, err := Expand(ctx, args[i])
		if err != nil {
			return Null, err
		}
		acc = SliceToList(ctx, []Value{ctx.sym.ifS, exp, acc, NewInt(0)})
	}
	return acc, nil
}

// expandOr right-folds (OR a0 ... an) into nested IFs.
func expandOr(ctx *Context, expr Value) (Value, *Error) {
	args, ok := ListToSlice(Cdr(expr))
	if !ok || len(args) < 1 {
		return Null, newErr(ErrBadOr)
	}
	acc := NewInt(0)
	for i := len(args) - 1; i >= 0; i-- {
		exp, err := Expand(ctx, args[i])
		if err != nil {
			return Null, err
		}
		acc = SliceToList(ctx, []Value{ctx.sym.ifS, exp, NewInt(1), acc})
	}
	return acc, nil
}

// expandLet lowers (LET ((v0 e0) ...) body...) into an immediately
// applied LAMBDA.
func expandLet(ctx *Context, expr Value) (Value, *Error) {
	rest, ok := ListToSlice(Cdr(expr))
	if !ok || len(rest) < 2 {
		return Null, newErr(ErrBadLet)
	}
	bindings, ok := ListToSlice(rest[0])
	if !ok {
		return Null, newErr(ErrBadLet)
	}
	bodies := rest[1:]

	var params, inits []Value
	for _, b := range bindings {
		parts, ok := ListToSlice(b)
		if !ok || len(parts) != 2 || parts[0].Tag() != TagSymbol {
			return Null, newErr(ErrBadLet)
		}
		params = append(params, parts[0])
		inits = append(inits, parts[1])
	}

	lambdaForm := Cons(ctx, ctx.sym.lambda, Cons(ctx, SliceToList(ctx, params), SliceToList(ctx, bodies)))
	appForm := Cons(ctx, lambdaForm, SliceToList(ctx, inits))
	return Expand(ctx, appForm)
}

// expandLambda lowers (LAMBDA (params...) body0 body1 ...) by
// wrapping multiple body expressions in a BEGIN.
func expandLambda(ctx *Context, expr Value) (Value, *Error) {
	rest, ok := ListToSlice(Cdr(expr))
	if !ok || len(rest) < 2 {
		return Null, newErr(ErrBadLambda)
	}
	params := rest[0]
	bodies := rest[1:]
	if _, ok := ListToSlice(params); !ok {
		return Null, newErr(ErrBadLambda)
	}

	var bodyForm Value
	if len(bodies) == 1 {
		bodyForm = bodies[0]
	} else {
		bodyForm = Cons(ctx, ctx.sym.begin, SliceToList(ctx, bodies))
	}
	expBody, err := Expand(ctx, bodyForm)
	if err != nil {
		return Null, err
	}
	return SliceToList(ctx, []Value{ctx.sym.lambda, params, expBody}), nil
}

// expandAssert lowers (ASSERT expr) to (ASSERT <expanded-expr> (QUOTE
// expr)), preserving the unexpanded form for diagnostics. An already
// lowered (ASSERT expr (QUOTE original)) has only its expression
// re-expanded, so expansion stays idempotent.
func expandAssert(ctx *Context, expr Value) (Value, *Error) {
	rest, ok := ListToSlice(Cdr(expr))
	if ok && len(rest) == 2 {
		exp, err := Expand(ctx, rest[0])
		if err != nil {
			return Null, err
		}
		return SliceToList(ctx, []Value{ctx.sym.assert, exp, rest[1]}), nil
	}
	if !ok || len(rest) != 1 {
		return Null, newErr(ErrBadArg)
	}
	inner := rest[0]
	exp, err := Expand(ctx, inner)
	if err != nil {
		return Null, err
	}
	quoted := SliceToList(ctx, []Value{ctx.sym.quote, inner})
	return SliceToList(ctx, []Value{ctx.sym.assert, exp, quoted}), nil
}
