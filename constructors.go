package scheme

// Cons allocates a new Pair block in the current from-space.
func Cons(ctx *Context, car, cdr Value) Value {
	block := ctx.fromHeap.alloc()
	block.tag = TagPair
	block.pair = &PairData{Car: car, Cdr: cdr}
	return Value{tag: TagPair, block: block}
}

// Car returns the car of a Pair Value; the caller must check Tag first.
func Car(p Value) Value { return p.block.pair.Car }

// Cdr returns the cdr of a Pair Value; the caller must check Tag first.
func Cdr(p Value) Value { return p.block.pair.Cdr }

// SetCar mutates the car of a Pair Value in place.
func SetCar(p, v Value) { p.block.pair.Car = v }

// SetCdr mutates the cdr of a Pair Value in place.
func SetCdr(p, v Value) { p.block.pair.Cdr = v }

// NewString allocates a new String block holding a copy of s.
func NewString(ctx *Context, s string) Value {
	block := ctx.fromHeap.alloc()
	block.tag = TagString
	block.str = &StringData{Bytes: []byte(s)}
	return Value{tag: TagString, block: block}
}

// StringValue returns the Go string held by a String Value.
func StringValue(v Value) string { return string(v.block.str.Bytes) }

// NewLambda allocates a new Lambda block closing over env.
func NewLambda(ctx *Context, params, body, env Value) Value {
	block := ctx.fromHeap.alloc()
	block.tag = TagLambda
	block.lambda = &LambdaData{
		Id:     ctx.nextLambdaID(),
		Params: params,
		Body:   body,
		Env:    env,
	}
	return Value{tag: TagLambda, block: block}
}

// LambdaParams, LambdaBody, and LambdaEnv project a Lambda Value's fields.
func LambdaParams(v Value) Value { return v.block.lambda.Params }
func LambdaBody(v Value) Value   { return v.block.lambda.Body }
func LambdaEnv(v Value) Value    { return v.block.lambda.Env }
func LambdaID(v Value) int64     { return v.block.lambda.Id }

// ListToSlice walks a proper list, collecting its elements into a Go
// slice. If the list is improper (a non-Null, non-Pair tail), ok is
// false.
func ListToSlice(v Value) (items []Value, ok bool) {
	for !v.IsNull() {
		if v.Tag() != TagPair {
			return items, false
		}
		items = append(items, Car(v))
		v = Cdr(v)
	}
	return items, true
}

// SliceToList builds a proper list from a Go slice, right to left.
func SliceToList(ctx *Context, items []Value) Value {
	result := Null
	for i := len(items) - 1; i >= 0; i-- {
		result = Cons(ctx, items[i], result)
	}
	return result
}

// ListLen returns the length of a proper list, or -1 if it is improper.
func ListLen(v Value) int {
	n := 0
	for !v.IsNull() {
		if v.Tag() != TagPair {
			return -1
		}
		n++
		v = Cdr(v)
	}
	return n
}
