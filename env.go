package scheme

// An Environment is a list of Tables forming the lexical scope chain:
// a Pair whose car is the head frame (a Table) and whose cdr is the
// enclosing Environment, terminated by Null for the outermost scope.
// Extending an environment conses a new frame onto an existing one
// without mutating it, so closures capturing the original chain see a
// stable view even as new frames are pushed elsewhere.

// NewEnv conses a fresh frame of the given capacity onto parent,
// returning the extended Environment.
func NewEnv(ctx *Context, parent Value, capacity int) Value {
	frame := NewTable(ctx, capacity)
	frame.Block().table.IsEnvFrm = true
	block := ctx.fromHeap.alloc()
	block.tag = TagPair
	block.pair = &PairData{Car: frame, Cdr: parent}
	return Value{tag: TagPair, block: block}
}

// EnvLookup walks env frame by frame (car to cdr) looking for sym,
// returning its bound value and true on success.
func EnvLookup(env Value, sym Value) (Value, bool) {
	for e := env; !e.IsNull(); e = e.Block().pair.Cdr {
		frame := e.Block().pair.Car
		kv := TableGet(frame, sym)
		if !kv.IsNull() {
			return kv.Block().pair.Cdr, true
		}
	}
	return Null, false
}

// EnvDefine binds sym to val in the head frame of env only, per
// spec.md's "define mutates the head frame only" rule.
func EnvDefine(ctx *Context, env Value, sym, val Value) {
	head := env.Block().pair.Car
	TableSet(ctx, head, sym, val)
}

// EnvSet mutates the nearest frame that already binds sym, returning
// false if no frame binds it (the caller reports UNKNOWN_VAR).
func EnvSet(ctx *Context, env Value, sym, val Value) bool {
	for e := env; !e.IsNull(); e = e.Block().pair.Cdr {
		frame := e.Block().pair.Car
		kv := TableGet(frame, sym)
		if !kv.IsNull() {
			TableSet(ctx, frame, sym, val)
			return true
		}
	}
	return false
}
