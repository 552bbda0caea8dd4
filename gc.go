package scheme

// Collect runs a full Cheney-style copying collection. root is the
// caller's "root to save" argument: any Value the host wants to
// survive the collection must be passed here (or be reachable from
// the symbol table or the global environment), since every other
// from-space value becomes unreachable garbage once the heaps swap.
// Collect returns the relocated root — the caller's old handle is
// invalid after this call.
//
// The collector may be invoked only between top-level expressions or
// at explicit user request (spec.md §4.9); nothing about Collect
// itself enforces that — it is a caller discipline.
func Collect(ctx *Context, root Value) Value {
	// 1. Move roots: symbol table, global environment, and the
	// explicit root-to-save.
	ctx.symtab.relocate(ctx)
	ctx.globalEnv = gcMove(ctx, ctx.globalEnv)
	newRoot := gcMove(ctx, root)

	// cached special-form symbols are already-interned Symbols that
	// share blocks with the symbol table's entries: whichever of this
	// move and the to-space scan reaches a Symbol first copies it, and
	// the other gets its forwarding address.
	ctx.sym = symTable{
		quote:   gcMove(ctx, ctx.sym.quote),
		ifS:     gcMove(ctx, ctx.sym.ifS),
		begin:   gcMove(ctx, ctx.sym.begin),
		define:  gcMove(ctx, ctx.sym.define),
		setBang: gcMove(ctx, ctx.sym.setBang),
		lambda:  gcMove(ctx, ctx.sym.lambda),
		assert:  gcMove(ctx, ctx.sym.assert),
		cond:    gcMove(ctx, ctx.sym.cond),
		and:     gcMove(ctx, ctx.sym.and),
		or:      gcMove(ctx, ctx.sym.or),
		let:     gcMove(ctx, ctx.sym.let),
		elseSym: gcMove(ctx, ctx.sym.elseSym),
	}

	// 2. Scan to-space linearly. New blocks may be appended to
	// to-space while scanning (table reshapes, freshly relocated
	// pairs/lambdas); the loop bound is re-read every iteration so
	// the scan catches them (the classic Cheney two-finger scan).
	for i := 0; i < ctx.toHeap.total(); i++ {
		b := ctx.toHeap.at(i)
		if b.gcFlags&gcVisited != 0 {
			continue
		}
		switch b.tag {
		case TagPair:
			b.pair.Car = gcMove(ctx, b.pair.Car)
			b.pair.Cdr = gcMove(ctx, b.pair.Cdr)
		case TagLambda:
			b.lambda.Params = gcMove(ctx, b.lambda.Params)
			b.lambda.Body = gcMove(ctx, b.lambda.Body)
			b.lambda.Env = gcMove(ctx, b.lambda.Env)
		case TagTable:
			for j := range b.table.Buckets {
				b.table.Buckets[j] = gcMove(ctx, b.table.Buckets[j])
			}
		case TagSymbol, TagString:
			// no interior Values to relocate
		}
		b.gcFlags |= gcVisited
	}

	// 3. Swap heaps: the dead from-space is discarded, and to-space
	// becomes the new from-space.
	ctx.fromHeap.reset()
	ctx.fromHeap, ctx.toHeap = ctx.toHeap, ctx.fromHeap

	return newRoot
}

// gcMove relocates a single Value from from-space to to-space,
// returning its to-space equivalent. Immediates are returned
// unchanged. Heap blocks already MOVED return their stored forwarding
// address; otherwise a same-shape block is bump-allocated in
// to-space, the source is marked MOVED with a forwarding pointer, and
// the to-space Value is returned. Interior Values (pair cars/cdrs,
// lambda fields, table entries) are relocated later by the linear
// to-space scan in Collect, not here — gcMove only ever copies one
// block shallowly, except for Table, which must reshape immediately
// because its bucket layout depends on capacity.
func gcMove(ctx *Context, v Value) Value {
	switch v.Tag() {
	case TagNull, TagInt, TagFloat, TagPrimitive:
		return v
	}

	b := v.Block()
	if b.gcFlags&gcMoved != 0 {
		return Value{tag: v.Tag(), block: b.forward}
	}

	switch b.tag {
	case TagPair:
		nb := ctx.toHeap.alloc()
		nb.tag = TagPair
		nb.pair = &PairData{Car: b.pair.Car, Cdr: b.pair.Cdr}
		b.gcFlags |= gcMoved
		b.forward = nb
		return Value{tag: TagPair, block: nb}

	case TagSymbol:
		nb := ctx.toHeap.alloc()
		nb.tag = TagSymbol
		nb.symbol = b.symbol
		nb.gcFlags |= gcVisited // no interior Values; nothing left to scan
		b.gcFlags |= gcMoved
		b.forward = nb
		return Value{tag: TagSymbol, block: nb}

	case TagString:
		nb := ctx.toHeap.alloc()
		nb.tag = TagString
		nb.str = b.str
		nb.gcFlags |= gcVisited
		b.gcFlags |= gcMoved
		b.forward = nb
		return Value{tag: TagString, block: nb}

	case TagLambda:
		nb := ctx.toHeap.alloc()
		nb.tag = TagLambda
		nb.lambda = &LambdaData{Id: b.lambda.Id, Params: b.lambda.Params, Body: b.lambda.Body, Env: b.lambda.Env}
		b.gcFlags |= gcMoved
		b.forward = nb
		return Value{tag: TagLambda, block: nb}

	case TagTable:
		return gcMoveTable(ctx, b)

	default:
		return v
	}
}

// gcMoveTable relocates a Table block, reshaping its bucket capacity
// when the load factor has drifted outside [0.1, 0.75] (spec.md
// §4.3/§4.9). Every entry is re-hashed into the new capacity; the
// freshly allocated bucket-chain links are pre-marked VISITED since
// their contents are already to-space values, but the (key . value)
// pairs they reference are left for the ordinary scan to relocate.
func gcMoveTable(ctx *Context, b *Block) Value {
	td := b.table
	newCap := len(td.Buckets)
	if lf := loadFactor(td); lf < 0.1 || lf > 0.75 {
		newCap = idealCapacity(td.Size)
	}

	nb := ctx.toHeap.alloc()
	nb.tag = TagTable
	nb.table = &TableData{Buckets: make([]Value, newCap), IsEnvFrm: td.IsEnvFrm}
	b.gcFlags |= gcMoved
	b.forward = nb

	for _, head := range td.Buckets {
		for entry := head; !entry.IsNull(); entry = entry.Block().pair.Cdr {
			kv := entry.Block().pair.Car
			newKV := gcMove(ctx, kv) // relocates the (key . value) pair shell; its fields are scanned later

			entryBlock := ctx.toHeap.alloc()
			entryBlock.tag = TagPair
			entryBlock.gcFlags |= gcVisited // freshly built bucket-chain link: scan must not reprocess it

			key := newKV.Block().pair.Car
			idx := int(hashValue(key)) % newCap
			entryBlock.pair = &PairData{Car: newKV, Cdr: nb.table.Buckets[idx]}
			nb.table.Buckets[idx] = Value{tag: TagPair, block: entryBlock}
		}
	}
	nb.table.Size = td.Size

	return Value{tag: TagTable, block: nb}
}
