package scheme

// Context is the interpreter's entire global state: the from-heap,
// the to-heap, the symbol table, the global environment, and a
// monotonically increasing lambda id counter. No process state lives
// outside a Context, so multiple Contexts may coexist (each one
// single-threaded internally, per spec.md §5).
//
// Lifecycle: Init -> (Read|Expand|Eval|Collect)* -> Shutdown.
type Context struct {
	fromHeap  *Heap
	toHeap    *Heap
	symtab    *SymbolTable
	globalEnv Value
	nextLamID int64

	// cached interned symbols for special forms and expander
	// rewrite targets, populated once at Init.
	sym symTable
}

type symTable struct {
	quote, ifS, begin, define, setBang, lambda, assert Value
	cond, and, or, let, elseSym                         Value
}

// Init constructs a fresh Context: two empty paged heaps, an empty
// symbol table, and a global environment consisting of a single
// frame.
func Init() *Context {
	ctx := &Context{
		fromHeap: NewHeap(DefaultPageSize),
		toHeap:   NewHeap(DefaultPageSize),
	}
	ctx.symtab = NewSymbolTable()
	ctx.globalEnv = NewEnv(ctx, Null, DefaultFrameCapacity*4)
	ctx.sym = symTable{
		quote:   ctx.symtab.Intern(ctx, "quote"),
		ifS:     ctx.symtab.Intern(ctx, "if"),
		begin:   ctx.symtab.Intern(ctx, "begin"),
		define:  ctx.symtab.Intern(ctx, "define"),
		setBang: ctx.symtab.Intern(ctx, "set!"),
		lambda:  ctx.symtab.Intern(ctx, "lambda"),
		assert:  ctx.symtab.Intern(ctx, "assert"),
		cond:    ctx.symtab.Intern(ctx, "cond"),
		and:     ctx.symtab.Intern(ctx, "and"),
		or:      ctx.symtab.Intern(ctx, "or"),
		let:     ctx.symtab.Intern(ctx, "let"),
		elseSym: ctx.symtab.Intern(ctx, "else"),
	}
	return ctx
}

// Shutdown releases the Context's heaps. Any Value held by the host
// after Shutdown is invalid.
func (ctx *Context) Shutdown() {
	ctx.fromHeap.reset()
	ctx.toHeap.reset()
	ctx.symtab = nil
}

// GlobalEnv returns the interpreter's global environment.
func (ctx *Context) GlobalEnv() Value { return ctx.globalEnv }

// Intern exposes the Context's symbol table to hosts that register
// additional primitives.
func (ctx *Context) Intern(name string) Value { return ctx.symtab.Intern(ctx, name) }

// Define registers a (symbol, value) pair in the head frame of the
// global environment — the mechanism by which a host adds primitives
// or constants, per spec.md §6.
func (ctx *Context) Define(name string, v Value) {
	EnvDefine(ctx, ctx.globalEnv, ctx.Intern(name), v)
}

// nextLambdaID returns the next monotonically increasing lambda id.
func (ctx *Context) nextLambdaID() int64 {
	ctx.nextLamID++
	return ctx.nextLamID
}

// HeapLive reports the current from-space live block count, exposed
// for --gc-stats style diagnostics and for the GC-scenario tests in
// spec.md §8.
func (ctx *Context) HeapLive() int { return ctx.fromHeap.live }
