package scheme

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// adler32Mod is the modulus of the Adler-32 checksum (RFC 1950).
const adler32Mod = 65521

// adler32 computes the Adler-32 checksum over b, matching the
// standard algorithm's seed (A=1, B=0).
func adler32(b []byte) uint32 {
	var a, bb uint32 = 1, 0
	for _, c := range b {
		a = (a + uint32(c)) % adler32Mod
		bb = (bb + a) % adler32Mod
	}
	return (bb << 16) | a
}

// foldName normalizes Unicode input (NFD, matching the teacher
// lexer's own normalization of source text) and lower-cases it so
// that symbol comparison is case-insensitive.
func foldName(name string) string {
	return strings.ToLower(norm.NFD.String(name))
}

// SymbolTable is the process-local interning map, keyed by
// case-folded name. At most one Symbol block exists per case-folded
// name; Symbol equality is therefore pointer equality post-interning.
//
// Allocation always routes through the Context's current from-space
// rather than a heap pointer fixed at construction, so the table
// keeps working correctly across a Collect's heap swap.
type SymbolTable struct {
	buckets []Value // chained buckets of (Symbol . next) links, indexed by hash%capacity
	size    int
}

// NewSymbolTable constructs an empty interning table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{buckets: make([]Value, 1)}
}

// Intern folds name, computes its Adler-32 hash, and returns the
// unique Symbol Value for that folded name — allocating and inserting
// a fresh Symbol block only on a miss.
func (st *SymbolTable) Intern(ctx *Context, name string) Value {
	folded := foldName(name)
	hash := adler32([]byte(folded))
	idx := int(hash) % len(st.buckets)

	for entry := st.buckets[idx]; !entry.IsNull(); entry = entry.Block().pair.Cdr {
		kv := entry.Block().pair.Car
		sym := kv.Block()
		if sym.symbol.Name == folded {
			return kv
		}
	}

	block := ctx.fromHeap.alloc()
	block.tag = TagSymbol
	block.symbol = &SymbolData{Hash: hash, Name: folded}
	sym := Value{tag: TagSymbol, block: block}

	pairBlock := ctx.fromHeap.alloc()
	pairBlock.tag = TagPair
	pairBlock.pair = &PairData{Car: sym, Cdr: st.buckets[idx]}
	st.buckets[idx] = Value{tag: TagPair, block: pairBlock}
	st.size++
	st.maybeGrow(ctx)
	return sym
}

// maybeGrow doubles capacity once the table's own load factor passes
// 0.75; unlike environment Tables (whose resize is deferred entirely
// to GC, per spec.md §4.3), the symbol table is process-lifetime and
// never participates in the copying collector's table-reshape path,
// so it grows itself rather than waiting for a collection that may
// never come.
func (st *SymbolTable) maybeGrow(ctx *Context) {
	if float64(st.size)/float64(len(st.buckets)) <= 0.75 {
		return
	}
	old := st.buckets
	st.buckets = make([]Value, len(old)*2+1)
	for _, head := range old {
		for entry := head; !entry.IsNull(); {
			kv := entry.Block().pair.Car
			next := entry.Block().pair.Cdr
			sym := kv.Block().symbol
			idx := int(sym.Hash) % len(st.buckets)
			pairBlock := ctx.fromHeap.alloc()
			pairBlock.tag = TagPair
			pairBlock.pair = &PairData{Car: kv, Cdr: st.buckets[idx]}
			st.buckets[idx] = Value{tag: TagPair, block: pairBlock}
			entry = next
		}
	}
}

// Name returns the stored case-folded name of a Symbol Value.
func Name(sym Value) string {
	return sym.Block().symbol.Name
}

// relocate moves every bucket head through the collector's gcMove;
// the collector's to-space scan then relocates the rest of each chain
// of (Symbol . next) links and the Symbols they hold — the symbol
// table is itself one of the GC's
// roots (spec.md §4.9 step 1).
func (st *SymbolTable) relocate(ctx *Context) {
	for i, head := range st.buckets {
		st.buckets[i] = gcMove(ctx, head)
	}
}
