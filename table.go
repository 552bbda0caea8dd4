package scheme

import (
	"math"
	"reflect"
	"unsafe"
)

// DefaultFrameCapacity is the bucket count given to a freshly pushed
// lambda-call frame (spec.md §4.7: "Table of small default
// capacity").
const DefaultFrameCapacity = 8

// hashValue computes a bucket hash for any Value usable as a table
// key. Symbols reuse their intern-time Adler-32 hash; Ints and
// Floats hash their bit pattern; Null hashes to 0; a Primitive hashes
// its function pointer (the identity Eq compares); everything else
// (String, Pair, Lambda, Table) hashes its heap identity, since the
// language has no general structural-equality primitive and table
// keys outside of symbols/numbers are compared and hashed by
// reference.
func hashValue(v Value) uint32 {
	switch v.tag {
	case TagSymbol:
		return v.block.symbol.Hash
	case TagInt:
		return uint32(v.i) ^ uint32(v.i>>32)
	case TagFloat:
		bits := math.Float64bits(v.f)
		return uint32(bits) ^ uint32(bits>>32)
	case TagNull:
		return 0
	case TagPrimitive:
		return uint32(reflect.ValueOf(v.prim).Pointer())
	default:
		return uint32(uintptr(unsafe.Pointer(v.block)))
	}
}

// keyEqual reports whether two table keys denote the same binding.
// Symbols compare by identity (post-interning pointer equality); Ints
// and Floats compare by value; every other kind compares exactly as
// Eq does.
func keyEqual(a, b Value) bool { return Eq(a, b) }

// NewTable allocates a fresh Table block with the given bucket
// capacity (at least 1, per spec.md's Table invariant).
func NewTable(ctx *Context, capacity int) Value {
	if capacity < 1 {
		capacity = 1
	}
	block := ctx.fromHeap.alloc()
	block.tag = TagTable
	block.table = &TableData{Buckets: make([]Value, capacity)}
	return Value{tag: TagTable, block: block}
}

// TableSize reports the number of entries in a Table Value.
func TableSize(t Value) int { return t.block.table.Size }

// TableCapacity reports the bucket count of a Table Value.
func TableCapacity(t Value) int { return len(t.block.table.Buckets) }

// TableSet inserts or overwrites the binding for key in table. If key
// is already present (by keyEqual), its value cell is overwritten in
// place; otherwise a new (key . value) entry is prepended to its
// bucket and the table's size is incremented.
func TableSet(ctx *Context, table, key, value Value) {
	td := table.block.table
	idx := int(hashValue(key)) % len(td.Buckets)
	for entry := td.Buckets[idx]; !entry.IsNull(); entry = entry.Block().pair.Cdr {
		kv := entry.Block().pair.Car
		if keyEqual(kv.Block().pair.Car, key) {
			kv.Block().pair.Cdr = value
			return
		}
	}
	kvBlock := ctx.fromHeap.alloc()
	kvBlock.tag = TagPair
	kvBlock.pair = &PairData{Car: key, Cdr: value}
	kv := Value{tag: TagPair, block: kvBlock}

	entryBlock := ctx.fromHeap.alloc()
	entryBlock.tag = TagPair
	entryBlock.pair = &PairData{Car: kv, Cdr: td.Buckets[idx]}
	td.Buckets[idx] = Value{tag: TagPair, block: entryBlock}
	td.Size++
}

// TableGet returns the (key . value) Pair bound to key in table, or
// Null if key is unbound.
func TableGet(table, key Value) Value {
	td := table.block.table
	idx := int(hashValue(key)) % len(td.Buckets)
	for entry := td.Buckets[idx]; !entry.IsNull(); entry = entry.Block().pair.Cdr {
		kv := entry.Block().pair.Car
		if keyEqual(kv.Block().pair.Car, key) {
			return kv
		}
	}
	return Null
}

// idealCapacity computes the capacity a Table should be reshaped to
// during GC, per spec.md §4.3: max(1, 3*size - 1).
func idealCapacity(size int) int {
	c := 3*size - 1
	if c < 1 {
		c = 1
	}
	return c
}

// loadFactor reports size/capacity for a Table block, used to decide
// whether a GC move should reshape it (outside [0.1, 0.75]).
func loadFactor(td *TableData) float64 {
	if len(td.Buckets) == 0 {
		return math.Inf(1)
	}
	return float64(td.Size) / float64(len(td.Buckets))
}
