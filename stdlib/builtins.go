// Package stdlib is the host collaborator spec.md §1 treats as
// external to the interpreter core: the built-in arithmetic and list
// primitives a host registers into the global environment. Grounded
// on the teacher's table-driven operator registration
// (lang/operators.go's OpTable.Insert-by-name style), Register walks
// a flat table of (name, callback) pairs and defines each one.
package stdlib

import (
	scheme "github.com/dataronio/lisp-interpreter"
)

// entry pairs a primitive's surface name with its implementation.
type entry struct {
	name string
	fn   scheme.Primitive
}

// table lists every primitive spec.md §6 says the expander and
// typical usage expect to find in the global environment.
var table = []entry{
	{"cons", primCons},
	{"car", primCar},
	{"cdr", primCdr},
	{"nav", primNav},
	{"eq?", primEq},
	{"null?", primNullP},
	{"list", primList},
	{"append", primAppend},
	{"map", primMap},
	{"nth", primNth},
	{"length", primLength},
	{"reverse!", primReverseBang},
	{"assoc", primAssoc},
	{"display", primDisplay},
	{"newline", primNewline},
	{"assert", primAssert},
	{"read-path", primReadPath},
	{"expand", primExpand},
	{"=", primNumEq},
	{"+", primAdd},
	{"-", primSub},
	{"*", primMul},
	{"/", primDiv},
	{"<", primLt},
	{">", primGt},
	{"<=", primLe},
	{">=", primGe},
	{"even?", primEven},
	{"odd?", primOdd},
}

// Register defines every stdlib primitive in ctx's global environment
// head frame, the host-extension mechanism spec.md §6 names: "The
// host may register further primitives by adding (symbol, callback)
// entries to the global environment's head frame."
func Register(ctx *scheme.Context) {
	for _, e := range table {
		ctx.Define(e.name, scheme.NewPrimitive(e.fn))
	}
}
