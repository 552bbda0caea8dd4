package scheme

// Run reads, expands, and evaluates every top-level form in source in
// turn, in the given environment, returning the value of the last
// form. It is a convenience composition of Read, Expand, and Eval for
// hosts (REPLs, script runners) that don't need to inspect the
// intermediate S-expression or control expansion separately.
func Run(ctx *Context, source string, env Value) (Value, *Error) {
	parsed, err := Read(ctx, source)
	if err != nil {
		return Null, err
	}
	expanded, err := Expand(ctx, parsed)
	if err != nil {
		return Null, err
	}
	return Eval(ctx, expanded, env)
}

// RunPath is Run sourced from a file path via ReadPath.
func RunPath(ctx *Context, path string, env Value) (Value, *Error) {
	parsed, err := ReadPath(ctx, path)
	if err != nil {
		return Null, err
	}
	expanded, err := Expand(ctx, parsed)
	if err != nil {
		return Null, err
	}
	return Eval(ctx, expanded, env)
}
