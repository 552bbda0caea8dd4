package scheme

import (
	"os"
)

// reader builds S-expressions from a Lexer's token stream.
type reader struct {
	ctx *Context
	lx  *Lexer
	buf Token
}

func newReader(ctx *Context, lx *Lexer) (*reader, *Error) {
	r := &reader{ctx: ctx, lx: lx}
	if err := r.advance(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *reader) advance() *Error {
	tok, err := r.lx.Next()
	if err != nil {
		if e, ok := err.(*Error); ok {
			return e
		}
		return newErrf(ErrBadToken, "%v", err)
	}
	r.buf = tok
	return nil
}

// readOne reads a single S-expression.
func (r *reader) readOne() (Value, *Error) {
	tok := r.buf
	switch tok.Type {
	case TokLParen:
		if err := r.advance(); err != nil {
			return Null, err
		}
		return r.readList()
	case TokRParen:
		return Null, newErr(ErrParenUnexpected)
	case TokQuote:
		if err := r.advance(); err != nil {
			return Null, err
		}
		inner, err := r.readOne()
		if err != nil {
			return Null, err
		}
		return SliceToList(r.ctx, []Value{r.ctx.sym.quote, inner}), nil
	case TokSymbol:
		v := r.ctx.Intern(tok.Text)
		if err := r.advance(); err != nil {
			return Null, err
		}
		return v, nil
	case TokString:
		v := NewString(r.ctx, tok.Text)
		if err := r.advance(); err != nil {
			return Null, err
		}
		return v, nil
	case TokInt:
		v := NewInt(tok.IntVal)
		if err := r.advance(); err != nil {
			return Null, err
		}
		return v, nil
	case TokFloat:
		v := NewFloat(tok.FloatVal)
		if err := r.advance(); err != nil {
			return Null, err
		}
		return v, nil
	case TokNone:
		return Null, newErr(ErrParenExpected)
	default:
		return Null, newErr(ErrBadToken)
	}
}

// readList reads expressions until R_PAREN, building the resulting
// list (possibly Null for an empty list).
func (r *reader) readList() (Value, *Error) {
	var items []Value
	for {
		if r.buf.Type == TokRParen {
			if err := r.advance(); err != nil {
				return Null, err
			}
			return SliceToList(r.ctx, items), nil
		}
		if r.buf.Type == TokNone {
			return Null, newErr(ErrParenExpected)
		}
		item, err := r.readOne()
		if err != nil {
			return Null, err
		}
		items = append(items, item)
	}
}

// Read parses source (an in-memory string) into one S-expression. If
// more than one top-level expression is present, they are wrapped as
// (BEGIN e1 e2 ...).
func Read(ctx *Context, source string) (Value, *Error) {
	return readAll(ctx, NewLexer(source))
}

// ReadPath opens path, reads its full contents through a streaming,
// double-buffered file Lexer, and parses the result the same way
// Read does. The file handle is released on every exit path.
func ReadPath(ctx *Context, path string) (Value, *Error) {
	f, err := os.Open(path)
	if err != nil {
		return Null, newErrf(ErrFileOpen, "%v", err)
	}
	defer f.Close()
	return readAll(ctx, NewFileLexer(f))
}

func readAll(ctx *Context, lx *Lexer) (Value, *Error) {
	r, rerr := newReader(ctx, lx)
	if rerr != nil {
		return Null, rerr
	}
	var exprs []Value
	for r.buf.Type != TokNone {
		e, err := r.readOne()
		if err != nil {
			return Null, err
		}
		exprs = append(exprs, e)
	}
	switch len(exprs) {
	case 0:
		return Null, nil
	case 1:
		return exprs[0], nil
	default:
		return Cons(ctx, ctx.sym.begin, SliceToList(ctx, exprs)), nil
	}
}
