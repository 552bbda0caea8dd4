package scheme

import "fmt"

// ErrorKind enumerates the out-parameter error codes the reader,
// expander, and evaluator can raise. The interpreter never aborts on
// user error — only on internal invariant violations, which surface
// as ordinary Go panics; Read, Expand, and Eval do not recover them.
type ErrorKind int

const (
	ErrNone ErrorKind = iota
	ErrFileOpen
	ErrParenUnexpected
	ErrParenExpected
	ErrBadToken
	ErrBadDefine
	ErrBadSet
	ErrBadCond
	ErrBadAnd
	ErrBadOr
	ErrBadLet
	ErrBadLambda
	ErrBadQuote
	ErrUnknownVar
	ErrBadOp
	ErrUnknownEval
	ErrBadArg
	ErrOutOfBounds
)

var errorStrings = map[ErrorKind]string{
	ErrNone:            "no error",
	ErrFileOpen:        "could not open file",
	ErrParenUnexpected: "unexpected closing parenthesis",
	ErrParenExpected:   "expected an expression, found end of input",
	ErrBadToken:        "malformed token",
	ErrBadDefine:       "malformed define",
	ErrBadSet:          "malformed set!",
	ErrBadCond:         "malformed cond",
	ErrBadAnd:          "malformed and",
	ErrBadOr:           "malformed or",
	ErrBadLet:          "malformed let",
	ErrBadLambda:       "malformed lambda",
	ErrBadQuote:        "malformed quote",
	ErrUnknownVar:      "unbound variable",
	ErrBadOp:           "operator is not applicable",
	ErrUnknownEval:     "unrecognized expression",
	ErrBadArg:          "invalid argument",
	ErrOutOfBounds:     "index out of bounds",
}

// ErrorString returns the human-readable string for an ErrorKind,
// matching spec.md §7's error_string(e) contract.
func ErrorString(e ErrorKind) string {
	if s, ok := errorStrings[e]; ok {
		return s
	}
	return "unknown error"
}

// Error is the structured failure value returned alongside Null by
// Read, Expand, and Eval. Detail carries a human-readable extension
// (e.g. the offending symbol name for ErrUnknownVar); Form carries the
// unexpanded ASSERT expression when Kind pertains to a failed assert.
type Error struct {
	Kind   ErrorKind
	Detail string
	Form   Value
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return ErrorString(e.Kind)
	}
	return fmt.Sprintf("%s: %s", ErrorString(e.Kind), e.Detail)
}

// newErr builds an *Error with no extra detail.
func newErr(kind ErrorKind) *Error { return &Error{Kind: kind} }

// newErrf builds an *Error with a formatted detail string.
func newErrf(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}
