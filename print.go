package scheme

import (
	"fmt"
	"strconv"
	"strings"
)

// Display renders v the way the `display` primitive does: strings
// unquoted, everything else the same as Write.
func Display(v Value) string {
	var b strings.Builder
	writeValue(&b, v, false)
	return b.String()
}

// Write renders v in re-readable form: strings quoted. Combined with
// Read, Write(Read(x)) denotes the same value as x up to case folding
// of symbols (spec.md §8's read-print round-trip property).
func Write(v Value) string {
	var b strings.Builder
	writeValue(&b, v, true)
	return b.String()
}

func writeValue(b *strings.Builder, v Value, quoteStrings bool) {
	switch v.Tag() {
	case TagNull:
		b.WriteString("()")
	case TagInt:
		b.WriteString(strconv.FormatInt(v.Int(), 10))
	case TagFloat:
		s := strconv.FormatFloat(v.Float(), 'g', -1, 64)
		if !strings.Contains(s, ".") {
			// the lexer reads a numeral as a float only if it has a
			// '.', so an exponent form gets one before its 'e'
			if i := strings.IndexAny(s, "eE"); i >= 0 {
				s = s[:i] + ".0" + s[i:]
			} else {
				s += ".0"
			}
		}
		b.WriteString(s)
	case TagPrimitive:
		b.WriteString("#<primitive>")
	case TagSymbol:
		b.WriteString(Name(v))
	case TagString:
		if quoteStrings {
			// the reader has no escape syntax, so the bytes go between
			// the quotes as they are
			b.WriteByte('"')
			b.WriteString(StringValue(v))
			b.WriteByte('"')
		} else {
			b.WriteString(StringValue(v))
		}
	case TagLambda:
		fmt.Fprintf(b, "#<lambda:%d>", LambdaID(v))
	case TagTable:
		fmt.Fprintf(b, "#<table:%d/%d>", TableSize(v), TableCapacity(v))
	case TagPair:
		b.WriteByte('(')
		writeValue(b, Car(v), quoteStrings)
		rest := Cdr(v)
		for {
			switch rest.Tag() {
			case TagNull:
				b.WriteByte(')')
				return
			case TagPair:
				b.WriteByte(' ')
				writeValue(b, Car(rest), quoteStrings)
				rest = Cdr(rest)
			default:
				b.WriteString(" . ")
				writeValue(b, rest, quoteStrings)
				b.WriteByte(')')
				return
			}
		}
	default:
		b.WriteString("#<unknown>")
	}
}
