package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Satisfy consumes one rune for which pred returns true.
func Satisfy(pred func(rune) bool) Parser[rune] {
	return func(s State) Result[rune] {
		if s.AtEOF() {
			return failure[rune]()
		}
		r, size := utf8.DecodeRuneInString(s.Remaining())
		if r == utf8.RuneError && size <= 1 {
			return failure[rune]()
		}
		if !pred(r) {
			return failure[rune]()
		}
		return success(r, s.advance(size))
	}
}

func isNotSpace(r rune) bool {
	return !unicode.IsSpace(r)
}

// SkipWhitespaces consumes zero or more whitespace characters. It never fails.
func SkipWhitespaces() Parser[struct{}] {
	return ConstMap(Many(Satisfy(unicode.IsSpace)), struct{}{})
}

// SkipWhitespaces1 consumes one or more whitespace characters.
func SkipWhitespaces1() Parser[struct{}] {
	return ConstMap(Many1(Satisfy(unicode.IsSpace)), struct{}{})
}

// String matches literal exactly at the current position.
func String(literal string) Parser[string] {
	return func(s State) Result[string] {
		if !strings.HasPrefix(s.Remaining(), literal) {
			return failure[string]()
		}
		return success(literal, s.advance(len(literal)))
	}
}

// NonWhitespaces consumes a greedy, non-empty run of non-whitespace
// characters and returns it.
func NonWhitespaces() Parser[string] {
	return Map(Many1(Satisfy(isNotSpace)), func(rs []rune) string {
		return string(rs)
	})
}

// Rest consumes and returns all remaining input, possibly empty.
func Rest() Parser[string] {
	return func(s State) Result[string] {
		rest := s.Remaining()
		return success(rest, s.advance(len(rest)))
	}
}
