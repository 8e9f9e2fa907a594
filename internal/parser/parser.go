package parser

// Parser consumes a prefix of a State and produces a value.
type Parser[T any] func(State) Result[T]

// Run applies the parser to s.
func (p Parser[T]) Run(s State) Result[T] {
	return p(s)
}

// Parse runs the parser against the start of input.
// It does not require the whole input to be consumed; compose with EOF for that.
func (p Parser[T]) Parse(input string) (T, bool) {
	r := p(NewState(input))
	return r.Value, r.OK
}

// Of returns a parser that always succeeds with value, consuming nothing.
func Of[T any](value T) Parser[T] {
	return func(s State) Result[T] {
		return success(value, s)
	}
}

// Fail returns a parser that always fails.
func Fail[T any]() Parser[T] {
	return func(State) Result[T] {
		return failure[T]()
	}
}

// Map applies f to the value of a successful parse.
func Map[T, U any](p Parser[T], f func(T) U) Parser[U] {
	return func(s State) Result[U] {
		r := p(s)
		if !r.OK {
			return failure[U]()
		}
		return success(f(r.Value), r.Rest)
	}
}

// ConstMap replaces the value of a successful parse with value.
func ConstMap[T, U any](p Parser[T], value U) Parser[U] {
	return func(s State) Result[U] {
		r := p(s)
		if !r.OK {
			return failure[U]()
		}
		return success(value, r.Rest)
	}
}

// FlatMap runs p, then runs the parser chosen by f against the remainder.
// f is not called when p fails.
func FlatMap[T, U any](p Parser[T], f func(T) Parser[U]) Parser[U] {
	return func(s State) Result[U] {
		r := p(s)
		if !r.OK {
			return failure[U]()
		}
		return f(r.Value)(r.Rest)
	}
}

// TakeNext runs p1 then p2, keeping the value of p2.
func TakeNext[T, U any](p1 Parser[T], p2 Parser[U]) Parser[U] {
	return func(s State) Result[U] {
		r1 := p1(s)
		if !r1.OK {
			return failure[U]()
		}
		return p2(r1.Rest)
	}
}

// DropNext runs p1 then p2, keeping the value of p1.
func DropNext[T, U any](p1 Parser[T], p2 Parser[U]) Parser[T] {
	return func(s State) Result[T] {
		r1 := p1(s)
		if !r1.OK {
			return failure[T]()
		}
		r2 := p2(r1.Rest)
		if !r2.OK {
			return failure[T]()
		}
		return success(r1.Value, r2.Rest)
	}
}

// Or tries each parser against the same State and returns the first success.
func Or[T any](parsers ...Parser[T]) Parser[T] {
	return func(s State) Result[T] {
		for _, p := range parsers {
			if r := p(s); r.OK {
				return r
			}
		}
		return failure[T]()
	}
}

// Many applies p zero or more times and collects the values.
// It stops at the first failure, or when p succeeds without consuming input,
// so it always terminates.
func Many[T any](p Parser[T]) Parser[[]T] {
	return func(s State) Result[[]T] {
		var values []T
		for {
			r := p(s)
			if !r.OK || r.Rest.pos == s.pos {
				return success(values, s)
			}
			values = append(values, r.Value)
			s = r.Rest
		}
	}
}

// Many1 is like Many but requires at least one match.
func Many1[T any](p Parser[T]) Parser[[]T] {
	return func(s State) Result[[]T] {
		r := Many(p)(s)
		if len(r.Value) == 0 {
			return failure[[]T]()
		}
		return r
	}
}

// EOF succeeds, consuming nothing, only when no input remains.
func EOF() Parser[struct{}] {
	return func(s State) Result[struct{}] {
		if !s.AtEOF() {
			return failure[struct{}]()
		}
		return success(struct{}{}, s)
	}
}
