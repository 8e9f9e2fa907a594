// Package parser provides a small parser-combinator library over a single
// line of text.
//
// A Parser is a plain function from a State to a Result. Parsers never
// mutate shared state: each successful step returns a new, shorter State,
// so backtracking is simply running another parser against the State you
// already hold.
//
// # Core
//
//   - Of, Fail: constant success and failure
//   - Map, ConstMap, FlatMap: transform or chain on the parsed value
//   - TakeNext, DropNext: sequence two parsers, keeping one value
//   - Or, Many, Many1: alternation and repetition
//   - EOF: assert the input is exhausted
//
// # Lexical
//
//   - SkipWhitespaces, SkipWhitespaces1: consume blanks
//   - String: match a literal, case-sensitively
//   - NonWhitespaces: a greedy run of non-blank characters
//   - Rest: whatever input remains
//
// # Usage
//
//	word := parser.TakeNext(parser.SkipWhitespaces(), parser.NonWhitespaces())
//	line := parser.DropNext(parser.DropNext(word, parser.SkipWhitespaces()), parser.EOF())
//	v, ok := line.Parse("  hello  ")
//	// v == "hello", ok == true
//
// Failure carries no payload. Callers that need to tell failures apart do so
// by structure (which parser they ran), not by inspecting the failure.
package parser
