// Package grammar holds one grammar per command verb.
//
// Every grammar has two phases. The recognizer skips leading whitespace and
// matches the verb literal; on success it yields the body parser without
// running it. The body parser then consumes the arguments and the rest of
// the line. Splitting the phases lets a dispatcher decide which grammar owns
// a line before committing to a full parse.
package grammar

import (
	"strconv"
	"strings"

	"github.com/dshills/vimtask/internal/command"
	"github.com/dshills/vimtask/internal/parser"
	"github.com/dshills/vimtask/internal/task"
)

// Body parses the arguments of a recognized verb into a command.
type Body = parser.Parser[command.Command]

// Grammar is the grammar of a single command verb.
type Grammar interface {
	// Verb returns the literal that selects this grammar.
	Verb() string

	// Usage returns a short synopsis shown when the body fails to parse.
	Usage() string

	// Recognizer matches the verb and yields the body parser.
	Recognizer() parser.Parser[Body]
}

type verbGrammar struct {
	verb       string
	usage      string
	recognizer parser.Parser[Body]
}

func newGrammar(verb, usage string, body Body) Grammar {
	return &verbGrammar{
		verb:  verb,
		usage: usage,
		recognizer: parser.ConstMap(
			parser.TakeNext(parser.SkipWhitespaces(), parser.String(verb)),
			body,
		),
	}
}

func (g *verbGrammar) Verb() string                    { return g.verb }
func (g *verbGrammar) Usage() string                   { return g.usage }
func (g *verbGrammar) Recognizer() parser.Parser[Body] { return g.recognizer }

// argument requires at least one whitespace before p.
func argument[T any](p parser.Parser[T]) parser.Parser[T] {
	return parser.TakeNext(parser.SkipWhitespaces1(), p)
}

// endOfLine allows trailing whitespace after p and nothing else.
func endOfLine[T any](p parser.Parser[T]) parser.Parser[T] {
	return parser.DropNext(parser.DropNext(p, parser.SkipWhitespaces()), parser.EOF())
}

// indexParser reads a one-based position. Non-numeric text, values that
// overflow int, and non-positive values all fail.
var indexParser = parser.FlatMap(parser.NonWhitespaces(), func(s string) parser.Parser[task.Index] {
	n, err := strconv.Atoi(s)
	if err != nil {
		return parser.Fail[task.Index]()
	}
	idx, err := task.FromOneBased(n)
	if err != nil {
		return parser.Fail[task.Index]()
	}
	return parser.Of(idx)
})

var statusParser = parser.FlatMap(parser.NonWhitespaces(), func(s string) parser.Parser[task.Status] {
	st, err := task.ParseStatus(s)
	if err != nil {
		return parser.Fail[task.Status]()
	}
	return parser.Of(st)
})

// Delete is the grammar for "d <index>". The index may follow the verb
// directly, so "d3" deletes task 3.
func Delete() Grammar {
	body := parser.Map(endOfLine(parser.TakeNext(parser.SkipWhitespaces(), indexParser)), func(idx task.Index) command.Command {
		return command.NewDeleteCommand(idx)
	})
	return newGrammar("d", "d <index>", body)
}

// Add is the grammar for "a <title>". The title is the rest of the line.
func Add() Grammar {
	body := parser.FlatMap(argument(parser.Rest()), func(s string) Body {
		title := strings.TrimSpace(s)
		if title == "" {
			return parser.Fail[command.Command]()
		}
		return parser.Of[command.Command](command.NewAddCommand(title))
	})
	return newGrammar("a", "a <title>", body)
}

// Mark is the grammar for "m <index> <status>".
func Mark() Grammar {
	body := parser.FlatMap(argument(indexParser), func(idx task.Index) Body {
		return parser.Map(endOfLine(argument(statusParser)), func(st task.Status) command.Command {
			return command.NewMarkCommand(idx, st)
		})
	})
	return newGrammar("m", "m <index> todo|doing|done", body)
}

// Undo is the grammar for "u".
func Undo() Grammar {
	body := parser.Map(endOfLine(parser.Of(struct{}{})), func(struct{}) command.Command {
		return command.NewUndoCommand()
	})
	return newGrammar("u", "u", body)
}

// All returns the built-in grammars in registration order.
func All() []Grammar {
	return []Grammar{Add(), Delete(), Mark(), Undo()}
}
