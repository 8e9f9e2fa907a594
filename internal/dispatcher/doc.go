// Package dispatcher turns a command line into a command.
//
// The dispatcher holds an ordered list of grammars. For each input line it
// runs every grammar's recognizer, in registration order, against the start
// of the line. The first recognizer that matches owns the line: its body
// parser runs on the remainder, and if that fails the line is rejected
// without trying later grammars.
//
// # Errors
//
// Parse failures are returned as *ParseError and classify with errors.Is:
//
//	cmd, err := registry.Parse(line)
//	switch {
//	case errors.Is(err, dispatcher.ErrUnknownCommand):
//	    // no grammar recognized the verb
//	case errors.Is(err, dispatcher.ErrMalformedArguments):
//	    // verb recognized, arguments rejected
//	}
//
// # Ordering
//
// When two verbs share a prefix, register the longer one first; the first
// match wins.
package dispatcher
