// Package lua runs user scripts that customize the command line.
//
// Scripts run in a sandboxed gopher-lua state with only the base, table,
// string and math libraries. The state exposes a global vimtask table:
//
//	vimtask.alias("rm", "d")     -- "rm 3" is read as "d 3"
//	vimtask.alias("done", "m")   -- "done 2 done" is read as "m 2 done"
//	print(vimtask.version)
//
// Aliases rewrite only the first word of a line, once, and the result is
// parsed by the normal command grammars.
package lua
