package lua

import (
	lua "github.com/yuin/gopher-lua"
)

// safeLibraries are opened in every state. None of them reach the file
// system or the process.
var safeLibraries = []struct {
	name string
	open lua.LGFunction
}{
	{lua.BaseLibName, lua.OpenBase},
	{lua.TabLibName, lua.OpenTable},
	{lua.StringLibName, lua.OpenString},
	{lua.MathLibName, lua.OpenMath},
}

// blockedGlobals are removed from the base library after it is opened.
var blockedGlobals = []string{
	"dofile",     // Load and execute file
	"loadfile",   // Load file as function
	"load",       // Load string as function
	"loadstring", // Load string as function
	"require",    // Module loader
}

// installSandbox opens the safe libraries and strips code loaders.
// The stack is left as it was found.
func installSandbox(L *lua.LState) {
	for _, lib := range safeLibraries {
		L.Push(L.NewFunction(lib.open))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
	for _, name := range blockedGlobals {
		L.SetGlobal(name, lua.LNil)
	}
}
