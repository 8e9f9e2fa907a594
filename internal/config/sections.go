package config

// HistoryConfig controls the undo history.
type HistoryConfig struct {
	// MaxSize is the number of undoable commands kept.
	MaxSize int `toml:"max_size" yaml:"max_size"`
}

// LoggingConfig controls the application logger.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level" yaml:"level"`

	// File receives log output. Empty means stderr.
	File string `toml:"file" yaml:"file"`
}

// PluginConfig controls Lua scripting.
type PluginConfig struct {
	// Script is a Lua file run at startup to define aliases.
	Script string `toml:"script" yaml:"script"`
}

// UIConfig controls the command line.
type UIConfig struct {
	// Prompt is printed before each input line.
	Prompt string `toml:"prompt" yaml:"prompt"`
}
