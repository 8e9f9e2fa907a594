package config

import (
	"fmt"
	"strconv"
)

// EnvPrefix is the prefix of every environment variable read by ApplyEnv.
const EnvPrefix = "VIMTASK_"

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// envMapping lists the environment variables and the setting each one sets.
var envMapping = []struct {
	env  string
	path string
	set  func(c *Config, val string) error
}{
	{EnvPrefix + "HISTORY_MAX_SIZE", "history.max_size", func(c *Config, val string) error {
		n, err := strconv.Atoi(val)
		if err != nil {
			return err
		}
		c.History.MaxSize = n
		return nil
	}},
	{EnvPrefix + "LOG_LEVEL", "logging.level", func(c *Config, val string) error {
		c.Logging.Level = val
		return nil
	}},
	{EnvPrefix + "LOG_FILE", "logging.file", func(c *Config, val string) error {
		c.Logging.File = val
		return nil
	}},
	{EnvPrefix + "PLUGIN_SCRIPT", "plugin.script", func(c *Config, val string) error {
		c.Plugin.Script = val
		return nil
	}},
	{EnvPrefix + "PROMPT", "ui.prompt", func(c *Config, val string) error {
		c.UI.Prompt = val
		return nil
	}},
}

// ApplyEnv overrides settings from environment variables.
// Empty values are treated as set.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	for _, m := range envMapping {
		val, ok := lookup(m.env)
		if !ok {
			continue
		}
		if err := m.set(c, val); err != nil {
			return fmt.Errorf("environment %s (%s): %w", m.env, m.path, err)
		}
	}
	return nil
}
