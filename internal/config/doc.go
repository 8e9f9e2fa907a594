// Package config provides the configuration system for vimtask.
//
// Settings come from three sources, lowest priority first:
//
//	┌─────────────────────────────┐
//	│  3. Environment Variables   │  ← VIMTASK_*
//	├─────────────────────────────┤
//	│  2. Config File             │  ← config.toml / config.yaml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │
//	└─────────────────────────────┘
//
// The file format follows the extension: .toml is decoded with go-toml,
// .yaml and .yml with yaml.v3. Unknown keys are rejected.
//
// # Basic Usage
//
//	cfg, err := config.Load("~/.config/vimtask/config.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.History.MaxSize)
//
// # Live Reload
//
// Watcher reloads the file whenever it changes on disk and hands the new
// Config to registered callbacks:
//
//	w, err := config.NewWatcher(path)
//	w.OnReload(func(cfg *config.Config) { ... })
//	w.Start()
//	defer w.Close()
package config
