// Package config loads shortcut bindings from a TOML file and keeps a
// running engine in sync with it.
//
// A bindings file has an optional [engine] section plus any number of
// [[chord]] and [[sequence]] entries:
//
//	[engine]
//	ignore_targets = ["textarea"]
//	sequence_timeout = "2s"
//	hold_tick = "100ms"
//
//	[[chord]]
//	keys = ["ctrl+s"]
//	action = "save"
//	title = "Save"
//
//	[[chord]]
//	keys = ["space"]
//	action = "talk"
//	hold = "300ms"
//
//	[[sequence]]
//	keys = ["g", "g"]
//	action = "top"
//
// A chord entry with a hold duration registers a hold shortcut. Entries
// whose action name resolves to no known handler are skipped, matching
// the engine's silent-failure policy.
//
// The Manager tracks which bindings it registered so a Reload (or the
// fsnotify-backed Watcher) can revert them before applying the new file.
package config
