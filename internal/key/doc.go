// Package key provides the canonical key vocabulary for the dispatch engine.
//
// This package defines the fundamental types for representing keyboard input:
//
//   - Event: A single key-down or key-up with modifier flags and target
//   - Combo strings: "+"-joined canonical combinations like "ctrl+s"
//   - Normalization: alias resolution and case-folding for raw key names
//
// # Canonical Vocabulary
//
// Raw modifier names are rewritten to a fixed vocabulary:
//
//	opt, option  -> alt
//	control      -> ctrl
//	cmd, command -> meta
//
// All other tokens pass through lower-cased. Normalization is pure and
// total; unrecognized names never fail, they simply never match a
// registered combination.
package key
