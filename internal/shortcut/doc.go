// Package shortcut provides the registry of key-combination bindings.
//
// The registry keeps three independent routing tables:
//
//   - chords: instantaneous combinations that fire on the completing key-down
//   - holds: combinations that fire after a minimum continuous-hold duration
//   - sequences: ordered key lists that fire within a rolling inactivity window
//
// Chord and hold tables are independent namespaces: the same combination
// may be registered in both. Within one table a combination may be live
// only once; a registration touching an occupied combination is dropped
// in full and reported by the boolean return.
//
// # Removal Policy
//
// Unregistration removes a Shortcut from the public list when every one of
// its stored keys appears in the request's canonicalized key list. This is
// a subset match, not an exact match: a request carrying extra keys also
// removes shortcuts owning only a subset of them.
package shortcut
