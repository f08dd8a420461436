// Package registry provides a generic, thread-safe name-to-entry map
// with alias support. The plugin manager keeps its loader backends in
// one; embedders can reuse it for their own extensible components
// (output formatters, commands, codecs).
//
// # Basic usage
//
//	loaders := registry.New[LoaderBackend]()
//
//	// Register entries, optionally reachable under aliases.
//	loaders.Register("native", nativeLoader, "so", "dylib")
//
//	b, ok := loaders.Get("native") // by name
//	b, ok = loaders.Get("so")      // by alias
//
// Get returns values typed by the registry's type parameter, so no
// type assertions are needed at call sites.
//
// # Semantics
//
// Names and aliases share one namespace: registration fails when a new
// name or alias collides with anything already present. Removing an
// entry (by name or alias) also removes every alias pointing at it.
// All operations are safe for concurrent use.
package registry
