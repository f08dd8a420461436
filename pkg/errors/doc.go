// Package errors provides structured error handling for the plugin manager.
//
// This package defines a typed error taxonomy, constructors, and utilities
// for creating actionable error messages. Errors include context, exit
// codes, and optional suggestions for resolution.
//
// # Error Types
//
// Errors are categorized by type for consistent handling; the taxonomy
// mirrors the plugin manager's own error kinds (query failure, missing
// info, unresolved dependency, loader refusal, listener veto,
// registration conflict) plus a handful of general-purpose kinds.
//
// # Creating Errors
//
//	err := errors.NewUnresolvedDependencyError("demo/y", "demo/a>=3|demo/b")
//	err := errors.NewLoaderRefusedError("load", "demo/a", cause)
//
// # Error Handling
//
// Use the Handler for consistent error display:
//
//	handler := errors.DefaultHandler()
//	exitCode := handler.Handle(err)
//	os.Exit(exitCode)
package errors
