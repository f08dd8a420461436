package errors

import (
	"fmt"
)

// New creates a new ManagerError with the given type and message.
func New(errType ErrorType, message string, opts ...ErrorOption) *ManagerError {
	e := &ManagerError{
		Type:    errType,
		Message: message,
		Code:    1, // Default exit code
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// NewQueryFailureError records a loader's failed attempt to interpret a
// candidate file. Non-fatal: callers accumulate these during a refresh.
func NewQueryFailureError(path, loaderID string, cause error) *ManagerError {
	return New(TypeQueryFailure,
		fmt.Sprintf("failed to query %q with loader %q", path, loaderID),
		WithContext("path", path),
		WithContext("loader", loaderID),
		WithError(cause),
	)
}

// NewMissingInfoError reports that a plugin has no descriptor at load time.
func NewMissingInfoError(filename string) *ManagerError {
	return New(TypeMissingInfo,
		fmt.Sprintf("plugin %s did not return a plugin info", filename),
		WithContext("filename", filename),
		WithExitCode(70), // EX_SOFTWARE
	)
}

// NewUnresolvedDependencyError names both the unsatisfied dependency
// expression and the dependent plugin's id.
func NewUnresolvedDependencyError(dependentID, expr string) *ManagerError {
	return New(TypeUnresolvedDependency,
		fmt.Sprintf("failed to find dependency %s for %s", expr, dependentID),
		WithContext("dependent", dependentID),
		WithContext("expression", expr),
		WithSuggestions(
			"Verify the dependency's plugin id and version are correct",
			"Check that the dependency's search path is registered",
		),
		WithExitCode(127),
	)
}

// NewLoaderRefusedError wraps a loader's Load/Unload failure.
func NewLoaderRefusedError(op, pluginID string, cause error) *ManagerError {
	return New(TypeLoaderRefused,
		fmt.Sprintf("loader refused to %s plugin %s", op, pluginID),
		WithContext("operation", op),
		WithContext("plugin", pluginID),
		WithError(cause),
	)
}

// NewListenerVetoError reports a pre-event listener veto.
func NewListenerVetoError(event, pluginID, reason string) *ManagerError {
	return New(TypeListenerVeto,
		fmt.Sprintf("%s vetoed for %s: %s", event, pluginID, reason),
		WithContext("event", event),
		WithContext("plugin", pluginID),
	)
}

// NewRegistrationConflictError reports a loader id collision on
// registration, or a missing id on unregistration.
func NewRegistrationConflictError(loaderID string, alreadyRegistered bool) *ManagerError {
	msg := fmt.Sprintf("loader %q is not registered", loaderID)
	if alreadyRegistered {
		msg = fmt.Sprintf("loader %q is already registered", loaderID)
	}
	return New(TypeRegistrationConflict, msg, WithContext("loader", loaderID))
}

// NewInvalidDependencyExprError reports a malformed dependency string.
func NewInvalidDependencyExprError(expr string, cause error) *ManagerError {
	return New(TypeInvalidDependencyExpr,
		fmt.Sprintf("invalid dependency expression %q", expr),
		WithContext("expression", expr),
		WithError(cause),
		WithExitCode(65), // EX_DATAERR
	)
}

// NewUntrustedPluginError reports a plugin binary that failed validation.
func NewUntrustedPluginError(path, reason string) *ManagerError {
	return New(TypeUntrustedPlugin,
		fmt.Sprintf("plugin %s is not trusted: %s", path, reason),
		WithContext("path", path),
		WithExitCode(126),
		WithSuggestions(
			fmt.Sprintf("Check permissions: ls -la %s", path),
			"Move the plugin into a trusted search path",
		),
	)
}

// NewConfigError creates a configuration error.
func NewConfigError(message string, opts ...ErrorOption) *ManagerError {
	defaultOpts := []ErrorOption{
		WithExitCode(78), // EX_CONFIG
	}
	opts = append(defaultOpts, opts...)
	return New(TypeConfig, message, opts...)
}

// NewTimeoutError creates a timeout error.
func NewTimeoutError(operation string, opts ...ErrorOption) *ManagerError {
	defaultOpts := []ErrorOption{
		WithContext("operation", operation),
		WithExitCode(124),
		WithSuggestions("Try the operation again", "Increase the timeout if configurable"),
	}
	opts = append(defaultOpts, opts...)
	return New(TypeTimeout, fmt.Sprintf("operation timed out: %s", operation), opts...)
}

// NewRuntimeError creates a runtime error (OS/resource failures).
func NewRuntimeError(message string, opts ...ErrorOption) *ManagerError {
	defaultOpts := []ErrorOption{
		WithExitCode(71), // EX_OSERR
	}
	opts = append(defaultOpts, opts...)
	return New(TypeRuntime, message, opts...)
}

// Wrap wraps an existing error with additional context.
func Wrap(err error, message string, opts ...ErrorOption) *ManagerError {
	if err == nil {
		return nil
	}

	if managerErr, ok := err.(*ManagerError); ok {
		wrapped := &ManagerError{
			Type:        managerErr.Type,
			Message:     message,
			Err:         managerErr,
			Suggestions: managerErr.Suggestions,
			Context:     managerErr.Context,
			Code:        managerErr.Code,
		}

		for _, opt := range opts {
			opt(wrapped)
		}

		return wrapped
	}

	return New(TypeUnknown, message, append(opts, WithError(err))...)
}

// Is checks if an error is of a specific type.
func Is(err error, errType ErrorType) bool {
	if err == nil {
		return false
	}

	managerErr, ok := err.(*ManagerError)
	if !ok {
		return false
	}

	return managerErr.Type == errType
}

// WithSuggestion is a convenience function to add a suggestion to any error.
func WithSuggestion(err error, suggestion string) *ManagerError {
	if err == nil {
		return nil
	}

	if managerErr, ok := err.(*ManagerError); ok {
		return managerErr.AddSuggestion(suggestion)
	}

	return Wrap(err, err.Error(), WithSuggestions(suggestion))
}
