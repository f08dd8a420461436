package errors

import (
	"strings"
)

// SuggestionEngine provides smart error suggestions based on patterns
type SuggestionEngine struct {
	patterns []ErrorPattern
}

// ErrorPattern matches error messages and provides suggestions
type ErrorPattern struct {
	Contains    []string  // Any of these strings trigger the pattern
	Type        ErrorType // Error type to assign
	Suggestions []string  // Suggestions to provide
}

// NewSuggestionEngine creates a new suggestion engine with default patterns
func NewSuggestionEngine() *SuggestionEngine {
	return &SuggestionEngine{
		patterns: defaultPatterns(),
	}
}

// GetSuggestions analyzes an error and returns relevant suggestions
func (se *SuggestionEngine) GetSuggestions(err error, context map[string]string) []string {
	if err == nil {
		return nil
	}

	errMsg := strings.ToLower(err.Error())
	suggestions := []string{}

	// Check each pattern
	for _, pattern := range se.patterns {
		if pattern.Matches(errMsg) {
			suggestions = append(suggestions, pattern.Suggestions...)
		}
	}

	// Add context-specific suggestions
	if context != nil {
		suggestions = append(suggestions, se.getContextSuggestions(context)...)
	}

	// Remove duplicates
	return uniqueStrings(suggestions)
}

// getContextSuggestions provides suggestions based on context
func (se *SuggestionEngine) getContextSuggestions(context map[string]string) []string {
	var suggestions []string

	// Loader-specific suggestions
	if loader, ok := context["loader"]; ok && loader != "" {
		suggestions = append(suggestions,
			"Confirm loader \""+loader+"\" is registered before Refresh is called",
		)
	}

	// Dependency-specific suggestions
	if dependent, ok := context["dependent"]; ok && dependent != "" {
		suggestions = append(suggestions,
			"List plugin "+dependent+"'s dependency expressions and check each id/version atom",
		)
	}

	// Path-specific suggestions
	if path, ok := context["path"]; ok && path != "" {
		if strings.Contains(path, ".so") || strings.Contains(path, ".dll") || strings.Contains(path, ".dylib") {
			suggestions = append(suggestions,
				"Verify the native library was built for this platform and architecture",
			)
		}
	}

	return suggestions
}

// Matches checks if a pattern matches an error message
func (p *ErrorPattern) Matches(errMsg string) bool {
	for _, substr := range p.Contains {
		if strings.Contains(errMsg, strings.ToLower(substr)) {
			return true
		}
	}
	return false
}

// defaultPatterns returns the default error patterns
func defaultPatterns() []ErrorPattern {
	return []ErrorPattern{
		// No loader claims the file's extension
		{
			Contains: []string{"no loader", "unknown extension", "unsupported extension"},
			Type:     TypeLoaderRefused,
			Suggestions: []string{
				"Register a LoaderBackend for this file extension before calling Refresh",
				"Check the plugin file's extension matches a registered loader",
			},
		},
		// Query failures
		{
			Contains: []string{"failed to query"},
			Type:     TypeQueryFailure,
			Suggestions: []string{
				"Inspect the plugin binary's exported query symbol or manifest",
				"Run discovery with debug logging enabled to see every loader attempt",
			},
		},
		// Missing plugin info
		{
			Contains: []string{"did not return a plugin info", "did not return valid plugin info"},
			Type:     TypeMissingInfo,
			Suggestions: []string{
				"Confirm the plugin populates id, version, and abi_version",
				"Check the loader's query implementation returns a non-nil descriptor",
			},
		},
		// Unresolved dependency
		{
			Contains: []string{"failed to find dependency", "unresolved dependency"},
			Type:     TypeUnresolvedDependency,
			Suggestions: []string{
				"Verify the dependency's plugin id and version are correct",
				"Ensure the dependency's file is on a registered search path",
				"Check the dependency expression's operator (=, ==, >=, >, <=, <) matches an available version",
			},
		},
		// Invalid dependency expression
		{
			Contains: []string{"invalid dependency expression"},
			Type:     TypeInvalidDependencyExpr,
			Suggestions: []string{
				"Dependency atoms must be \"id\" or \"id op version\", joined by \"|\" for alternatives",
				"Supported operators are =, ==, >=, >, <=, <",
			},
		},
		// Listener veto
		{
			Contains: []string{"vetoed"},
			Type:     TypeListenerVeto,
			Suggestions: []string{
				"Check registered loading/unloading listeners for the condition that returned false",
				"Vetoes are expected control flow, not necessarily bugs; confirm the listener's intent",
			},
		},
		// Registration conflicts
		{
			Contains: []string{"is already registered", "is not registered"},
			Type:     TypeRegistrationConflict,
			Suggestions: []string{
				"Register each loader id exactly once before calling Refresh",
				"Unregister a loader only after every plugin it loaded has been unloaded",
			},
		},
		// Untrusted plugin path
		{
			Contains: []string{"is not trusted", "untrusted"},
			Type:     TypeUntrustedPlugin,
			Suggestions: []string{
				"Move the plugin into a trusted search path",
				"Check file permissions and ownership",
			},
		},
		// Timeout errors
		{
			Contains: []string{"timeout", "timed out", "deadline exceeded"},
			Type:     TypeTimeout,
			Suggestions: []string{
				"Try the operation again",
				"Increase the timeout if configurable",
			},
		},
	}
}

// uniqueStrings removes duplicate strings from a slice
func uniqueStrings(strings []string) []string {
	seen := make(map[string]bool)
	result := []string{}

	for _, str := range strings {
		if !seen[str] {
			seen[str] = true
			result = append(result, str)
		}
	}

	return result
}

// AnalyzeError provides intelligent error analysis and suggestions
func AnalyzeError(err error) *ManagerError {
	if err == nil {
		return nil
	}

	// If it's already a ManagerError with suggestions, return it
	if managerErr, ok := err.(*ManagerError); ok && managerErr.HasSuggestions() {
		return managerErr
	}

	// Get suggestions from the engine
	engine := NewSuggestionEngine()
	suggestions := engine.GetSuggestions(err, nil)

	// Determine error type from patterns
	errType := TypeUnknown
	errMsg := strings.ToLower(err.Error())
	for _, pattern := range engine.patterns {
		if pattern.Matches(errMsg) {
			errType = pattern.Type
			break
		}
	}

	// Create or enhance the error
	if managerErr, ok := err.(*ManagerError); ok {
		// Enhance existing ManagerError
		managerErr.Suggestions = append(managerErr.Suggestions, suggestions...)
		if managerErr.Type == TypeUnknown {
			managerErr.Type = errType
		}
		return managerErr
	}

	// Create new ManagerError
	return New(errType, err.Error(),
		WithError(err),
		WithSuggestions(suggestions...),
	)
}

// EnhanceError adds contextual suggestions to an error
func EnhanceError(err error, context map[string]string) *ManagerError {
	if err == nil {
		return nil
	}

	// Get base analysis
	managerErr := AnalyzeError(err)

	// Add context
	for k, v := range context {
		managerErr.AddContext(k, v)
	}

	// Get additional context-based suggestions
	engine := NewSuggestionEngine()
	contextSuggestions := engine.getContextSuggestions(context)

	// Merge suggestions
	managerErr.Suggestions = uniqueStrings(append(managerErr.Suggestions, contextSuggestions...))

	return managerErr
}
