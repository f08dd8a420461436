package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(TypeQueryFailure, "test message")

	assert.Equal(t, TypeQueryFailure, err.Type)
	assert.Equal(t, "test message", err.Message)
	assert.Equal(t, 1, err.Code) // Default exit code
	assert.Nil(t, err.Err)
	assert.Empty(t, err.Suggestions)
	assert.Nil(t, err.Context)
}

func TestNewWithOptions(t *testing.T) {
	underlying := fmt.Errorf("underlying error")

	err := New(TypeLoaderRefused, "test message",
		WithError(underlying),
		WithExitCode(99),
		WithSuggestions("suggestion 1", "suggestion 2"),
		WithContext("key", "value"),
	)

	assert.Equal(t, TypeLoaderRefused, err.Type)
	assert.Equal(t, "test message", err.Message)
	assert.Equal(t, 99, err.Code)
	assert.Equal(t, underlying, err.Err)
	assert.Equal(t, []string{"suggestion 1", "suggestion 2"}, err.Suggestions)
	assert.Equal(t, "value", err.Context["key"])
}

func TestNewQueryFailureError(t *testing.T) {
	cause := fmt.Errorf("bad magic")
	err := NewQueryFailureError("/plugins/a.so", "native", cause)

	assert.Equal(t, TypeQueryFailure, err.Type)
	assert.Contains(t, err.Error(), "/plugins/a.so")
	assert.Contains(t, err.Error(), "native")
	assert.Equal(t, cause, err.Err)

	path, ok := err.GetContext("path")
	require.True(t, ok)
	assert.Equal(t, "/plugins/a.so", path)
}

func TestNewMissingInfoError(t *testing.T) {
	err := NewMissingInfoError("/plugins/a.so")

	assert.Equal(t, TypeMissingInfo, err.Type)
	assert.Contains(t, err.Error(), "/plugins/a.so")
	assert.Equal(t, 70, err.Code)
}

func TestNewUnresolvedDependencyError(t *testing.T) {
	err := NewUnresolvedDependencyError("demo/a", "demo/b>=2.0")

	assert.Equal(t, TypeUnresolvedDependency, err.Type)
	assert.Contains(t, err.Error(), "demo/a")
	assert.Contains(t, err.Error(), "demo/b>=2.0")
	assert.True(t, err.HasSuggestions())
	assert.Equal(t, 127, err.Code)
}

func TestNewLoaderRefusedError(t *testing.T) {
	cause := fmt.Errorf("dlopen failed")
	err := NewLoaderRefusedError("load", "demo/a", cause)

	assert.Equal(t, TypeLoaderRefused, err.Type)
	assert.Contains(t, err.Error(), "load")
	assert.Contains(t, err.Error(), "demo/a")
	assert.Equal(t, cause, err.Err)
}

func TestNewListenerVetoError(t *testing.T) {
	err := NewListenerVetoError("loading-plugin", "demo/a", "forbidden")

	assert.Equal(t, TypeListenerVeto, err.Type)
	assert.Contains(t, err.Error(), "loading-plugin")
	assert.Contains(t, err.Error(), "forbidden")
}

func TestNewRegistrationConflictError(t *testing.T) {
	registered := NewRegistrationConflictError("native", true)
	assert.Equal(t, TypeRegistrationConflict, registered.Type)
	assert.Contains(t, registered.Error(), "already registered")

	missing := NewRegistrationConflictError("native", false)
	assert.Equal(t, TypeRegistrationConflict, missing.Type)
	assert.Contains(t, missing.Error(), "not registered")
}

func TestNewInvalidDependencyExprError(t *testing.T) {
	err := NewInvalidDependencyExprError("demo/a>=", nil)

	assert.Equal(t, TypeInvalidDependencyExpr, err.Type)
	assert.Contains(t, err.Error(), "demo/a>=")
	assert.Equal(t, 65, err.Code)
}

func TestNewUntrustedPluginError(t *testing.T) {
	err := NewUntrustedPluginError("/tmp/evil.so", "symlink escapes base directory")

	assert.Equal(t, TypeUntrustedPlugin, err.Type)
	assert.Contains(t, err.Error(), "/tmp/evil.so")
	assert.True(t, err.HasSuggestions())
	assert.Equal(t, 126, err.Code)
}

func TestNewConfigError(t *testing.T) {
	err := NewConfigError("bad search path")

	assert.Equal(t, TypeConfig, err.Type)
	assert.Contains(t, err.Error(), "bad search path")
}

func TestNewTimeoutError(t *testing.T) {
	err := NewTimeoutError("refresh")

	assert.Equal(t, TypeTimeout, err.Type)
	assert.Contains(t, err.Error(), "refresh")
}

func TestNewRuntimeError(t *testing.T) {
	err := NewRuntimeError("unexpected state")

	assert.Equal(t, TypeRuntime, err.Type)
	assert.Equal(t, 71, err.Code)
}

func TestWrapNilError(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))
}

func TestWrapStandardError(t *testing.T) {
	underlying := fmt.Errorf("plain error")
	err := Wrap(underlying, "while refreshing")

	assert.Equal(t, TypeUnknown, err.Type)
	assert.Equal(t, "while refreshing", err.Message)
	assert.Equal(t, underlying, err.Err)
}

func TestWrapManagerError(t *testing.T) {
	original := NewQueryFailureError("/plugins/a.so", "native", nil)
	wrapped := Wrap(original, "during refresh")

	assert.Equal(t, TypeQueryFailure, wrapped.Type)
	assert.Equal(t, "during refresh", wrapped.Message)
	assert.Equal(t, original, wrapped.Err)
	assert.Equal(t, original.Code, wrapped.Code)
}

func TestIsFunction(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		errType  ErrorType
		expected bool
	}{
		{
			name:     "nil error",
			err:      nil,
			errType:  TypeQueryFailure,
			expected: false,
		},
		{
			name:     "plain error",
			err:      fmt.Errorf("plain"),
			errType:  TypeQueryFailure,
			expected: false,
		},
		{
			name:     "matching type",
			err:      NewMissingInfoError("/plugins/a.so"),
			errType:  TypeMissingInfo,
			expected: true,
		},
		{
			name:     "non-matching type",
			err:      NewMissingInfoError("/plugins/a.so"),
			errType:  TypeLoaderRefused,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Is(tt.err, tt.errType))
		})
	}
}

func TestManagerErrorError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ManagerError
		expected string
	}{
		{
			name: "message only",
			err: &ManagerError{
				Message: "something broke",
			},
			expected: "something broke",
		},
		{
			name: "message with underlying error",
			err: &ManagerError{
				Message: "something broke",
				Err:     fmt.Errorf("root cause"),
			},
			expected: "something broke: root cause",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestManagerErrorUnwrap(t *testing.T) {
	underlying := fmt.Errorf("root cause")
	err := &ManagerError{
		Message: "wrapper",
		Err:     underlying,
	}

	assert.Equal(t, underlying, err.Unwrap())
}

func TestManagerErrorIs(t *testing.T) {
	queryErr1 := NewQueryFailureError("/a.so", "native", nil)
	queryErr2 := NewQueryFailureError("/b.so", "native", nil)
	vetoErr := NewListenerVetoError("loading-plugin", "demo/a", "forbidden")

	assert.True(t, queryErr1.Is(queryErr2))
	assert.False(t, queryErr1.Is(vetoErr))
	assert.False(t, queryErr1.Is(fmt.Errorf("plain")))
}

func TestManagerErrorHasSuggestions(t *testing.T) {
	withSuggestions := &ManagerError{Message: "m", Suggestions: []string{"try this"}}
	without := &ManagerError{Message: "m"}

	assert.True(t, withSuggestions.HasSuggestions())
	assert.False(t, without.HasSuggestions())
}

func TestManagerErrorGetContext(t *testing.T) {
	err := &ManagerError{
		Message: "m",
		Context: map[string]string{"loader": "native"},
	}

	val, ok := err.GetContext("loader")
	assert.True(t, ok)
	assert.Equal(t, "native", val)

	_, ok = err.GetContext("missing")
	assert.False(t, ok)

	empty := &ManagerError{}
	_, ok = empty.GetContext("loader")
	assert.False(t, ok)
}

func TestManagerErrorAddSuggestion(t *testing.T) {
	err := &ManagerError{Message: "m"}
	err.AddSuggestion("first").AddSuggestion("second")

	assert.Equal(t, []string{"first", "second"}, err.Suggestions)
}

func TestManagerErrorAddContext(t *testing.T) {
	err := &ManagerError{Message: "m"}
	err.AddContext("key", "value")

	val, ok := err.GetContext("key")
	assert.True(t, ok)
	assert.Equal(t, "value", val)
}

func TestManagerErrorWithCode(t *testing.T) {
	err := &ManagerError{Message: "m", Code: 1}
	err.WithCode(42)

	assert.Equal(t, 42, err.Code)
}

func TestWithSuggestionHelper(t *testing.T) {
	assert.Nil(t, WithSuggestion(nil, "noop"))

	managed := New(TypeConfig, "bad config")
	got := WithSuggestion(managed, "fix the config")
	assert.Equal(t, []string{"fix the config"}, got.Suggestions)

	plain := fmt.Errorf("plain")
	wrapped := WithSuggestion(plain, "try again")
	assert.Equal(t, []string{"try again"}, wrapped.Suggestions)
}

func TestCommonErrorMatches(t *testing.T) {
	ce := &CommonError{Pattern: "Already Registered"}

	assert.True(t, ce.Matches("loader \"native\" is already registered"))
	assert.False(t, ce.Matches("loader is missing"))
}
