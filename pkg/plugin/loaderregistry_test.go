package plugin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pluginerrors "github.com/gplugin-go/gplugin/pkg/errors"
)

// stubLoader is the minimal LoaderBackend used by registry tests.
type stubLoader struct {
	id   string
	exts []string
}

func (s *stubLoader) ID() string                    { return s.id }
func (s *stubLoader) SupportedExtensions() []string { return s.exts }
func (s *stubLoader) Query(string) (*Plugin, error) { return nil, nil }
func (s *stubLoader) Load(*Plugin) error            { return nil }
func (s *stubLoader) Unload(*Plugin) error          { return nil }

func TestLoaderRegistryRegister(t *testing.T) {
	r := newLoaderRegistry()
	native := &stubLoader{id: "native", exts: []string{"so", "dll"}}

	require.NoError(t, r.Register(native))

	got, ok := r.Get("native")
	assert.True(t, ok)
	assert.Same(t, native, got)
	assert.Equal(t, []LoaderBackend{native}, r.ForExtension("so"))
	assert.Equal(t, []LoaderBackend{native}, r.ForExtension("dll"))
}

func TestLoaderRegistryRegisterConflict(t *testing.T) {
	r := newLoaderRegistry()
	require.NoError(t, r.Register(&stubLoader{id: "native", exts: []string{"so"}}))

	err := r.Register(&stubLoader{id: "native", exts: []string{"dylib"}})
	require.Error(t, err)
	assert.True(t, pluginerrors.Is(err, pluginerrors.TypeRegistrationConflict))

	// The conflicting registration must not have touched the extension map.
	assert.Empty(t, r.ForExtension("dylib"))
}

func TestLoaderRegistryMostRecentFirst(t *testing.T) {
	r := newLoaderRegistry()
	older := &stubLoader{id: "older", exts: []string{"so"}}
	newer := &stubLoader{id: "newer", exts: []string{"so"}}

	require.NoError(t, r.Register(older))
	require.NoError(t, r.Register(newer))

	assert.Equal(t, []LoaderBackend{newer, older}, r.ForExtension("so"))
}

func TestLoaderRegistryUnregister(t *testing.T) {
	r := newLoaderRegistry()
	native := &stubLoader{id: "native", exts: []string{"so", "dll"}}
	script := &stubLoader{id: "script", exts: []string{"so"}}

	require.NoError(t, r.Register(native))
	require.NoError(t, r.Register(script))
	require.NoError(t, r.Unregister(native))

	_, ok := r.Get("native")
	assert.False(t, ok)
	assert.Equal(t, []LoaderBackend{script}, r.ForExtension("so"))
	assert.Empty(t, r.ForExtension("dll"))
}

func TestLoaderRegistryUnregisterMissing(t *testing.T) {
	r := newLoaderRegistry()

	err := r.Unregister(&stubLoader{id: "ghost"})
	require.Error(t, err)
	assert.True(t, pluginerrors.Is(err, pluginerrors.TypeRegistrationConflict))
}

func TestLoaderRegistrySnapshot(t *testing.T) {
	r := newLoaderRegistry()
	require.NoError(t, r.Register(&stubLoader{id: "b"}))
	require.NoError(t, r.Register(&stubLoader{id: "a"}))

	snapshot := r.Snapshot()
	require.Len(t, snapshot, 2)
	assert.Equal(t, "a", snapshot[0].ID())
	assert.Equal(t, "b", snapshot[1].ID())
}
