package registry

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type backend struct {
	id string
}

func TestRegisterAndGet(t *testing.T) {
	r := New[*backend]()

	require.NoError(t, r.Register("native", &backend{id: "native"}))

	got, ok := r.Get("native")
	require.True(t, ok)
	assert.Equal(t, "native", got.id)

	_, ok = r.Get("missing")
	assert.False(t, ok)
}

func TestRegisterEmptyName(t *testing.T) {
	r := New[*backend]()

	err := r.Register("", &backend{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty name")
}

func TestRegisterDuplicate(t *testing.T) {
	r := New[*backend]()
	require.NoError(t, r.Register("native", &backend{}))

	err := r.Register("native", &backend{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestRegisterWithAliases(t *testing.T) {
	r := New[*backend]()
	require.NoError(t, r.Register("native", &backend{id: "native"}, "so", "dylib"))

	for _, name := range []string{"native", "so", "dylib"} {
		got, ok := r.Get(name)
		require.True(t, ok, name)
		assert.Equal(t, "native", got.id)
		assert.True(t, r.Has(name))
	}

	canonical, ok := r.ResolveAlias("so")
	require.True(t, ok)
	assert.Equal(t, "native", canonical)

	assert.Equal(t, []string{"dylib", "so"}, r.Aliases("native"))
	assert.Nil(t, r.Aliases("missing"))
}

func TestRegisterAliasCollision(t *testing.T) {
	r := New[*backend]()
	require.NoError(t, r.Register("native", &backend{}, "so"))

	// A new name may collide with neither names nor aliases.
	require.Error(t, r.Register("so", &backend{}))
	require.Error(t, r.Register("script", &backend{}, "native"))
	require.Error(t, r.Register("script2", &backend{}, "so"))
}

func TestListAndNames(t *testing.T) {
	r := New[*backend]()
	require.NoError(t, r.Register("b", &backend{id: "b"}))
	require.NoError(t, r.Register("a", &backend{id: "a"}, "alpha"))

	assert.Len(t, r.List(), 2)
	assert.Equal(t, []string{"a", "b"}, r.ListNames(), "sorted, aliases excluded")
	assert.Equal(t, 2, r.Count())
}

func TestRemove(t *testing.T) {
	r := New[*backend]()
	require.NoError(t, r.Register("native", &backend{}, "so"))

	assert.True(t, r.Remove("native"))
	assert.False(t, r.Has("native"))
	assert.False(t, r.Has("so"), "aliases die with their entry")
	assert.False(t, r.Remove("native"), "second removal is a no-op")
}

func TestRemoveViaAlias(t *testing.T) {
	r := New[*backend]()
	require.NoError(t, r.Register("native", &backend{}, "so"))

	assert.True(t, r.Remove("so"))
	assert.False(t, r.Has("native"))
	assert.Equal(t, 0, r.Count())
}

func TestClear(t *testing.T) {
	r := New[*backend]()
	require.NoError(t, r.Register("a", &backend{}, "alpha"))
	require.NoError(t, r.Register("b", &backend{}))

	r.Clear()

	assert.Equal(t, 0, r.Count())
	assert.False(t, r.Has("a"))
	assert.False(t, r.Has("alpha"))
}

func TestForEach(t *testing.T) {
	r := New[*backend]()
	require.NoError(t, r.Register("a", &backend{id: "a"}))
	require.NoError(t, r.Register("b", &backend{id: "b"}))

	seen := make(map[string]string)
	r.ForEach(func(name string, entry *backend) {
		seen[name] = entry.id
	})

	assert.Equal(t, map[string]string{"a": "a", "b": "b"}, seen)
}

func TestZeroValueEntries(t *testing.T) {
	// A registry of values (not pointers) distinguishes "absent" from
	// "zero" through the second return.
	r := New[int]()
	require.NoError(t, r.Register("zero", 0))

	got, ok := r.Get("zero")
	assert.True(t, ok)
	assert.Equal(t, 0, got)
}

func TestConcurrentAccess(t *testing.T) {
	r := New[int]()
	require.NoError(t, r.Register("shared", 1))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.Get("shared")
				r.Has("shared")
				r.Count()
			}
		}()
	}
	wg.Wait()
}
