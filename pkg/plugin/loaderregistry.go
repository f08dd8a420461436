package plugin

import (
	pluginerrors "github.com/gplugin-go/gplugin/pkg/errors"
	"github.com/gplugin-go/gplugin/pkg/registry"
)

// loaderRegistry holds the Manager's two loader maps: byID is
// one-to-one; byExtension maps an extension to an ordered sequence of
// backends, most-recently-registered first.
type loaderRegistry struct {
	byID        *registry.Registry[LoaderBackend]
	byExtension map[string][]LoaderBackend
}

func newLoaderRegistry() *loaderRegistry {
	return &loaderRegistry{
		byID:        registry.New[LoaderBackend](),
		byExtension: make(map[string][]LoaderBackend),
	}
}

// Register inserts b into both maps, prepending it to each of its
// extensions' sequences after removing any previous entry sharing its
// id. It fails if byID already has an entry for b.ID().
func (r *loaderRegistry) Register(b LoaderBackend) error {
	if err := r.byID.Register(b.ID(), b); err != nil {
		return pluginerrors.NewRegistrationConflictError(b.ID(), true)
	}

	for _, ext := range b.SupportedExtensions() {
		seq := removeByID(r.byExtension[ext], b.ID())
		r.byExtension[ext] = append([]LoaderBackend{b}, seq...)
	}
	return nil
}

// Unregister removes b from both maps.
func (r *loaderRegistry) Unregister(b LoaderBackend) error {
	if !r.byID.Remove(b.ID()) {
		return pluginerrors.NewRegistrationConflictError(b.ID(), false)
	}

	for ext, seq := range r.byExtension {
		r.byExtension[ext] = removeByID(seq, b.ID())
	}
	return nil
}

func removeByID(seq []LoaderBackend, id string) []LoaderBackend {
	out := seq[:0:0]
	for _, b := range seq {
		if b.ID() != id {
			out = append(out, b)
		}
	}
	return out
}

// ForExtension returns the ordered candidate sequence for ext.
func (r *loaderRegistry) ForExtension(ext string) []LoaderBackend {
	return append([]LoaderBackend(nil), r.byExtension[ext]...)
}

// Get returns the registered backend by id.
func (r *loaderRegistry) Get(id string) (LoaderBackend, bool) {
	return r.byID.Get(id)
}

// Snapshot returns every registered backend, ordered by id.
func (r *loaderRegistry) Snapshot() []LoaderBackend {
	names := r.byID.ListNames()
	out := make([]LoaderBackend, 0, len(names))
	for _, name := range names {
		if b, ok := r.byID.Get(name); ok {
			out = append(out, b)
		}
	}
	return out
}
