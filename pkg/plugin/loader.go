package plugin

// LoaderBackend interprets plugin files of one or more extensions and
// drives their load/unload lifecycle. The Manager treats backends as
// opaque: query failures are non-fatal (the Manager tries the next
// backend registered for the extension), while load/unload failures
// propagate to the caller.
//
// Concrete backends (a native shared-object loader, an embedded script
// interpreter, an in-memory compiler) are external collaborators, out of
// this package's scope; only the contract lives here.
type LoaderBackend interface {
	// ID returns a unique identifier across all backends registered with
	// a given Manager.
	ID() string

	// SupportedExtensions returns the file-name suffixes, without a
	// leading dot, this backend claims. Membership need not be disjoint
	// from other backends.
	SupportedExtensions() []string

	// Query opens the file at path, extracts a descriptor, and returns a
	// Plugin whose state is StateQueried. It may fail with a
	// parse/validation error, which the Manager records as a
	// non-fatal diagnostic.
	Query(path string) (*Plugin, error)

	// Load executes the plugin's load entry point. The backend is
	// responsible for any language-runtime-specific setup.
	Load(p *Plugin) error

	// Unload is the inverse of Load. A backend may refuse (for example,
	// an interpreter that cannot be torn down); failure is reported, not
	// suppressed.
	Unload(p *Plugin) error
}
