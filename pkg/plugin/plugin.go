package plugin

import "sync"

// Plugin is the runtime handle for a discovered plugin file. Its
// Filename, Loader, and Info never change after construction; State and
// Error are mutated only by the Manager's load/unload driver, and State
// also by UnregisterLoader, which marks plugins for requery.
type Plugin struct {
	mu sync.RWMutex

	filename string
	loader   LoaderBackend
	info     *Info

	state State
	err   error
}

// newPlugin constructs a Plugin in StateUnknown. LoaderBackend
// implementations use this via query results; callers outside this
// package never construct a Plugin directly.
func newPlugin(filename string, loader LoaderBackend, info *Info) *Plugin {
	return &Plugin{
		filename: filename,
		loader:   loader,
		info:     info,
		state:    StateUnknown,
	}
}

// NewQueriedPlugin constructs a Plugin already in StateQueried, for use
// by LoaderBackend.Query implementations: a successful query always
// yields a plugin whose state is queried.
func NewQueriedPlugin(filename string, loader LoaderBackend, info *Info) *Plugin {
	p := newPlugin(filename, loader, info)
	p.state = StateQueried
	return p
}

// Filename returns the absolute path the loader queried.
func (p *Plugin) Filename() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.filename
}

// Loader returns the owning LoaderBackend.
func (p *Plugin) Loader() LoaderBackend {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loader
}

// Info returns the plugin's descriptor, or nil if the plugin has none.
func (p *Plugin) Info() *Info {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.info
}

// State returns the plugin's current lifecycle state.
func (p *Plugin) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

// Error returns the last load/unload failure, if any.
func (p *Plugin) Error() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.err
}

// setState is called only by the Manager's load/unload driver and by
// UnregisterLoader, the sole authorized mutators of plugin state.
func (p *Plugin) setState(s State) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = s
}

// setError records a load/unload failure alongside a state transition.
func (p *Plugin) setError(s State, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = s
	p.err = err
}

// clearError clears a previously recorded failure, typically after a
// successful load or unload.
func (p *Plugin) clearError() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = nil
}
