package plugin

import (
	"path/filepath"
	"sync"

	pluginerrors "github.com/gplugin-go/gplugin/pkg/errors"
	"github.com/gplugin-go/gplugin/pkg/logging"
	"github.com/gplugin-go/gplugin/pkg/validation"
)

// Framework is the directory name used by AddDefaultPaths for the
// framework's own plugin directories.
const Framework = "gplugin"

// Config configures a Manager.
type Config struct {
	// Logger receives discovery and lifecycle log output. Defaults to
	// logging.Default().
	Logger *logging.Logger

	// InstallPrefix and LibDir form the system half of the default
	// search paths: "<InstallPrefix>/<LibDir>/gplugin".
	InstallPrefix string
	LibDir        string

	// StrictPaths validates every candidate file during discovery and
	// rejects files that escape their search directory through symlinks.
	StrictPaths bool
}

// DefaultConfig returns a Config suitable for most embedders.
func DefaultConfig() *Config {
	return &Config{
		Logger:        logging.Default(),
		InstallPrefix: "/usr/local",
		LibDir:        "lib",
		StrictPaths:   false,
	}
}

// Manager owns the search-path list, the loader registry, and the
// plugin index. It drives discovery, resolves dependency expressions,
// and runs the load/unload lifecycle.
//
// Public operations take the manager's lock, so individual calls are
// safe from multiple goroutines, but the overall design is
// single-threaded cooperative: event listeners and LoaderBackend
// callbacks run on the calling goroutine and must not call back into
// the Manager.
type Manager struct {
	mu sync.Mutex

	cfg *Config
	log *logging.Logger

	paths   *pathSet
	loaders *loaderRegistry
	events  *eventBus

	// byFilename maps a plugin's canonical filename to its handle;
	// byID maps an identifier to the ordered collection of plugins
	// sharing it, most-recently-discovered first. idOrder preserves
	// first-discovery order for ListPlugins and Foreach.
	byFilename map[string]*Plugin
	byID       map[string][]*Plugin
	idOrder    []string

	refreshNeeded bool
}

// NewManager constructs a Manager. A nil config selects DefaultConfig.
func NewManager(cfg *Config) *Manager {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	log := cfg.Logger
	if log == nil {
		log = logging.Default()
	}

	return &Manager{
		cfg:        cfg,
		log:        log.With(logging.String("component", "plugin-manager")),
		paths:      newPathSet(),
		loaders:    newLoaderRegistry(),
		events:     newEventBus(),
		byFilename: make(map[string]*Plugin),
		byID:       make(map[string][]*Plugin),
	}
}

// AppendPath adds a search path at the end of the list unless an equal
// entry already exists.
func (m *Manager) AppendPath(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paths.Append(path)
}

// PrependPath adds a search path at the front of the list unless an
// equal entry already exists.
func (m *Manager) PrependPath(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paths.Prepend(path)
}

// RemovePath removes a single matching search path.
func (m *Manager) RemovePath(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paths.Remove(path)
}

// RemoveAllPaths clears the search-path list.
func (m *Manager) RemoveAllPaths() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paths.RemoveAll()
}

// AddDefaultPaths prepends the framework's install directory
// ("<prefix>/<libdir>/gplugin") and the user configuration directory
// ("<user_config>/gplugin").
func (m *Manager) AddDefaultPaths() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paths.addDefaultPaths(m.cfg.InstallPrefix, m.cfg.LibDir, Framework)
}

// AddAppPaths prepends "<prefix>/<libdir>/<app>" and
// "<user_config>/<app>/plugins" for an embedding application.
func (m *Manager) AddAppPaths(prefix, app string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paths.addAppPaths(prefix, m.cfg.LibDir, app)
}

// Paths returns an ordered snapshot of the registered search paths.
// Every entry ends with the platform directory separator.
func (m *Manager) Paths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.paths.Paths()
}

// RegisterLoader registers a LoaderBackend and marks the manager as
// needing a refresh. It fails if a backend with the same id is already
// registered.
func (m *Manager) RegisterLoader(b LoaderBackend) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.loaders.Register(b); err != nil {
		return err
	}
	m.refreshNeeded = true
	m.log.Debug("registered loader",
		logging.String("loader", b.ID()))
	return nil
}

// UnregisterLoader removes a LoaderBackend from the registry. Plugins
// owned by the backend are marked for requery: the next Refresh no
// longer skips their files and offers them to the remaining backends.
func (m *Manager) UnregisterLoader(b LoaderBackend) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.loaders.Unregister(b); err != nil {
		return err
	}

	for _, p := range m.byFilename {
		if p.Loader() == b {
			st := p.State()
			if st == StateQueried || st == StateLoaded {
				p.setState(StateRequery)
			}
		}
	}

	m.refreshNeeded = true
	m.log.Debug("unregistered loader",
		logging.String("loader", b.ID()))
	return nil
}

// GetLoaders returns a snapshot of the registered backends.
func (m *Manager) GetLoaders() []LoaderBackend {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loaders.Snapshot()
}

// GetLoader returns the registered backend with the given id.
func (m *Manager) GetLoader(id string) (LoaderBackend, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loaders.Get(id)
}

// On registers a listener for a non-vetoable lifecycle event.
// Listeners fire in registration order.
func (m *Manager) On(kind EventKind, l Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events.On(kind, l)
}

// OnVeto registers a listener for a vetoable lifecycle event
// (EventLoadingPlugin or EventUnloadingPlugin). A listener that returns
// false aborts the operation; the aggregate result is the logical AND
// of every listener's result.
func (m *Manager) OnVeto(kind EventKind, l VetoListener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events.OnVeto(kind, l)
}

// Refresh walks the search paths and updates the plugin index. New
// files are offered to the loaders registered for their extension, in
// order; the first backend to produce a plugin wins. Plugins flagged
// load-on-query are loaded immediately. The walk repeats until a pass
// makes no progress, so a load-on-query plugin whose dependency is
// discovered later in the same refresh still loads without a second
// call.
//
// Query and load-on-query failures are non-fatal; they are logged and
// returned as diagnostics in discovery order. Each pass starts a fresh
// list, so only the final pass's diagnostics are logged and returned.
func (m *Manager) Refresh() []error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tree := buildFileTree(m.paths.Paths())

	var diagnostics []error
	errorCount := 0

	m.refreshNeeded = true
	for m.refreshNeeded {
		diagnostics = diagnostics[:0]
		m.refreshNeeded = false

		tree.Walk(func(f candidateFile) {
			filename, err := filepath.Abs(f.path)
			if err != nil {
				filename = f.path
			}

			if existing, ok := m.byFilename[filename]; ok {
				st := existing.State()
				if st == StateQueried || st == StateLoaded {
					return
				}
			}

			if m.cfg.StrictPaths {
				if _, err := validation.ValidatePluginFile(filename, filepath.Dir(filename)); err != nil {
					errorCount++
					diagnostics = append(diagnostics,
						pluginerrors.NewUntrustedPluginError(filename, err.Error()))
					return
				}
			}

			var p *Plugin
			for _, loader := range m.loaders.ForExtension(f.ext) {
				q, err := loader.Query(filename)
				if err != nil {
					errorCount++
					diagnostics = append(diagnostics,
						pluginerrors.NewQueryFailureError(filename, loader.ID(), err))
					continue
				}
				if q != nil {
					p = q
					break
				}
			}
			if p == nil {
				return
			}

			// Use the canonical filename from the plugin itself, not
			// the walker's spelling of it.
			canonical := p.Filename()
			info := p.Info()
			if info == nil || info.ID() == "" {
				diagnostics = append(diagnostics,
					pluginerrors.NewMissingInfoError(canonical))
				return
			}

			m.byFilename[canonical] = p
			m.indexByID(p, canonical, info.ID())

			if info.LoadOnQuery() {
				if err := m.loadPluginLocked(p); err != nil {
					errorCount++
					diagnostics = append(diagnostics,
						pluginerrors.New(pluginerrors.TypeQueryFailure,
							"failed to load "+canonical+" during query",
							pluginerrors.WithError(err)))
					return
				}
			}

			// A plugin was added (or requeried) without a load failure.
			// Earlier failures in this refresh may have been missing
			// dependencies that this plugin now satisfies, so schedule
			// another pass.
			if errorCount > 0 {
				errorCount = 0
				m.refreshNeeded = true
			}
		})
	}

	for _, d := range diagnostics {
		m.log.Warn("refresh diagnostic", logging.Err(d))
	}

	return append([]error(nil), diagnostics...)
}

// indexByID inserts p into the per-id sequence. A previously indexed
// plugin with the same canonical filename is replaced in place, keeping
// its position; otherwise p is prepended.
func (m *Manager) indexByID(p *Plugin, canonical, id string) {
	seq := m.byID[id]
	for i, existing := range seq {
		if existing.Filename() == canonical {
			seq[i] = p
			return
		}
	}

	if len(seq) == 0 {
		m.idOrder = append(m.idOrder, id)
	}
	m.byID[id] = append([]*Plugin{p}, seq...)
}

// FindPlugins returns every plugin matching id, most-recently-discovered
// first. The result is empty if none match.
func (m *Manager) FindPlugins(id string) []*Plugin {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*Plugin(nil), m.byID[id]...)
}

// FindPluginsWithVersion filters FindPlugins(id) by a version
// comparator. An empty op and version short-circuit to FindPlugins.
func (m *Manager) FindPluginsWithVersion(id string, op Comparator, version string) []*Plugin {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.findPluginsWithVersionLocked(id, op, version)
}

func (m *Manager) findPluginsWithVersionLocked(id string, op Comparator, version string) []*Plugin {
	matches := append([]*Plugin(nil), m.byID[id]...)
	if op == "" && version == "" {
		return matches
	}

	atom := DependencyAtom{ID: id, Op: op, Version: version}
	filtered := matches[:0]
	for _, p := range matches {
		info := p.Info()
		if info == nil {
			continue
		}
		if atom.Satisfies(info.Version()) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// FindPluginsWithState returns every indexed plugin currently in the
// given state, in identifier discovery order.
func (m *Manager) FindPluginsWithState(state State) []*Plugin {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*Plugin
	for _, id := range m.idOrder {
		for _, p := range m.byID[id] {
			if p.State() == state {
				out = append(out, p)
			}
		}
	}
	return out
}

// FindPlugin returns the first plugin matching id, or nil.
func (m *Manager) FindPlugin(id string) *Plugin {
	m.mu.Lock()
	defer m.mu.Unlock()

	if seq := m.byID[id]; len(seq) > 0 {
		return seq[0]
	}
	return nil
}

// FindPluginWithNewestVersion returns the plugin matching id whose
// version is the maximum under version comparison, or nil if none
// match. Ties resolve to the earlier entry.
func (m *Manager) FindPluginWithNewestVersion(id string) *Plugin {
	m.mu.Lock()
	defer m.mu.Unlock()

	var best *Plugin
	var bestVersion string
	for _, p := range m.byID[id] {
		info := p.Info()
		if info == nil {
			continue
		}
		if best == nil || compareVersions(info.Version(), bestVersion) > 0 {
			best = p
			bestVersion = info.Version()
		}
	}
	return best
}

// ListPlugins returns the unique identifiers known to the index, in
// first-discovery order.
func (m *Manager) ListPlugins() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.idOrder...)
}

// Foreach invokes fn once per identifier with that identifier's plugin
// sequence. It iterates over a snapshot, so fn may call back into the
// lookup operations without corrupting the iteration.
func (m *Manager) Foreach(fn func(id string, plugins []*Plugin)) {
	m.mu.Lock()
	ids := append([]string(nil), m.idOrder...)
	snapshot := make(map[string][]*Plugin, len(ids))
	for _, id := range ids {
		snapshot[id] = append([]*Plugin(nil), m.byID[id]...)
	}
	m.mu.Unlock()

	for _, id := range ids {
		fn(id, snapshot[id])
	}
}

// PluginDependencies resolves a plugin's dependency expressions against
// the index and returns the matching plugins, one per expression, in
// declaration order. Each disjunction resolves to the first matching
// plugin in the order written.
func (m *Manager) PluginDependencies(p *Plugin) ([]*Plugin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pluginDependenciesLocked(p)
}

func (m *Manager) pluginDependenciesLocked(p *Plugin) ([]*Plugin, error) {
	info := p.Info()
	if info == nil {
		return nil, pluginerrors.NewMissingInfoError(p.Filename())
	}

	var out []*Plugin
	for _, raw := range info.Dependencies() {
		expr, err := ParseDependency(raw)
		if err != nil {
			return nil, err
		}

		var found *Plugin
		for _, atom := range expr.Atoms {
			if matches := m.findPluginsWithVersionLocked(atom.ID, atom.Op, atom.Version); len(matches) > 0 {
				found = matches[0]
				break
			}
		}
		if found == nil {
			return nil, pluginerrors.NewUnresolvedDependencyError(info.ID(), raw)
		}
		out = append(out, found)
	}
	return out, nil
}

// LoadPlugin loads a plugin, first loading its dependencies. Loading a
// plugin that is already loaded is a no-op. Dependencies that loaded
// before a later failure stay loaded.
func (m *Manager) LoadPlugin(p *Plugin) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadPluginLocked(p)
}

func (m *Manager) loadPluginLocked(p *Plugin) error {
	if p.State() == StateLoaded {
		return nil
	}

	info := p.Info()
	if info == nil {
		err := pluginerrors.NewMissingInfoError(p.Filename())
		p.setError(StateLoadFailed, err)
		return err
	}

	deps, err := m.pluginDependenciesLocked(p)
	if err != nil {
		p.setError(StateLoadFailed, err)
		return err
	}
	for _, dep := range deps {
		if err := m.loadPluginLocked(dep); err != nil {
			p.setError(StateLoadFailed, err)
			return err
		}
	}

	loader := p.Loader()
	if loader == nil {
		err := pluginerrors.NewLoaderRefusedError("load", info.ID(), nil)
		p.setError(StateLoadFailed, err)
		return err
	}

	if ok, reason := m.events.emitVeto(EventLoadingPlugin, p); !ok {
		err := pluginerrors.NewListenerVetoError(EventLoadingPlugin.String(), info.ID(), reason)
		p.setError(StateLoadFailed, err)
		return err
	}

	if err := loader.Load(p); err != nil {
		werr := pluginerrors.NewLoaderRefusedError("load", info.ID(), err)
		p.setError(StateLoadFailed, werr)
		m.events.emit(EventLoadPluginFailed, p)
		return werr
	}

	p.clearError()
	p.setState(StateLoaded)
	m.log.Debug("loaded plugin", logging.String("id", info.ID()))
	m.events.emit(EventLoadedPlugin, p)
	return nil
}

// UnloadPlugin unloads a loaded plugin. Unloading a plugin that is not
// loaded is a no-op. Dependencies are not unloaded.
func (m *Manager) UnloadPlugin(p *Plugin) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.unloadPluginLocked(p)
}

func (m *Manager) unloadPluginLocked(p *Plugin) error {
	if p.State() != StateLoaded {
		return nil
	}

	var id string
	if info := p.Info(); info != nil {
		id = info.ID()
	}

	loader := p.Loader()
	if loader == nil {
		return pluginerrors.NewLoaderRefusedError("unload", id, nil)
	}

	if ok, reason := m.events.emitVeto(EventUnloadingPlugin, p); !ok {
		err := pluginerrors.NewListenerVetoError(EventUnloadingPlugin.String(), id, reason)
		p.setError(StateLoadFailed, err)
		return err
	}

	if err := loader.Unload(p); err != nil {
		werr := pluginerrors.NewLoaderRefusedError("unload", id, err)
		p.setError(StateUnloadFailed, werr)
		m.events.emit(EventUnloadPluginFailed, p)
		return werr
	}

	p.clearError()
	p.setState(StateQueried)
	m.log.Debug("unloaded plugin", logging.String("id", id))
	m.events.emit(EventUnloadedPlugin, p)
	return nil
}

// Shutdown unloads every loaded plugin, best effort, then releases the
// manager's loader references. Loaders are released only after every
// plugin is given the chance to unload through them.
func (m *Manager) Shutdown() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var first error
	for _, id := range m.idOrder {
		for _, p := range m.byID[id] {
			if p.State() != StateLoaded {
				continue
			}
			if err := m.unloadPluginLocked(p); err != nil {
				m.log.Warn("shutdown: unload failed",
					logging.String("id", id), logging.Err(err))
				if first == nil {
					first = err
				}
			}
		}
	}

	for _, b := range m.loaders.Snapshot() {
		_ = m.loaders.Unregister(b)
	}

	return first
}
