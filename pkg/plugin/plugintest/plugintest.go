// Package plugintest provides an in-memory LoaderBackend and filesystem
// fixtures for testing code built on the plugin manager.
package plugintest

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/gplugin-go/gplugin/pkg/plugin"
)

// Loader is a scriptable in-memory LoaderBackend. Descriptors are
// stubbed per file base name; Load and Unload succeed unless a failure
// hook is installed. Every call is recorded for assertions.
type Loader struct {
	id   string
	exts []string

	mu         sync.Mutex
	infos      map[string]*plugin.Info
	queryErrs  map[string]error
	loadHook   func(*plugin.Plugin) error
	unloadHook func(*plugin.Plugin) error

	queried  []string
	loaded   []string
	unloaded []string
}

// NewLoader constructs a Loader claiming the given extensions.
func NewLoader(id string, extensions ...string) *Loader {
	return &Loader{
		id:        id,
		exts:      extensions,
		infos:     make(map[string]*plugin.Info),
		queryErrs: make(map[string]error),
	}
}

// Stub registers the descriptor Query returns for a file base name.
func (l *Loader) Stub(basename string, info *plugin.Info) *Loader {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos[basename] = info
	return l
}

// FailQuery makes Query fail for a file base name.
func (l *Loader) FailQuery(basename string, err error) *Loader {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.queryErrs[basename] = err
	return l
}

// FailLoad installs a hook consulted before every Load; a non-nil
// return fails the load.
func (l *Loader) FailLoad(hook func(*plugin.Plugin) error) *Loader {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.loadHook = hook
	return l
}

// FailUnload installs a hook consulted before every Unload.
func (l *Loader) FailUnload(hook func(*plugin.Plugin) error) *Loader {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.unloadHook = hook
	return l
}

// ID implements plugin.LoaderBackend.
func (l *Loader) ID() string { return l.id }

// SupportedExtensions implements plugin.LoaderBackend.
func (l *Loader) SupportedExtensions() []string {
	return append([]string(nil), l.exts...)
}

// Query implements plugin.LoaderBackend against the stubbed descriptors.
func (l *Loader) Query(path string) (*plugin.Plugin, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	base := filepath.Base(path)
	l.queried = append(l.queried, base)

	if err, ok := l.queryErrs[base]; ok {
		return nil, err
	}
	info, ok := l.infos[base]
	if !ok {
		return nil, fmt.Errorf("no descriptor stubbed for %s", base)
	}
	return plugin.NewQueriedPlugin(path, l, info), nil
}

// Load implements plugin.LoaderBackend.
func (l *Loader) Load(p *plugin.Plugin) error {
	l.mu.Lock()
	hook := l.loadHook
	l.mu.Unlock()

	if hook != nil {
		if err := hook(p); err != nil {
			return err
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.loaded = append(l.loaded, pluginID(p))
	return nil
}

// Unload implements plugin.LoaderBackend.
func (l *Loader) Unload(p *plugin.Plugin) error {
	l.mu.Lock()
	hook := l.unloadHook
	l.mu.Unlock()

	if hook != nil {
		if err := hook(p); err != nil {
			return err
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.unloaded = append(l.unloaded, pluginID(p))
	return nil
}

// Queried returns the base names Query was called with, in order.
func (l *Loader) Queried() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.queried...)
}

// Loaded returns the plugin ids Load accepted, in order.
func (l *Loader) Loaded() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.loaded...)
}

// Unloaded returns the plugin ids Unload accepted, in order.
func (l *Loader) Unloaded() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.unloaded...)
}

func pluginID(p *plugin.Plugin) string {
	if info := p.Info(); info != nil {
		return info.ID()
	}
	return p.Filename()
}

// Info builds a minimal descriptor with an id and version.
func Info(id, version string) *plugin.Info {
	return plugin.NewInfoBuilder(id).Version(version).Build()
}

// TempTree creates a temporary directory holding the named empty files
// and returns its path. The directory is removed when the test ends.
func TempTree(t *testing.T, names ...string) string {
	t.Helper()

	dir := t.TempDir()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	return dir
}
