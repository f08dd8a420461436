package plugin

import "sync"

var (
	defaultOnce    sync.Once
	defaultManager *Manager
)

// Default returns the process-wide default Manager, constructing one
// with DefaultConfig on first use. Applications that prefer explicit
// wiring should construct their own Manager with NewManager and ignore
// this helper.
func Default() *Manager {
	defaultOnce.Do(func() {
		defaultManager = NewManager(DefaultConfig())
	})
	return defaultManager
}

// SetDefault replaces the process-wide default Manager.
func SetDefault(m *Manager) {
	defaultOnce.Do(func() {})
	defaultManager = m
}
