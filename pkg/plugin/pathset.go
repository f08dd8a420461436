package plugin

import (
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// pathSet is the Manager's search-path registry. Every
// stored path is normalized to end with the platform directory
// separator; deduplication uses locale-aware filename collation on the
// normalized form, mirroring how the original treats paths as ordinary
// display strings rather than raw bytes.
type pathSet struct {
	paths    []string
	collator *collate.Collator
}

func newPathSet() *pathSet {
	return &pathSet{
		collator: collate.New(language.Und),
	}
}

func normalizePath(p string) string {
	if p == "" {
		return p
	}
	if !strings.HasSuffix(p, string(filepath.Separator)) {
		p += string(filepath.Separator)
	}
	return p
}

func (s *pathSet) indexOf(p string) int {
	for i, existing := range s.paths {
		if s.collator.CompareString(existing, p) == 0 {
			return i
		}
	}
	return -1
}

// Append inserts p (normalized) at the end, unless an equal entry
// already exists.
func (s *pathSet) Append(p string) {
	p = normalizePath(p)
	if s.indexOf(p) >= 0 {
		return
	}
	s.paths = append(s.paths, p)
}

// Prepend inserts p (normalized) at the front, unless an equal entry
// already exists.
func (s *pathSet) Prepend(p string) {
	p = normalizePath(p)
	if s.indexOf(p) >= 0 {
		return
	}
	s.paths = append([]string{p}, s.paths...)
}

// Remove deletes a single matching entry.
func (s *pathSet) Remove(p string) {
	p = normalizePath(p)
	idx := s.indexOf(p)
	if idx < 0 {
		return
	}
	s.paths = append(s.paths[:idx], s.paths[idx+1:]...)
}

// RemoveAll clears every registered path.
func (s *pathSet) RemoveAll() {
	s.paths = nil
}

// Paths returns an ordered snapshot of the registered search paths.
func (s *pathSet) Paths() []string {
	return append([]string(nil), s.paths...)
}

// addDefaultPaths prepends the framework install prefix and the user
// config directory.
func (s *pathSet) addDefaultPaths(installPrefix, libdir, framework string) {
	s.Prepend(filepath.Join(userConfigDir(), framework))
	s.Prepend(filepath.Join(installPrefix, libdir, framework))
}

// addAppPaths prepends "<prefix>/<libdir>/<app>" and
// "<user_config>/<app>/plugins".
func (s *pathSet) addAppPaths(prefix, libdir, app string) {
	s.Prepend(filepath.Join(userConfigDir(), app, "plugins"))
	s.Prepend(filepath.Join(prefix, libdir, app))
}

func userConfigDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir
	}
	return os.Getenv("HOME")
}
