package plugin

import (
	"os"
	"path/filepath"
	"strings"
)

// candidateFile is a level-2 FileTree node: one file found directly
// inside a search-path directory, with its extension recorded.
type candidateFile struct {
	path string // absolute path
	ext  string // suffix without the leading dot
}

// fileTree is the two-level listing (directory to files with
// extension) over the Manager's configured search roots, built once per
// Refresh call and walked again on every pass of its loop. Discovery
// visits directories in search-path order and files in directory-listing
// order, so the walk is sequential.
type fileTree struct {
	dirs []string
	// files maps a directory to its candidate files, preserving
	// directory-listing order.
	files map[string][]candidateFile
}

// buildFileTree walks each search path non-recursively, collecting one
// level of files per directory.
func buildFileTree(paths []string) *fileTree {
	tree := &fileTree{
		dirs:  append([]string(nil), paths...),
		files: make(map[string][]candidateFile, len(paths)),
	}

	for _, dir := range paths {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		var files []candidateFile
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			name := entry.Name()
			ext := strings.TrimPrefix(filepath.Ext(name), ".")
			abs := filepath.Join(dir, name)
			files = append(files, candidateFile{path: abs, ext: ext})
		}
		tree.files[dir] = files
	}

	return tree
}

// Walk invokes fn once per candidate file, in search-path order and,
// within a directory, directory-listing order.
func (t *fileTree) Walk(fn func(candidateFile)) {
	for _, dir := range t.dirs {
		for _, f := range t.files[dir] {
			fn(f)
		}
	}
}
