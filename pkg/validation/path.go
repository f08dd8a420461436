package validation

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrPathTraversal is returned when a path escapes its base
	// directory through ".." components.
	ErrPathTraversal = errors.New("path traversal detected")

	// ErrAbsolutePath is returned when an absolute path is provided
	// where a relative one is expected.
	ErrAbsolutePath = errors.New("absolute paths are not allowed")

	// ErrSymlinkTraversal is returned when a symlink resolves outside
	// the base directory.
	ErrSymlinkTraversal = errors.New("symlink traversal detected")

	// ErrInvalidPath is returned for malformed paths.
	ErrInvalidPath = errors.New("invalid path")
)

// Options configures ValidatePath.
type Options struct {
	// BaseDir is the directory the validated path must stay within.
	BaseDir string

	// AllowAbsolute accepts absolute input paths, provided they still
	// fall under BaseDir.
	AllowAbsolute bool

	// FollowSymlinks resolves symlinks and checks the resolved target
	// against BaseDir too.
	FollowSymlinks bool

	// RequireExists rejects paths that do not exist.
	RequireExists bool
}

// ValidatePath checks a path against traversal, symlink escape, and
// null-byte tricks, returning the cleaned absolute path on success.
// Relative inputs are resolved against BaseDir.
func ValidatePath(input string, opts Options) (string, error) {
	if input == "" {
		return "", fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	if strings.Contains(input, "\x00") {
		return "", fmt.Errorf("%w: null byte in path", ErrInvalidPath)
	}

	baseDir, err := filepath.Abs(opts.BaseDir)
	if err != nil {
		return "", fmt.Errorf("resolving base directory: %w", err)
	}

	full := input
	if filepath.IsAbs(input) {
		if !opts.AllowAbsolute {
			return "", fmt.Errorf("%w: %s", ErrAbsolutePath, input)
		}
	} else {
		full = filepath.Join(baseDir, input)
	}
	full = filepath.Clean(full)

	if opts.FollowSymlinks {
		resolved, err := followSymlinks(full, baseDir)
		if err != nil {
			return "", err
		}
		full = resolved
	}

	if opts.RequireExists {
		if _, err := os.Stat(full); err != nil {
			if os.IsNotExist(err) {
				return "", fmt.Errorf("%w: path does not exist: %s", ErrInvalidPath, full)
			}
			return "", fmt.Errorf("stat %s: %w", full, err)
		}
	}

	if !within(full, baseDir) {
		return "", fmt.Errorf("%w: %s is outside %s", ErrPathTraversal, full, baseDir)
	}
	return full, nil
}

// ValidatePluginFile validates a discovered plugin candidate: the file
// must exist, and after resolving symlinks it must still live inside
// the search directory it was found under. The manager's strict mode
// runs every candidate through this before offering it to loaders.
func ValidatePluginFile(path, searchDir string) (string, error) {
	return ValidatePath(path, Options{
		BaseDir:        searchDir,
		AllowAbsolute:  true,
		FollowSymlinks: true,
		RequireExists:  true,
	})
}

// followSymlinks resolves path and verifies the target stays under
// baseDir. A path that does not exist yet passes through unchanged.
func followSymlinks(path, baseDir string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		if os.IsNotExist(err) {
			return path, nil
		}
		return "", fmt.Errorf("resolving symlinks: %w", err)
	}

	if !within(resolved, baseDir) {
		return "", fmt.Errorf("%w: symlink resolves to %s outside %s",
			ErrSymlinkTraversal, resolved, baseDir)
	}
	return resolved, nil
}

// within reports whether path falls under baseDir once both are
// absolute and symlink-normalized. Normalizing the base handles
// platforms where the temp directory is itself a symlink (macOS's
// /var vs /private/var).
func within(path, baseDir string) bool {
	absPath, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return false
	}
	absBase, err := filepath.Abs(filepath.Clean(baseDir))
	if err != nil {
		return false
	}

	if evalBase, err := filepath.EvalSymlinks(absBase); err == nil {
		absBase = evalBase
		absPath = normalizePrefix(absPath)
	}

	rel, err := filepath.Rel(absBase, absPath)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// normalizePrefix resolves symlinks in the deepest existing ancestor of
// path so it compares against a symlink-normalized base. The leaf
// itself may not exist yet.
func normalizePrefix(path string) string {
	dir := filepath.Dir(path)
	if evalDir, err := filepath.EvalSymlinks(dir); err == nil {
		return filepath.Join(evalDir, filepath.Base(path))
	}

	for d := dir; d != "/" && d != "."; d = filepath.Dir(d) {
		evalDir, err := filepath.EvalSymlinks(d)
		if err != nil {
			continue
		}
		rel, err := filepath.Rel(d, path)
		if err != nil {
			return path
		}
		return filepath.Join(evalDir, rel)
	}
	return path
}
