// Package validation provides filesystem validation for plugin
// candidate files and other user-supplied paths.
//
// Plugin directories are a natural target for symlink tricks: a file
// dropped into a searched directory can point anywhere on the system.
// The manager's strict mode runs every discovered candidate through
// ValidatePluginFile, which rejects files that resolve outside the
// search directory they were found under:
//
//	safe, err := validation.ValidatePluginFile(candidate, searchDir)
//	if err != nil {
//	    // candidate escapes its search directory; skip it
//	}
//
// ValidatePath is the general form, with explicit Options:
//
//	safe, err := validation.ValidatePath(input, validation.Options{
//	    BaseDir:        baseDir,
//	    FollowSymlinks: true,
//	    RequireExists:  true,
//	})
//
// The checks cover traversal ("..") components, null bytes, absolute
// paths where relative ones are expected, and symlinks whose targets
// escape the base directory. Failures wrap the sentinel errors
// ErrPathTraversal, ErrSymlinkTraversal, ErrAbsolutePath, and
// ErrInvalidPath, so callers can branch with errors.Is.
package validation
