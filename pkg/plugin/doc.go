// Package plugin implements a general-purpose plugin management library.
//
// A Manager discovers plugin files across a set of search paths, asks
// registered LoaderBackend implementations to inspect candidate files,
// indexes the resulting Plugin handles, resolves dependency expressions
// between them, and drives their load/unload lifecycle.
//
// # Basic usage
//
//	mgr := plugin.NewManager(nil)
//	mgr.RegisterLoader(myLoader)
//	mgr.AppendPath("/usr/lib/myapp/plugins/")
//	mgr.Refresh()
//
//	p := mgr.FindPlugin("myapp/greeter")
//	if p != nil {
//	    if err := mgr.LoadPlugin(p); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
// # Concurrency
//
// Individual Manager operations serialize on an internal lock, but the
// overall model is single-threaded cooperative: event listeners and
// LoaderBackend callbacks run on the calling goroutine while the lock
// is held, so they must not call back into the Manager. A LoaderBackend
// may use goroutines internally for its language runtime.
package plugin
