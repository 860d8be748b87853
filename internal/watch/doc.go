// Package watch reports changes to files on disk.
//
// A Watcher subscribes to the directories holding the watched paths
// through fsnotify, so editors and stores that save by renaming a
// temporary file over the original are seen as writes. Events are
// debounced per path: a burst of events yields one Change once the path
// has been quiet for the debounce window.
//
//	w, err := watch.New(watch.Config{Paths: []string{"site/index.html"}})
//	if err != nil {
//	    return err
//	}
//	w.OnChange(func(c watch.Change) { reload(c.Path) })
//	go w.Start(ctx)
package watch
