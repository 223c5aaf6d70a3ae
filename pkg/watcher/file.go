package watcher

import (
	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

// Notification gets the currently watched items' change events.
type Notification interface {
	WatcherItemDidChange(string)
	WatcherDidError(error)
}

// Notifier watches for any changes to the added files.
type Notifier interface {
	Start(Notification)
	Add(string) error
	Shutdown()
}

// File watches a set of files through fsnotify.
type File struct {
	watcher  *fsnotify.Watcher
	shutdown chan struct{}
}

// NewFile is a standard constructor.
func NewFile() (*File, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "creating file watcher")
	}
	return &File{
		watcher:  w,
		shutdown: make(chan struct{}),
	}, nil
}

// Add a file to start watching.
func (f *File) Add(path string) error {
	return f.watcher.Add(path)
}

// Shutdown stop the watcher.
func (f *File) Shutdown() {
	close(f.shutdown)
	_ = f.watcher.Close()
}

// Start blocks pumping change events to the notifier until Shutdown is
// called.
func (f *File) Start(n Notification) {
	for {
		select {
		case event, ok := <-f.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				n.WatcherItemDidChange(event.Name)
			}
		case err, ok := <-f.watcher.Errors:
			if !ok {
				return
			}
			n.WatcherDidError(err)
		case <-f.shutdown:
			return
		}
	}
}
