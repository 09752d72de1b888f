// Package watch observes project source trees through OS-native file
// notifications so the driver can rerun a full compile when a source file
// changes. Every change triggers a complete reparse; nothing incremental
// happens here.
package watch

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Op is a bitmask of the change kinds an event carries.
type Op uint32

const (
	OpCreate Op = 1 << iota
	OpWrite
	OpRemove
	OpRename
	OpChmod
)

// Event is one observed change to a watched path.
type Event struct {
	Path string
	Op   Op
}

// Watcher wraps fsnotify and filters events down to the source extension
// the compiler cares about.
type Watcher struct {
	w         *fsnotify.Watcher
	extension string
	events    chan Event
	errors    chan error
}

// New creates a watcher reporting changes to files with the given
// extension (for example ".rl").
func New(extension string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	watcher := &Watcher{
		w:         w,
		extension: extension,
		events:    make(chan Event, 128),
		errors:    make(chan error, 1),
	}

	go watcher.loop()

	return watcher, nil
}

func (w *Watcher) loop() {
	for {
		select {
		case event, ok := <-w.w.Events:
			if !ok {
				return
			}

			if !strings.HasSuffix(event.Name, w.extension) {
				continue
			}

			var op Op

			if event.Op&fsnotify.Create != 0 {
				op |= OpCreate
			}

			if event.Op&fsnotify.Write != 0 {
				op |= OpWrite
			}

			if event.Op&fsnotify.Remove != 0 {
				op |= OpRemove
			}

			if event.Op&fsnotify.Rename != 0 {
				op |= OpRename
			}

			if event.Op&fsnotify.Chmod != 0 {
				op |= OpChmod
			}

			w.events <- Event{Path: event.Name, Op: op}
		case err, ok := <-w.w.Errors:
			if !ok {
				return
			}

			w.errors <- err
		}
	}
}

// Events returns the filtered event channel.
func (w *Watcher) Events() <-chan Event { return w.events }

// Errors returns the watcher error channel.
func (w *Watcher) Errors() <-chan error { return w.errors }

// AddTree watches root and every directory below it. fsnotify watches are
// not recursive by themselves.
func (w *Watcher) AddTree(root string) error {
	return filepath.WalkDir(root, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if entry.IsDir() {
			return w.w.Add(path)
		}

		return nil
	})
}

// Close shuts the watcher down.
func (w *Watcher) Close() error { return w.w.Close() }
