package triplestore

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ludokb/ludokb-go/utils"
)

// Watcher reloads the graph when the ontology file changes on disk. The
// reload uses the same build-then-swap sequence as the explicit reload
// endpoint, so readers never see a partial graph. A failed parse keeps
// the previous graph installed.
type Watcher struct {
	fsw    *fsnotify.Watcher
	done   chan struct{}
	logger *utils.Logger
}

// debounce window for editors that emit bursts of write events
const reloadDebounce = 500 * time.Millisecond

// WatchFile starts watching the ontology file and swapping the holder's
// graph on change. Close stops the watcher.
func WatchFile(path string, holder *Holder) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	// Watch the directory: many editors replace files on save, which
	// drops a watch registered on the file itself.
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch ontology directory: %w", err)
	}

	w := &Watcher{
		fsw:    fsw,
		done:   make(chan struct{}),
		logger: utils.GetLogger(),
	}
	go w.run(path, holder)
	return w, nil
}

func (w *Watcher) run(path string, holder *Holder) {
	var timer *time.Timer
	target := filepath.Clean(path)
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(reloadDebounce, func() {
				graph, err := LoadGraph(path)
				if err != nil {
					w.logger.Error("ontology reload after file change failed", err,
						utils.String("path", path),
						utils.Component("triplestore"))
					return
				}
				holder.Swap(graph)
				w.logger.Info("ontology reloaded after file change",
					utils.String("path", path),
					utils.Int("triples", graph.Len()),
					utils.Component("triplestore"))
			})
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("ontology watcher error",
				utils.String("detail", err.Error()),
				utils.Component("triplestore"))
		case <-w.done:
			return
		}
	}
}

// Close stops the watcher
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}
