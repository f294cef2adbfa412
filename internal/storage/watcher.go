package storage

import (
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce coalesces the burst of events an editor emits for one save.
const reloadDebounce = 250 * time.Millisecond

// ConfigWatcher watches the config file for external edits and invokes a
// callback after each change settles.
type ConfigWatcher struct {
	watcher  *fsnotify.Watcher
	filePath string
	onChange func()
	done     chan struct{}
	mu       sync.Mutex
	running  bool
}

// NewConfigWatcher creates a watcher for the given config file. The
// callback runs on the watcher's goroutine; keep it cheap and hand the work
// off.
func NewConfigWatcher(filePath string, onChange func()) (*ConfigWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &ConfigWatcher{
		watcher:  watcher,
		filePath: filePath,
		onChange: onChange,
		done:     make(chan struct{}),
	}, nil
}

// Start begins watching. The containing directory is watched rather than
// the file itself, so atomic replace-by-rename writes are seen too.
func (watcher *ConfigWatcher) Start() error {
	watcher.mu.Lock()
	if watcher.running {
		watcher.mu.Unlock()
		return nil
	}
	watcher.running = true
	watcher.mu.Unlock()

	if err := watcher.watcher.Add(filepath.Dir(watcher.filePath)); err != nil {
		return err
	}

	go watcher.watch()
	return nil
}

func (watcher *ConfigWatcher) watch() {
	filename := filepath.Base(watcher.filePath)

	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-watcher.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(reloadDebounce, watcher.onChange)

		case err, ok := <-watcher.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("config watcher error: %v", err)

		case <-watcher.done:
			return
		}
	}
}

// Stop stops the watcher.
func (watcher *ConfigWatcher) Stop() error {
	watcher.mu.Lock()
	defer watcher.mu.Unlock()

	if !watcher.running {
		return nil
	}
	watcher.running = false
	close(watcher.done)
	return watcher.watcher.Close()
}
