package vault

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/notecal/notecal/internal/debounce"
	"github.com/notecal/notecal/internal/event_bus"
	log "github.com/sirupsen/logrus"
)

// Watcher observes the vault directory tree and publishes a single
// VaultChanged event per burst of file-system activity. Bursts are collapsed
// through a single-slot debouncer so one editor save (write + rename + chmod)
// triggers one snapshot rebuild.
type Watcher struct {
	repo     *FSRepository
	bus      *event_bus.EventBus
	watcher  *fsnotify.Watcher
	debounce *debounce.Debouncer
	delay    time.Duration
	done     chan struct{}
}

func NewWatcher(repo *FSRepository, bus *event_bus.EventBus, delay time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		repo:     repo,
		bus:      bus,
		watcher:  fsw,
		debounce: debounce.New(),
		delay:    delay,
		done:     make(chan struct{}),
	}
	if err := w.addRecursive(repo.Root()); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// Start begins dispatching file-system events until Close is called.
func (w *Watcher) Start() {
	go w.loop()
	log.Infof("watching vault at %s", w.repo.Root())
}

func (w *Watcher) loop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Errorf("vault watcher error: %v", err)
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") || strings.HasSuffix(name, ".notecal.tmp") {
		return
	}

	// New directories must be added to the watch list.
	if event.Op.Has(fsnotify.Create) {
		if err := w.addRecursive(event.Name); err == nil {
			log.Debugf("watching new path: %s", event.Name)
		}
	}

	if !strings.EqualFold(filepath.Ext(event.Name), ".md") && !event.Op.Has(fsnotify.Create) {
		return
	}

	w.repo.Invalidate(event.Name)
	w.debounce.Schedule(w.delay, func() {
		log.Debug("vault changed, publishing refresh")
		if err := w.bus.Publish(event_bus.NewEvent(context.Background(), event_bus.VaultChanged, nil)); err != nil {
			log.Errorf("vault refresh failed: %v", err)
		}
	})
}

// addRecursive watches dir and all non-hidden subdirectories. Non-directory
// paths are ignored.
func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // path may have vanished mid-walk
		}
		if !d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && path != dir {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
}

// Close tears the watcher down, cancelling any pending debounced refresh.
func (w *Watcher) Close() error {
	close(w.done)
	w.debounce.Stop()
	return w.watcher.Close()
}
