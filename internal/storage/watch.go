package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Event signals that the stored document may have changed on disk.
type Event struct {
	Path string
}

// Watch streams change events for the backend's data file until ctx is
// cancelled. Bursts of writes are coalesced into one event. The channel is
// closed when the watcher stops.
func (a *Adapter) Watch(ctx context.Context) (<-chan Event, error) {
	path := a.backend.Path()
	dir := filepath.Dir(path)
	// SQLite writes journal files next to the database; match them too.
	prefix := filepath.Base(path)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("storage: create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("storage: watch %s: %w", dir, err)
	}

	events := make(chan Event, 1)

	go func() {
		// The throttle timer may fire while the loop shuts down; stopped
		// keeps it from sending on the closed channel.
		var mu sync.Mutex
		stopped := false
		defer func() {
			mu.Lock()
			stopped = true
			close(events)
			mu.Unlock()
		}()
		defer func() {
			if err := watcher.Close(); err != nil {
				a.log.Debug("watcher close", zap.Error(err))
			}
		}()

		send := func(ev Event) {
			mu.Lock()
			defer mu.Unlock()
			if stopped {
				return
			}
			select {
			case events <- ev:
			default:
				// A reload is already pending; it will pick this change up.
			}
		}

		throttle := newEventThrottle(100 * time.Millisecond)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				a.log.Warn("watcher error", zap.Error(err))
				throttle.Enqueue(Event{Path: path}, send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !strings.HasPrefix(filepath.Base(evt.Name), prefix) {
					continue
				}
				if evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
					continue
				}
				throttle.Enqueue(Event{Path: path}, send)
			}
		}
	}()

	return events, nil
}

// eventThrottle delivers at most one event per delay window.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending *Event
	delay   time.Duration
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{delay: delay}
}

func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending = &ev
	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
}

func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	ev := t.pending
	t.pending = nil
	t.timer = nil
	t.mu.Unlock()

	if ev != nil {
		send(*ev)
	}
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.pending = nil
	t.mu.Unlock()
}
