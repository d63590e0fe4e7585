package tui

import (
	"context"
	"time"

	"github.com/blackwell-systems/shelfscribe/internal/storage"
	tea "github.com/charmbracelet/bubbletea"
)

// Notifier turns store hooks into bubbletea messages. Pass Changed and
// Failed as the store's OnChange and OnError before opening it.
type Notifier struct {
	changes chan struct{}
	errs    chan error
}

// NewNotifier returns a Notifier with room for a few pending errors.
func NewNotifier() *Notifier {
	return &Notifier{
		changes: make(chan struct{}, 1),
		errs:    make(chan error, 8),
	}
}

// Changed signals a redraw. Bursts collapse into one message.
func (n *Notifier) Changed() {
	select {
	case n.changes <- struct{}{}:
	default:
	}
}

// Failed queues err for display. It drops errors when the queue is full.
func (n *Notifier) Failed(err error) {
	select {
	case n.errs <- err:
	default:
	}
}

type storeChangedMsg struct{}

type storeErrMsg struct{ err error }

type watchEventMsg struct{ ok bool }

type reloadedMsg struct {
	changed bool
	err     error
}

type toastExpiredMsg struct{ id int }

func waitForChange(n *Notifier) tea.Cmd {
	if n == nil {
		return nil
	}
	return func() tea.Msg {
		<-n.changes
		return storeChangedMsg{}
	}
}

func waitForError(n *Notifier) tea.Cmd {
	if n == nil {
		return nil
	}
	return func() tea.Msg {
		return storeErrMsg{err: <-n.errs}
	}
}

func waitForWatch(events <-chan storage.Event) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		_, ok := <-events
		return watchEventMsg{ok: ok}
	}
}

func reloadCmd(r Reloader) tea.Cmd {
	return func() tea.Msg {
		changed, err := r.Reload()
		return reloadedMsg{changed: changed, err: err}
	}
}

func expireToast(id int) tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

// Reloader re-reads persisted state.
type Reloader interface {
	Reload() (bool, error)
}

// Watcher produces change events for the persisted state.
type Watcher interface {
	Watch(ctx context.Context) (<-chan storage.Event, error)
}
