package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/blackwell-systems/shelfscribe/internal/editor"
	"github.com/blackwell-systems/shelfscribe/internal/grid"
	"github.com/blackwell-systems/shelfscribe/internal/move"
	"github.com/blackwell-systems/shelfscribe/internal/shelf"
	"github.com/blackwell-systems/shelfscribe/internal/storage"
	"github.com/blackwell-systems/shelfscribe/internal/store"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Options configures the shelf TUI.
type Options struct {
	Store         *store.Store
	Notifier      *Notifier
	Watcher       Watcher // optional; reloads when another process writes
	Layout        grid.Layout
	ShowAll       bool
	CloseBehavior editor.CloseBehavior
	Logger        *zap.Logger

	// CopyText defaults to the system clipboard.
	CopyText func(string) error
}

type mode int

const (
	modeGrid mode = iota
	modeSearch
	modeEditor
	modeEditField
	modeTarget
	modeImportPath
	modeImportConfirm
	modeExportPath
	modeResetConfirm
)

// entry fields edited through the text input
const (
	fieldBarcode = iota
	fieldTitle
)

type appModel struct {
	opts  Options
	keys  gridKeys
	ekeys editorKeys
	pkeys promptKeys

	mode     mode
	col, row int
	showAll  bool
	query    string
	input    textinput.Model

	draft     *editor.Draft
	entries   list.Model
	editField int
	flow      move.Workflow

	pendingImport shelf.Data

	toast    string
	toastErr bool
	toastID  int

	width, height int
	activeCmd     string
	watch         <-chan storage.Event
	quitting      bool
}

func newAppModel(opts Options) appModel {
	if opts.CopyText == nil {
		opts.CopyText = clipboard.WriteAll
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	in := textinput.New()
	in.Prompt = "│ "
	in.CharLimit = 256
	in.Width = 40

	return appModel{
		opts:    opts,
		keys:    newGridKeys(),
		ekeys:   newEditorKeys(),
		pkeys:   newPromptKeys(),
		col:     1,
		row:     1,
		showAll: opts.ShowAll,
		input:   in,
		entries: newEntryList(),
	}
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(
		waitForChange(m.opts.Notifier),
		waitForError(m.opts.Notifier),
		waitForWatch(m.watch),
	)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.entries.SetSize(max(msg.Width-8, 30), 8)
		return m, nil

	case ClearActiveCmdMsg:
		m.activeCmd = ""
		return m, nil

	case storeChangedMsg:
		m.clampCursor()
		return m, waitForChange(m.opts.Notifier)

	case storeErrMsg:
		cmd := m.setToast(msg.err.Error(), true)
		return m, tea.Batch(cmd, waitForError(m.opts.Notifier))

	case watchEventMsg:
		if !msg.ok {
			m.watch = nil
			return m, nil
		}
		return m, tea.Batch(reloadCmd(m.opts.Store), waitForWatch(m.watch))

	case reloadedMsg:
		// Load failures already reach the user through the store's OnError.
		if msg.err == nil && msg.changed {
			m.clampCursor()
			return m, m.setToast("Reloaded shelf data changed on disk", false)
		}
		return m, nil

	case toastExpiredMsg:
		if msg.id == m.toastID {
			m.toast = ""
		}
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeGrid:
			return m.updateGrid(msg)
		case modeEditor:
			return m.updateEditor(msg)
		case modeEditField:
			return m.updateEditField(msg)
		case modeSearch:
			return m.updateSearch(msg)
		case modeImportConfirm, modeResetConfirm:
			return m.updateConfirm(msg)
		default:
			return m.updatePrompt(msg)
		}
	}

	if m.inputActive() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m appModel) inputActive() bool {
	switch m.mode {
	case modeSearch, modeEditField, modeTarget, modeImportPath, modeExportPath:
		return true
	}
	return false
}

// setToast shows a transient status line.
func (m *appModel) setToast(text string, isErr bool) tea.Cmd {
	m.toastID++
	m.toast = text
	m.toastErr = isErr
	return expireToast(m.toastID)
}

// report shows err unless it is a storage failure, which already arrives
// through the notifier.
func (m *appModel) report(err error) tea.Cmd {
	if err == nil {
		return nil
	}
	var se *storage.StorageError
	if errors.As(err, &se) {
		return nil
	}
	return m.setToast(err.Error(), true)
}

// RunApp launches the interactive shelf grid and blocks until the user quits.
func RunApp(opts Options) error {
	if opts.Store == nil {
		return fmt.Errorf("tui: no store")
	}
	m := newAppModel(opts)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if opts.Watcher != nil {
		events, err := opts.Watcher.Watch(ctx)
		if err != nil {
			m.opts.Logger.Warn("watching shelf data disabled", zap.Error(err))
		} else {
			m.watch = events
		}
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("running shelf view: %w", err)
	}

	fm, ok := finalModel.(appModel)
	if !ok {
		return fmt.Errorf("unexpected model type")
	}

	// An editor left open at quit follows the configured close policy.
	if fm.draft != nil {
		if _, err := fm.draft.Close(fm.opts.CloseBehavior, fm.opts.Store); err != nil {
			return err
		}
	}
	return nil
}
