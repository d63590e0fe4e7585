package tui

import "github.com/charmbracelet/bubbles/key"

// gridKeys are active while the shelf grid has focus.
type gridKeys struct {
	Up, Down, Left, Right key.Binding
	Open                  key.Binding
	Search                key.Binding
	Target                key.Binding
	Cancel                key.Binding
	Copy                  key.Binding
	ShowAll               key.Binding
	Import                key.Binding
	Export                key.Binding
	Reset                 key.Binding
	Quit                  key.Binding
}

func newGridKeys() gridKeys {
	return gridKeys{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Open:    key.NewBinding(key.WithKeys("enter", " ", "space"), key.WithHelp("enter", "open")),
		Search:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Target:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "type target")),
		Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Copy:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy barcodes")),
		ShowAll: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "show all")),
		Import:  key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "import")),
		Export:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export")),
		Reset:   key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reset")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// editorKeys are active while a cell editor is open.
type editorKeys struct {
	Up, Down key.Binding
	Edit     key.Binding
	Title    key.Binding
	Add      key.Binding
	Remove   key.Binding
	Toggle   key.Binding
	Save     key.Binding
	Delete   key.Binding
	Move     key.Binding
	Close    key.Binding
}

func newEditorKeys() editorKeys {
	return editorKeys{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Edit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit barcode")),
		Title:  key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "edit title")),
		Add:    key.NewBinding(key.WithKeys("n", "+"), key.WithHelp("n", "new")),
		Remove: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove")),
		Toggle: key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "select")),
		Save:   key.NewBinding(key.WithKeys("s", "ctrl+s"), key.WithHelp("s", "save")),
		Delete: key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete cell")),
		Move:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move selected")),
		Close:  key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("esc", "close")),
	}
}

// promptKeys are active while a text prompt or confirmation is open.
type promptKeys struct {
	Submit  key.Binding
	Cancel  key.Binding
	Yes     key.Binding
	No      key.Binding
	Merge   key.Binding
	Replace key.Binding
}

func newPromptKeys() promptKeys {
	return promptKeys{
		Submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Cancel:  key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "cancel")),
		Yes:     key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "yes")),
		No:      key.NewBinding(key.WithKeys("n", "N"), key.WithHelp("n", "no")),
		Merge:   key.NewBinding(key.WithKeys("m", "M"), key.WithHelp("m", "merge")),
		Replace: key.NewBinding(key.WithKeys("r", "R"), key.WithHelp("r", "replace")),
	}
}
