package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/AJMerr/playcore/internal/queue"
	"github.com/AJMerr/playcore/internal/reactive"
)

type Keymap struct {
	Up, Down string
	Remove   string
	Clear    string
	Link     string
	Confirm  string
	SignOut  string
	Quit     string
}

// queueView is the list view model, rebuilt wholesale whenever the queue
// length container fires. It is shared by pointer across model copies.
type queueView struct {
	items []queue.Item
	subs  reactive.Group
}

type Model struct {
	deps Deps

	// UI state
	cursor  int
	width   int
	height  int
	lastErr error
	authURL string

	queue  *queueView
	keys   Keymap
	styles Styles
}

func New(d Deps) Model {
	if d.Timeout <= 0 {
		d.Timeout = 10 * time.Second
	}
	qv := &queueView{}
	q := d.Registry.Models.Queue
	qv.items = q.Snapshot()
	qv.subs.Add(q.Length().Subscribe(func(int) {
		qv.items = q.Snapshot()
	}))

	return Model{
		deps:  d,
		queue: qv,
		keys: Keymap{
			Up: "up/k", Down: "down/j",
			Remove: "d", Clear: "x",
			Link: "l", Confirm: "c", SignOut: "o",
			Quit: "q",
		},
		styles: newStyles(),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Close releases the model's subscriptions.
func (m Model) Close() {
	m.queue.subs.Detach()
}

func (m Model) clampCursor() Model {
	if m.cursor >= len(m.queue.items) {
		m.cursor = len(m.queue.items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	return m
}
