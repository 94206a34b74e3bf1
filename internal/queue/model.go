package queue

import "github.com/AJMerr/playcore/internal/reactive"

// Model pairs the shared Queue with the containers the UI observes: the queue
// length, which is re-published on every mutation so the list view can
// rebuild itself wholesale, and the current track used by IsCurrent.
//
// Model methods must run on the primary loop. Code on other goroutines
// mutates the Queue directly and then has the loop call Refresh.
type Model struct {
	q       *Queue
	length  *reactive.Container[int]
	current *reactive.Container[string]
}

// NewModel wraps q. current is the playback current-track container, "" when
// nothing is loaded.
func NewModel(q *Queue, current *reactive.Container[string]) *Model {
	if q == nil {
		q = New()
	}
	return &Model{
		q:       q,
		length:  reactive.New(q.Len()),
		current: current,
	}
}

// Queue returns the shared backing queue.
func (m *Model) Queue() *Queue { return m.q }

// Length is the container notified with the new length after every mutation.
func (m *Model) Length() *reactive.Container[int] { return m.length }

func (m *Model) Append(item Item) {
	m.length.Set(m.q.Append(item))
}

func (m *Model) Remove(i int) (Item, error) {
	item, err := m.q.Remove(i)
	if err != nil {
		return Item{}, err
	}
	m.Refresh()
	return item, nil
}

func (m *Model) Clear() {
	m.q.Clear()
	m.Refresh()
}

// Refresh publishes the current length after out-of-loop mutations.
func (m *Model) Refresh() {
	m.length.Set(m.q.Len())
}

// Snapshot returns a copy of the items for rendering.
func (m *Model) Snapshot() []Item {
	return m.q.Snapshot()
}

// IsCurrent reports whether item is the track currently loaded.
func (m *Model) IsCurrent(item Item) bool {
	if m.current == nil {
		return false
	}
	cur := m.current.Read()
	return cur != "" && cur == item.Path
}

// CurrentIndex returns the queue position of the current track, or -1.
func (m *Model) CurrentIndex() int {
	if m.current == nil || m.current.Read() == "" {
		return -1
	}
	return m.q.IndexOf(m.current.Read())
}
