// Package queue holds the play queue shared between the playback side, which
// mutates it, and the renderer, which reads snapshots of it.
package queue

import (
	"sync"

	perrors "github.com/AJMerr/playcore/internal/errors"
	"github.com/AJMerr/playcore/internal/media"
)

// Item is one playable entry.
type Item struct {
	Path     string
	Metadata media.Metadata
	AlbumArt []byte
}

// Queue is an ordered sequence of items behind a read/write lock. It is the
// one piece of registry state that may be mutated off the primary loop.
type Queue struct {
	mu    sync.RWMutex
	items []Item
}

// New returns a queue holding a copy of items.
func New(items ...Item) *Queue {
	return &Queue{items: append([]Item(nil), items...)}
}

// Append adds item at the end and returns the new length.
func (q *Queue) Append(item Item) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, item)
	return len(q.items)
}

// Remove deletes the item at index i and returns it.
func (q *Queue) Remove(i int) (Item, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if i < 0 || i >= len(q.items) {
		return Item{}, perrors.IndexOutOfRange(i, len(q.items))
	}
	item := q.items[i]
	q.items = append(q.items[:i:i], q.items[i+1:]...)
	return item, nil
}

// Clear empties the queue.
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = nil
}

// Snapshot returns a read-only copy for rendering.
func (q *Queue) Snapshot() []Item {
	q.mu.RLock()
	defer q.mu.RUnlock()
	out := make([]Item, len(q.items))
	copy(out, q.items)
	return out
}

// Len returns the number of items.
func (q *Queue) Len() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return len(q.items)
}

// IndexOf returns the index of the first item with path, or -1.
func (q *Queue) IndexOf(path string) int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	for i, it := range q.items {
		if it.Path == path {
			return i
		}
	}
	return -1
}
