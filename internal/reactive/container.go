// Package reactive provides single-value containers that synchronously notify
// their subscribers on every mutation.
//
// A Container is confined to the goroutine that owns it (the primary loop).
// It does no locking; producers on other goroutines marshal their updates onto
// the owning loop instead of touching a Container directly.
package reactive

// Container owns one value and an insertion-ordered list of subscriptions.
type Container[T any] struct {
	value  T
	subs   []*entry[T]
	nextID uint64
}

type entry[T any] struct {
	id uint64
	fn func(T)
}

// New returns a Container holding v.
func New[T any](v T) *Container[T] {
	return &Container[T]{value: v}
}

// Read returns the current value.
func (c *Container[T]) Read() T {
	return c.value
}

// Set replaces the value and notifies subscribers.
func (c *Container[T]) Set(v T) {
	c.value = v
	c.notify()
}

// Update replaces the value with fn(current) and notifies subscribers.
func (c *Container[T]) Update(fn func(T) T) {
	c.value = fn(c.value)
	c.notify()
}

// Mutate applies fn to the value in place and notifies subscribers.
func (c *Container[T]) Mutate(fn func(*T)) {
	fn(&c.value)
	c.notify()
}

// Notify re-delivers the current value without changing it.
func (c *Container[T]) Notify() {
	c.notify()
}

// Subscribe registers fn and returns the handle that keeps it alive.
// fn runs on the mutating goroutine, after every subsequent mutation, until
// the handle is detached.
func (c *Container[T]) Subscribe(fn func(T)) *Subscription {
	c.nextID++
	id := c.nextID
	c.subs = append(c.subs, &entry[T]{id: id, fn: fn})
	return &Subscription{detach: func() { c.remove(id) }}
}

// Len reports the number of live subscriptions.
func (c *Container[T]) Len() int {
	return len(c.subs)
}

// notify delivers to the subscriptions alive at the moment of mutation.
// Subscriptions added or detached by a callback do not change this round.
// A panicking callback is not recovered.
func (c *Container[T]) notify() {
	if len(c.subs) == 0 {
		return
	}
	round := make([]*entry[T], len(c.subs))
	copy(round, c.subs)
	v := c.value
	for _, e := range round {
		e.fn(v)
	}
}

func (c *Container[T]) remove(id uint64) {
	for i, e := range c.subs {
		if e.id == id {
			c.subs = append(c.subs[:i:i], c.subs[i+1:]...)
			return
		}
	}
}
