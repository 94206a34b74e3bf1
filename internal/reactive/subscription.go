package reactive

// Subscription is the handle returned by Subscribe. The callback stays
// registered until Detach is called.
type Subscription struct {
	detach func()
}

// Detach deregisters the callback. Calling it more than once is a no-op.
func (s *Subscription) Detach() {
	if s == nil || s.detach == nil {
		return
	}
	s.detach()
	s.detach = nil
}

// Group retains subscriptions owned by one component so they can be released
// together.
type Group struct {
	subs []*Subscription
}

// Add retains s and returns it.
func (g *Group) Add(s *Subscription) *Subscription {
	g.subs = append(g.subs, s)
	return s
}

// Len reports how many subscriptions the group retains.
func (g *Group) Len() int {
	return len(g.subs)
}

// Detach releases every retained subscription in reverse order.
func (g *Group) Detach() {
	for i := len(g.subs) - 1; i >= 0; i-- {
		g.subs[i].Detach()
	}
	g.subs = nil
}

// Derive returns a container whose value tracks fn(src) and the subscription
// that keeps it in sync. Detaching the subscription freezes the derived value.
func Derive[T, U any](src *Container[T], fn func(T) U) (*Container[U], *Subscription) {
	out := New(fn(src.Read()))
	sub := src.Subscribe(func(v T) {
		out.Set(fn(v))
	})
	return out, sub
}
