package broadcast

import (
	"context"
	"reflect"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	perrors "github.com/AJMerr/playcore/internal/errors"
)

// Dispatcher holds the name-keyed set of registered services and delivers
// events to them asynchronously. Dispatch never blocks on delivery.
type Dispatcher struct {
	mu      sync.RWMutex
	handles map[string]*handle
	log     *logrus.Entry
	ctx     context.Context
	wg      sync.WaitGroup
}

type envelope struct {
	id    uuid.UUID
	event Event
}

// handle serializes calls into one service. pending is unbounded: a service
// slower than the event rate accumulates work.
type handle struct {
	name    string
	svc     Service
	mu      sync.Mutex
	pending []envelope
	running bool
}

// NewDispatcher returns an empty dispatcher logging to log.
func NewDispatcher(log *logrus.Entry) *Dispatcher {
	return &Dispatcher{
		handles: make(map[string]*handle),
		log:     log,
		ctx:     context.Background(),
	}
}

// Register adds svc under name, replacing any previous registration. Events
// already queued for a replaced service are still delivered to it.
// Registering the service already held under name keeps its handle, so its
// queue and in-order delivery carry on.
func (d *Dispatcher) Register(name string, svc Service) {
	d.mu.Lock()
	defer d.mu.Unlock()
	old, replaced := d.handles[name]
	if replaced && sameService(old.svc, svc) {
		d.log.WithField("service", name).Debug("Broadcast service already registered")
		return
	}
	d.handles[name] = &handle{name: name, svc: svc}
	d.log.WithFields(logrus.Fields{"service": name, "replaced": replaced}).Debug("Registered broadcast service")
}

func sameService(a, b Service) bool {
	if a == nil || b == nil {
		return a == b
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	return ta == tb && ta.Comparable() && a == b
}

// Unregister removes the service registered under name.
func (d *Dispatcher) Unregister(name string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.handles[name]; !ok {
		return false
	}
	delete(d.handles, name)
	d.log.WithField("service", name).Debug("Unregistered broadcast service")
	return true
}

// Has reports whether a service is registered under name.
func (d *Dispatcher) Has(name string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.handles[name]
	return ok
}

// Names returns the registered service names, sorted.
func (d *Dispatcher) Names() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	names := make([]string, 0, len(d.handles))
	for name := range d.handles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered services.
func (d *Dispatcher) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.handles)
}

// Dispatch queues ev for every service registered at the time of the call.
// Services registered afterwards do not receive it.
func (d *Dispatcher) Dispatch(ev Event) {
	d.mu.RLock()
	snapshot := make([]*handle, 0, len(d.handles))
	for _, h := range d.handles {
		snapshot = append(snapshot, h)
	}
	d.mu.RUnlock()

	env := envelope{id: uuid.New(), event: ev}
	for _, h := range snapshot {
		d.enqueue(h, env)
	}
}

// Wait blocks until every queued delivery has finished. It must not be
// called concurrently with Dispatch.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) enqueue(h *handle, env envelope) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pending = append(h.pending, env)
	if h.running {
		return
	}
	h.running = true
	d.wg.Add(1)
	go d.drain(h)
}

// drain delivers queued events one at a time and exits when the queue is
// empty.
func (d *Dispatcher) drain(h *handle) {
	defer d.wg.Done()
	for {
		h.mu.Lock()
		if len(h.pending) == 0 {
			h.running = false
			h.pending = nil
			h.mu.Unlock()
			return
		}
		env := h.pending[0]
		h.pending[0] = envelope{}
		h.pending = h.pending[1:]
		h.mu.Unlock()

		if err := d.deliver(h, env); err != nil {
			d.log.WithError(err).WithFields(logrus.Fields{
				"service":  h.name,
				"event":    env.event.Kind(),
				"dispatch": env.id.String(),
			}).Warn("Broadcast service failed")
		}
	}
}

func (d *Dispatcher) deliver(h *handle, env envelope) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = perrors.ServicePanic(h.name, env.event.Kind(), r)
		}
	}()
	if err := env.event.deliver(d.ctx, h.svc); err != nil {
		return perrors.ServiceFailed(h.name, env.event.Kind(), err)
	}
	return nil
}
