package broadcast

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AJMerr/playcore/internal/media"
)

// recorder records every call it receives.
type recorder struct {
	mu       sync.Mutex
	calls    []string
	tracks   []string
	err      error
	panicMsg string

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
	delay       time.Duration
}

func (r *recorder) record(call string) error {
	n := r.inFlight.Add(1)
	defer r.inFlight.Add(-1)
	for {
		cur := r.maxInFlight.Load()
		if n <= cur || r.maxInFlight.CompareAndSwap(cur, n) {
			break
		}
	}
	if r.delay > 0 {
		time.Sleep(r.delay)
	}

	r.mu.Lock()
	r.calls = append(r.calls, call)
	r.mu.Unlock()

	if r.panicMsg != "" {
		panic(r.panicMsg)
	}
	return r.err
}

func (r *recorder) NewTrack(_ context.Context, path string) error {
	r.mu.Lock()
	r.tracks = append(r.tracks, path)
	r.mu.Unlock()
	return r.record("NewTrack")
}

func (r *recorder) MetadataReceived(context.Context, media.Metadata) error {
	return r.record("MetadataReceived")
}

func (r *recorder) StateChanged(context.Context, media.PlaybackState) error {
	return r.record("StateChanged")
}

func (r *recorder) PositionChanged(context.Context, uint64) error {
	return r.record("PositionChanged")
}

func (r *recorder) DurationChanged(context.Context, uint64) error {
	return r.record("DurationChanged")
}

func (r *recorder) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func (r *recorder) Tracks() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.tracks...)
}

func newTestDispatcher() (*Dispatcher, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return NewDispatcher(logrus.NewEntry(logger)), hook
}

func TestDispatcher_RegisterUnregister(t *testing.T) {
	d, _ := newTestDispatcher()
	d.Register("lastfm", &recorder{})
	d.Register("listenbrainz", &recorder{})
	d.Register("lastfm", &recorder{})

	assert.Equal(t, 2, d.Len())
	assert.Equal(t, []string{"lastfm", "listenbrainz"}, d.Names())
	assert.True(t, d.Has("lastfm"))

	assert.True(t, d.Unregister("lastfm"))
	assert.False(t, d.Unregister("lastfm"))
	assert.False(t, d.Has("lastfm"))
}

func TestDispatcher_FanOutWithFailingService(t *testing.T) {
	d, hook := newTestDispatcher()
	ok1 := &recorder{}
	failing := &recorder{err: errors.New("401 unauthorized")}
	ok2 := &recorder{}
	d.Register("a", ok1)
	d.Register("b", failing)
	d.Register("c", ok2)

	d.Dispatch(NewTrack{Path: "a.mp3"})
	d.Wait()

	for _, r := range []*recorder{ok1, failing, ok2} {
		assert.Equal(t, []string{"a.mp3"}, r.Tracks())
	}

	var warned bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel && e.Data["service"] == "b" {
			warned = true
			assert.Equal(t, "NewTrack", e.Data["event"])
			assert.NotEmpty(t, e.Data["dispatch"])
		}
	}
	assert.True(t, warned, "failure is logged")
}

func TestDispatcher_PanickingServiceIsIsolated(t *testing.T) {
	d, hook := newTestDispatcher()
	bad := &recorder{panicMsg: "nil map"}
	good := &recorder{}
	d.Register("bad", bad)
	d.Register("good", good)

	d.Dispatch(PositionChanged{Ms: 1000})
	d.Dispatch(DurationChanged{Ms: 2000})
	d.Wait()

	assert.Equal(t, []string{"PositionChanged", "DurationChanged"}, bad.Calls(), "drainer survives a panic")
	assert.Equal(t, []string{"PositionChanged", "DurationChanged"}, good.Calls())
	require.NotEmpty(t, hook.AllEntries())
}

func TestDispatcher_PerServiceFIFO(t *testing.T) {
	d, _ := newTestDispatcher()
	slow := &recorder{delay: time.Millisecond}
	fast := &recorder{}
	d.Register("slow", slow)
	d.Register("fast", fast)

	var want []string
	events := []Event{
		NewTrack{Path: "1.mp3"},
		MetadataReceived{Metadata: media.Metadata{Name: "one"}},
		DurationChanged{Ms: 180000},
		StateChanged{State: media.Playing},
		PositionChanged{Ms: 500},
		PositionChanged{Ms: 1000},
		StateChanged{State: media.Paused},
		NewTrack{Path: "2.mp3"},
	}
	for _, ev := range events {
		d.Dispatch(ev)
		want = append(want, ev.Kind())
	}
	d.Wait()

	assert.Equal(t, want, slow.Calls())
	assert.Equal(t, want, fast.Calls())
	assert.Equal(t, []string{"1.mp3", "2.mp3"}, slow.Tracks())
	assert.EqualValues(t, 1, slow.maxInFlight.Load(), "a service never handles two events at once")
}

func TestDispatcher_ReRegisterKeepsOrder(t *testing.T) {
	d, _ := newTestDispatcher()
	svc := &recorder{delay: 20 * time.Millisecond}

	d.Register("lastfm", svc)
	d.Dispatch(NewTrack{Path: "1.mp3"})
	d.Register("lastfm", svc)
	d.Dispatch(NewTrack{Path: "2.mp3"})
	d.Wait()

	assert.Equal(t, []string{"1.mp3", "2.mp3"}, svc.Tracks())
	assert.Equal(t, int32(1), svc.maxInFlight.Load())
	assert.Equal(t, 1, d.Len())
}

func TestDispatcher_ReplaceWithOtherService(t *testing.T) {
	d, _ := newTestDispatcher()
	first := &recorder{}
	second := &recorder{}

	d.Register("lastfm", first)
	d.Dispatch(NewTrack{Path: "1.mp3"})
	d.Register("lastfm", second)
	d.Dispatch(NewTrack{Path: "2.mp3"})
	d.Wait()

	assert.Equal(t, []string{"1.mp3"}, first.Tracks())
	assert.Equal(t, []string{"2.mp3"}, second.Tracks())
}

func TestDispatcher_SnapshotExcludesLateRegistration(t *testing.T) {
	d, _ := newTestDispatcher()
	release := make(chan struct{})
	early := &blocking{release: release}
	late := &recorder{}
	d.Register("early", early)

	d.Dispatch(NewTrack{Path: "a.mp3"})
	d.Register("late", late)
	close(release)
	d.Wait()

	assert.Empty(t, late.Calls())
	assert.EqualValues(t, 1, early.calls.Load())
}

func TestDispatcher_HungServiceDoesNotBlockOthers(t *testing.T) {
	d, _ := newTestDispatcher()
	release := make(chan struct{})
	hung := &blocking{release: release}
	other := &recorder{}
	d.Register("hung", hung)
	d.Register("other", other)

	done := make(chan struct{})
	go func() {
		d.Dispatch(NewTrack{Path: "a.mp3"})
		d.Dispatch(NewTrack{Path: "b.mp3"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Dispatch blocked on a hung service")
	}

	assert.Eventually(t, func() bool { return len(other.Tracks()) == 2 }, time.Second, time.Millisecond)
	assert.Eventually(t, func() bool { return hung.calls.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(10 * time.Millisecond)
	assert.EqualValues(t, 1, hung.calls.Load(), "second event waits behind the first")

	close(release)
	d.Wait()
	assert.EqualValues(t, 2, hung.calls.Load())
}

func TestDispatcher_NoServices(t *testing.T) {
	d, _ := newTestDispatcher()
	d.Dispatch(NewTrack{Path: "a.mp3"})
	d.Wait()
	assert.Zero(t, d.Len())
}

// blocking blocks every call until release is closed.
type blocking struct {
	Nop
	release chan struct{}
	calls   atomic.Int32
}

func (b *blocking) NewTrack(context.Context, string) error {
	b.calls.Add(1)
	<-b.release
	return nil
}
