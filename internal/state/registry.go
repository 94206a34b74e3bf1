package state

import (
	"image"

	"github.com/sirupsen/logrus"

	"github.com/AJMerr/playcore/internal/broadcast"
	"github.com/AJMerr/playcore/internal/logging"
	"github.com/AJMerr/playcore/internal/media"
	"github.com/AJMerr/playcore/internal/queue"
	"github.com/AJMerr/playcore/internal/reactive"
	"github.com/AJMerr/playcore/internal/scan"
	"github.com/AJMerr/playcore/internal/session"
)

// Options are the external collaborators of the registry. Every field is
// optional.
type Options struct {
	// Store persists the last.fm session. Nil disables persistence.
	Store session.Persister
	// LastFM builds the last.fm broadcast service. Nil means last.fm is not
	// configured and connected sessions register nothing.
	LastFM  ServiceFactory
	Decoder ImageDecoder
	Logger  *logrus.Entry
}

// Registry is the process-wide state, built once at startup by Build and
// passed by reference to everything that needs it. It owns every container.
// All methods and containers belong to the primary loop.
type Registry struct {
	Models     *Models
	Playback   *PlaybackInfo
	Dispatcher *broadcast.Dispatcher

	store      session.Persister
	lastfm     ServiceFactory
	decoder    ImageDecoder
	log        *logrus.Entry
	subs       reactive.Group
	lastStatus session.Status
}

// Build constructs every container, restores the persisted last.fm session
// and installs the fixed subscriptions.
func Build(initial *queue.Queue, opts Options) *Registry {
	log := opts.Logger
	if log == nil {
		log = logging.NewLogger("state")
	}
	log.Debug("Building models")

	r := &Registry{
		Dispatcher: broadcast.NewDispatcher(log.WithField("subsystem", "broadcast")),
		store:      opts.Store,
		lastfm:     opts.LastFM,
		decoder:    opts.Decoder,
		log:        log,
	}

	r.Playback = &PlaybackInfo{
		Position:      reactive.New[uint64](0),
		Duration:      reactive.New[uint64](0),
		PlaybackState: reactive.New(media.Stopped),
		CurrentTrack:  reactive.New(""),
		Shuffling:     reactive.New(false),
		Volume:        reactive.New(1.0),
	}

	initialState := session.NewDisconnected()
	if r.store != nil {
		initialState = session.Restore(r.store, log)
	}
	if initialState.IsConnected() {
		r.registerLastFM(initialState.Session)
	}
	r.lastStatus = initialState.Status

	scanStatus := reactive.New(scan.Event{})
	scanLabel, labelSub := reactive.Derive(scanStatus, scan.Event.Label)
	r.subs.Add(labelSub)

	r.Models = &Models{
		Metadata:      reactive.New(media.Metadata{}),
		ArtBytes:      reactive.New[[]byte](nil),
		AlbumArt:      reactive.New[image.Image](nil),
		Queue:         queue.NewModel(initial, r.Playback.CurrentTrack),
		ImageTransfer: reactive.New(ImageTransfer{}),
		ScanStatus:    scanStatus,
		ScanLabel:     scanLabel,
		Broadcasts:    reactive.New[broadcast.Event](nil),
		LastFM:        reactive.New(initialState),
	}

	r.wire()
	return r
}

func (r *Registry) wire() {
	m, p := r.Models, r.Playback

	r.subs.Add(m.ArtBytes.Subscribe(func(data []byte) {
		if len(data) == 0 {
			m.AlbumArt.Set(nil)
			return
		}
		if r.decoder != nil {
			r.decoder.Decode(data, ImageCurrentAlbumArt)
		}
	}))

	r.subs.Add(m.ImageTransfer.Subscribe(func(t ImageTransfer) {
		if t.Kind == ImageCurrentAlbumArt {
			m.AlbumArt.Set(t.Image)
		}
	}))

	r.subs.Add(m.LastFM.Subscribe(r.onLastFMState))

	r.subs.Add(m.Broadcasts.Subscribe(func(ev broadcast.Event) {
		if ev != nil {
			r.Dispatcher.Dispatch(ev)
		}
	}))

	r.subs.Add(p.CurrentTrack.Subscribe(func(path string) {
		if path != "" {
			r.Broadcast(broadcast.NewTrack{Path: path})
		}
	}))
	r.subs.Add(m.Metadata.Subscribe(func(md media.Metadata) {
		r.Broadcast(broadcast.MetadataReceived{Metadata: md})
	}))
	r.subs.Add(p.PlaybackState.Subscribe(func(s media.PlaybackState) {
		r.Broadcast(broadcast.StateChanged{State: s})
	}))
	r.subs.Add(p.Position.Subscribe(func(ms uint64) {
		r.Broadcast(broadcast.PositionChanged{Ms: ms})
	}))
	r.subs.Add(p.Duration.Subscribe(func(ms uint64) {
		r.Broadcast(broadcast.DurationChanged{Ms: ms})
	}))
}

// Broadcast hands ev to every registered broadcast service without waiting.
func (r *Registry) Broadcast(ev broadcast.Event) {
	r.Models.Broadcasts.Set(ev)
}

// Close detaches the fixed subscriptions. In-flight broadcasts still finish.
func (r *Registry) Close() {
	r.subs.Detach()
}
