package app

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/AJMerr/playcore/internal/media"
	"github.com/AJMerr/playcore/internal/queue"
	"github.com/AJMerr/playcore/internal/scan"
	"github.com/AJMerr/playcore/internal/state"
)

// Sender is what the bridge needs from the running program.
type Sender interface {
	Send(msg tea.Msg)
}

// Bridge is how producers running on other goroutines (playback, scanner,
// image decoder) hand values to the primary loop. Messages sent before a
// program is attached are dropped.
type Bridge struct {
	mu  sync.RWMutex
	p   Sender
	log *logrus.Entry
}

func NewBridge(log *logrus.Entry) *Bridge {
	return &Bridge{log: log}
}

// Attach binds the bridge to the running program.
func (b *Bridge) Attach(p Sender) {
	b.mu.Lock()
	b.p = p
	b.mu.Unlock()
}

func (b *Bridge) send(msg tea.Msg) {
	b.mu.RLock()
	p := b.p
	b.mu.RUnlock()
	if p == nil {
		b.log.WithField("msg", msg).Debug("No program attached, dropping message")
		return
	}
	p.Send(msg)
}

func (b *Bridge) Position(ms uint64) { b.send(PositionMsg{Ms: ms}) }
func (b *Bridge) Duration(ms uint64) { b.send(DurationMsg{Ms: ms}) }
func (b *Bridge) State(s media.PlaybackState) { b.send(PlaybackStateMsg{State: s}) }
func (b *Bridge) Track(path string) { b.send(TrackMsg{Path: path}) }
// Metadata may be sent before or after the Track it belongs to, as long as
// no Position for the old track falls in between.
func (b *Bridge) Metadata(md media.Metadata) { b.send(MetadataMsg{Metadata: md}) }
func (b *Bridge) AlbumArt(data []byte) { b.send(AlbumArtMsg{Data: data}) }
func (b *Bridge) Scan(ev scan.Event) { b.send(ScanMsg{Event: ev}) }
func (b *Bridge) Shuffle(on bool) { b.send(ShuffleMsg{On: on}) }
func (b *Bridge) Volume(v float64) { b.send(VolumeMsg{Volume: v}) }

// Enqueue appends to the shared queue from any goroutine and tells the loop
// to refresh the queue view.
func (b *Bridge) Enqueue(q *queue.Queue, items ...queue.Item) {
	for _, it := range items {
		q.Append(it)
	}
	b.QueueChanged()
}

func (b *Bridge) QueueChanged() { b.send(QueueChangedMsg{}) }

// Decode decodes data on its own goroutine and posts the image back to the
// loop. A decode failure posts a nil image so stale art is cleared.
func (b *Bridge) Decode(data []byte, kind state.ImageKind) {
	buf := append([]byte(nil), data...)
	go func() {
		img, format, err := image.Decode(bytes.NewReader(buf))
		if err != nil {
			b.log.WithError(err).WithField("bytes", len(buf)).Warn("Failed to decode album art")
			img = nil
		} else {
			b.log.WithField("format", format).Debug("Decoded album art")
		}
		b.send(ImageDecodedMsg{Kind: kind, Image: img})
	}()
}

var _ state.ImageDecoder = (*Bridge)(nil)
