// Package state builds the registry of reactive containers the player's UI and
// background subsystems share, and wires the fixed subscriptions between
// them.
package state

import (
	"image"

	"github.com/AJMerr/playcore/internal/broadcast"
	"github.com/AJMerr/playcore/internal/media"
	"github.com/AJMerr/playcore/internal/queue"
	"github.com/AJMerr/playcore/internal/reactive"
	"github.com/AJMerr/playcore/internal/scan"
	"github.com/AJMerr/playcore/internal/session"
)

// LastFMService is the dispatcher key of the last.fm integration.
const LastFMService = "lastfm"

type ImageKind int

const (
	ImageCurrentAlbumArt ImageKind = iota
	ImageQueueArt
)

// ImageTransfer carries a decoded image back from the decoder.
type ImageTransfer struct {
	Kind  ImageKind
	Image image.Image
}

// ImageDecoder decodes raw image bytes off the primary loop. Implementations
// push the result back through Models.ImageTransfer on the loop.
type ImageDecoder interface {
	Decode(data []byte, kind ImageKind)
}

// ServiceFactory builds the broadcast service for a connected session.
type ServiceFactory func(session.Session) (broadcast.Service, error)

// Models holds the library, queue and account containers.
type Models struct {
	Metadata *reactive.Container[media.Metadata]
	// ArtBytes is the raw album art of the current track, nil when absent.
	ArtBytes *reactive.Container[[]byte]
	// AlbumArt is the decoded ArtBytes, nil when absent.
	AlbumArt      *reactive.Container[image.Image]
	Queue         *queue.Model
	ImageTransfer *reactive.Container[ImageTransfer]
	ScanStatus    *reactive.Container[scan.Event]
	ScanLabel     *reactive.Container[string]
	// Broadcasts carries the last event handed to the dispatcher.
	Broadcasts *reactive.Container[broadcast.Event]
	LastFM     *reactive.Container[session.State]
}

// PlaybackInfo holds the containers fed by the playback thread.
type PlaybackInfo struct {
	Position      *reactive.Container[uint64]
	Duration      *reactive.Container[uint64]
	PlaybackState *reactive.Container[media.PlaybackState]
	// CurrentTrack is the path of the loaded track, "" when none.
	CurrentTrack *reactive.Container[string]
	Shuffling    *reactive.Container[bool]
	Volume       *reactive.Container[float64]
}
