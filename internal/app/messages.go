package app

import (
	"image"

	"github.com/AJMerr/playcore/internal/media"
	"github.com/AJMerr/playcore/internal/scan"
	"github.com/AJMerr/playcore/internal/session"
	"github.com/AJMerr/playcore/internal/state"
)

// Playback thread updates
type PositionMsg struct{ Ms uint64 }
type DurationMsg struct{ Ms uint64 }
type PlaybackStateMsg struct{ State media.PlaybackState }
type TrackMsg struct{ Path string }
type MetadataMsg struct{ Metadata media.Metadata }
type AlbumArtMsg struct{ Data []byte }
type ShuffleMsg struct{ On bool }
type VolumeMsg struct{ Volume float64 }

// QueueChangedMsg is sent after the shared queue was mutated off the loop.
type QueueChangedMsg struct{}

// Scanner progress
type ScanMsg struct{ Event scan.Event }

// Decoder output
type ImageDecodedMsg struct {
	Kind  state.ImageKind
	Image image.Image
}

// Account linking
type LinkTokenMsg struct{ Token string }
type LinkedMsg struct{ Session session.Session }

type ErrMsg struct {
	Op  string
	Err error
}
