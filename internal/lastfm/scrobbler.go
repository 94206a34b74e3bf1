package lastfm

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/AJMerr/playcore/internal/broadcast"
	"github.com/AJMerr/playcore/internal/media"
)

const (
	// Tracks shorter than this are never scrobbled.
	minScrobbleLength = 30 * time.Second
	// A track is scrobbled after half its length or this long, whichever
	// comes first.
	maxScrobbleWait = 4 * time.Minute
	// Position jumps larger than this are seeks and do not count as
	// listening time.
	maxTickGap = 5 * time.Second
)

// Scrobbler is the last.fm broadcast service. The dispatcher never calls it
// concurrently, so it keeps its play state without locking.
type Scrobbler struct {
	client Client
	log    *logrus.Entry
	now    func() time.Time

	path      string
	metadata  media.Metadata
	// metaAhead is set when tags arrived with no playback since, so they
	// belong to the track about to start.
	metaAhead bool
	duration  time.Duration
	position  time.Duration
	listened  time.Duration
	startedAt time.Time
	playing   bool
	announced bool
	scrobbled bool
}

var _ broadcast.Service = (*Scrobbler)(nil)

func NewScrobbler(client Client, log *logrus.Entry) *Scrobbler {
	return &Scrobbler{client: client, log: log, now: time.Now}
}

func (s *Scrobbler) NewTrack(_ context.Context, path string) error {
	s.path = path
	if !s.metaAhead {
		s.metadata = media.Metadata{}
	}
	s.metaAhead = false
	s.duration = 0
	s.position = 0
	s.listened = 0
	s.startedAt = s.now()
	s.announced = false
	s.scrobbled = false
	return nil
}

func (s *Scrobbler) MetadataReceived(ctx context.Context, md media.Metadata) error {
	s.metadata = md
	s.metaAhead = true
	if s.playing {
		return s.announce(ctx)
	}
	return nil
}

func (s *Scrobbler) StateChanged(ctx context.Context, state media.PlaybackState) error {
	s.playing = state == media.Playing
	if s.playing {
		return s.announce(ctx)
	}
	return nil
}

func (s *Scrobbler) DurationChanged(_ context.Context, ms uint64) error {
	s.duration = time.Duration(ms) * time.Millisecond
	return nil
}

func (s *Scrobbler) PositionChanged(ctx context.Context, ms uint64) error {
	pos := time.Duration(ms) * time.Millisecond
	s.metaAhead = false
	if delta := pos - s.position; s.playing && delta > 0 && delta <= maxTickGap {
		s.listened += delta
	}
	s.position = pos

	if s.scrobbled || !s.eligible() {
		return nil
	}
	threshold := s.duration / 2
	if threshold > maxScrobbleWait {
		threshold = maxScrobbleWait
	}
	if s.listened < threshold {
		return nil
	}

	s.scrobbled = true
	if err := s.client.Scrobble(ctx, s.track()); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{"path": s.path, "artist": s.metadata.Artist, "track": s.metadata.Name}).Debug("Scrobbled")
	return nil
}

// eligible reports whether the current track has enough tags and length to
// be sent to last.fm.
func (s *Scrobbler) eligible() bool {
	return s.metadata.Artist != "" && s.metadata.Name != "" && s.duration >= minScrobbleLength
}

func (s *Scrobbler) announce(ctx context.Context) error {
	if s.announced || s.metadata.Artist == "" || s.metadata.Name == "" {
		return nil
	}
	s.announced = true
	return s.client.UpdateNowPlaying(ctx, s.track())
}

func (s *Scrobbler) track() Track {
	return Track{
		Artist:      s.metadata.Artist,
		Title:       s.metadata.Name,
		Album:       s.metadata.Album,
		AlbumArtist: s.metadata.AlbumArtist,
		TrackNumber: s.metadata.TrackNumber,
		Duration:    s.duration,
		StartedAt:   s.startedAt,
	}
}
