// Package media holds the track and playback types shared by the state
// registry, the queue and the broadcast services.
package media

import (
	"path/filepath"
	"strings"
)

// Metadata is the tag snapshot of one track. Empty strings and zero numbers
// mean the tag is absent.
type Metadata struct {
	Name        string `json:"name,omitempty"`
	Artist      string `json:"artist,omitempty"`
	AlbumArtist string `json:"album_artist,omitempty"`
	Album       string `json:"album,omitempty"`
	Genre       string `json:"genre,omitempty"`
	Date        string `json:"date,omitempty"`
	TrackNumber uint64 `json:"track_number,omitempty"`
	TrackMax    uint64 `json:"track_max,omitempty"`
	DiscNumber  uint64 `json:"disc_number,omitempty"`
	DiscMax     uint64 `json:"disc_max,omitempty"`
}

// IsZero reports whether no tag is set.
func (m Metadata) IsZero() bool {
	return m == Metadata{}
}

// Title returns the track name, falling back to the file name of path.
func (m Metadata) Title(path string) string {
	if strings.TrimSpace(m.Name) != "" {
		return m.Name
	}
	if path == "" {
		return "<untitled>"
	}
	return filepath.Base(path)
}

// DisplayArtist returns the artist, falling back to the album artist.
func (m Metadata) DisplayArtist() string {
	switch {
	case strings.TrimSpace(m.Artist) != "":
		return m.Artist
	case strings.TrimSpace(m.AlbumArtist) != "":
		return m.AlbumArtist
	default:
		return "Unknown Artist"
	}
}

// PlaybackState is the state reported by the playback thread.
type PlaybackState int

const (
	Stopped PlaybackState = iota
	Playing
	Paused
)

func (s PlaybackState) String() string {
	switch s {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return "stopped"
	}
}
