package app

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/AJMerr/playcore/internal/session"
	"github.com/AJMerr/playcore/internal/state"
)

var errLastFMNotConfigured = errors.New("last.fm API credentials are not configured")

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	reg := m.deps.Registry

	switch msg := msg.(type) {

	case PositionMsg:
		reg.Playback.Position.Set(msg.Ms)
		return m, nil

	case DurationMsg:
		reg.Playback.Duration.Set(msg.Ms)
		return m, nil

	case PlaybackStateMsg:
		reg.Playback.PlaybackState.Set(msg.State)
		return m, nil

	case TrackMsg:
		reg.Playback.CurrentTrack.Set(msg.Path)
		return m, nil

	case MetadataMsg:
		reg.Models.Metadata.Set(msg.Metadata)
		return m, nil

	case AlbumArtMsg:
		reg.Models.ArtBytes.Set(msg.Data)
		return m, nil

	case ShuffleMsg:
		reg.Playback.Shuffling.Set(msg.On)
		return m, nil

	case VolumeMsg:
		reg.Playback.Volume.Set(msg.Volume)
		return m, nil

	case ImageDecodedMsg:
		reg.Models.ImageTransfer.Set(state.ImageTransfer{Kind: msg.Kind, Image: msg.Image})
		return m, nil

	case ScanMsg:
		reg.Models.ScanStatus.Set(msg.Event)
		return m, nil

	case QueueChangedMsg:
		reg.Models.Queue.Refresh()
		return m.clampCursor(), nil

	case LinkTokenMsg:
		if err := reg.BeginLinking(msg.Token); err != nil {
			m.lastErr = err
			return m, nil
		}
		m.authURL = m.deps.Linker.AuthURL(msg.Token)
		m.lastErr = nil
		return m, nil

	case LinkedMsg:
		if err := reg.ConfirmLinking(msg.Session); err != nil {
			m.lastErr = err
			return m, nil
		}
		m.authURL = ""
		m.lastErr = nil
		return m, nil

	case ErrMsg:
		m.lastErr = msg.Err
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case "down", "j":
			if m.cursor+1 < len(m.queue.items) {
				m.cursor++
			}
			return m, nil

		case "d", "delete":
			if len(m.queue.items) == 0 {
				return m, nil
			}
			if _, err := reg.Models.Queue.Remove(m.cursor); err != nil {
				m.lastErr = err
			}
			return m.clampCursor(), nil

		case "x":
			reg.Models.Queue.Clear()
			return m.clampCursor(), nil

		case "l":
			if m.deps.Linker == nil {
				m.lastErr = errLastFMNotConfigured
				return m, nil
			}
			if reg.Models.LastFM.Read().Status != session.Disconnected {
				return m, nil
			}
			return m, BeginLinkCmd(m.deps)

		case "c":
			st := reg.Models.LastFM.Read()
			if m.deps.Linker == nil || st.Status != session.AwaitingFinalization {
				return m, nil
			}
			return m, FinishLinkCmd(m.deps, st.Token)

		case "o":
			if err := reg.SignOut(); err != nil {
				m.lastErr = err
				return m, nil
			}
			m.authURL = ""
			return m, nil
		}
	}
	return m, nil
}
