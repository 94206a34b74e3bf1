package app

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/AJMerr/playcore/internal/session"
)

func (m Model) View() string {
	var b strings.Builder
	reg := m.deps.Registry

	// Header
	md := reg.Models.Metadata.Read()
	track := reg.Playback.CurrentTrack.Read()
	np := "nothing"
	if track != "" {
		np = fmt.Sprintf("%s — %s", md.DisplayArtist(), md.Title(track))
	}
	header := fmt.Sprintf("%s  •  %s  •  %s [%s / %s]",
		m.styles.AppTitle.Render("playcore"),
		m.styles.HeaderNow.Render("Now Playing: "+np),
		reg.Playback.PlaybackState.Read(),
		clock(reg.Playback.Position.Read()),
		clock(reg.Playback.Duration.Read()),
	)
	b.WriteString(m.styles.Header.Render(header) + "\n")
	status := []string{"last.fm: " + lastFMLabel(reg.Models.LastFM.Read())}
	if label := reg.Models.ScanLabel.Read(); label != "" {
		status = append(status, label)
	}
	b.WriteString(m.styles.HeaderBadge.Render(strings.Join(status, "  •  ")))
	b.WriteString("\n")
	if m.authURL != "" {
		fmt.Fprintf(&b, "Authorize playcore at %s then press %s\n", m.authURL, m.keys.Confirm)
	}

	// Content
	b.WriteString(m.styles.Body.Render(renderQueue(m)))

	// Footer/help
	if m.lastErr != nil {
		b.WriteString("\n" + m.styles.Error.Render(fmt.Sprintf("ERR: %v", m.lastErr)) + "\n")
	}
	b.WriteString("\n" + m.styles.Footer.Render(help(m.keys)))
	b.WriteString("\n")
	return b.String()
}

func help(k Keymap) string {
	return strings.Join([]string{
		k.Up + " " + k.Down + " move",
		k.Remove + " remove",
		k.Clear + " clear",
		k.Link + " link last.fm",
		k.Confirm + " confirm",
		k.SignOut + " sign out",
		k.Quit + " quit",
	}, " • ")
}

func lastFMLabel(s session.State) string {
	switch s.Status {
	case session.Connected:
		if s.Session.Name != "" {
			return "connected as " + s.Session.Name
		}
		return "connected"
	case session.AwaitingFinalization:
		return "waiting for authorization"
	default:
		return "disconnected"
	}
}

func clock(ms uint64) string {
	d := time.Duration(ms) * time.Millisecond
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

func renderQueue(m Model) string {
	items := m.queue.items
	if len(items) == 0 {
		return "\n(queue is empty)\n"
	}

	maxRows := 30
	if m.height > 8 {
		maxRows = m.height - 6
	}
	start := m.cursor - maxRows/2
	if start < 0 {
		start = 0
	}
	end := start + maxRows
	if end > len(items) {
		end = len(items)
	}

	q := m.deps.Registry.Models.Queue
	var b strings.Builder
	fmt.Fprintf(&b, "\nQueue (%d)\n", len(items))
	for i := start; i < end; i++ {
		it := items[i]
		cursor := "  "
		if i == m.cursor {
			cursor = m.styles.Cursor.Render("> ")
		}
		row := fmt.Sprintf("%s — %s", it.Metadata.DisplayArtist(), it.Metadata.Title(it.Path))
		switch {
		case q.IsCurrent(it):
			row = m.styles.Current.Render(row)
		case it.Metadata.IsZero():
			row = m.styles.ListRowDim.Render(row)
		default:
			row = m.styles.ListRow.Render(row)
		}
		fmt.Fprintf(&b, "%s%s\n", cursor, row)
	}
	if end < len(items) {
		fmt.Fprintf(&b, "  …and %d more\n", len(items)-end)
	}
	return b.String()
}

var _ tea.Model = (*Model)(nil)
