package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/AJMerr/playcore/internal/session"
	"github.com/AJMerr/playcore/internal/state"
)

// Linker runs the last.fm account-linking handshake.
type Linker interface {
	GetToken(ctx context.Context) (string, error)
	AuthURL(token string) string
	GetSession(ctx context.Context, token string) (session.Session, error)
}

// Dependencies passed into the model and command constructors.
type Deps struct {
	Registry *state.Registry
	// Linker is nil when no last.fm API credentials are configured.
	Linker  Linker
	Timeout time.Duration
}

// Ask last.fm for a request token and emit LinkTokenMsg or ErrMsg{Op:"link"}.
func BeginLinkCmd(d Deps) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), d.Timeout)
		defer cancel()
		tok, err := d.Linker.GetToken(ctx)
		if err != nil {
			return ErrMsg{Op: "link", Err: err}
		}
		return LinkTokenMsg{Token: tok}
	}
}

// Exchange the authorized token for a session and emit LinkedMsg or
// ErrMsg{Op:"confirm"}.
func FinishLinkCmd(d Deps, token string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), d.Timeout)
		defer cancel()
		sess, err := d.Linker.GetSession(ctx, token)
		if err != nil {
			return ErrMsg{Op: "confirm", Err: err}
		}
		return LinkedMsg{Session: sess}
	}
}
