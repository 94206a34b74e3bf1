// Package session tracks the lifecycle of a linked last.fm account: the
// Disconnected → AwaitingFinalization → Connected state machine and the file
// the connected session is persisted to.
package session

import (
	perrors "github.com/AJMerr/playcore/internal/errors"
)

// Session is the credential object of a linked account.
type Session struct {
	Name       string `json:"name,omitempty"`
	Key        string `json:"key"`
	Subscriber bool   `json:"subscriber,omitempty"`
	Secret     string `json:"secret,omitempty"`
}

type Status int

const (
	Disconnected Status = iota
	AwaitingFinalization
	Connected
)

func (s Status) String() string {
	switch s {
	case AwaitingFinalization:
		return "AwaitingFinalization"
	case Connected:
		return "Connected"
	default:
		return "Disconnected"
	}
}

// State is the account state. Token is set only while AwaitingFinalization,
// Session only while Connected. The zero value is Disconnected.
type State struct {
	Status  Status
	Token   string
	Session Session
}

func NewDisconnected() State { return State{} }

func NewAwaiting(token string) State {
	return State{Status: AwaitingFinalization, Token: token}
}

func NewConnected(s Session) State {
	return State{Status: Connected, Session: s}
}

func (s State) IsConnected() bool { return s.Status == Connected }

// Begin starts linking an account with the token handed out by the service.
func (s State) Begin(token string) (State, error) {
	if s.Status != Disconnected {
		return s, perrors.InvalidTransition(s.Status.String(), AwaitingFinalization.String())
	}
	if token == "" {
		return s, perrors.New(perrors.ErrCodeInvalidInput, "empty auth token")
	}
	return NewAwaiting(token), nil
}

// Confirm completes linking once the service confirmed the token.
func (s State) Confirm(sess Session) (State, error) {
	if s.Status != AwaitingFinalization {
		return s, perrors.InvalidTransition(s.Status.String(), Connected.String())
	}
	if sess.Key == "" {
		return s, perrors.New(perrors.ErrCodeInvalidInput, "session without key")
	}
	return NewConnected(sess), nil
}

// SignOut drops the account. It also cancels a pending link.
func (s State) SignOut() (State, error) {
	if s.Status == Disconnected {
		return s, perrors.InvalidTransition(s.Status.String(), Disconnected.String())
	}
	return NewDisconnected(), nil
}
