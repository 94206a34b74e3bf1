package state

import (
	"github.com/AJMerr/playcore/internal/session"
)

// BeginLinking moves the last.fm account to AwaitingFinalization(token).
func (r *Registry) BeginLinking(token string) error {
	next, err := r.Models.LastFM.Read().Begin(token)
	if err != nil {
		return err
	}
	r.Models.LastFM.Set(next)
	return nil
}

// ConfirmLinking completes linking with the session the service confirmed.
func (r *Registry) ConfirmLinking(sess session.Session) error {
	next, err := r.Models.LastFM.Read().Confirm(sess)
	if err != nil {
		return err
	}
	r.Models.LastFM.Set(next)
	return nil
}

// SignOut disconnects the last.fm account.
func (r *Registry) SignOut() error {
	next, err := r.Models.LastFM.Read().SignOut()
	if err != nil {
		return err
	}
	r.Models.LastFM.Set(next)
	return nil
}

func (r *Registry) onLastFMState(s session.State) {
	prev := r.lastStatus
	r.lastStatus = s.Status

	switch s.Status {
	case session.Connected:
		r.registerLastFM(s.Session)
		r.persist(s.Session)
	case session.Disconnected:
		if prev == session.Disconnected {
			return
		}
		r.Dispatcher.Unregister(LastFMService)
		if r.store != nil {
			if err := r.store.Remove(); err != nil {
				r.log.WithError(err).Error("Could not remove the stored last.fm session")
			}
		}
	}
}

func (r *Registry) registerLastFM(sess session.Session) {
	if r.lastfm == nil {
		r.log.Debug("last.fm is not configured, not registering a broadcast service")
		return
	}
	svc, err := r.lastfm(sess)
	if err != nil {
		r.log.WithError(err).Error("Could not create the last.fm broadcast service")
		return
	}
	r.Dispatcher.Register(LastFMService, svc)
}

// persist writes the session to disk. Failure leaves the account connected
// for this run; it only means signing in again after a restart.
func (r *Registry) persist(sess session.Session) {
	if r.store == nil {
		return
	}
	if err := r.store.Save(sess); err != nil {
		r.log.WithError(err).Error("Tried to write last.fm settings but could not write to file")
		r.log.Error("You will have to sign in again when the application is next started")
	}
}
