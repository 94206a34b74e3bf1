package session

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	perrors "github.com/AJMerr/playcore/internal/errors"
)

// FileName is the name of the persisted session inside the data directory.
const FileName = "lastfm.json"

// Persister loads and saves the connected session.
type Persister interface {
	Load() (Session, error)
	Save(Session) error
	Remove() error
}

var _ Persister = (*Store)(nil)

// Store reads and writes the persisted session file.
type Store struct {
	path string
}

// NewStore returns a store for <dir>/lastfm.json.
func NewStore(dir string) *Store {
	return &Store{path: filepath.Join(dir, FileName)}
}

// Path returns the session file path.
func (s *Store) Path() string { return s.path }

// Load reads the persisted session. A missing file yields SESSION_NOT_FOUND;
// an unreadable file, invalid JSON or a session without a key yields
// SESSION_CORRUPT.
func (s *Store) Load() (Session, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Session{}, perrors.SessionNotFound(s.path)
		}
		return Session{}, perrors.SessionCorrupt(s.path, err)
	}
	defer f.Close()

	var sess Session
	if err := json.NewDecoder(bufio.NewReader(f)).Decode(&sess); err != nil {
		return Session{}, perrors.SessionCorrupt(s.path, err)
	}
	if sess.Key == "" {
		return Session{}, perrors.SessionCorrupt(s.path, nil).WithDetail("reason", "missing key")
	}
	return sess, nil
}

// Save overwrites the session file with sess as indented JSON.
func (s *Store) Save(sess Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return perrors.SessionWrite(s.path, err)
	}
	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return perrors.SessionWrite(s.path, err)
	}

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(sess); err != nil {
		f.Close()
		return perrors.SessionWrite(s.path, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return perrors.SessionWrite(s.path, err)
	}
	if err := f.Close(); err != nil {
		return perrors.SessionWrite(s.path, err)
	}
	return nil
}

// Remove deletes the session file. A missing file is not an error.
func (s *Store) Remove() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return perrors.SessionWrite(s.path, err)
	}
	return nil
}

// Restore returns the startup state: Connected when a valid session is
// persisted, Disconnected otherwise. A corrupt file is logged, never fatal.
func Restore(store Persister, log *logrus.Entry) State {
	sess, err := store.Load()
	switch {
	case err == nil:
		log.WithField("user", sess.Name).Debug("Restored last.fm session")
		return NewConnected(sess)
	case perrors.Is(err, perrors.ErrCodeSessionNotFound):
		log.Debug("No last.fm session stored")
	default:
		log.WithError(err).Error("The last.fm session information is stored on disk but could not be read")
		log.Warn("You will not be logged in to last.fm")
	}
	return NewDisconnected()
}
