// Package sessionfile persists the session as a single JSON blob under a fixed
// filename, the client-side analog of a browser's storage key.
package sessionfile

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"smarthotel/internal/domain"
)

type Store struct{ path string }

func New(path string) *Store { return &Store{path: path} }

// Load fails open: a missing, unreadable, corrupt or half-populated blob reads
// as "no session", never as an error.
func (s *Store) Load() (domain.Session, bool) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return domain.Session{}, false
	}
	var sess domain.Session
	if err := json.Unmarshal(b, &sess); err != nil {
		log.Warn().Str("path", s.path).Err(err).Msg("discarding corrupt session file")
		return domain.Session{}, false
	}
	if !sess.Valid() {
		return domain.Session{}, false
	}
	return sess, true
}

// Save writes atomically (tmp + rename) so a crash never leaves a torn blob.
func (s *Store) Save(sess domain.Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	b, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

var _ domain.SessionStore = (*Store)(nil)
