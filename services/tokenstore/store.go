// Package tokenstore persists the CLI's bearer tokens between runs.
package tokenstore

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"github.com/evolvlearn/portal/core"
)

var ErrNoTokens = errors.New("not logged in")

type tokens struct {
	Access  string    `json:"access"`
	Refresh string    `json:"refresh"`
	SavedAt time.Time `json:"saved_at"`
}

// Store keeps the tokens of one session in a JSON file readable only by its owner.
type Store struct {
	path string
}

func New(conf *core.Config) *Store {
	return &Store{path: conf.Tokens.File}
}

func (s *Store) Path() string {
	return s.path
}

// Load returns the saved session, or ErrNoTokens.
func (s *Store) Load() (*core.Session, error) {
	data, err := ioutil.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoTokens
		}
		return nil, errors.Wrap(err, "reading tokens")
	}
	var tk tokens
	if err := json.Unmarshal(data, &tk); err != nil {
		return nil, errors.Wrap(err, "decoding tokens")
	}
	if tk.Access == "" {
		return nil, ErrNoTokens
	}
	return core.NewSession(tk.Access, tk.Refresh), nil
}

// Save replaces the saved tokens with the session's.
func (s *Store) Save(sess *core.Session) error {
	if !sess.IsAuthenticated() {
		return core.ErrNoToken
	}
	data, err := json.MarshalIndent(tokens{
		Access:  sess.AccessToken,
		Refresh: sess.RefreshToken,
		SavedAt: core.NowFunc().UTC(),
	}, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding tokens")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return errors.Wrap(err, "creating tokens dir")
	}
	tmp := s.path + ".tmp"
	if err := ioutil.WriteFile(tmp, data, 0o600); err != nil {
		return errors.Wrap(err, "writing tokens")
	}
	return errors.Wrap(os.Rename(tmp, s.path), "saving tokens")
}

// Clear removes the saved tokens.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "removing tokens")
	}
	return nil
}
