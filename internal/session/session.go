// Package session keeps the single authenticated user record in a storage slot.
package session

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/celerix-dev/ivr-reports/internal/engine"
	"github.com/celerix-dev/ivr-reports/pkg/schema"
)

// Key is the slot the user record is stored under.
const Key = "user"

// ErrMalformedSession marks slot content that is not a usable user record.
// GetSession treats it as "no session"; it is only visible through Load.
var ErrMalformedSession = errors.New("malformed session")

// Store reads and writes the user session slot.
type Store struct {
	slots engine.Storage
}

// NewStore wraps a slot storage.
func NewStore(slots engine.Storage) *Store {
	return &Store{slots: slots}
}

// SetSession persists u, replacing any prior value.
func (s *Store) SetSession(u schema.User) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return errors.Wrap(err, "failed to encode session")
	}
	return s.slots.SetItem(Key, string(raw))
}

// Load returns the stored user. It returns (nil, nil) when the slot is empty
// and ErrMalformedSession when the content cannot be used.
func (s *Store) Load() (*schema.User, error) {
	raw, err := s.slots.GetItem(Key)
	if errors.Is(err, engine.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %q slot", Key)
	}

	var u *schema.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, errors.Wrapf(ErrMalformedSession, "decode %q slot: %v", Key, err)
	}
	if !u.Valid() {
		return nil, ErrMalformedSession
	}
	return u, nil
}

// GetSession returns the stored user, or nil when there is none or the
// stored content is malformed.
func (s *Store) GetSession() *schema.User {
	u, err := s.Load()
	if err != nil {
		log.Debug().Err(err).Msg("ignoring stored session")
		return nil
	}
	return u
}

// ClearSession removes the slot. It is idempotent.
func (s *Store) ClearSession() error {
	return s.slots.RemoveItem(Key)
}

// IsAuthenticated reports whether a usable session is stored.
func (s *Store) IsAuthenticated() bool {
	return s.GetSession() != nil
}
