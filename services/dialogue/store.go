package dialogue

import (
	"context"
	"errors"
)

var (
	// ErrSessionNotFound is returned by SessionStore.Get for unknown or expired ids.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionCorrupt is returned when a stored session cannot be decoded.
	ErrSessionCorrupt = errors.New("stored session is corrupt")
)

// SessionStore keeps conversation state between messages. Get and Save work on
// copies; mutating a returned session does not change the stored one.
type SessionStore interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}
