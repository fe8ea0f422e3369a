package service

import (
	"time"

	"solar/internal/domain/entity"
)

// SessionCodec turns session identity into the cookie value and back.
type SessionCodec interface {
	// Encode produces a signed token for the session.
	Encode(session entity.SessionData) (string, error)

	// Decode verifies and parses a token. Any failure is ErrMalformedSession.
	Decode(token string) (*entity.SessionData, error)

	// MaxAge is the lifetime of a token and of the cookie carrying it.
	MaxAge() time.Duration
}
