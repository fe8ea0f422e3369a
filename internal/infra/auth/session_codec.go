package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"solar/config"
	"solar/internal/domain/entity"
	domainerrors "solar/internal/domain/errors"
	"solar/internal/domain/service"
	"solar/internal/errors"
)

const sessionIssuer = "solar"

// sessionClaims is the signed cookie payload.
type sessionClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// jwtSessionCodec signs sessions as HS256 JWTs.
type jwtSessionCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSessionCodec builds the codec from the session config.
func NewSessionCodec(cfg *config.Config) (service.SessionCodec, error) {
	if cfg.Session.Secret == "" {
		return nil, errors.New("session secret must be provided")
	}

	return newSessionCodec(cfg.Session.Secret, cfg.Session.MaxAge, time.Now), nil
}

func newSessionCodec(secret string, ttl time.Duration, now func() time.Time) *jwtSessionCodec {
	return &jwtSessionCodec{
		secret: []byte(secret),
		ttl:    ttl,
		now:    now,
	}
}

func (c *jwtSessionCodec) MaxAge() time.Duration {
	return c.ttl
}

// Encode signs the session identity together with issue and expiry times.
func (c *jwtSessionCodec) Encode(session entity.SessionData) (string, error) {
	now := c.now()
	claims := sessionClaims{
		UserID: session.UserID.String(),
		Email:  session.Email,
		Role:   session.Role,
		Name:   session.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sessionIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", errors.Wrap(err, "sign session")
	}

	return token, nil
}

// Decode verifies signature, algorithm and expiry. Every failure is reported
// as ErrMalformedSession so callers can treat it as an absent session.
func (c *jwtSessionCodec) Decode(token string) (*entity.SessionData, error) {
	if token == "" {
		return nil, domainerrors.ErrMalformedSession
	}

	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil || !parsed.Valid {
		return nil, domainerrors.ErrMalformedSession
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, domainerrors.ErrMalformedSession
	}

	return &entity.SessionData{
		UserID: userID,
		Email:  claims.Email,
		Role:   claims.Role,
		Name:   claims.Name,
	}, nil
}
