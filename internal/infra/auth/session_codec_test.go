package auth

import (
	"strings"
	"testing"
	"time"

	"solar/config"
	"solar/internal/domain/entity"
	domainerrors "solar/internal/domain/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionCodec_RoundTrip(t *testing.T) {
	codec := newSessionCodec("secret", 7*24*time.Hour, time.Now)

	sessions := []entity.SessionData{
		{UserID: uuid.New(), Email: "admin@example.com", Role: "admin", Name: "Admin"},
		{UserID: uuid.Nil, Email: "dev@example.com", Role: "admin", Name: ""},
		{UserID: uuid.New(), Email: "", Role: "", Name: "Ünïcode ✓"},
	}

	for _, s := range sessions {
		token, err := codec.Encode(s)
		require.NoError(t, err)

		got, err := codec.Decode(token)
		require.NoError(t, err)
		assert.Equal(t, s, *got)
	}
}

func TestSessionCodec_Decode_Tampered(t *testing.T) {
	codec := newSessionCodec("secret", time.Hour, time.Now)

	token, err := codec.Encode(entity.SessionData{UserID: uuid.New(), Role: "viewer"})
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	// Forge a payload claiming the admin role with the original signature.
	forged := &sessionClaims{UserID: uuid.NewString(), Role: "admin"}
	forgedToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, forged).SignedString([]byte("other"))
	require.NoError(t, err)
	forgedParts := strings.Split(forgedToken, ".")

	_, err = codec.Decode(parts[0] + "." + forgedParts[1] + "." + parts[2])
	assert.ErrorIs(t, err, domainerrors.ErrMalformedSession)
}

func TestSessionCodec_Decode_Failures(t *testing.T) {
	now := time.Now()
	codec := newSessionCodec("secret", time.Hour, func() time.Time { return now })

	token, err := codec.Encode(entity.SessionData{UserID: uuid.New()})
	require.NoError(t, err)

	expired := newSessionCodec("secret", time.Hour, func() time.Time { return now.Add(2 * time.Hour) })
	otherKey := newSessionCodec("different", time.Hour, func() time.Time { return now })

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, &sessionClaims{UserID: uuid.NewString()}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		codec *jwtSessionCodec
		token string
	}{
		{"empty", codec, ""},
		{"garbage", codec, "not-a-token"},
		{"base64 json", codec, "eyJ1c2VySWQiOiIxIn0="},
		{"expired", expired, token},
		{"wrong key", otherKey, token},
		{"alg none", codec, none},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.codec.Decode(tt.token)
			assert.ErrorIs(t, err, domainerrors.ErrMalformedSession)
		})
	}
}

func TestNewSessionCodec_RequiresSecret(t *testing.T) {
	_, err := NewSessionCodec(&config.Config{})
	assert.Error(t, err)

	cfg := &config.Config{}
	cfg.Session.Secret = "s"
	cfg.Session.MaxAge = time.Hour
	codec, err := NewSessionCodec(cfg)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, codec.MaxAge())
}
