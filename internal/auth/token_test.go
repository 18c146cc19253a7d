package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndParse(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	m := newTokenManager("secret", time.Hour, func() time.Time { return now })
	id := uuid.New()

	token, err := m.Sign(id, "asha")
	require.NoError(t, err)

	gotID, claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, id, gotID)
	assert.Equal(t, "asha", claims.Username)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	issuer := newTokenManager("secret", time.Hour, func() time.Time { return now })
	token, err := issuer.Sign(uuid.New(), "asha")
	require.NoError(t, err)

	later := newTokenManager("secret", time.Hour, func() time.Time { return now.Add(2 * time.Hour) })
	_, _, err = later.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsForeignSignature(t *testing.T) {
	now := time.Now
	token, err := newTokenManager("one", time.Hour, now).Sign(uuid.New(), "asha")
	require.NoError(t, err)

	_, _, err = newTokenManager("two", time.Hour, now).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, _, err = newTokenManager("two", time.Hour, now).Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDefaultTTLIsSevenDays(t *testing.T) {
	m := newTokenManager("secret", 0, time.Now)
	assert.Equal(t, 7*24*time.Hour, m.ttl)
}
