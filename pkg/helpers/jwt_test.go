package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour, "clubevents")

	tok, err := m.Generate("user-1")
	require.NoError(t, err)
	assert.NotEmpty(t, tok.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), tok.ExpiresAt, 5*time.Second)

	claims, err := m.Parse(tok.Value)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, tok.ID, claims.ID)
}

func TestJWTManager_DefaultTTL(t *testing.T) {
	m := NewJWTManager("secret", 0, "")
	assert.Equal(t, DefaultTokenTTL, m.TTL)
}

func TestJWTManager_Rejects(t *testing.T) {
	m := NewJWTManager("secret", time.Hour, "clubevents")
	tok, err := m.Generate("user-1")
	require.NoError(t, err)

	_, err = m.Parse("")
	assert.ErrorIs(t, err, ErrMissingToken)

	_, err = m.Parse("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewJWTManager("other-secret", time.Hour, "clubevents")
	_, err = other.Parse(tok.Value)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.Generate("  ")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTManager_Expiry(t *testing.T) {
	m := NewJWTManager("secret", time.Hour, "clubevents")
	tok, err := m.Generate("user-1")
	require.NoError(t, err)

	m.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = m.Parse(tok.Value)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenFromHeader(t *testing.T) {
	tok, err := TokenFromHeader("Bearer abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)

	tok, err = TokenFromHeader("bearer  xyz")
	require.NoError(t, err)
	assert.Equal(t, "xyz", tok)

	for _, h := range []string{"", "Bearer", "Basic abc", "Bearer a b"} {
		_, err := TokenFromHeader(h)
		assert.ErrorIs(t, err, ErrMissingToken, h)
	}
}
