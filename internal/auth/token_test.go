package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)

	tok, err := tokens.Issue("64a1b2c3d4e5f6a7b8c9d0e1")
	require.NoError(t, err)

	uid, err := tokens.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "64a1b2c3d4e5f6a7b8c9d0e1", uid)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	tok, err := NewTokens("secret", time.Hour).Issue("abc")
	require.NoError(t, err)

	_, err = NewTokens("other", time.Hour).Parse(tok)
	assert.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	issued := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tokens := &Tokens{Secret: []byte("secret"), TTL: time.Minute, Now: func() time.Time { return issued }}
	tok, err := tokens.Issue("abc")
	require.NoError(t, err)

	tokens.Now = func() time.Time { return issued.Add(time.Hour) }
	_, err = tokens.Parse(tok)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParseFallsBackToSubject(t *testing.T) {
	claims := jwt.RegisteredClaims{Subject: "from-sub", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	uid, err := NewTokens("secret", time.Hour).Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "from-sub", uid)
}
