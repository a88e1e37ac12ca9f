package jwtutil

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSigner_RoundTrip(t *testing.T) {
	s := &Signer{Secret: []byte("k"), Issuer: "riseabove", ExpMin: 5}

	tok, err := s.Sign(7, "alice")
	require.NoError(t, err)

	claims, err := s.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "riseabove", claims.Issuer)
}

func TestSigner_Rejects(t *testing.T) {
	s := &Signer{Secret: []byte("k"), Issuer: "riseabove", ExpMin: 5}
	tok, err := s.Sign(7, "alice")
	require.NoError(t, err)

	other := &Signer{Secret: []byte("other"), Issuer: "riseabove", ExpMin: 5}
	_, err = other.Parse(tok)
	assert.Error(t, err, "wrong secret")

	wrongIssuer := &Signer{Secret: []byte("k"), Issuer: "someone-else", ExpMin: 5}
	_, err = wrongIssuer.Parse(tok)
	assert.Error(t, err, "wrong issuer")

	_, err = s.Parse("garbage")
	assert.Error(t, err)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: 7,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "riseabove",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	raw, err := expired.SignedString([]byte("k"))
	require.NoError(t, err)
	_, err = s.Parse(raw)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}
