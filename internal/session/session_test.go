package session

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestFromTokenExtractsIdentity(t *testing.T) {
	signed := signToken(t, "secret", jwt.MapClaims{
		"sub":   "42",
		"email": "estudiante@example.com",
		"role":  "student",
	})

	sess, err := FromToken(signed, "secret")
	require.NoError(t, err)
	require.Equal(t, int64(42), sess.UserID)
	require.Equal(t, "estudiante@example.com", sess.Email)
	require.Equal(t, "student", sess.Role)
	require.Equal(t, signed, sess.Token)
}

func TestFromTokenFallsBackThroughClaimKeys(t *testing.T) {
	signed := signToken(t, "secret", jwt.MapClaims{"user_id": float64(7)})

	sess, err := FromToken(signed, "secret")
	require.NoError(t, err)
	require.Equal(t, int64(7), sess.UserID)
}

func TestFromTokenRejectsBadSignature(t *testing.T) {
	signed := signToken(t, "other-secret", jwt.MapClaims{"sub": "42"})

	_, err := FromToken(signed, "secret")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestFromTokenRejectsMissingUserID(t *testing.T) {
	signed := signToken(t, "secret", jwt.MapClaims{"email": "x@example.com"})

	_, err := FromToken(signed, "secret")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestStaticSession(t *testing.T) {
	sess := Static(1)
	require.Equal(t, int64(1), sess.UserID)
	require.Empty(t, sess.Token)
}
