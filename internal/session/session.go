// Package session carries the authenticated identity threaded into every
// view-model and API call. There is deliberately no package-level current
// user: callers construct a Session and pass it down.
package session

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken indicates the bearer token failed parsing or verification.
var ErrInvalidToken = errors.New("invalid session token")

// Session identifies the signed-in user for the lifetime of the process.
type Session struct {
	UserID int64
	Email  string
	Role   string
	Token  string
}

// Static builds a session for a known user id without a token. This is the
// local-development path; production sessions come from FromToken.
func Static(userID int64) Session {
	return Session{UserID: userID}
}

// FromToken verifies an HMAC-signed bearer token and extracts the identity
// claims.
func FromToken(tokenString, secret string) (Session, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return Session{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Session{}, ErrInvalidToken
	}

	userID, ok := extractUserID(claims)
	if !ok {
		return Session{}, ErrInvalidToken
	}

	sess := Session{UserID: userID, Token: tokenString}
	if email, ok := claims["email"].(string); ok {
		sess.Email = email
	}
	if role, ok := claims["role"].(string); ok {
		sess.Role = role
	}

	return sess, nil
}

func extractUserID(claims jwt.MapClaims) (int64, bool) {
	for _, key := range []string{"sub", "user_id", "id"} {
		value, ok := claims[key]
		if !ok {
			continue
		}
		if id, ok := normalizeUserID(value); ok {
			return id, true
		}
	}
	return 0, false
}

func normalizeUserID(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case float64:
		if v <= 0 {
			return 0, false
		}
		return int64(v), true
	case string:
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil || parsed <= 0 {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}
