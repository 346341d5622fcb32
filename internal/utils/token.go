// Package utils provides helpers for guest session tokens. A session
// token names the shopper's persistence slots (cart and favorites); it
// carries no account identity and grants nothing beyond its own cart.
package utils

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidSessionToken is returned when a token fails to parse or
// verify. Callers should mint a fresh session rather than reject the
// request; a shopper with a bad cookie just gets an empty cart.
var ErrInvalidSessionToken = errors.New("invalid session token")

// SessionToken pairs a signed token string with the session id embedded
// in it and the token's expiry.
type SessionToken struct {
	Token     string    // the serialized JWT string
	SessionID string    // random id naming the persistence slots
	Exp       time.Time // UTC expiration time
}

// NewSessionToken mints an HS256 token around a fresh random session
// id. The claims follow the usual layout: sid identifies the session,
// exp and iat bound its lifetime.
func NewSessionToken(secret string, ttl time.Duration) (SessionToken, error) {
	sid, err := randomHex(16)
	if err != nil {
		return SessionToken{}, err
	}
	exp := time.Now().UTC().Add(ttl)
	claims := jwt.MapClaims{
		"sid": sid,
		"exp": exp.Unix(),
		"iat": time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return SessionToken{}, err
	}
	return SessionToken{Token: signed, SessionID: sid, Exp: exp}, nil
}

// ParseSessionID verifies the token signature and returns the embedded
// session id. Only HMAC-signed tokens are accepted.
func ParseSessionID(secret, raw string) (string, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSessionToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return "", ErrInvalidSessionToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidSessionToken
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", ErrInvalidSessionToken
	}
	return sid, nil
}

// randomHex returns a hex-encoded string generated from n bytes of
// cryptographically secure random data.
func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
