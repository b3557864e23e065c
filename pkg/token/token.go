// Package token signs and verifies the portal (client) JWT.
//
// Staff sessions are server-side and never pass through here; the only token
// this package accepts is one whose type claim is exactly "client".
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TypeClient is the only token type the portal accepts.
const TypeClient = "client"

var (
	ErrInvalidToken  = errors.New("token: invalid token")
	ErrWrongType     = errors.New("token: wrong token type")
	ErrEmptySecret   = errors.New("token: empty signing secret")
	ErrMissingClient = errors.New("token: missing client identity")
)

// ClientClaims carries the portal identity inside the JWT.
type ClientClaims struct {
	jwt.RegisteredClaims
	Type         string `json:"type"`
	ClientID     string `json:"client_id"`
	ClientUserID string `json:"client_user_id"`
}

// Sign issues a client token for the given identities.
func Sign(secret, clientID, clientUserID string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	if clientID == "" || clientUserID == "" {
		return "", ErrMissingClient
	}
	now := time.Now()
	claims := ClientClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   clientUserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Type:         TypeClient,
		ClientID:     clientID,
		ClientUserID: clientUserID,
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// Parse verifies the signature and expiry, then checks the type claim.
// A structurally valid token of any other type is rejected: staff and client
// tokens are not interchangeable.
func Parse(secret, tokenString string) (*ClientClaims, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	parsed, err := jwt.ParseWithClaims(tokenString, &ClientClaims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*ClientClaims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Type != TypeClient {
		return nil, ErrWrongType
	}
	if claims.ClientID == "" || claims.ClientUserID == "" {
		return nil, ErrMissingClient
	}
	return claims, nil
}
