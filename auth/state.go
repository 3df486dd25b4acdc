package auth

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const stateIssuer = "skillhub-connect"

type stateClaims struct {
	Nonce string `json:"nonce"`
	jwt.RegisteredClaims
}

// StateSigner issues and checks the OAuth state parameter. The state is an
// HS256 token carrying the login nonce that is also held in the session, so a
// callback is accepted only by the browser that started the login and only
// within the TTL.
type StateSigner struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewStateSigner derives a state key from the session secret.
func NewStateSigner(secret string, ttl time.Duration) *StateSigner {
	sum := sha256.Sum256([]byte("oauth-state:" + secret))
	return &StateSigner{key: sum[:], ttl: ttl, now: time.Now}
}

// Sign returns a state token for nonce.
func (s *StateSigner) Sign(nonce string) (string, error) {
	now := s.now()
	claims := stateClaims{
		Nonce: nonce,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    stateIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign state: %w", err)
	}
	return signed, nil
}

// Verify checks signature, issuer and expiry and returns the nonce.
func (s *StateSigner) Verify(state string) (string, error) {
	if state == "" {
		return "", errors.New("missing state")
	}

	claims := &stateClaims{}
	_, err := jwt.ParseWithClaims(state, claims,
		func(*jwt.Token) (interface{}, error) { return s.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(stateIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", fmt.Errorf("parse state: %w", err)
	}
	if claims.Nonce == "" {
		return "", errors.New("state has no nonce")
	}
	return claims.Nonce, nil
}
