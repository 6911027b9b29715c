package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// MatchClaims grants control of one match to whoever holds the token
type MatchClaims struct {
	MatchID string `json:"match_id"`
	jwt.RegisteredClaims
}

type Signer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSigner(secret string, ttl time.Duration) *Signer {
	return &Signer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// GenerateMatchToken creates a signed token for matchID
func (s *Signer) GenerateMatchToken(matchID string) (string, error) {
	now := s.now()
	claims := &MatchClaims{
		MatchID: matchID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   matchID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateMatchToken validates a match token and returns its claims
func (s *Signer) ValidateMatchToken(tokenString string) (*MatchClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &MatchClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*MatchClaims); ok && token.Valid && claims.MatchID != "" {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

// Authorize checks that tokenString was issued for matchID
func (s *Signer) Authorize(tokenString, matchID string) error {
	claims, err := s.ValidateMatchToken(tokenString)
	if err != nil {
		return err
	}
	if claims.MatchID != matchID {
		return ErrInvalidToken
	}
	return nil
}
