package auth

import (
	"fmt"
	"time"

	"quickbite/internal/apperr"

	"github.com/dgrijalva/jwt-go"
)

// Claims are the token fields identifying a user.
type Claims struct {
	StudentID string `json:"sid"`
	Name      string `json:"name"`
	Admin     bool   `json:"admin,omitempty"`
	jwt.StandardClaims
}

// Issuer signs and verifies HS256 tokens.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer creates an Issuer whose tokens expire after ttl.
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue returns a signed token for u and its expiry.
func (i *Issuer) Issue(u *User) (string, time.Time, error) {
	now := i.now()
	expires := now.Add(i.ttl)
	claims := Claims{
		StudentID: u.StudentID,
		Name:      u.Name,
		Admin:     u.IsAdmin,
		StandardClaims: jwt.StandardClaims{
			Subject:   u.StudentID,
			IssuedAt:  now.Unix(),
			ExpiresAt: expires.Unix(),
			Issuer:    "quickbite",
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing token: %w", err)
	}
	return signed, expires, nil
}

// Parse verifies a token and returns its claims. Tokens that are malformed,
// expired or signed with another key or method fail with
// apperr.ErrUnauthorized.
func (i *Issuer) Parse(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: invalid token", apperr.ErrUnauthorized)
	}
	if claims.StudentID == "" {
		return nil, fmt.Errorf("%w: token has no student id", apperr.ErrUnauthorized)
	}
	return claims, nil
}
