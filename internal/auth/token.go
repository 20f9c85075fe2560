// Package auth verifies and mints the HS256 bearer tokens that identify a user.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/HammerMeetNail/microstartup/internal/models"
)

var ErrInvalidToken = errors.New("invalid access token")

type claims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

type Verifier struct {
	secret []byte
	issuer string
}

func NewVerifier(secret, issuer string) *Verifier {
	return &Verifier{secret: []byte(secret), issuer: issuer}
}

// Verify checks signature, issuer and expiry and returns the user named by "sub".
func (v *Verifier) Verify(tokenString string) (*models.User, error) {
	var c claims
	token, err := jwt.ParseWithClaims(tokenString, &c, func(token *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(v.issuer))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || c.ExpiresAt == nil {
		return nil, fmt.Errorf("%w: missing expiry", ErrInvalidToken)
	}

	id, err := uuid.Parse(c.Subject)
	if err != nil || id == uuid.Nil {
		return nil, fmt.Errorf("%w: subject is not a user id", ErrInvalidToken)
	}
	return &models.User{ID: id, Email: c.Email, Role: c.Role}, nil
}

// Issue signs an access token for user valid for ttl.
func (v *Verifier) Issue(user models.User, ttl time.Duration) (string, error) {
	now := time.Now()
	c := claims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			Issuer:    v.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(v.secret)
}
