package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cakeshop/cakeshop/internal/identity"
)

var (
	// ErrTokenExpired marks a token past its validity window.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid marks a malformed token or a bad signature.
	ErrTokenInvalid = errors.New("invalid token")
)

// Claims is the payload embedded in issued bearer tokens.
type Claims struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
	jwt.RegisteredClaims
}

// TokenService mints and verifies stateless bearer tokens signed with the
// process-wide secret. A non-empty secret is a startup precondition enforced
// by config.Load.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService builds a token service with the given secret and validity window.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a bearer token carrying the user's identity claims.
func (s *TokenService) Issue(user identity.User) (string, error) {
	now := s.now()
	claims := Claims{
		ID:          user.ID,
		Email:       user.Email,
		Name:        user.Name,
		PhoneNumber: user.PhoneNumber,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify checks signature and expiry and returns the embedded claims.
// Expiry is reported distinctly from malformed or tampered tokens.
func (s *TokenService) Verify(token string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	claims := &Claims{}
	parsed, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !parsed.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
