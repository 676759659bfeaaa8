package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/blog-auth-backend/errs"
)

// TokenTTL is how long an issued token stays valid.
const TokenTTL = 24 * time.Hour

// Claims is the signed payload of an identity token
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 identity tokens.
type TokenService struct {
	signingKey []byte
	now        func() time.Time
}

type TokenOption func(*TokenService)

// WithClock replaces the time source, used for issuing and for expiry checks.
func WithClock(now func() time.Time) TokenOption {
	return func(ts *TokenService) {
		ts.now = now
	}
}

func NewTokenService(signingKey []byte, opts ...TokenOption) *TokenService {
	ts := &TokenService{
		signingKey: signingKey,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(ts)
	}
	return ts
}

// Issue signs a token for userID that expires TokenTTL from now
func (ts *TokenService) Issue(userID uuid.UUID) (string, error) {
	now := ts.now()
	claims := &Claims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the embedded user id.
// Every failure unwraps to errs.ErrInvalidToken.
func (ts *TokenService) Verify(tokenString string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.signingKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(ts.now),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", errs.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return uuid.Nil, errs.ErrInvalidToken
	}

	subject := claims.UserID
	if subject == "" {
		subject = claims.Subject
	}
	userID, err := uuid.Parse(subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: subject: %v", errs.ErrInvalidToken, err)
	}
	return userID, nil
}
