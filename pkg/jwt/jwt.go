package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrInvalidClaim = errors.New("invalid token claims")
)

// IdentityClaims are the claims carried by tokens minted by the external
// identity provider after a successful phone sign-in. The subject is the
// provider's account UUID; phone and email travel as custom claims.
type IdentityClaims struct {
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// AccountID returns the provider account identifier (the token subject).
func (c *IdentityClaims) AccountID() string {
	return c.Subject
}

// Verifier validates identity-provider JWTs with a shared HS256 secret.
type Verifier struct {
	secret []byte
	issuer string
}

// NewVerifier creates a Verifier for the given shared secret and expected issuer.
func NewVerifier(secret string, issuer string) *Verifier {
	return &Verifier{
		secret: []byte(secret),
		issuer: issuer,
	}
}

// ValidateToken validates a provider token and returns its claims.
func (v *Verifier) ValidateToken(tokenString string) (*IdentityClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &IdentityClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithIssuer(v.issuer))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*IdentityClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaim
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidClaim)
	}

	return claims, nil
}

// MintToken signs an identity token. Used by tests and by local development
// tooling; in production tokens come from the identity provider.
func (v *Verifier) MintToken(accountID, phone, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := IdentityClaims{
		Phone: phone,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			Issuer:    v.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
