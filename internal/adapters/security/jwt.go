package security

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/lessonhub/auth-service/internal/domain"
	"github.com/lessonhub/auth-service/internal/ports"
)

// JWTSigner implements HS256 token signing and parsing over a process-wide
// secret. The secret is injected at construction; there is no default and no
// fallback, so a missing secret prevents token issuance outright.
type JWTSigner struct {
	secret []byte
}

// NewJWTSigner builds a signer from the configured secret. An empty secret
// is a fatal misconfiguration.
func NewJWTSigner(secret string) (*JWTSigner, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, domain.ErrMissingSigningSecret
	}
	return &JWTSigner{secret: []byte(secret)}, nil
}

type authJWTClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func (s *JWTSigner) Sign(claims ports.Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, authJWTClaims{
		Email: claims.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.IdentityID.String(),
			IssuedAt:  jwt.NewNumericDate(claims.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
		},
	})
	return token.SignedString(s.secret)
}

func (s *JWTSigner) ParseAndValidate(raw string) (ports.Claims, error) {
	parsed, err := jwt.ParseWithClaims(raw, &authJWTClaims{}, func(token *jwt.Token) (any, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", token.Method.Alg())
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return ports.Claims{}, err
	}
	claims, ok := parsed.Claims.(*authJWTClaims)
	if !ok || !parsed.Valid {
		return ports.Claims{}, errors.New("invalid token claims")
	}
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		return ports.Claims{}, errors.New("token missing time claims")
	}

	identityID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ports.Claims{}, fmt.Errorf("parse subject: %w", err)
	}

	return ports.Claims{
		IdentityID: identityID,
		Email:      claims.Email,
		IssuedAt:   claims.IssuedAt.Time.UTC(),
		ExpiresAt:  claims.ExpiresAt.Time.UTC(),
	}, nil
}
