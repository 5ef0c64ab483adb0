package ports

import (
	"time"

	"github.com/google/uuid"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// Claims is the payload carried by a bearer token. Tokens are stateless:
// the gate trusts signature and expiry alone and never consults the store.
type Claims struct {
	IdentityID uuid.UUID `json:"sub"`
	Email      string    `json:"email"`
	IssuedAt   time.Time `json:"issued_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

type TokenSigner interface {
	Sign(claims Claims) (string, error)
	ParseAndValidate(token string) (Claims, error)
}
