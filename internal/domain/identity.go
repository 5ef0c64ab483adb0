package domain

import (
	"time"

	"github.com/google/uuid"
)

// Purpose is the reason a challenge was issued. It determines what happens
// when the challenge is consumed: register and verify flip the identity to
// verified, login only unlocks token issuance.
type Purpose string

const (
	PurposeRegister Purpose = "register"
	PurposeLogin    Purpose = "login"
	PurposeVerify   Purpose = "verify"
)

// Valid reports whether p is one of the three purposes this service issues.
func (p Purpose) Valid() bool {
	switch p {
	case PurposeRegister, PurposeLogin, PurposeVerify:
		return true
	}
	return false
}

// Challenge is a time-bound one-time code bound to one identity and one
// purpose. An identity holds at most one challenge at a time; issuing a new
// one overwrites any unconsumed code.
type Challenge struct {
	Code      string
	Purpose   Purpose
	ExpiresAt time.Time
}

// Expired reports whether the challenge is past its expiry at the given time.
func (c Challenge) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// Identity is the persisted account record keyed by normalized email.
// Challenge is the single challenge slot; nil means no code is pending.
type Identity struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Verified     bool
	Challenge    *Challenge
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
