package domain

import "errors"

var (
	// ErrNotFound is returned when the requested resource does not exist.
	// Adapters map it consistently to 404/NOT_FOUND.
	ErrNotFound = errors.New("resource not found")
	// ErrInvalidCredentials hides whether the email or the password failed,
	// to prevent account-enumeration side channels.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailTaken signals a registration attempt for an already verified email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrEmailUnverified is returned on login when the identity has not
	// completed OTP verification yet. A fresh verification code has been sent.
	ErrEmailUnverified = errors.New("email not verified")
	// ErrNoChallenge is returned when OTP verification is attempted with no
	// active challenge on the identity.
	ErrNoChallenge        = errors.New("no active challenge")
	ErrChallengeExpired   = errors.New("challenge expired")
	ErrChallengeMismatch  = errors.New("challenge code mismatch")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidInput       = errors.New("invalid input")
	ErrPasswordUnchanged  = errors.New("new password must differ from current password")
	ErrPasswordMismatch   = errors.New("current password is incorrect")
	ErrRateLimited        = errors.New("rate limited")
	// ErrMissingSigningSecret is a fatal misconfiguration: the token issuer
	// must refuse to operate rather than sign with a default secret.
	ErrMissingSigningSecret = errors.New("missing signing secret")
)
