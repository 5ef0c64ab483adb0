package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lessonhub/auth-service/internal/domain"
	"github.com/lessonhub/auth-service/internal/ports"
)

// Register creates or refreshes an unverified identity and emails a
// registration code. Re-registering an email that exists but was never
// verified is a retry, not a conflict: the pending hash and challenge are
// overwritten. A verified email is rejected outright.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (RegisterResponse, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return RegisterResponse{}, err
	}
	if err := domain.ValidatePassword(req.Password); err != nil {
		return RegisterResponse{}, err
	}
	if err := s.enforceRateLimit(ctx, "register:"+email); err != nil {
		return RegisterResponse{}, err
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return RegisterResponse{}, fmt.Errorf("hash password: %w", err)
	}

	identity, err := s.identities.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if identity.Verified {
			return RegisterResponse{}, domain.ErrEmailTaken
		}
		identity.PasswordHash = passwordHash
		identity.Verified = false
	case errors.Is(err, domain.ErrNotFound):
		identity, err = s.identities.Create(ctx, domain.Identity{
			ID:           uuid.New(),
			Email:        email,
			PasswordHash: passwordHash,
			Verified:     false,
			CreatedAt:    s.nowFn(),
		})
		if err != nil {
			// Two concurrent registrations can both pass the lookup; the
			// store's unique index resolves the race and the loser surfaces
			// as a conflict, not an internal error.
			return RegisterResponse{}, err
		}
	default:
		return RegisterResponse{}, err
	}

	if err := s.sendChallenge(ctx, &identity, domain.PurposeRegister); err != nil {
		return RegisterResponse{}, err
	}

	return RegisterResponse{
		Message: "A one-time code has been sent to your email. Verify it to complete registration.",
	}, nil
}

// Login checks credentials and starts the OTP leg of the two-step protocol.
// It never yields a token: a matching password only gets a code emailed, and
// the caller must follow up with VerifyOTP. Unknown email and wrong password
// collapse into the same failure.
func (s *Service) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return LoginResponse{}, err
	}
	if err := s.enforceRateLimit(ctx, "login:"+email); err != nil {
		return LoginResponse{}, err
	}

	identity, err := s.identities.GetByEmail(ctx, email)
	if err != nil {
		return LoginResponse{}, domain.ErrInvalidCredentials
	}
	if err := s.hasher.Compare(identity.PasswordHash, req.Password); err != nil {
		return LoginResponse{}, domain.ErrInvalidCredentials
	}

	if !identity.Verified {
		if err := s.sendChallenge(ctx, &identity, domain.PurposeVerify); err != nil {
			return LoginResponse{}, err
		}
		return LoginResponse{}, domain.ErrEmailUnverified
	}

	if err := s.sendChallenge(ctx, &identity, domain.PurposeLogin); err != nil {
		return LoginResponse{}, err
	}
	return LoginResponse{
		Message: "A login code has been sent to your email. Verify it to receive a token.",
	}, nil
}

// VerifyOTP consumes the identity's active challenge and, on success, issues
// a bearer token. This is the only code path in the system that signs tokens.
// A register or verify purpose also flips the identity to verified.
func (s *Service) VerifyOTP(ctx context.Context, req VerifyOTPRequest) (VerifyOTPResponse, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return VerifyOTPResponse{}, err
	}
	if req.OTP == "" {
		return VerifyOTPResponse{}, fmt.Errorf("%w: otp is required", domain.ErrInvalidInput)
	}

	identity, err := s.identities.GetByEmail(ctx, email)
	if err != nil {
		return VerifyOTPResponse{}, domain.ErrNoChallenge
	}

	purpose, err := s.consumeChallenge(ctx, &identity, req.OTP)
	if err != nil {
		return VerifyOTPResponse{}, err
	}

	if purpose == domain.PurposeRegister || purpose == domain.PurposeVerify {
		identity.Verified = true
	}
	if err := s.identities.Save(ctx, identity); err != nil {
		return VerifyOTPResponse{}, fmt.Errorf("persist verification: %w", err)
	}

	now := s.nowFn()
	token, err := s.signer.Sign(ports.Claims{
		IdentityID: identity.ID,
		Email:      identity.Email,
		IssuedAt:   now,
		ExpiresAt:  now.Add(s.cfg.TokenTTL),
	})
	if err != nil {
		return VerifyOTPResponse{}, fmt.Errorf("sign token: %w", err)
	}

	return VerifyOTPResponse{
		Message: "Code verified.",
		Token:   token,
	}, nil
}

// ChangePassword replaces the stored hash after re-verifying the current
// password. Outstanding tokens stay valid for their full lifetime; there is
// no revocation.
func (s *Service) ChangePassword(ctx context.Context, identityID uuid.UUID, req ChangePasswordRequest) error {
	if identityID == uuid.Nil {
		return domain.ErrUnauthorized
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return fmt.Errorf("%w: current and new passwords are required", domain.ErrInvalidInput)
	}
	if err := domain.ValidatePassword(req.NewPassword); err != nil {
		return err
	}
	if req.NewPassword == req.CurrentPassword {
		return domain.ErrPasswordUnchanged
	}

	identity, err := s.identities.GetByID(ctx, identityID)
	if err != nil {
		return err
	}
	if err := s.hasher.Compare(identity.PasswordHash, req.CurrentPassword); err != nil {
		return domain.ErrPasswordMismatch
	}

	identity.PasswordHash, err = s.hasher.Hash(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.identities.Save(ctx, identity)
}

// DecodeToken verifies a bearer token for the gate. All failure causes
// (bad signature, malformed, expired) collapse into ErrUnauthorized so the
// client learns nothing about why.
func (s *Service) DecodeToken(token string) (ports.Claims, error) {
	claims, err := s.signer.ParseAndValidate(token)
	if err != nil {
		return ports.Claims{}, domain.ErrUnauthorized
	}
	return claims, nil
}

// CurrentIdentity returns the profile of the authenticated identity.
func (s *Service) CurrentIdentity(ctx context.Context, identityID uuid.UUID) (IdentityInfo, error) {
	identity, err := s.identities.GetByID(ctx, identityID)
	if err != nil {
		return IdentityInfo{}, err
	}
	return IdentityInfo{
		ID:       identity.ID,
		Email:    identity.Email,
		Verified: identity.Verified,
	}, nil
}
