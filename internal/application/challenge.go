package application

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"

	"github.com/lessonhub/auth-service/internal/domain"
)

const otpDigits = 6

// issueChallenge draws a fresh one-time code, overwrites the identity's
// challenge slot and persists it. The overwrite is intentional: only the most
// recently issued code for an identity is ever valid. The code is returned so
// the caller can hand it to the dispatcher.
func (s *Service) issueChallenge(ctx context.Context, identity *domain.Identity, purpose domain.Purpose) (string, error) {
	code := randomDigits(otpDigits)
	identity.Challenge = &domain.Challenge{
		Code:      code,
		Purpose:   purpose,
		ExpiresAt: s.nowFn().Add(s.cfg.ChallengeTTL),
	}
	if err := s.identities.Save(ctx, *identity); err != nil {
		return "", fmt.Errorf("persist challenge: %w", err)
	}
	return code, nil
}

// consumeChallenge validates a presented code against the identity's slot.
// An expired code clears the slot and persists before returning, so the same
// code cannot be retried. A mismatch leaves the slot untouched. On success
// the slot is cleared (persisted by the caller together with any verified
// flag change) and the purpose that was active is returned.
func (s *Service) consumeChallenge(ctx context.Context, identity *domain.Identity, code string) (domain.Purpose, error) {
	ch := identity.Challenge
	if ch == nil || ch.Code == "" {
		return "", domain.ErrNoChallenge
	}
	if ch.Expired(s.nowFn()) {
		identity.Challenge = nil
		if err := s.identities.Save(ctx, *identity); err != nil {
			return "", fmt.Errorf("clear expired challenge: %w", err)
		}
		return "", domain.ErrChallengeExpired
	}
	// Exact equality: no case folding, no trimming.
	if ch.Code != code {
		return "", domain.ErrChallengeMismatch
	}
	purpose := ch.Purpose
	identity.Challenge = nil
	return purpose, nil
}

// sendChallenge issues a challenge and dispatches the code to the account
// email. Dispatch is fire-and-forget: a transport failure is logged and does
// not roll back the challenge that was already persisted.
func (s *Service) sendChallenge(ctx context.Context, identity *domain.Identity, purpose domain.Purpose) error {
	code, err := s.issueChallenge(ctx, identity, purpose)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Your one-time code (%s)", purpose)
	body := fmt.Sprintf("Your one-time code is: %s\n\nIt is valid for %.0f minutes. If you did not request it, you can ignore this email.\n",
		code, s.cfg.ChallengeTTL.Minutes())
	if err := s.dispatcher.Send(ctx, identity.Email, subject, body); err != nil {
		slog.Default().WarnContext(ctx, "challenge dispatch failed",
			"service", serviceName,
			"module", "application",
			"layer", "application",
			"operation", "send_challenge",
			"outcome", "warning",
			"purpose", string(purpose),
			"error", err,
		)
	}
	return nil
}

// randomDigits returns a numeric code with each digit drawn independently and
// uniformly from 0-9 using the crypto source.
func randomDigits(size int) string {
	if size <= 0 {
		size = otpDigits
	}
	out := make([]byte, size)
	for i := 0; i < size; {
		var raw [1]byte
		_, _ = rand.Read(raw[:])
		// Reject values outside the largest multiple of 10 to keep digits uniform.
		if raw[0] >= 250 {
			continue
		}
		out[i] = '0' + raw[0]%10
		i++
	}
	return string(out)
}
