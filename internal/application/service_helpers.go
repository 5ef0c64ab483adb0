package application

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/lessonhub/auth-service/internal/domain"
)

const serviceName = "auth-service"

// normalizeEmail canonicalizes and validates email format before any store
// access or comparison. Only a bare address is accepted: RFC 5322 forms with
// display names or comments would dodge the store's uniqueness on the plain
// address, so anything the parser does not echo back verbatim is rejected.
func normalizeEmail(email string) (string, error) {
	trimmed := strings.ToLower(strings.TrimSpace(email))
	if trimmed == "" {
		return "", fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}
	parsed, err := mail.ParseAddress(trimmed)
	if err != nil || parsed.Address != trimmed {
		return "", fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
	}
	return trimmed, nil
}

// enforceRateLimit applies a fixed-window counter per key. Throttling is
// periphery: with no limiter configured the core flows are unaffected, and a
// limiter outage fails open with a warning rather than blocking logins.
func (s *Service) enforceRateLimit(ctx context.Context, key string) error {
	if s.limiter == nil || s.cfg.RateLimitThreshold <= 0 || s.cfg.RateLimitWindow <= 0 {
		return nil
	}
	count, err := s.limiter.Incr(ctx, key, s.cfg.RateLimitWindow)
	if err != nil {
		slog.Default().WarnContext(ctx, "rate-limit state unavailable",
			"service", serviceName,
			"module", "application",
			"layer", "application",
			"operation", "rate_limit",
			"outcome", "warning",
			"key", key,
			"error", err,
		)
		return nil
	}
	if count > int64(s.cfg.RateLimitThreshold) {
		return domain.ErrRateLimited
	}
	return nil
}
