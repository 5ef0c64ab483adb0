package application

import (
	"time"

	"github.com/lessonhub/auth-service/internal/ports"
)

// Config carries the tunables the use cases need. Challenge and token
// lifetimes are injected so tests can shrink them without touching clocks.
type Config struct {
	ChallengeTTL time.Duration
	TokenTTL     time.Duration

	// Fixed-window throttling for register/login. Zero thresholds or a nil
	// limiter disable throttling entirely.
	RateLimitThreshold int
	RateLimitWindow    time.Duration
}

// Service is the authentication orchestrator. It composes the credential
// store, the password hasher, the challenge engine, the token signer and the
// notification dispatcher into the register/login/verify-otp/change-password
// use cases. All state lives in the store; the service itself is stateless
// and safe for concurrent use.
type Service struct {
	cfg        Config
	identities ports.IdentityRepository
	lessons    ports.LessonRepository
	hasher     ports.PasswordHasher
	signer     ports.TokenSigner
	dispatcher ports.Dispatcher
	limiter    ports.RateLimitStore
	nowFn      func() time.Time
}

type Dependencies struct {
	Config     Config
	Identities ports.IdentityRepository
	Lessons    ports.LessonRepository
	Hasher     ports.PasswordHasher
	Signer     ports.TokenSigner
	Dispatcher ports.Dispatcher
	Limiter    ports.RateLimitStore
}

func NewService(deps Dependencies) *Service {
	cfg := deps.Config
	if cfg.ChallengeTTL <= 0 {
		cfg.ChallengeTTL = 10 * time.Minute
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = time.Hour
	}
	return &Service{
		cfg:        cfg,
		identities: deps.Identities,
		lessons:    deps.Lessons,
		hasher:     deps.Hasher,
		signer:     deps.Signer,
		dispatcher: deps.Dispatcher,
		limiter:    deps.Limiter,
		nowFn:      func() time.Time { return time.Now().UTC() },
	}
}
