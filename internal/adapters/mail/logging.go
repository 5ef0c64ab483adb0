package mail

import (
	"context"
	"log/slog"
)

// LogDispatcher writes outgoing notifications to the log instead of SMTP.
// It is the dev-mode dispatcher used when no mail transport is configured.
type LogDispatcher struct {
	logger *slog.Logger
}

func NewLogDispatcher(logger *slog.Logger) *LogDispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogDispatcher{logger: logger}
}

func (d *LogDispatcher) Send(ctx context.Context, to, subject, body string) error {
	d.logger.InfoContext(ctx, "notification dispatched to log",
		"module", "mail",
		"layer", "adapter",
		"operation", "send",
		"outcome", "success",
		"to", to,
		"subject", subject,
		"body", body,
	)
	return nil
}
