package auth

import (
	"context"
	"log/slog"
)

// bestEffort runs fn and logs a failure. The error never reaches the caller.
func bestEffort(ctx context.Context, logger *slog.Logger, action string, fn func(context.Context) error) {
	if err := fn(ctx); err != nil {
		logger.WarnContext(ctx, "best-effort action failed",
			slog.String("action", action),
			slog.String("error", err.Error()),
		)
	}
}
