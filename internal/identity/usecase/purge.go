package usecase

import (
	"context"
	"log/slog"
	"time"
)

// StartOTPPurge launches a background loop that deletes retired code rows
// older than the configured horizon. The loop stops when ctx is canceled.
func (s *Usecase) StartOTPPurge(ctx context.Context) {
	interval := s.cfg.GetMinute("modules.identity.otp_purge_interval_minutes")
	horizon := s.cfg.GetHour("modules.identity.otp_purge_horizon_hours")
	if interval <= 0 || horizon <= 0 {
		slog.InfoContext(ctx, "code purge disabled")
		return
	}

	s.goroutine.Go(ctx, func(ctx context.Context) error {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				n, err := s.repoDB.PurgeOTPs(ctx, s.clock.Now().Add(-horizon))
				if err != nil {
					slog.ErrorContext(ctx, "failed to purge code rows", "error", err)
					continue
				}
				if n > 0 {
					slog.InfoContext(ctx, "purged code rows", "count", n)
				}
			}
		}
	})
}
