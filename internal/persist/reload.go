package persist

import (
	"context"
	"log/slog"

	"github.com/cenkalti/backoff/v4"
)

// LoadLastFinishedWithRetry wraps a single LoadLastFinished call in an
// exponential backoff, the way
// controlplane/telemetry/internal/telemetry/pinger.go retries transient
// RPCs — a restart racing the store becoming available shouldn't fail
// the whole process over a transient read error.
func LoadLastFinishedWithRetry(ctx context.Context, log *slog.Logger, store Store, scheduleID string) (int64, error) {
	if log == nil {
		log = slog.Default()
	}
	var finished int64
	op := func() error {
		v, err := store.LoadLastFinished(ctx, scheduleID)
		if err != nil {
			log.Warn("persist: LoadLastFinished failed, retrying", "scheduleID", scheduleID, "err", err)
			return err
		}
		finished = v
		return nil
	}

	bo := backoff.WithContext(backoff.NewExponentialBackOff(), ctx)
	if err := backoff.Retry(op, bo); err != nil {
		return 0, err
	}
	return finished, nil
}
