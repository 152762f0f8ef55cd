package followup

import (
	"context"
	"fmt"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
)

// StageOptions bounds one per-attendee generation stage.
type StageOptions struct {
	Timeout    time.Duration
	MaxRetries int
}

// runStage executes one generation stage under a deadline, with panic
// recovery and bounded retries. A failure here is scoped to a single
// attendee; the pipeline records it and moves on.
func runStage(ctx context.Context, opts StageOptions, stageFn func(context.Context) (string, error)) (string, error) {
	var result string

	attempt := func() error {
		stageCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
		defer cancel()

		var err error
		func() {
			defer func() {
				if p := recover(); p != nil {
					err = fmt.Errorf("panic recovered: %v", p)
				}
			}()
			result, err = stageFn(stageCtx)
		}()

		if err != nil {
			return err
		}
		if stageCtx.Err() != nil {
			return stageCtx.Err()
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 2 * time.Second
	bo.MaxInterval = 30 * time.Second

	policy := backoff.WithContext(backoff.WithMaxRetries(bo, uint64(opts.MaxRetries)), ctx)

	if err := backoff.Retry(attempt, policy); err != nil {
		return "", err
	}
	return result, nil
}
