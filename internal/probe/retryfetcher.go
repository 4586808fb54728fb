package probe

import (
	"context"
	"time"
)

// RetryFetcher repeats a fetch that produced no body.
type RetryFetcher struct {
	Inner    Fetcher
	Attempts int
	Backoff  time.Duration
}

func (r *RetryFetcher) Fetch(ctx context.Context, target string) FetchResult {
	attempts := r.Attempts
	if attempts < 1 {
		attempts = 1
	}
	var last FetchResult
	for i := 0; i < attempts; i++ {
		last = r.Inner.Fetch(ctx, target)
		if !last.Empty() {
			return last
		}
		if i < attempts-1 {
			select {
			case <-ctx.Done():
				last.Message = last.Message + " (retries cancelled)"
				return last
			case <-time.After(r.Backoff):
			}
		}
	}
	if attempts > 1 {
		last.Message = last.Message + " (after retries)"
	}
	return last
}
