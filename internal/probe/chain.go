package probe

import (
	"time"

	"go.uber.org/zap"
)

// ChainConfig tunes the default fetch pipeline.
type ChainConfig struct {
	Timeout  time.Duration
	MaxBody  int64
	Attempts int
	Backoff  time.Duration
}

// NewChain builds HTTP -> retry -> DNS diagnosis.
func NewChain(cfg ChainConfig, logger *zap.Logger) Fetcher {
	var f Fetcher = NewHTTPFetcher(cfg.Timeout, cfg.MaxBody)
	if cfg.Attempts > 1 {
		f = &RetryFetcher{Inner: f, Attempts: cfg.Attempts, Backoff: cfg.Backoff}
	}
	return NewDNSFetcher(f, logger)
}
