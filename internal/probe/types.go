package probe

import "context"

// FetchResult holds one response. Body is empty when nothing was obtained;
// StatusCode is 0 for transport errors.
type FetchResult struct {
	Body       string
	StatusCode int
	LatencyMS  float64
	Message    string
	Truncated  bool // body was cut at the fetcher's size limit
}

// Empty reports whether no response data was obtained.
func (r FetchResult) Empty() bool { return r.Body == "" }

// Fetcher retrieves the body of an endpoint. Transport concerns (TLS,
// headers, retries, timeouts) live entirely behind it.
type Fetcher interface {
	Fetch(ctx context.Context, target string) FetchResult
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, target string) FetchResult

func (f FetcherFunc) Fetch(ctx context.Context, target string) FetchResult {
	return f(ctx, target)
}
