package probe

import (
	"context"
	"strings"
	"testing"
	"time"
)

// scripted fetcher returning results in order
type scripted struct {
	results []FetchResult
	i       int
}

func (f *scripted) Fetch(ctx context.Context, target string) FetchResult {
	if f.i >= len(f.results) {
		return FetchResult{Message: "no more"}
	}
	r := f.results[f.i]
	f.i++
	return r
}

func TestRetryFetcher_SucceedsAfterRetry(t *testing.T) {
	f := &scripted{results: []FetchResult{
		{Message: "connection refused"},
		{Body: "ok", StatusCode: 200},
	}}
	rf := &RetryFetcher{Inner: f, Attempts: 3, Backoff: 10 * time.Millisecond}
	out := rf.Fetch(context.Background(), "https://example.com")
	if out.Body != "ok" {
		t.Fatalf("expected body after retry, got %+v", out)
	}
	if f.i != 2 {
		t.Fatalf("want 2 attempts, got %d", f.i)
	}
}

func TestRetryFetcher_AllEmptyAnnotates(t *testing.T) {
	f := &scripted{results: []FetchResult{{Message: "fail1"}, {Message: "fail2"}}}
	rf := &RetryFetcher{Inner: f, Attempts: 2}
	out := rf.Fetch(context.Background(), "https://example.com")
	if !out.Empty() {
		t.Fatalf("expected empty result, got %+v", out)
	}
	if !strings.HasSuffix(out.Message, "(after retries)") {
		t.Fatalf("expected retry annotation, got %q", out.Message)
	}
}

func TestRetryFetcher_StopsOnCancel(t *testing.T) {
	f := &scripted{results: []FetchResult{{}, {}, {Body: "late"}}}
	rf := &RetryFetcher{Inner: f, Attempts: 3, Backoff: time.Hour}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out := rf.Fetch(ctx, "https://example.com")
	if !out.Empty() || f.i != 1 {
		t.Fatalf("expected one attempt then stop, got %+v after %d", out, f.i)
	}
}
