package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	DefaultMaxBody = 4 << 20
	userAgent      = "endpointwatch/1.0"
)

type HTTPFetcher struct {
	Client  *http.Client
	MaxBody int64
}

func NewHTTPFetcher(timeout time.Duration, maxBody int64) *HTTPFetcher {
	if maxBody <= 0 {
		maxBody = DefaultMaxBody
	}
	return &HTTPFetcher{
		Client:  &http.Client{Timeout: timeout},
		MaxBody: maxBody,
	}
}

// Fetch issues a GET and reads at most MaxBody bytes. A longer body is cut
// and flagged Truncated, so content rules see only its head. Non-2xx
// responses still return their body; status is informational.
func (h *HTTPFetcher) Fetch(ctx context.Context, target string) FetchResult {
	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return FetchResult{Message: err.Error()}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json, text/html;q=0.9, */*;q=0.8")

	resp, err := h.Client.Do(req)
	if err != nil {
		return FetchResult{Message: err.Error(), LatencyMS: since(start)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, h.MaxBody+1))
	out := FetchResult{
		StatusCode: resp.StatusCode,
		LatencyMS:  since(start),
		Message:    resp.Status,
	}
	if int64(len(body)) > h.MaxBody {
		body = body[:h.MaxBody]
		out.Truncated = true
		out.Message += fmt.Sprintf(" (body truncated at %d bytes)", h.MaxBody)
	}
	out.Body = string(body)
	if err != nil {
		out.Body = ""
		out.Message = err.Error()
	}
	return out
}

func since(start time.Time) float64 {
	return time.Since(start).Seconds() * 1000 // ms
}
