package probe

import (
	"context"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

// DNSFetcher classifies the host's DNS state whenever the inner fetch
// comes back empty, so logs tell a dead name apart from a dead server.
type DNSFetcher struct {
	Inner  Fetcher
	Logger *zap.Logger
	Lookup func(domain string) DNSStatus
}

func NewDNSFetcher(inner Fetcher, logger *zap.Logger) *DNSFetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DNSFetcher{Inner: inner, Logger: logger, Lookup: CheckDNS}
}

func (d *DNSFetcher) Fetch(ctx context.Context, target string) FetchResult {
	out := d.Inner.Fetch(ctx, target)
	if !out.Empty() || d.Lookup == nil {
		return out
	}

	dns := d.Lookup(extractHost(target))
	d.Logger.Info("dns_check",
		zap.String("url", target),
		zap.String("domain", dns.Domain),
		zap.String("class", dns.Class),
		zap.Bool("has_a_or_aaaa", dns.HasAOrAAAA),
		zap.Strings("nameservers", dns.Nameservers),
		zap.String("cname", dns.CNAME),
		zap.String("resolver_error", dns.ResolverError),
	)
	out.Message = strings.TrimSpace(out.Message + " dns=" + dns.Class)
	return out
}

func extractHost(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return raw
	}
	return u.Hostname()
}
