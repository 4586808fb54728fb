package checker

import (
	"net/url"
	"strings"
)

// ValidURL reports whether raw parses into a URL carrying both a scheme
// and an authority. Parse errors count as invalid.
func ValidURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

// sanitize strips exactly one trailing slash.
func sanitize(p string) string {
	return strings.TrimSuffix(p, "/")
}

// effectivePath resolves a child path against its parent's sanitized
// path. Children carrying their own scheme stand alone.
func effectivePath(base, p string) string {
	if base == "" || hasScheme(p) {
		return p
	}
	if p == "" {
		return base
	}
	return base + "/" + strings.TrimPrefix(p, "/")
}

func hasScheme(p string) bool {
	u, err := url.Parse(p)
	return err == nil && u.Scheme != ""
}
