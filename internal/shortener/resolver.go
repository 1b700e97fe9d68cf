package shortener

import (
	"context"
	"net"
	"regexp"
	"strings"
)

// HostResolver checks that a hostname resolves. *net.Resolver satisfies it.
type HostResolver interface {
	LookupHost(ctx context.Context, host string) ([]string, error)
}

var schemePrefix = regexp.MustCompile(`(?i)^https?://`)

// StripScheme removes a leading http:// or https:// prefix.
func StripScheme(rawURL string) string {
	return schemePrefix.ReplaceAllString(rawURL, "")
}

// HostOf returns the bare hostname of rawURL, without scheme, path, query,
// fragment or port. It returns "" when no host is present.
func HostOf(rawURL string) string {
	rest := StripScheme(strings.TrimSpace(rawURL))

	if idx := strings.IndexAny(rest, "/?#"); idx != -1 {
		rest = rest[:idx]
	}

	// userinfo@host
	if idx := strings.LastIndex(rest, "@"); idx != -1 {
		rest = rest[idx+1:]
	}

	if host, _, err := net.SplitHostPort(rest); err == nil {
		rest = host
	}

	return strings.Trim(rest, "[]")
}

// EnsureScheme prefixes http:// unless the URL already has an http(s) scheme.
func EnsureScheme(rawURL string) string {
	if schemePrefix.MatchString(rawURL) {
		return rawURL
	}

	return "http://" + rawURL
}
