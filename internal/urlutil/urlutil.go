// Package urlutil normalizes probe target URLs.
package urlutil

import (
	"fmt"
	"net/url"
	"strings"
)

// NormalizeTarget validates and canonicalizes a probe target URL: the
// scheme must be http or https, the host non-empty, and any trailing slash
// on a bare origin is dropped.
func NormalizeTarget(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("target URL is empty")
	}

	u, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("target URL %q is not a valid URL: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("target URL %q must use http or https", raw)
	}
	if u.Host == "" {
		return "", fmt.Errorf("target URL %q has no host", raw)
	}
	if u.Path == "/" && u.RawQuery == "" && u.Fragment == "" {
		u.Path = ""
	}
	return u.String(), nil
}

// BuildAbsolute builds an absolute URL from a base origin and a path.
// Absolute paths are joined to the origin; already-absolute URLs pass
// through unchanged.
func BuildAbsolute(base, path string) string {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if path == "" {
		return base
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if strings.HasPrefix(path, "/") {
		return base + path
	}
	return base + "/" + path
}
