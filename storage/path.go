package storage

import (
	"path"
	"strings"
)

// cleanPath normalizes p into a slash separated path without leading or
// trailing slash. The root becomes "".
func cleanPath(p string) string {
	p = path.Clean("/" + p)
	return strings.TrimPrefix(p, "/")
}

// hasPrefix checks if p lies under prefix. Both must be cleaned.
func hasPrefix(p, prefix string) bool {
	if prefix == "" || p == prefix {
		return true
	}

	return strings.HasPrefix(p, prefix+"/")
}

// relative removes prefix and its separator from p.
func relative(p, prefix string) string {
	if prefix == "" {
		return p
	}
	if p == prefix {
		return ""
	}

	return strings.TrimPrefix(p, prefix+"/")
}
