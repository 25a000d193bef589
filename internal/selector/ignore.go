package selector

import (
	"path/filepath"
	"strings"
)

// separatorSentinel replaces both path separators so that ignore entries
// match regardless of the platform they were written on
const separatorSentinel = "?"

var separators = strings.NewReplacer("/", separatorSentinel, `\`, separatorSentinel)

// NormalizePath uppercases a path, drops a leading drive letter and maps
// both separator characters to a single sentinel.
func NormalizePath(path string) string {
	if hasDrive(path) {
		path = path[2:]
	}
	return separators.Replace(strings.ToUpper(path))
}

// IgnorePrefixes normalizes the configured ignore entries. Relative entries
// are resolved against root.
func IgnorePrefixes(root string, entries []string) []string {
	prefixes := make([]string, 0, len(entries))
	for _, e := range entries {
		if e == "" {
			continue
		}
		if !filepath.IsAbs(e) && !hasDrive(e) && !strings.HasPrefix(e, `\`) {
			e = filepath.Join(root, e)
		}
		prefixes = append(prefixes, NormalizePath(e))
	}
	return prefixes
}

// ignored reports whether path falls under any normalized prefix
func ignored(prefixes []string, path string) bool {
	if len(prefixes) == 0 {
		return false
	}
	p := NormalizePath(path)
	for _, prefix := range prefixes {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}

func hasDrive(path string) bool {
	if len(path) < 2 || path[1] != ':' {
		return false
	}
	c := path[0]
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
