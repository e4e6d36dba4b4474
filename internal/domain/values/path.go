package values

import (
	"path"
	"path/filepath"
	"strings"
)

// RelativeSlash returns target relative to root in slash-separated form.
// ok is false when target does not lie at or below root.
func RelativeSlash(root, target string) (rel string, ok bool) {
	r, err := filepath.Rel(root, target)
	if err != nil {
		return "", false
	}
	r = filepath.ToSlash(r)
	if r == ".." || strings.HasPrefix(r, "../") {
		return "", false
	}
	if r == "." {
		return "", true
	}
	return r, true
}

// HasPathPrefix reports whether p equals prefix or lies beneath it. The
// comparison works on whole segments: "/a/bc" is not under "/a/b".
func HasPathPrefix(p, prefix string) bool {
	p = filepath.ToSlash(p)
	prefix = filepath.ToSlash(prefix)

	if prefix != "/" {
		prefix = strings.TrimSuffix(prefix, "/")
	}
	if prefix == "" {
		return false
	}
	if p == prefix {
		return true
	}
	if prefix == "/" || strings.HasSuffix(prefix, ":/") {
		return strings.HasPrefix(p, prefix)
	}
	return strings.HasPrefix(p, prefix+"/")
}

// NormalizePattern trims surrounding whitespace and leading "./" segments.
// On Windows backslashes become slashes; elsewhere a backslash is a glob
// escape and is left alone.
func NormalizePattern(raw string) string {
	raw = strings.TrimSpace(raw)
	if filepath.Separator == '\\' {
		raw = strings.ReplaceAll(raw, `\`, `/`)
	}
	for strings.HasPrefix(raw, "./") {
		raw = strings.TrimLeft(strings.TrimPrefix(raw, "./"), "/")
	}
	return raw
}

// JoinPattern joins a slash pattern onto an OS directory for display.
func JoinPattern(dir, pattern string) string {
	if pattern == "" {
		return filepath.ToSlash(dir)
	}
	return path.Join(filepath.ToSlash(dir), pattern)
}
