package config

import "strings"

// The settings document mixes Windows and Unix paths recorded by
// different machines, so these helpers accept both separator styles
// instead of using path/filepath.

// BaseName returns the final path component of an OS-agnostic path.
func BaseName(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	p = strings.TrimRight(p, "/")
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[i+1:]
	}
	return p
}

// IsAbs reports whether a path is absolute on any supported OS: a Unix
// root path, a UNC/backslash path, or a Windows drive-letter path.
func IsAbs(p string) bool {
	if p == "" {
		return false
	}
	if p[0] == '/' || p[0] == '\\' {
		return true
	}
	if len(p) >= 2 && p[1] == ':' && isDriveLetter(p[0]) {
		return true
	}
	return false
}

// Join appends a relative fragment to a base path, using the base's
// native separator so Windows bases stay Windows paths.
func Join(base, fragment string) string {
	sep := "/"
	if strings.Contains(base, `\`) {
		sep = `\`
	}
	base = strings.TrimRight(base, `/\`)
	return base + sep + fragment
}

func isDriveLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
