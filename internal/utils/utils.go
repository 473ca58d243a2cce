package utils

import (
	"github.com/dlclark/regexp2"
	"strings"
)

var (
	numberMatcher       = regexp2.MustCompile(`^\s*[+-]?([0-9]+(\.[0-9]*)?|\.[0-9]+)([eE][+-]?[0-9]+)?\s*$`, 0)
	remoteSourceMatcher = regexp2.MustCompile(`^https?://[^\s/]+(/\S*)?$`, regexp2.IgnoreCase)
	whitespaceMatcher   = regexp2.MustCompile(`\s+`, 0)
)

// MatchNumber reports whether s is a plain ASCII decimal literal, optionally
// signed and in exponent notation. Hex, digit separators, "inf" and "nan" are
// rejected.
func MatchNumber(s string) bool {
	match, _ := numberMatcher.MatchString(s)

	return match
}

// IsRemoteSource reports whether a catalog source points at an http(s) URL.
func IsRemoteSource(source string) bool {
	match, _ := remoteSourceMatcher.MatchString(source)

	return match
}

// NormalizeColumn trims a CSV header cell, drops a UTF-8 byte order mark and
// collapses inner runs of whitespace to a single space.
func NormalizeColumn(name string) string {
	name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
	collapsed, err := whitespaceMatcher.Replace(name, " ", -1, -1)
	if err != nil {
		return name
	}
	return collapsed
}
