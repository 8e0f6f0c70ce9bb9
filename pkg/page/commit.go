package page

import (
	"net/url"
	"strings"
)

// ShortCommitLength is the number of characters of a commit tag displayed in
// the footer.
const ShortCommitLength = 8

// ShortCommit returns the first ShortCommitLength characters of tag after
// surrounding whitespace is trimmed, so a tag read from a file or environment
// variable with a trailing newline renders the same as the bare hash. Shorter
// tags are returned unchanged. Truncation counts runes so multi-byte input
// never yields invalid UTF-8.
func ShortCommit(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return ""
	}
	runes := []rune(tag)
	if len(runes) <= ShortCommitLength {
		return tag
	}
	return string(runes[:ShortCommitLength])
}

// CommitLink joins base with the path-escaped short form of tag. It returns ""
// when tag is empty so callers can omit the link entirely.
func CommitLink(base, tag string) string {
	short := ShortCommit(tag)
	if short == "" {
		return ""
	}
	return base + url.PathEscape(short)
}
