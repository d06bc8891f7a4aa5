// Package urlx canonicalizes raw URL strings submitted by visitors.
//
// Normalization is deliberately thin: trim surrounding whitespace, parse with
// the standard URL grammar, require an absolute URL, and re-serialize through
// net/url so scheme/host casing and escaping follow the parser's own rules.
// The hostname is extracted separately because the repository persists it as
// a derived column and always recomputes it from the URL, never trusting a
// caller-supplied value.
package urlx

import (
	"errors"
	"net/url"
	"strings"
)

// ErrNotAbsolute is returned when the input parses but lacks a scheme or host.
var ErrNotAbsolute = errors.New("url must be absolute")

// Normalize trims raw, parses it as an absolute URL, and returns its canonical
// string form together with the lowercased hostname (port stripped). Scheme
// and host casing is folded before re-serializing, so reparsing the canonical
// form always yields the returned hostname.
//
// It returns a parse error for syntactically invalid input and ErrNotAbsolute
// for relative references. The Validator screens these before the write path,
// but the repository calls Normalize again at insert time as the single source
// of truth for the hostname column.
func Normalize(raw string) (canonical, hostname string, err error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", "", ErrNotAbsolute
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	return u.String(), u.Hostname(), nil
}

// Valid reports whether raw normalizes to an absolute URL.
func Valid(raw string) bool {
	_, _, err := Normalize(raw)
	return err == nil
}
