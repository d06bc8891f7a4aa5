// Package search implements the substring filter applied to entry listings.
//
// The same predicate must behave identically whether it is evaluated by the
// database (as SQL LIKE clauses) or by an in-process scan over the fallback
// store, so both representations are defined here side by side: Match for the
// scan path and LikeCondition for the SQL path. The field set and case-folding rules
// are shared; fallback mode is behaviorally indistinguishable to callers.
package search

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/linkboard/go-linkboard-backend/internal/domain"
)

// MaxTermLen caps the search term length (in runes) before matching.
const MaxTermLen = 200

// folder performs Unicode case folding for the in-process match path.
// SQLite's LOWER() folds ASCII only; for ASCII terms both paths agree.
var folder = cases.Fold()

// NormalizeTerm trims the raw query, truncates it to MaxTermLen runes, and
// case-folds it. An empty result means "match everything".
func NormalizeTerm(raw string) string {
	t := strings.TrimSpace(raw)
	if runes := []rune(t); len(runes) > MaxTermLen {
		t = string(runes[:MaxTermLen])
	}
	return folder.String(t)
}

// Match reports whether the normalized term is a substring of any searchable
// field of e: url, note, context, hostname, slideUrl, or any individual tag.
// Absent optional fields match as empty strings; an empty term matches all.
func Match(term string, e domain.Entry) bool {
	if term == "" {
		return true
	}
	for _, f := range fields(e) {
		if strings.Contains(folder.String(f), term) {
			return true
		}
	}
	return false
}

// fields returns the searchable text of an entry. Tags are matched
// individually rather than as their serialized form.
func fields(e domain.Entry) []string {
	out := []string{e.URL, deref(e.Note), e.Context, e.Hostname, deref(e.SlideURL)}
	return append(out, e.Tags...)
}

// Columns lists the table columns the SQL path searches; tags are matched on
// the serialized JSON column, which is a superset of per-tag matching only in
// the JSON punctuation, never in tag text.
var Columns = []string{"url", "note", "context", "hostname", "slide_url", "tags"}

// LikeCondition builds the WHERE fragment and arguments for the normalized
// term. It returns an empty condition for an empty term.
func LikeCondition(term string) (cond string, args []any) {
	if term == "" {
		return "", nil
	}
	pattern := "%" + escapeLike(term) + "%"
	parts := make([]string, 0, len(Columns))
	for _, col := range Columns {
		parts = append(parts, "LOWER(COALESCE("+col+", '')) LIKE ? ESCAPE '\\'")
		args = append(args, pattern)
	}
	return "(" + strings.Join(parts, " OR ") + ")", args
}

// escapeLike neutralizes LIKE metacharacters in the user term so that "%"
// and "_" match literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
