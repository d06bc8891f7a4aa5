// Package validate checks and normalizes visitor-submitted entry fields.
//
// Validation is pure and deterministic: given the raw fields it either
// produces a normalized Submission or a single human-readable message for the
// first violated rule. Rules run in a fixed order (url, note, context,
// slideUrl, tags) and every failure is terminal for the request; there is no
// partial success.
package validate

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/linkboard/go-linkboard-backend/internal/domain"
	"github.com/linkboard/go-linkboard-backend/internal/urlx"
)

// Error is a terminal validation failure carrying the user-facing message.
type Error struct{ Message string }

// Error returns the user-facing message.
func (e *Error) Error() string { return e.Message }

// Submission is the normalized result of a successful validation pass.
// Optional fields are nil when absent so downstream layers can distinguish
// "not provided" from "provided empty".
type Submission struct {
	URL      string
	Note     *string
	Context  string
	SlideURL *string
	Tags     []string
}

// Input carries the raw, untyped fields of a form or JSON submission.
// Tags accepts either a pre-split list or a single comma-separated string;
// when both are set the pre-split list wins.
type Input struct {
	URL      string
	Note     string
	Context  string
	SlideURL string
	Tags     []string
	TagsCSV  string
}

// Check validates in in rule order and returns the normalized submission, or
// a *Error describing the first violated rule.
func Check(in Input) (*Submission, error) {
	rawURL := strings.TrimSpace(in.URL)
	if rawURL == "" {
		return nil, &Error{Message: "enter a URL"}
	}
	if !urlx.Valid(rawURL) {
		return nil, &Error{Message: "enter URL in correct format"}
	}

	var note *string
	if n := strings.TrimSpace(in.Note); n != "" {
		if utf8.RuneCountInString(n) > domain.MaxNoteLen {
			return nil, &Error{Message: fmt.Sprintf("note must be %d characters or less", domain.MaxNoteLen)}
		}
		note = &n
	}

	ctx := strings.TrimSpace(in.Context)
	if ctx == "" {
		return nil, &Error{Message: "enter the context"}
	}
	if utf8.RuneCountInString(ctx) > domain.MaxNoteLen {
		return nil, &Error{Message: fmt.Sprintf("context must be %d characters or less", domain.MaxNoteLen)}
	}

	var slide *string
	if s := strings.TrimSpace(in.SlideURL); s != "" {
		if !urlx.Valid(s) {
			return nil, &Error{Message: "enter slide URL in correct format"}
		}
		slide = &s
	}

	tags := NormalizeTags(in.Tags, in.TagsCSV)
	for _, tag := range tags {
		if utf8.RuneCountInString(tag) > domain.MaxTagLen {
			return nil, &Error{Message: fmt.Sprintf("each tag must be ≤%d characters", domain.MaxTagLen)}
		}
	}

	return &Submission{
		URL:      rawURL,
		Note:     note,
		Context:  ctx,
		SlideURL: slide,
		Tags:     tags,
	}, nil
}

// NormalizeTags derives the tag list from either a pre-split slice or a
// comma-separated string: split on commas, trim each piece, drop empties, and
// keep only the first domain.MaxTags survivors. First-occurrence order is
// preserved and duplicates are kept.
func NormalizeTags(pre []string, csv string) []string {
	parts := pre
	if len(parts) == 0 && csv != "" {
		parts = strings.Split(csv, ",")
	}

	out := make([]string, 0, domain.MaxTags)
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t == "" {
			continue
		}
		out = append(out, t)
		if len(out) == domain.MaxTags {
			break
		}
	}
	return out
}
