// Package embed enriches recognized social-media status URLs with a cached
// HTML snippet fetched from an external oEmbed endpoint.
//
// Enrichment is strictly best-effort: the write path calls Fetch, which
// collapses every failure (no match, network error, non-2xx, bad JSON) to
// "no embed" so that entry creation never blocks on or fails because of the
// external call. The raw Resolve call is exposed separately for the oEmbed
// proxy endpoint, which does surface failures.
package embed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// statusHosts is the allow-list of hosts whose status URLs are recognized.
var statusHosts = map[string]struct{}{
	"twitter.com":        {},
	"www.twitter.com":    {},
	"mobile.twitter.com": {},
	"x.com":              {},
	"www.x.com":          {},
}

// statusPath matches "/<handle>/status/<numeric-id>".
var statusPath = regexp.MustCompile(`^/[^/]+/status/\d+$`)

// MatchStatusURL reports whether raw is an http(s) URL on an allow-listed
// host with a "/<handle>/status/<id>" path. Only matching URLs trigger an
// outbound oEmbed call.
func MatchStatusURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return false
	}
	if _, ok := statusHosts[strings.ToLower(u.Host)]; !ok {
		return false
	}
	return statusPath.MatchString(u.Path)
}

// Response is the subset of the oEmbed JSON body this service consumes.
type Response struct {
	HTML         string `json:"html"`
	AuthorName   string `json:"author_name"`
	ProviderName string `json:"provider_name"`
	Type         string `json:"type"`
	Version      string `json:"version"`
}

// Fetcher issues oEmbed lookups against a fixed endpoint with a fixed
// max-width. It is safe for concurrent use.
type Fetcher struct {
	endpoint string
	maxWidth int
	client   *http.Client
}

// NewFetcher constructs a Fetcher for endpoint with the given snippet
// max-width and per-request timeout.
func NewFetcher(endpoint string, maxWidth int, timeout time.Duration) *Fetcher {
	return &Fetcher{
		endpoint: endpoint,
		maxWidth: maxWidth,
		client:   &http.Client{Timeout: timeout},
	}
}

// Resolve performs a single oEmbed lookup for a URL that has already been
// matched by MatchStatusURL. It returns an error on any network, status, or
// decoding failure.
func (f *Fetcher) Resolve(ctx context.Context, target string) (*Response, error) {
	q := url.Values{}
	q.Set("url", target)
	q.Set("maxwidth", strconv.Itoa(f.maxWidth))
	q.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build oembed request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch oembed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("oembed endpoint returned status %d", resp.StatusCode)
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode oembed response: %w", err)
	}
	return &out, nil
}

// Fetch returns the embed HTML fragment for target, or ("", false) when the
// URL does not match the status pattern or the lookup fails for any reason.
// Failures are logged and swallowed; they must never reach the write path.
func (f *Fetcher) Fetch(ctx context.Context, target string) (string, bool) {
	if !MatchStatusURL(target) {
		return "", false
	}
	resp, err := f.Resolve(ctx, target)
	if err != nil {
		log.Warn().Err(err).Str("url", target).Msg("oembed fetch failed; storing entry without embed")
		return "", false
	}
	if resp.HTML == "" {
		return "", false
	}
	return resp.HTML, true
}
