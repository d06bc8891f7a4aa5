// Package services – EntryService
//
// This file implements the EntryService, the sole gateway between HTTP
// handlers and entry storage. It orchestrates the write path (re-normalize
// the URL, derive the hostname, assign identity and timestamp, best-effort
// embed enrichment, durable write) and wraps the durable store in a
// try-primary / delegate-to-fallback resilience layer: when the database is
// unreachable or a statement fails, writes land in a bounded in-process list
// and reads scan it with the same search semantics. Callers always observe
// success once validation has passed — durability degrades silently to
// process-lifetime-only. This availability-over-durability trade-off is
// deliberate for a low-stakes guest bookmarking service.
package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/linkboard/go-linkboard-backend/internal/domain"
	"github.com/linkboard/go-linkboard-backend/internal/repo"
	"github.com/linkboard/go-linkboard-backend/internal/search"
	"github.com/linkboard/go-linkboard-backend/internal/store"
	"github.com/linkboard/go-linkboard-backend/internal/urlx"
	"github.com/linkboard/go-linkboard-backend/internal/validate"
)

// EmbedFetcher resolves a best-effort embed snippet for recognized URLs.
// Implementations must collapse every failure to ("", false).
type EmbedFetcher interface {
	Fetch(ctx context.Context, url string) (string, bool)
}

// EntryService implements the use-cases around link entries.
type EntryService struct {
	// DB is the durable store handle. All primary reads and writes go
	// through it.
	DB *gorm.DB
	// Fallback is the bounded in-process list used when DB operations fail.
	Fallback *store.Memory
	// Embeds resolves oEmbed snippets; may be nil to disable enrichment.
	Embeds EmbedFetcher
	// Now is the clock used for CreatedAt; defaults to time.Now when nil.
	Now func() time.Time
}

// NewEntryService constructs an EntryService over the given database,
// fallback store, and embed fetcher.
func NewEntryService(db *gorm.DB, fallback *store.Memory, embeds EmbedFetcher) *EntryService {
	return &EntryService{DB: db, Fallback: fallback, Embeds: embeds}
}

// Create persists a validated submission and returns the fully populated
// entry.
//
// Semantics:
//   - The URL is re-normalized here as the single source of truth for the
//     hostname column, even though the Validator already screened it; a
//     failure at this point is ErrNormalizeURL (internal, not a user error).
//   - ID is a fresh UUID; CreatedAt is assigned once, in UTC.
//   - Embed enrichment is best-effort and never fails the write.
//   - A durable-store failure falls back to the in-process list; the caller
//     still receives the entry and a nil error.
func (s *EntryService) Create(ctx context.Context, sub *validate.Submission) (*domain.Entry, error) {
	canonical, hostname, err := urlx.Normalize(sub.URL)
	if err != nil {
		return nil, ErrNormalizeURL
	}

	var slide *string
	if sub.SlideURL != nil {
		if c, _, err := urlx.Normalize(*sub.SlideURL); err == nil {
			slide = &c
		} else {
			return nil, ErrNormalizeURL
		}
	}

	e := &domain.Entry{
		ID:        uuid.NewString(),
		URL:       canonical,
		Note:      sub.Note,
		Context:   sub.Context,
		SlideURL:  slide,
		Hostname:  hostname,
		Tags:      domain.TagList(sub.Tags),
		CreatedAt: s.now(),
	}

	if s.Embeds != nil {
		if html, ok := s.Embeds.Fetch(ctx, canonical); ok {
			e.TweetEmbedHTML = &html
		}
	}

	if err := repo.InsertEntry(ctx, s.DB, e); err != nil {
		log.Warn().Err(err).Str("entry_id", e.ID).
			Msg("durable write failed; keeping entry in process-local fallback")
		s.Fallback.Insert(*e)
	}
	return e, nil
}

// List returns up to 100 entries matching the raw query text, newest first.
// The term is trimmed, capped, and case-folded before matching. A durable
// read failure is absorbed by scanning the fallback list with identical
// semantics; callers never see a read error, only a possibly narrower
// result set.
func (s *EntryService) List(ctx context.Context, rawQuery string) []domain.Entry {
	term := search.NormalizeTerm(rawQuery)

	entries, err := repo.ListEntries(ctx, s.DB, term, repo.ListLimit)
	if err != nil {
		log.Warn().Err(err).Msg("durable read failed; serving process-local fallback")
		return s.Fallback.Query(term, repo.ListLimit)
	}
	return entries
}

// Count returns the grand total of stored entries, independent of any search
// filter, falling back to the in-process list length when the durable count
// fails.
func (s *EntryService) Count(ctx context.Context) int64 {
	total, err := repo.CountEntries(ctx, s.DB)
	if err != nil {
		log.Warn().Err(err).Msg("durable count failed; serving process-local fallback")
		return s.Fallback.Count()
	}
	return total
}

func (s *EntryService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
