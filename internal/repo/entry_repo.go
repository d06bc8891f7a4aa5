// Package repo implements the durable persistence layer for entries, backed
// by GORM. This file provides the repository functions for the Entry model.
//
// All functions are context-aware and accept a *gorm.DB handle. They follow
// the "thin repository" approach: no business logic, only CRUD persistence
// and query composition. Failover to the in-process fallback list is the
// responsibility of the service layer (services.EntryService), not of this
// package; DB errors are propagated raw.
//
// Functions:
//
//   - InsertEntry(ctx, db, e) -> error
//     Persists a fully populated entry as a single-row, single-statement write.
//
//   - ListEntries(ctx, db, term, limit) -> []domain.Entry, error
//     Returns entries matching the normalized search term (or all entries for
//     an empty term), ordered by creation time descending, capped at limit.
//
//   - CountEntries(ctx, db) -> (int64, error)
//     Returns the grand total of stored entries, independent of any filter.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/linkboard/go-linkboard-backend/internal/domain"
	"github.com/linkboard/go-linkboard-backend/internal/search"
)

// ListLimit is the fixed recency cutoff for listings.
const ListLimit = 100

// InsertEntry persists e. The caller (service layer) is responsible for
// having populated ID, Hostname, and CreatedAt; the repository writes the
// row exactly as given.
func InsertEntry(ctx context.Context, db *gorm.DB, e *domain.Entry) error {
	return db.WithContext(ctx).Create(e).Error
}

// ListEntries returns up to limit entries ordered by creation time
// descending. A non-empty term (already normalized via search.NormalizeTerm)
// is applied as case-insensitive LIKE clauses across url, note, context,
// hostname, slide_url, and the serialized tags column — the same field set
// the in-process scan matches against.
func ListEntries(ctx context.Context, db *gorm.DB, term string, limit int) ([]domain.Entry, error) {
	q := db.WithContext(ctx).Model(&domain.Entry{})
	if cond, args := search.LikeCondition(term); cond != "" {
		q = q.Where(cond, args...)
	}

	var out []domain.Entry
	err := q.
		Order("created_at desc").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// CountEntries returns the total number of stored entries. The count is
// always the grand total, never the filtered count.
func CountEntries(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Entry{}).
		Count(&total).Error
	return total, err
}
