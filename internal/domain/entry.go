// Package domain defines the persistence model for shared link entries.
// The types here are mapped with GORM and form the core data layer of the
// linkboard application.
package domain

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// Tag constraints enforced at validation time and assumed by the schema.
const (
	// MaxTags is the maximum number of tags an entry may carry.
	MaxTags = 5
	// MaxTagLen is the maximum length (in runes) of a single tag.
	MaxTagLen = 20
	// MaxNoteLen is the maximum length (in runes) of the note and context fields.
	MaxNoteLen = 500
)

// Entry represents a single shared URL with its annotations. Entries are
// insert-only: they are created once via form or JSON submission and are never
// updated or deleted by this service (archival is an external batch concern).
//
// Fields:
//   - ID: stable UUID primary key.
//   - URL: normalized absolute URL, required.
//   - Note: optional free-text annotation (≤500 chars). Nullable so that an
//     absent note round-trips as absent rather than as an empty string.
//   - Context: free-text description of how/where the URL was used, required.
//   - SlideURL: optional URL of an associated presentation resource.
//   - Hostname: derived from URL at write time, never caller-supplied.
//   - Tags: up to 5 short tags, first-occurrence order preserved.
//   - CreatedAt: insertion timestamp (UTC), the sole sort key (descending).
//   - TweetEmbedHTML: oEmbed fragment cached once at creation for recognized
//     social-media status URLs; never refreshed.
//   - SyncedToNotion / SyncedAt: bookkeeping for the external archival job.
//     This service only ever writes the zero values.
type Entry struct {
	ID             string     `json:"id"                       gorm:"type:text;primaryKey"`
	URL            string     `json:"url"                      gorm:"type:text;not null"`
	Note           *string    `json:"note,omitempty"           gorm:"type:text"`
	Context        string     `json:"context"                  gorm:"type:text;not null;default:''"`
	SlideURL       *string    `json:"slideUrl,omitempty"       gorm:"column:slide_url;type:text"`
	Hostname       string     `json:"hostname"                 gorm:"type:text;not null"`
	Tags           TagList    `json:"tags"                     gorm:"type:text;not null;default:'[]'"`
	CreatedAt      time.Time  `json:"createdAt"                gorm:"index:idx_entries_created_at,sort:desc"`
	TweetEmbedHTML *string    `json:"tweetEmbedHtml,omitempty" gorm:"column:tweet_embed_html;type:text"`
	SyncedToNotion bool       `json:"-"                        gorm:"column:synced_to_notion;not null;default:false"`
	SyncedAt       *time.Time `json:"-"                        gorm:"column:synced_at"`
}

// TableName returns the database table name for Entry.
func (Entry) TableName() string { return "entries" }

// TagList is an ordered list of tags stored as a JSON-encoded TEXT column.
// Decoding is defensive: malformed stored data yields an empty list rather
// than failing the read.
type TagList []string

// Value serializes the list as a JSON array for storage. A nil list is
// stored as "[]" so the column never holds NULL.
func (t TagList) Value() (driver.Value, error) {
	if t == nil {
		t = TagList{}
	}
	b, err := json.Marshal([]string(t))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan decodes the stored JSON array. Unknown source types and malformed
// JSON both decode to an empty list.
func (t *TagList) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*t = TagList{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		*t = TagList{}
		return nil
	}

	var out []string
	if err := json.Unmarshal(raw, &out); err != nil || out == nil {
		*t = TagList{}
		return nil
	}
	*t = TagList(out)
	return nil
}
