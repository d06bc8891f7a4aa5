// Entry HTTP handlers.
//
// This file exposes the JSON API for link entries:
//   - POST /api/entries   (submit a new entry)
//   - GET  /api/entries   (list entries, optionally filtered by ?q=)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses. Submissions that pass validation
// always succeed from the caller's point of view; storage degradation is an
// internal concern.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/linkboard/go-linkboard-backend/internal/domain"
	"github.com/linkboard/go-linkboard-backend/internal/validate"
)

//
// Service contracts (context-aware)
//

// EntryService defines the entry use-cases consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type EntryService interface {
	// Create persists a validated submission and returns the stored entry.
	Create(ctx context.Context, sub *validate.Submission) (*domain.Entry, error)
	// List returns entries matching the raw query text, newest first.
	List(ctx context.Context, rawQuery string) []domain.Entry
	// Count returns the grand total of stored entries.
	Count(ctx context.Context) int64
}

//
// Handler wiring
//

// EntryHandlers groups the HTTP endpoints for entry submission and listing.
type EntryHandlers struct {
	svc EntryService
}

// NewEntryHandlers constructs EntryHandlers bound to the given service.
func NewEntryHandlers(svc EntryService) *EntryHandlers {
	return &EntryHandlers{svc: svc}
}

//
// DTOs
//

// TagsField accepts tags either as a JSON array of strings or as a single
// comma-separated string, matching what the HTML form posts. Both decode to
// the raw pieces; normalization (trim, drop empties, cap) happens in
// validation.
type TagsField []string

// UnmarshalJSON decodes a string or a string array into the raw tag pieces.
func (t *TagsField) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*t = TagsField(list)
		return nil
	}
	var csv string
	if err := json.Unmarshal(data, &csv); err == nil {
		if csv == "" {
			*t = nil
			return nil
		}
		*t = TagsField(strings.Split(csv, ","))
		return nil
	}
	return errors.New("tags must be a string or an array of strings")
}

// CreateEntryRequest is the JSON payload for submitting an entry.
type CreateEntryRequest struct {
	// URL is the link being shared; required, absolute.
	URL string `json:"url" example:"https://go.dev/blog/error-handling"`
	// Note optionally annotates the link (≤500 chars).
	Note string `json:"note" example:"good overview of wrapping"`
	// Context describes where or how the link was used; required.
	Context string `json:"context" example:"error-handling reading group"`
	// SlideURL optionally points at an associated slide deck.
	SlideURL string `json:"slideUrl" example:"https://speakerdeck.com/x/errors"`
	// Tags holds up to 5 short labels, as array or comma-separated string.
	Tags TagsField `json:"tags" example:"go,errors"`
}

// ListEntriesResponse wraps the filtered entries together with the filtered
// count and the unfiltered grand total.
type ListEntriesResponse struct {
	Total   int64          `json:"total"`
	Count   int            `json:"count"`
	Entries []domain.Entry `json:"entries"`
}

//
// Handlers
//

// CreateEntry godoc
// @ID          createEntry
// @Summary     Submit a new entry
// @Description Validates and stores a shared link. Optional fields may be
// @Description omitted or empty; tags accept an array or a comma-separated string.
// @Tags        Entries
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.CreateEntryRequest  true  "Entry payload"
//
// @Success     201  {object}  domain.Entry
// @Failure     400  {object}  handlers.ErrorResponse  "Malformed body or validation failure"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /api/entries [post]
func (h *EntryHandlers) CreateEntry(c *gin.Context) {
	var req CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	sub, err := validate.Check(validate.Input{
		URL:      req.URL,
		Note:     req.Note,
		Context:  req.Context,
		SlideURL: req.SlideURL,
		Tags:     req.Tags,
	})
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeValidation, err.Error())
		return
	}

	entry, err := h.svc.Create(c.Request.Context(), sub)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not store entry")
		return
	}
	ok(c, http.StatusCreated, entry)
}

// ListEntries godoc
// @ID          listEntries
// @Summary     List entries
// @Description Returns the newest entries, optionally filtered by a
// @Description case-insensitive substring match over all text fields.
// @Tags        Entries
// @Produce     json
//
// @Param       q  query  string  false  "Search term"  example(golang)
//
// @Success     200  {object}  handlers.ListEntriesResponse
// @Router      /api/entries [get]
func (h *EntryHandlers) ListEntries(c *gin.Context) {
	ctx := c.Request.Context()

	entries := h.svc.List(ctx, c.Query("q"))
	if entries == nil {
		entries = []domain.Entry{} // serialize as [] rather than null
	}
	resp := ListEntriesResponse{
		Total:   h.svc.Count(ctx),
		Count:   len(entries),
		Entries: entries,
	}
	ok(c, http.StatusOK, resp)
}
