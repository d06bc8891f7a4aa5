// Server-rendered page handlers.
//
// This file implements the guest-facing HTML surface:
//   - GET  /         (render the submission form and the entry list)
//   - POST /entries  (handle a form submission)
//
// A successful submission redirects back to the index with ?submitted=1 so a
// refresh never re-posts the form. A failed submission re-renders the page
// with the error message and the visitor's input preserved.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/linkboard/go-linkboard-backend/internal/domain"
	"github.com/linkboard/go-linkboard-backend/internal/validate"
)

// PageHandlers renders the HTML index and handles form submissions.
type PageHandlers struct {
	svc EntryService
}

// NewPageHandlers constructs PageHandlers bound to the given service.
func NewPageHandlers(svc EntryService) *PageHandlers {
	return &PageHandlers{svc: svc}
}

// FormValues carries the raw form fields back into the template so a failed
// submission keeps what the visitor typed.
type FormValues struct {
	URL      string
	Note     string
	Context  string
	SlideURL string
	Tags     string
}

// IndexData is the template payload for the index page.
type IndexData struct {
	// Entries is the (possibly filtered) newest-first entry list.
	Entries []domain.Entry
	// Total is the unfiltered grand total of stored entries.
	Total int64
	// Query echoes the active search term into the search box.
	Query string
	// Submitted is true right after a successful form submission.
	Submitted bool
	// Error is the validation or storage failure message, empty on success.
	Error string
	// Form holds the preserved input of a failed submission.
	Form FormValues
}

// Index renders the entry list and the submission form.
//
// Query parameters:
//   - q:         optional search term
//   - submitted: set to 1 by the post-submit redirect
func (h *PageHandlers) Index(c *gin.Context) {
	ctx := c.Request.Context()
	q := c.Query("q")

	c.HTML(http.StatusOK, "index.html", IndexData{
		Entries:   h.svc.List(ctx, q),
		Total:     h.svc.Count(ctx),
		Query:     q,
		Submitted: c.Query("submitted") == "1",
	})
}

// SubmitForm handles the POST /entries form submission.
//
// On validation failure the index is re-rendered with status 400, the error
// message, and the submitted values; on a storage failure the same happens
// with status 500. On success the handler issues a 303 redirect so the form
// cannot be re-posted by a refresh.
func (h *PageHandlers) SubmitForm(c *gin.Context) {
	form := FormValues{
		URL:      c.PostForm("url"),
		Note:     c.PostForm("note"),
		Context:  c.PostForm("context"),
		SlideURL: c.PostForm("slideUrl"),
		Tags:     c.PostForm("tags"),
	}

	sub, err := validate.Check(validate.Input{
		URL:      form.URL,
		Note:     form.Note,
		Context:  form.Context,
		SlideURL: form.SlideURL,
		TagsCSV:  form.Tags,
	})
	if err != nil {
		h.renderError(c, http.StatusBadRequest, err.Error(), form)
		return
	}

	if _, err := h.svc.Create(c.Request.Context(), sub); err != nil {
		h.renderError(c, http.StatusInternalServerError, "could not store entry", form)
		return
	}

	c.Redirect(http.StatusSeeOther, "/?submitted=1")
}

// renderError re-renders the index with the failure message and the
// visitor's input intact. The entry list stays visible underneath the form.
func (h *PageHandlers) renderError(c *gin.Context, status int, msg string, form FormValues) {
	ctx := c.Request.Context()
	c.HTML(status, "index.html", IndexData{
		Entries: h.svc.List(ctx, ""),
		Total:   h.svc.Count(ctx),
		Error:   msg,
		Form:    form,
	})
}
