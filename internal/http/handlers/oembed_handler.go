// oEmbed proxy handler.
//
// GET /api/oembed resolves an embed snippet for a recognized social-media
// status URL on behalf of the page, keeping the upstream endpoint and any
// future credentials server-side. Unlike the best-effort enrichment on the
// write path, this endpoint surfaces upstream failures so the page can fall
// back to a plain link.
package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/linkboard/go-linkboard-backend/internal/embed"
)

// EmbedResolver resolves a full oEmbed document for a recognized status URL.
//
// Implementations must honor the provided context for cancellation and
// timeouts.
type EmbedResolver interface {
	Resolve(ctx context.Context, target string) (*embed.Response, error)
}

// OEmbedHandlers exposes the oEmbed proxy endpoint.
type OEmbedHandlers struct {
	resolver EmbedResolver
}

// NewOEmbedHandlers constructs OEmbedHandlers bound to the given resolver.
func NewOEmbedHandlers(resolver EmbedResolver) *OEmbedHandlers {
	return &OEmbedHandlers{resolver: resolver}
}

// Resolve godoc
// @ID          resolveOEmbed
// @Summary     Resolve an embed snippet
// @Description Proxies the oEmbed lookup for a recognized status URL.
// @Tags        Embeds
// @Produce     json
//
// @Param       url  query  string  true  "Status URL to resolve"  example(https://x.com/user/status/1)
//
// @Success     200  {object}  embed.Response
// @Failure     400  {object}  handlers.ErrorResponse  "Missing or unrecognized URL"
// @Failure     502  {object}  handlers.ErrorResponse  "Upstream lookup failed"
// @Router      /api/oembed [get]
func (h *OEmbedHandlers) Resolve(c *gin.Context) {
	target := strings.TrimSpace(c.Query("url"))
	if target == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "url query parameter required")
		return
	}
	if !embed.MatchStatusURL(target) {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "url is not an embeddable status URL")
		return
	}

	resp, err := h.resolver.Resolve(c.Request.Context(), target)
	if err != nil {
		fail(c, http.StatusBadGateway, ErrCodeEmbedFailed, "embed lookup failed")
		return
	}
	ok(c, http.StatusOK, resp)
}
