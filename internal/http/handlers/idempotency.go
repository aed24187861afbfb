package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-marketplace-backend/internal/http/middleware"
)

// ScopeCases is the idempotency scope of POST /cases.
const ScopeCases = "cases"

// ScopeConversation is the idempotency scope of messages sent to one conversation.
func ScopeConversation(id string) string { return "conversation:" + id }

// IdempotencyScope resolves scopes for the create routes mounted under
// basePath. Other routes get "" and never replay.
func IdempotencyScope(basePath string) middleware.ScopeFunc {
	base := strings.TrimSuffix(basePath, "/")
	return func(c *gin.Context) string {
		if c.Request.Method != http.MethodPost {
			return ""
		}
		switch strings.TrimPrefix(c.FullPath(), base) {
		case "/cases":
			return ScopeCases
		case "/conversations/:id/messages":
			return ScopeConversation(c.Param("id"))
		}
		return ""
	}
}

// replay answers with the resource stored for the request's Idempotency-Key.
// It reports whether a response was written. A stored id that no longer
// resolves falls through to a normal create.
func (h *Handlers) replay(c *gin.Context, scope string, load func(ctx context.Context, id string) (any, error)) bool {
	key, has := middleware.GetIdempotencyKey(c)
	if !has || h.idem == nil {
		return false
	}
	ctx := c.Request.Context()
	rec, err := h.idem.GetIdempotency(ctx, userID(c), scope, key, h.now())
	if err != nil || rec == nil {
		return false
	}
	res, err := load(ctx, rec.ResourceID)
	if err != nil {
		return false
	}
	c.Header("Idempotent-Replay", "true")
	ok(c, rec.Status, res)
	return true
}

// remember records a successful create under the request's key. Failures are
// logged only; the resource already exists.
func (h *Handlers) remember(c *gin.Context, scope, resourceID string, status int) {
	key, has := middleware.GetIdempotencyKey(c)
	if !has || h.idem == nil {
		return
	}
	if _, err := h.idem.CreateIdempotency(c.Request.Context(), userID(c), scope, key, resourceID, status, h.idemTTL); err != nil {
		middleware.LoggerFrom(c).Warn().Err(err).Str("scope", scope).Msg("idempotency record not stored")
	}
}
