// Conversation HTTP handlers.
//
//   - GET  /conversations                 (query, ETag)
//   - GET  /conversations/{id}
//   - GET  /conversations/{id}/messages
//   - POST /conversations/{id}/messages   (Idempotency-Key supported)
//   - POST /conversations/{id}/read
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

var conversationParams = listParams{
	equals:  []string{"type", "priority", "request_status"},
	toggles: []string{"unread"},
}

// SendMessageRequest is the JSON payload for sending a message.
type SendMessageRequest struct {
	Content     string   `json:"content" example:"The replacement print shipped today."`
	Attachments []string `json:"attachments,omitempty" example:"tracking.pdf"`
}

// ListConversations godoc
// @ID          listConversations
// @Summary     Query conversations
// @Description Default order is most recent message first. Supports weak ETag via If-None-Match.
// @Tags        Conversations
// @Produce     json
// @Param       If-None-Match   header  string  false "Return 304 if ETag matches"
// @Param       q               query   string  false "Search participants, last message, request id or subject"
// @Param       type            query   string  false "Request, Support, System or All"
// @Param       priority        query   string  false "Low, Medium, High, Urgent or All"
// @Param       request_status  query   string  false "Request status or All"
// @Param       unread          query   bool    false "Only conversations with unread messages"
// @Param       sort            query   string  false "recent, priority or a field"
// @Param       page            query   int     false "Page number"     minimum(1) default(1)
// @Param       page_size       query   int     false "Items per page"  minimum(1) maximum(100) default(20)
// @Success     200  {object}  handlers.ConversationPage
// @Header      200  {string}  ETag  "Weak ETag for the inbox state"
// @Success     304  {string}  string "Not Modified"
// @Failure     400  {object}  handlers.ErrorResponse "Invalid query"
// @Router      /conversations [get]
func (h *Handlers) ListConversations(c *gin.Context) {
	if notModified(c, "conversations", h.convs.Stats) {
		return
	}
	page, err := h.convs.List(c.Request.Context(), listRequest(c, conversationParams))
	if err != nil {
		failErr(c, err, ErrCodeListFailed)
		return
	}
	ok(c, http.StatusOK, page)
}

// GetConversation godoc
// @ID          getConversation
// @Summary     Get a conversation
// @Tags        Conversations
// @Produce     json
// @Param       id  path  string  true  "Conversation id"
// @Success     200  {object}  domain.Conversation
// @Failure     404  {object}  handlers.ErrorResponse "Not found"
// @Router      /conversations/{id} [get]
func (h *Handlers) GetConversation(c *gin.Context) {
	conv, err := h.convs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		failErr(c, err, ErrCodeInternal)
		return
	}
	ok(c, http.StatusOK, conv)
}

// ListConversationMessages godoc
// @ID          listConversationMessages
// @Summary     Messages of a conversation
// @Description Oldest first. An empty conversation returns an empty array.
// @Tags        Conversations
// @Produce     json
// @Param       id  path  string  true  "Conversation id"
// @Success     200  {array}   domain.Message
// @Failure     404  {object}  handlers.ErrorResponse "Not found"
// @Router      /conversations/{id}/messages [get]
func (h *Handlers) ListConversationMessages(c *gin.Context) {
	msgs, err := h.convs.Messages(c.Request.Context(), c.Param("id"))
	if err != nil {
		failErr(c, err, ErrCodeListFailed)
		return
	}
	ok(c, http.StatusOK, msgs)
}

// SendMessage godoc
// @ID          sendMessage
// @Summary     Send a message
// @Description Appends a message from the current user and updates the conversation preview.
// @Description A repeated Idempotency-Key returns the message created the first time.
// @Tags        Conversations
// @Accept      json
// @Produce     json
// @Param       X-User-ID        header  string  false "User ID (demo header)"
// @Param       Idempotency-Key  header  string  false "Safe retry key"
// @Param       id               path    string  true  "Conversation id"
// @Param       body             body    handlers.SendMessageRequest  true  "Message"
// @Success     201  {object}  domain.Message
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse "Not found"
// @Failure     422  {object}  handlers.ErrorResponse "Empty or too long"
// @Router      /conversations/{id}/messages [post]
func (h *Handlers) SendMessage(c *gin.Context) {
	convID := c.Param("id")
	scope := ScopeConversation(convID)
	if h.replay(c, scope, func(ctx context.Context, id string) (any, error) {
		return h.convs.Message(ctx, convID, id)
	}) {
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	msg, err := h.convs.SendMessage(c.Request.Context(), convID, userID(c), req.Content, req.Attachments)
	if err != nil {
		failErr(c, err, ErrCodeCreateFailed)
		return
	}
	h.remember(c, scope, msg.ID, http.StatusCreated)
	ok(c, http.StatusCreated, msg)
}

// MarkConversationRead godoc
// @ID          markConversationRead
// @Summary     Mark a conversation read
// @Description Zeroes the unread counter. Repeating the call changes nothing.
// @Tags        Conversations
// @Produce     json
// @Param       id  path  string  true  "Conversation id"
// @Success     200  {object}  domain.Conversation
// @Failure     404  {object}  handlers.ErrorResponse "Not found"
// @Router      /conversations/{id}/read [post]
func (h *Handlers) MarkConversationRead(c *gin.Context) {
	conv, err := h.convs.MarkRead(c.Request.Context(), c.Param("id"))
	if err != nil {
		failErr(c, err, ErrCodeUpdateFailed)
		return
	}
	ok(c, http.StatusOK, conv)
}
