// Support case HTTP handlers.
//
//   - GET  /cases                      (query, ETag)
//   - POST /cases                      (open, Idempotency-Key supported)
//   - GET  /cases/{id}                 (id or case number)
//   - POST /cases/{id}/status          (workflow transition)
//   - POST /cases/{id}/assign
//   - GET  /cases/{id}/messages, POST /cases/{id}/messages
//   - GET  /cases/{id}/attachments, POST /cases/{id}/attachments
//   - GET  /support/articles           (help-center suggestions)
package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-marketplace-backend/internal/domain"
	"github.com/tbourn/go-marketplace-backend/internal/services"
	"github.com/tbourn/go-marketplace-backend/internal/utils"
)

var caseParams = listParams{equals: []string{"status", "type", "priority", "assigned_to"}}

const (
	defaultSuggestions = 3
	maxSuggestions     = 10
)

// CreateCaseRequest is the JSON payload for opening a case.
type CreateCaseRequest struct {
	Title       string `json:"title" binding:"required" example:"Mug arrived cracked"`
	Description string `json:"description" example:"Order ORD-10293 arrived with a cracked handle."`
	Type        string `json:"type" example:"Quality"`
	Priority    string `json:"priority" example:"High"`
	LinkedTo    string `json:"linked_to,omitempty" example:"ORD-10293"`
	AssignedTo  string `json:"assigned_to,omitempty"`
}

// TransitionRequest moves a case through the workflow.
type TransitionRequest struct {
	Status string `json:"status" binding:"required" example:"In Progress"`
}

// AssignRequest sets or clears the assignee.
type AssignRequest struct {
	AssignedTo string `json:"assigned_to" example:"agent-4"`
}

// CaseMessageRequest appends to a case thread.
type CaseMessageRequest struct {
	Message  string `json:"message" example:"We have shipped a replacement."`
	Internal bool   `json:"internal"`
}

// AttachmentRequest records attachment metadata. File bytes are not stored.
type AttachmentRequest struct {
	Name      string `json:"name" binding:"required" example:"photo.jpg"`
	Type      string `json:"type" example:"image/jpeg"`
	SizeBytes int64  `json:"size_bytes" example:"48213"`
}

// ListCases godoc
// @ID          listCases
// @Summary     Query support cases
// @Description Default order is priority, newest first within a priority. Supports weak ETag via If-None-Match.
// @Tags        Cases
// @Produce     json
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"
// @Param       q              query   string  false "Search title, case number, description or linked order"
// @Param       status         query   string  false "Case status or All"
// @Param       type           query   string  false "Case type or All"
// @Param       priority       query   string  false "Low, Medium, High, Urgent or All"
// @Param       assigned_to    query   string  false "Assignee"
// @Param       days           query   int     false "Opened in the last N days"  minimum(1)
// @Param       sort           query   string  false "priority, newest, recent or a field"
// @Param       page           query   int     false "Page number"     minimum(1) default(1)
// @Param       page_size      query   int     false "Items per page"  minimum(1) maximum(100) default(20)
// @Success     200  {object}  handlers.CasePage
// @Header      200  {string}  ETag  "Weak ETag for the case list"
// @Success     304  {string}  string "Not Modified"
// @Failure     400  {object}  handlers.ErrorResponse "Invalid query"
// @Router      /cases [get]
func (h *Handlers) ListCases(c *gin.Context) {
	if notModified(c, "cases", h.cases.Stats) {
		return
	}
	page, err := h.cases.List(c.Request.Context(), listRequest(c, caseParams))
	if err != nil {
		failErr(c, err, ErrCodeListFailed)
		return
	}
	ok(c, http.StatusOK, page)
}

// CreateCase godoc
// @ID          createCase
// @Summary     Open a support case
// @Description New cases are always Open and get the next case number.
// @Description A repeated Idempotency-Key returns the case created the first time.
// @Tags        Cases
// @Accept      json
// @Produce     json
// @Param       X-User-ID        header  string  false "User ID (demo header)"
// @Param       Idempotency-Key  header  string  false "Safe retry key"
// @Param       body             body    handlers.CreateCaseRequest  true  "New case"
// @Success     201  {object}  domain.SupportCase
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     422  {object}  handlers.ErrorResponse "Validation failed"
// @Router      /cases [post]
func (h *Handlers) CreateCase(c *gin.Context) {
	if h.replay(c, ScopeCases, func(ctx context.Context, id string) (any, error) {
		return h.cases.Get(ctx, id)
	}) {
		return
	}

	var req CreateCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "title required")
		return
	}
	sc, err := h.cases.Create(c.Request.Context(), userID(c), services.NewCase{
		Title:       req.Title,
		Description: req.Description,
		Type:        domain.CaseType(strings.TrimSpace(req.Type)),
		Priority:    domain.Priority(strings.TrimSpace(req.Priority)),
		LinkedTo:    req.LinkedTo,
		AssignedTo:  req.AssignedTo,
	})
	if err != nil {
		failErr(c, err, ErrCodeCreateFailed)
		return
	}
	h.remember(c, ScopeCases, sc.ID, http.StatusCreated)
	ok(c, http.StatusCreated, sc)
}

// GetCase godoc
// @ID          getCase
// @Summary     Get a support case
// @Tags        Cases
// @Produce     json
// @Param       id  path  string  true  "Case id or case number"  example(CASE-00001)
// @Success     200  {object}  domain.SupportCase
// @Failure     404  {object}  handlers.ErrorResponse "Not found"
// @Router      /cases/{id} [get]
func (h *Handlers) GetCase(c *gin.Context) {
	sc, err := h.cases.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		failErr(c, err, ErrCodeInternal)
		return
	}
	ok(c, http.StatusOK, sc)
}

// TransitionCase godoc
// @ID          transitionCase
// @Summary     Change case status
// @Description Only workflow edges are accepted; the current status is a no-op.
// @Tags        Cases
// @Accept      json
// @Produce     json
// @Param       id    path  string  true  "Case id or case number"
// @Param       body  body  handlers.TransitionRequest  true  "Target status"
// @Success     200  {object}  domain.SupportCase
// @Failure     400  {object}  handlers.ErrorResponse "Unknown status"
// @Failure     404  {object}  handlers.ErrorResponse "Not found"
// @Failure     409  {object}  handlers.ErrorResponse "Transition not allowed"
// @Router      /cases/{id}/status [post]
func (h *Handlers) TransitionCase(c *gin.Context) {
	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "status required")
		return
	}
	next, err := domain.ParseCaseStatus(req.Status)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}
	sc, err := h.cases.Transition(c.Request.Context(), c.Param("id"), next)
	if err != nil {
		failErr(c, err, ErrCodeUpdateFailed)
		return
	}
	ok(c, http.StatusOK, sc)
}

// AssignCase godoc
// @ID          assignCase
// @Summary     Assign a case
// @Description An empty assignee unassigns the case.
// @Tags        Cases
// @Accept      json
// @Produce     json
// @Param       id    path  string  true  "Case id or case number"
// @Param       body  body  handlers.AssignRequest  true  "Assignee"
// @Success     200  {object}  domain.SupportCase
// @Failure     404  {object}  handlers.ErrorResponse "Not found"
// @Router      /cases/{id}/assign [post]
func (h *Handlers) AssignCase(c *gin.Context) {
	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	sc, err := h.cases.Assign(c.Request.Context(), c.Param("id"), req.AssignedTo)
	if err != nil {
		failErr(c, err, ErrCodeUpdateFailed)
		return
	}
	ok(c, http.StatusOK, sc)
}

// ListCaseMessages godoc
// @ID          listCaseMessages
// @Summary     Case thread
// @Tags        Cases
// @Produce     json
// @Param       id  path  string  true  "Case id or case number"
// @Success     200  {array}   domain.CaseMessage
// @Failure     404  {object}  handlers.ErrorResponse "Not found"
// @Router      /cases/{id}/messages [get]
func (h *Handlers) ListCaseMessages(c *gin.Context) {
	msgs, err := h.cases.Messages(c.Request.Context(), c.Param("id"))
	if err != nil {
		failErr(c, err, ErrCodeListFailed)
		return
	}
	ok(c, http.StatusOK, msgs)
}

// AddCaseMessage godoc
// @ID          addCaseMessage
// @Summary     Reply on a case
// @Tags        Cases
// @Accept      json
// @Produce     json
// @Param       X-User-ID  header  string  false "User ID (demo header)"
// @Param       id         path    string  true  "Case id or case number"
// @Param       body       body    handlers.CaseMessageRequest  true  "Message"
// @Success     201  {object}  domain.CaseMessage
// @Failure     404  {object}  handlers.ErrorResponse "Not found"
// @Failure     422  {object}  handlers.ErrorResponse "Empty or too long"
// @Router      /cases/{id}/messages [post]
func (h *Handlers) AddCaseMessage(c *gin.Context) {
	var req CaseMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	m, err := h.cases.AddMessage(c.Request.Context(), c.Param("id"), userID(c), req.Message, req.Internal)
	if err != nil {
		failErr(c, err, ErrCodeCreateFailed)
		return
	}
	ok(c, http.StatusCreated, m)
}

// ListCaseAttachments godoc
// @ID          listCaseAttachments
// @Summary     Case attachments
// @Tags        Cases
// @Produce     json
// @Param       id  path  string  true  "Case id or case number"
// @Success     200  {array}   domain.CaseAttachment
// @Failure     404  {object}  handlers.ErrorResponse "Not found"
// @Router      /cases/{id}/attachments [get]
func (h *Handlers) ListCaseAttachments(c *gin.Context) {
	atts, err := h.cases.Attachments(c.Request.Context(), c.Param("id"))
	if err != nil {
		failErr(c, err, ErrCodeListFailed)
		return
	}
	ok(c, http.StatusOK, atts)
}

// AddCaseAttachment godoc
// @ID          addCaseAttachment
// @Summary     Attach a file to a case
// @Tags        Cases
// @Accept      json
// @Produce     json
// @Param       id    path  string  true  "Case id or case number"
// @Param       body  body  handlers.AttachmentRequest  true  "Attachment metadata"
// @Success     201  {object}  domain.CaseAttachment
// @Failure     404  {object}  handlers.ErrorResponse "Not found"
// @Failure     422  {object}  handlers.ErrorResponse "Validation failed"
// @Router      /cases/{id}/attachments [post]
func (h *Handlers) AddCaseAttachment(c *gin.Context) {
	var req AttachmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "name required")
		return
	}
	a, err := h.cases.AddAttachment(c.Request.Context(), c.Param("id"), req.Name, req.Type, req.SizeBytes)
	if err != nil {
		failErr(c, err, ErrCodeCreateFailed)
		return
	}
	ok(c, http.StatusCreated, a)
}

// SuggestArticles godoc
// @ID          suggestArticles
// @Summary     Help-center suggestions
// @Description Best matching help articles for a draft case title or question.
// @Tags        Support
// @Produce     json
// @Param       q  query  string  true   "Question or case title"
// @Param       k  query  int     false  "Max results"  minimum(1) maximum(10) default(3)
// @Success     200  {array}  search.Result
// @Router      /support/articles [get]
func (h *Handlers) SuggestArticles(c *gin.Context) {
	k := utils.AtoiDefault(c.Query("k"), defaultSuggestions)
	if k < 1 {
		k = 1
	}
	if k > maxSuggestions {
		k = maxSuggestions
	}
	ok(c, http.StatusOK, h.cases.SuggestArticles(c.Request.Context(), c.Query("q"), k))
}
