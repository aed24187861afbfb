// Payout HTTP handlers.
//
//   - GET /payouts                   (query)
//   - GET /payouts/method            (current method for a role)
//   - PUT /payouts/method/designer
//   - PUT /payouts/method/seller
//   - GET /payouts/next              (next scheduled payout)
//
// Method updates answer with services.Result. A form that fails validation
// is a 422 carrying that Result, so the dashboard shows the same message
// either way.
package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-marketplace-backend/internal/services"
)

var payoutParams = listParams{equals: []string{"status", "method"}}

// NextPayoutResponse is the body of GET /payouts/next.
type NextPayoutResponse struct {
	NextPayoutAt time.Time `json:"next_payout_at" example:"2025-04-01T09:00:00Z"`
}

// ListPayouts godoc
// @ID          listPayouts
// @Summary     Query payout transactions
// @Tags        Payouts
// @Produce     json
// @Param       q          query  string  false "Search id, reference or method"
// @Param       status     query  string  false "Pending, Processing, Completed, Failed or All"
// @Param       days       query  int     false "Only the last N days"  minimum(1)
// @Param       sort       query  string  false "newest, oldest, amount_desc, amount_asc"
// @Param       page       query  int     false "Page number"     minimum(1) default(1)
// @Param       page_size  query  int     false "Items per page"  minimum(1) maximum(100) default(20)
// @Success     200  {object}  handlers.PayoutPage
// @Failure     400  {object}  handlers.ErrorResponse "Invalid query"
// @Router      /payouts [get]
func (h *Handlers) ListPayouts(c *gin.Context) {
	page, err := h.payouts.ListTransactions(c.Request.Context(), listRequest(c, payoutParams))
	if err != nil {
		failErr(c, err, ErrCodeListFailed)
		return
	}
	ok(c, http.StatusOK, page)
}

// GetPayoutMethod godoc
// @ID          getPayoutMethod
// @Summary     Current payout method
// @Description Designers without a saved method get the account default; sellers get 404.
// @Tags        Payouts
// @Produce     json
// @Param       X-User-ID  header  string  false "User ID (demo header)"
// @Param       role       query   string  false "designer or seller"  default(designer)
// @Success     200  {object}  domain.PayoutMethod
// @Failure     400  {object}  handlers.ErrorResponse "Unknown role"
// @Failure     404  {object}  handlers.ErrorResponse "No method saved"
// @Router      /payouts/method [get]
func (h *Handlers) GetPayoutMethod(c *gin.Context) {
	role := strings.ToLower(strings.TrimSpace(c.DefaultQuery("role", services.RoleDesigner)))
	if role != services.RoleDesigner && role != services.RoleSeller {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "role must be designer or seller")
		return
	}
	m, err := h.payouts.GetMethod(c.Request.Context(), userID(c), role)
	if err != nil {
		failErr(c, err, ErrCodeInternal)
		return
	}
	ok(c, http.StatusOK, m)
}

// UpdateDesignerMethod godoc
// @ID          updateDesignerMethod
// @Summary     Update the designer payout method
// @Tags        Payouts
// @Accept      json
// @Produce     json
// @Param       X-User-ID  header  string  false "User ID (demo header)"
// @Param       body       body    services.DesignerMethodInput  true  "Designer payout form"
// @Success     200  {object}  services.Result
// @Failure     422  {object}  services.Result          "Missing fields"
// @Failure     503  {object}  handlers.ErrorResponse  "Simulated backend failure"
// @Router      /payouts/method/designer [put]
func (h *Handlers) UpdateDesignerMethod(c *gin.Context) {
	var in services.DesignerMethodInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	res, err := h.payouts.UpdateDesignerMethod(c.Request.Context(), userID(c), in)
	writeResult(c, res, err)
}

// UpdateSellerMethod godoc
// @ID          updateSellerMethod
// @Summary     Update the seller payout method
// @Tags        Payouts
// @Accept      json
// @Produce     json
// @Param       X-User-ID  header  string  false "User ID (demo header)"
// @Param       body       body    services.SellerMethodInput  true  "Seller payout form"
// @Success     200  {object}  services.Result
// @Failure     422  {object}  services.Result          "Missing fields"
// @Failure     503  {object}  handlers.ErrorResponse  "Simulated backend failure"
// @Router      /payouts/method/seller [put]
func (h *Handlers) UpdateSellerMethod(c *gin.Context) {
	var in services.SellerMethodInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	res, err := h.payouts.UpdateSellerMethod(c.Request.Context(), userID(c), in)
	writeResult(c, res, err)
}

func writeResult(c *gin.Context, res services.Result, err error) {
	switch {
	case err != nil:
		failErr(c, err, ErrCodeUpdateFailed)
	case !res.Success:
		ok(c, http.StatusUnprocessableEntity, res)
	default:
		ok(c, http.StatusOK, res)
	}
}

// NextPayout godoc
// @ID          nextPayout
// @Summary     Next scheduled payout
// @Tags        Payouts
// @Produce     json
// @Success     200  {object}  handlers.NextPayoutResponse
// @Failure     500  {object}  handlers.ErrorResponse "Bad schedule"
// @Router      /payouts/next [get]
func (h *Handlers) NextPayout(c *gin.Context) {
	next, err := h.payouts.NextPayout(h.now())
	if err != nil {
		failErr(c, err, ErrCodeInternal)
		return
	}
	ok(c, http.StatusOK, NextPayoutResponse{NextPayoutAt: next})
}
