// Royalty and product idea HTTP handlers.
//
//   - GET /royalties            (query)
//   - GET /royalties/summary    (totals by status)
//   - GET /royalties/{id}
//   - GET /ideas                (query)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-marketplace-backend/internal/utils"
)

var (
	royaltyParams = listParams{equals: []string{"status", "source", "design_id"}}
	ideaParams    = listParams{equals: []string{"category", "competition"}}
)

// ListRoyalties godoc
// @ID          listRoyalties
// @Summary     Query royalty transactions
// @Description Filters, sorts and paginates the royalty ledger.
// @Tags        Royalties
// @Produce     json
//
// @Param       q          query  string  false "Search design, design id, id or source"
// @Param       status     query  string  false "Pending, Available, Paid or All"
// @Param       source     query  string  false "Sales channel"
// @Param       days       query  int     false "Only the last N days"           minimum(1)
// @Param       sort       query  string  false "newest, oldest, amount_desc, amount_asc or a field"
// @Param       order      query  string  false "asc or desc for field sorts"
// @Param       page       query  int     false "Page number"                    minimum(1) default(1)
// @Param       page_size  query  int     false "Items per page"                 minimum(1) maximum(100) default(20)
//
// @Success     200  {object}  handlers.RoyaltyPage
// @Failure     400  {object}  handlers.ErrorResponse "Invalid query"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /royalties [get]
func (h *Handlers) ListRoyalties(c *gin.Context) {
	page, err := h.royalties.List(c.Request.Context(), listRequest(c, royaltyParams))
	if err != nil {
		failErr(c, err, ErrCodeListFailed)
		return
	}
	ok(c, http.StatusOK, page)
}

// RoyaltySummary godoc
// @ID          royaltySummary
// @Summary     Royalty totals
// @Description Sums amounts per status inside a day window (0 means all time).
// @Tags        Royalties
// @Produce     json
// @Param       days  query  int  false "Window in days"  minimum(0) default(30)
// @Success     200  {object}  services.Summary
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /royalties/summary [get]
func (h *Handlers) RoyaltySummary(c *gin.Context) {
	days := utils.AtoiDefault(c.Query("days"), 30)
	if days < 0 {
		days = 0
	}
	sum, err := h.royalties.Summary(c.Request.Context(), days)
	if err != nil {
		failErr(c, err, ErrCodeInternal)
		return
	}
	ok(c, http.StatusOK, sum)
}

// GetRoyalty godoc
// @ID          getRoyalty
// @Summary     Get a royalty transaction
// @Tags        Royalties
// @Produce     json
// @Param       id  path  string  true  "Transaction id"  example(RT-0001)
// @Success     200  {object}  domain.RoyaltyTransaction
// @Failure     404  {object}  handlers.ErrorResponse "Not found"
// @Router      /royalties/{id} [get]
func (h *Handlers) GetRoyalty(c *gin.Context) {
	tx, err := h.royalties.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		failErr(c, err, ErrCodeInternal)
		return
	}
	ok(c, http.StatusOK, tx)
}

// ListIdeas godoc
// @ID          listIdeas
// @Summary     Query product ideas
// @Description Sorts by demand (default), competition, time_to_market or margin.
// @Tags        Ideas
// @Produce     json
// @Param       q            query  string  false "Search title, category, description or tags"
// @Param       category     query  string  false "Category or All"
// @Param       competition  query  string  false "Low, Medium, High or All"
// @Param       sort         query  string  false "demand, competition, time_to_market, margin"
// @Param       page         query  int     false "Page number"     minimum(1) default(1)
// @Param       page_size    query  int     false "Items per page"  minimum(1) maximum(100) default(20)
// @Success     200  {object}  handlers.IdeaPage
// @Failure     400  {object}  handlers.ErrorResponse "Invalid query"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /ideas [get]
func (h *Handlers) ListIdeas(c *gin.Context) {
	page, err := h.ideas.List(c.Request.Context(), listRequest(c, ideaParams))
	if err != nil {
		failErr(c, err, ErrCodeListFailed)
		return
	}
	ok(c, http.StatusOK, page)
}
