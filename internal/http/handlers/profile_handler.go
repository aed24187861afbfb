package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-marketplace-backend/internal/domain"
	"github.com/tbourn/go-marketplace-backend/internal/services"
)

// ProfileResponse is the body of a successful profile save.
type ProfileResponse struct {
	Profile domain.ProfileData `json:"profile"`
	Notice  services.Notice    `json:"notice"`
}

// GetProfile godoc
// @ID          getProfile
// @Summary     Maker profile
// @Description Users who never saved get the default profile.
// @Tags        Profile
// @Produce     json
// @Param       X-User-ID  header  string  false "User ID (demo header)"
// @Success     200  {object}  domain.ProfileData
// @Failure     503  {object}  handlers.ErrorResponse "Simulated backend failure"
// @Router      /profile [get]
func (h *Handlers) GetProfile(c *gin.Context) {
	p, err := h.profiles.Load(c.Request.Context(), userID(c))
	if err != nil {
		failErr(c, err, ErrCodeInternal)
		return
	}
	ok(c, http.StatusOK, p)
}

// SaveProfile godoc
// @ID          saveProfile
// @Summary     Save the maker profile
// @Description The profile is validated against the profile schema before it is stored.
// @Tags        Profile
// @Accept      json
// @Produce     json
// @Param       X-User-ID  header  string  false "User ID (demo header)"
// @Param       body       body    domain.ProfileData  true  "Full profile"
// @Success     200  {object}  handlers.ProfileResponse
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     422  {object}  handlers.ErrorResponse "Invalid fields"
// @Failure     503  {object}  handlers.ErrorResponse "Simulated backend failure"
// @Router      /profile [put]
func (h *Handlers) SaveProfile(c *gin.Context) {
	var p domain.ProfileData
	if err := c.ShouldBindJSON(&p); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	n, err := h.profiles.Save(c.Request.Context(), userID(c), p)
	if err != nil {
		status, code := classify(err)
		if code == "" {
			failErr(c, err, ErrCodeUpdateFailed)
			return
		}
		fail(c, status, code, n.Message)
		return
	}
	ok(c, http.StatusOK, ProfileResponse{Profile: p, Notice: n})
}
