package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/suvrat007/tutora-sub001/internal/models"
	"github.com/suvrat007/tutora-sub001/pkg/response"
)

type adminSession interface {
	Profile(ctx context.Context) (*models.Admin, error)
	Logout(ctx context.Context, session string) error
}

// AdminHandler proxies admin profile and logout.
type AdminHandler struct {
	admin adminSession
}

// NewAdminHandler constructs an admin handler.
func NewAdminHandler(admin adminSession) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// Profile godoc
// @Summary Signed-in admin
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin [get]
func (h *AdminHandler) Profile(c *gin.Context) {
	admin, err := h.admin.Profile(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, admin)
}

// Logout godoc
// @Summary Log out and drop console state
// @Tags Admin
// @Success 204
// @Router /logout [post]
func (h *AdminHandler) Logout(c *gin.Context) {
	if err := h.admin.Logout(c.Request.Context(), sessionFromContext(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
