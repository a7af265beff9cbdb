package users

import (
	"github.com/gin-gonic/gin"
	"github.com/manmeet1049/bizzler/internal/api/response"
	"github.com/manmeet1049/bizzler/internal/app/http/middleware"
	"github.com/manmeet1049/bizzler/internal/service"
)

type Handler struct {
	service service.AuthService
}

func NewHandler(service service.AuthService) *Handler {
	return &Handler{service: service}
}

// GetCurrentUser returns the caller with the businesses they belong to and
// what they may do in each.
func (h *Handler) GetCurrentUser(c *gin.Context) {
	me, err := h.service.CurrentUser(c.Request.Context(), middleware.Actor(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.OK(c, "User fetched successfully.", me)
}
