package subscriptions

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/manmeet1049/bizzler/internal/api/dto"
	"github.com/manmeet1049/bizzler/internal/api/response"
	"github.com/manmeet1049/bizzler/internal/app/http/middleware"
	"github.com/manmeet1049/bizzler/internal/service"
)

type Handler struct {
	service service.SubscriptionService
}

func NewHandler(service service.SubscriptionService) *Handler {
	return &Handler{service: service}
}

// Subscribe adds a period for an existing subscriber or signs up a new one.
func (h *Handler) Subscribe(c *gin.Context) {
	var req dto.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(dto.BindError(err))
		return
	}

	resp, err := h.service.Subscribe(c.Request.Context(), middleware.AuthContext(c), req)
	if err != nil {
		c.Error(err)
		return
	}

	message := "Subscription added successfully."
	if resp.Queued {
		message = "Subscription queued after the current period."
	}
	response.JSON(c, http.StatusCreated, message, resp)
}
