package subscribers

import (
	"github.com/gin-gonic/gin"
	"github.com/manmeet1049/bizzler/internal/api/dto"
	"github.com/manmeet1049/bizzler/internal/api/response"
	"github.com/manmeet1049/bizzler/internal/app/http/middleware"
	"github.com/manmeet1049/bizzler/internal/service"
)

type Handler struct {
	service service.SubscriberService
}

func NewHandler(service service.SubscriberService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateSubscriber(c *gin.Context) {
	var req dto.CreateSubscriberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(dto.BindError(err))
		return
	}

	resp, err := h.service.CreateSubscriber(c.Request.Context(), middleware.AuthContext(c), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Created(c, "Subscriber created successfully.", resp)
}

func (h *Handler) GetSubscriber(c *gin.Context) {
	id, err := dto.ParseID("id", c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	resp, err := h.service.GetSubscriber(c.Request.Context(), middleware.AuthContext(c), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.OK(c, "Subscriber fetched successfully.", resp)
}

func (h *Handler) ListSubscriptions(c *gin.Context) {
	id, err := dto.ParseID("id", c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	list, err := h.service.ListSubscriptions(c.Request.Context(), middleware.AuthContext(c), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.OK(c, "Subscriptions fetched successfully.", list)
}
