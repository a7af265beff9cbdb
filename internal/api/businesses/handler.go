package businesses

import (
	"github.com/gin-gonic/gin"
	"github.com/manmeet1049/bizzler/internal/api/dto"
	"github.com/manmeet1049/bizzler/internal/api/response"
	"github.com/manmeet1049/bizzler/internal/app/http/middleware"
	"github.com/manmeet1049/bizzler/internal/service"
)

type Handler struct {
	service service.BusinessService
}

func NewHandler(service service.BusinessService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateBusiness(c *gin.Context) {
	var req dto.CreateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(dto.BindError(err))
		return
	}

	resp, err := h.service.CreateBusiness(c.Request.Context(), middleware.Actor(c), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Created(c, "Business created successfully.", resp)
}

func (h *Handler) ListBusinesses(c *gin.Context) {
	list, err := h.service.ListBusinesses(c.Request.Context(), middleware.Actor(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.OK(c, "Businesses fetched successfully.", list)
}

func (h *Handler) AddStaff(c *gin.Context) {
	var req dto.AddStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(dto.BindError(err))
		return
	}

	resp, err := h.service.AddStaff(c.Request.Context(), middleware.AuthContext(c), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Created(c, "Staff added successfully.", resp)
}
