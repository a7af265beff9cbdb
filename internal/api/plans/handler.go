package plans

import (
	"github.com/gin-gonic/gin"
	"github.com/manmeet1049/bizzler/internal/api/dto"
	"github.com/manmeet1049/bizzler/internal/api/response"
	"github.com/manmeet1049/bizzler/internal/app/http/middleware"
	"github.com/manmeet1049/bizzler/internal/logger"
	"github.com/manmeet1049/bizzler/internal/service"
)

type Handler struct {
	service service.PlanService
	log     *logger.Logger
}

func NewHandler(service service.PlanService, log *logger.Logger) *Handler {
	return &Handler{service: service, log: log}
}

func (h *Handler) AddPlan(c *gin.Context) {
	var req dto.AddPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(dto.BindError(err))
		return
	}

	resp, err := h.service.AddPlan(c.Request.Context(), middleware.AuthContext(c), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Created(c, "Plan added successfully.", resp)
}

func (h *Handler) ListPlans(c *gin.Context) {
	list, err := h.service.ListPlans(c.Request.Context(), middleware.AuthContext(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.OK(c, "Plans fetched successfully.", list)
}

func (h *Handler) GetPlan(c *gin.Context) {
	id, err := dto.ParseID("id", c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	plan, err := h.service.GetPlan(c.Request.Context(), middleware.AuthContext(c), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.OK(c, "Plan fetched successfully.", plan)
}

func (h *Handler) DeletePlan(c *gin.Context) {
	id, err := dto.ParseID("id", c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.service.DeletePlan(c.Request.Context(), middleware.AuthContext(c), id); err != nil {
		c.Error(err)
		return
	}
	response.OK(c, "Plan deleted successfully.", nil)
}
