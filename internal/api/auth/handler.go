package auth

import (
	"github.com/gin-gonic/gin"
	"github.com/manmeet1049/bizzler/internal/api/dto"
	"github.com/manmeet1049/bizzler/internal/api/response"
	"github.com/manmeet1049/bizzler/internal/service"
)

type Handler struct {
	service service.AuthService
}

func NewHandler(service service.AuthService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(dto.BindError(err))
		return
	}

	user, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Created(c, "User registered successfully.", user)
}

func (h *Handler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(dto.BindError(err))
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.OK(c, "Login successful.", resp)
}

func (h *Handler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(dto.BindError(err))
		return
	}

	resp, err := h.service.Refresh(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.OK(c, "Token refreshed.", resp)
}
