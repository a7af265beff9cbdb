package billing

import (
	"github.com/gin-gonic/gin"
	"github.com/manmeet1049/bizzler/internal/api/dto"
	"github.com/manmeet1049/bizzler/internal/api/response"
	"github.com/manmeet1049/bizzler/internal/app/http/middleware"
	"github.com/manmeet1049/bizzler/internal/service"
)

type Handler struct {
	service service.BillingService
}

func NewHandler(service service.BillingService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) ListTransactions(c *gin.Context) {
	list, err := h.service.ListTransactions(c.Request.Context(), middleware.AuthContext(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.OK(c, "Transactions fetched successfully.", list)
}

func (h *Handler) GetSubscriptionTransaction(c *gin.Context) {
	id, err := dto.ParseID("id", c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	txn, err := h.service.GetForSubscription(c.Request.Context(), middleware.AuthContext(c), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.OK(c, "Transaction fetched successfully.", txn)
}
