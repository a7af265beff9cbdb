package plans

import (
	"github.com/gin-gonic/gin"
	"github.com/manmeet1049/bizzler/internal/api/response"
	"github.com/manmeet1049/bizzler/internal/app/http/middleware"
)

// ImportFromStripe creates catalog plans from the configured Stripe product's
// recurring prices.
func (h *Handler) ImportFromStripe(c *gin.Context) {
	auth := middleware.AuthContext(c)
	resp, err := h.service.ImportStripePlans(c.Request.Context(), auth)
	if err != nil {
		h.log.Errorw("stripe plan import failed", "business_id", auth.TenantID, "error", err)
		c.Error(err)
		return
	}
	response.OK(c, "Plans imported from Stripe.", resp)
}
