package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/salonpos-api/internal/application/service"
	"github.com/sangkips/salonpos-api/internal/presentation/http/dto/response"
)

// PaymentModeHandler serves the payment mode registry
type PaymentModeHandler struct {
	modeService *service.PaymentModeService
}

// NewPaymentModeHandler creates a new payment mode handler
func NewPaymentModeHandler(modeService *service.PaymentModeService) *PaymentModeHandler {
	return &PaymentModeHandler{modeService: modeService}
}

// List returns the active payment modes
func (h *PaymentModeHandler) List(c *gin.Context) {
	modes, err := h.modeService.ListActive(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Payment modes retrieved successfully", modes)
}
