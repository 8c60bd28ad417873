package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/salonpos-api/internal/application/service"
	"github.com/sangkips/salonpos-api/internal/presentation/http/dto/request"
	"github.com/sangkips/salonpos-api/internal/presentation/http/dto/response"
	"github.com/sangkips/salonpos-api/pkg/apperror"
)

// LoyaltyHandler manages the outlet's weekly loyalty schedule
type LoyaltyHandler struct {
	policy *service.ScheduleEarnPolicy
}

// NewLoyaltyHandler creates a new loyalty handler
func NewLoyaltyHandler(policy *service.ScheduleEarnPolicy) *LoyaltyHandler {
	return &LoyaltyHandler{policy: policy}
}

// List returns the active rules of the caller's outlet
func (h *LoyaltyHandler) List(c *gin.Context) {
	rc, ok := requestContext(c)
	if !ok {
		return
	}

	rules, err := h.policy.Rules(c.Request.Context(), rc)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Loyalty rules retrieved successfully", rules)
}

// Save sets the rule of one weekday (0 = Sunday)
func (h *LoyaltyHandler) Save(c *gin.Context) {
	rc, ok := requestContext(c)
	if !ok {
		return
	}
	day, err := strconv.Atoi(c.Param("day"))
	if err != nil {
		response.Error(c, apperror.Invalid("day_of_week", "must be a number from 0 to 6"))
		return
	}

	var req request.LoyaltyRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	rule, err := h.policy.SaveRule(c.Request.Context(), rc, req.ToInput(day))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Loyalty rule saved successfully", rule)
}
