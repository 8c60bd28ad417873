package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/salonpos-api/internal/application/service"
	"github.com/sangkips/salonpos-api/internal/domain/enum"
	"github.com/sangkips/salonpos-api/internal/domain/repository"
	"github.com/sangkips/salonpos-api/internal/presentation/http/dto/request"
	"github.com/sangkips/salonpos-api/internal/presentation/http/dto/response"
	"github.com/sangkips/salonpos-api/pkg/apperror"
)

// RegisterHandler handles cash register HTTP requests
type RegisterHandler struct {
	registerService *service.RegisterService
}

// NewRegisterHandler creates a new register handler
func NewRegisterHandler(registerService *service.RegisterService) *RegisterHandler {
	return &RegisterHandler{registerService: registerService}
}

// Open starts a register cycle for the caller's outlet
func (h *RegisterHandler) Open(c *gin.Context) {
	rc, ok := requestContext(c)
	if !ok {
		return
	}

	var req request.OpenRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	register, err := h.registerService.Open(c.Request.Context(), rc, req.OpeningBalance)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Register opened successfully", register)
}

// Close reconciles and closes the open register
func (h *RegisterHandler) Close(c *gin.Context) {
	rc, ok := requestContext(c)
	if !ok {
		return
	}

	var req request.CloseRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	register, err := h.registerService.Close(c.Request.Context(), rc, req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Register closed successfully", register)
}

// Current returns the open register or the suggested opening balance
func (h *RegisterHandler) Current(c *gin.Context) {
	rc, ok := requestContext(c)
	if !ok {
		return
	}

	current, err := h.registerService.Current(c.Request.Context(), rc)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Register retrieved successfully", current)
}

// CashUsage records cash taken out of the drawer
func (h *RegisterHandler) CashUsage(c *gin.Context) {
	rc, ok := requestContext(c)
	if !ok {
		return
	}

	var req request.CashUsageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	usage, err := h.registerService.RecordCashUsage(c.Request.Context(), rc, req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Cash usage recorded successfully", usage)
}

// List handles listing registers
func (h *RegisterHandler) List(c *gin.Context) {
	rc, ok := requestContext(c)
	if !ok {
		return
	}

	var filter request.RegisterFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		bindError(c, err)
		return
	}

	spec := repository.QuerySpec{
		Equals:    map[string]any{},
		SortBy:    filter.SortBy,
		SortOrder: filter.SortOrder,
	}
	switch enum.RegisterStatus(filter.Status) {
	case "":
	case enum.RegisterStatusOpen, enum.RegisterStatusClosed:
		spec.Equals["status"] = enum.RegisterStatus(filter.Status)
	default:
		response.Error(c, apperror.Invalid("status", "must be open or closed"))
		return
	}
	window, err := windowQuery("opened_at", filter.StartDate, filter.EndDate)
	if err == nil {
		spec, err = mergeQuery(spec, window)
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.registerService.List(c.Request.Context(), rc, spec, pageParams(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Registers retrieved successfully", result)
}

// Get handles getting a single register
func (h *RegisterHandler) Get(c *gin.Context) {
	rc, ok := requestContext(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "register")
	if !ok {
		return
	}

	register, err := h.registerService.Get(c.Request.Context(), rc, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Register retrieved successfully", register)
}
