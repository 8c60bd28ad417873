package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/salonpos-api/internal/application/service"
	"github.com/sangkips/salonpos-api/internal/presentation/http/dto/request"
	"github.com/sangkips/salonpos-api/internal/presentation/http/dto/response"
)

// DraftHandler handles parked cart requests
type DraftHandler struct {
	draftService *service.DraftService
}

// NewDraftHandler creates a new draft handler
func NewDraftHandler(draftService *service.DraftService) *DraftHandler {
	return &DraftHandler{draftService: draftService}
}

// Save parks a cart, replacing the draft with the same ID
func (h *DraftHandler) Save(c *gin.Context) {
	rc, ok := requestContext(c)
	if !ok {
		return
	}

	var req request.SaveDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	draft, err := h.draftService.Save(c.Request.Context(), rc, req.ToDraft())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Draft saved successfully", draft)
}

// Get loads a parked cart
func (h *DraftHandler) Get(c *gin.Context) {
	rc, ok := requestContext(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "draft")
	if !ok {
		return
	}

	draft, err := h.draftService.Get(c.Request.Context(), rc, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Draft retrieved successfully", draft)
}

// Delete discards a parked cart
func (h *DraftHandler) Delete(c *gin.Context) {
	rc, ok := requestContext(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "draft")
	if !ok {
		return
	}

	if err := h.draftService.Delete(c.Request.Context(), rc, id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
