package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/salonpos-api/internal/application/service"
	"github.com/sangkips/salonpos-api/internal/domain/enum"
	"github.com/sangkips/salonpos-api/internal/domain/repository"
	"github.com/sangkips/salonpos-api/internal/presentation/http/dto/request"
	"github.com/sangkips/salonpos-api/internal/presentation/http/dto/response"
	"github.com/sangkips/salonpos-api/internal/presentation/http/middleware"
	"github.com/sangkips/salonpos-api/pkg/apperror"
)

// InvoiceHandler handles invoice-related HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// Preview prices a cart without committing anything
func (h *InvoiceHandler) Preview(c *gin.Context) {
	rc, ok := requestContext(c)
	if !ok {
		return
	}

	var req request.PreviewInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.invoiceService.Preview(c.Request.Context(), rc, req.ToPreviewInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice priced successfully", result)
}

// Commit creates an invoice from a cart and its tenders
func (h *InvoiceHandler) Commit(c *gin.Context) {
	rc, ok := requestContext(c)
	if !ok {
		return
	}

	var req request.CommitInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.invoiceService.Commit(c.Request.Context(), rc, req.ToCommitInput(c.GetHeader(middleware.IdempotencyKeyHeader)))
	if err != nil {
		response.Error(c, err)
		return
	}

	if result.Replayed {
		c.Header(middleware.IdempotencyReplayedHeader, "true")
		response.OK(c, "Invoice already created", result.Invoice)
		return
	}
	response.Created(c, "Invoice created successfully", result.Invoice)
}

// List handles listing invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	rc, ok := requestContext(c)
	if !ok {
		return
	}

	var filter request.InvoiceFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		bindError(c, err)
		return
	}
	spec, err := invoiceQuery(filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.invoiceService.List(c.Request.Context(), rc, spec, pageParams(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Invoices retrieved successfully", result)
}

func invoiceQuery(f request.InvoiceFilterRequest) (repository.QuerySpec, error) {
	spec := repository.QuerySpec{
		Search:        f.Search,
		SearchColumns: []string{"invoice_no"},
		Equals:        map[string]any{},
		SortBy:        f.SortBy,
		SortOrder:     f.SortOrder,
	}
	for column, raw := range map[string]string{"customer_id": f.CustomerID, "register_id": f.RegisterID} {
		if raw == "" {
			continue
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return spec, apperror.Invalid(column, "must be a UUID")
		}
		spec.Equals[column] = id
	}
	if f.Status != "" {
		status, ok := enum.ParseInvoiceStatus(f.Status)
		if !ok {
			return spec, apperror.Invalid("status", "must be active or void")
		}
		spec.Equals["status"] = status
	}
	if f.PaymentStatus != "" {
		status, ok := enum.ParsePaymentStatus(f.PaymentStatus)
		if !ok {
			return spec, apperror.Invalid("payment_status", "must be paid, partial or unpaid")
		}
		spec.Equals["payment_status"] = status
	}

	window, err := windowQuery("invoice_date", f.StartDate, f.EndDate)
	if err != nil {
		return spec, err
	}
	return mergeQuery(spec, window)
}

// customerInvoiceQuery narrows the invoice filters to one customer
func customerInvoiceQuery(f request.InvoiceFilterRequest, customerID uuid.UUID) (repository.QuerySpec, error) {
	spec, err := invoiceQuery(f)
	if err != nil {
		return spec, err
	}
	return mergeQuery(spec, repository.QuerySpec{Equals: map[string]any{"customer_id": customerID}})
}

// ListForCustomer handles listing the invoices of one customer
func (h *InvoiceHandler) ListForCustomer(c *gin.Context) {
	rc, ok := requestContext(c)
	if !ok {
		return
	}
	customerID, ok := pathID(c, "customer")
	if !ok {
		return
	}

	var filter request.InvoiceFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		bindError(c, err)
		return
	}
	spec, err := customerInvoiceQuery(filter, customerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.invoiceService.List(c.Request.Context(), rc, spec, pageParams(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Invoices retrieved successfully", result)
}

// Get handles getting a single invoice
func (h *InvoiceHandler) Get(c *gin.Context) {
	rc, ok := requestContext(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "invoice")
	if !ok {
		return
	}

	invoice, err := h.invoiceService.Get(c.Request.Context(), rc, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", invoice)
}

// EditPayment replaces the tenders of an invoice
func (h *InvoiceHandler) EditPayment(c *gin.Context) {
	rc, ok := requestContext(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "invoice")
	if !ok {
		return
	}

	var req request.EditPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	invoice, err := h.invoiceService.EditPayment(c.Request.Context(), rc, id, request.ToTenderInputs(req.Tenders))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice payment updated successfully", invoice)
}

// Void handles voiding an invoice
func (h *InvoiceHandler) Void(c *gin.Context) {
	rc, ok := requestContext(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "invoice")
	if !ok {
		return
	}

	var req request.VoidInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	invoice, err := h.invoiceService.Void(c.Request.Context(), rc, id, req.Note)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice voided successfully", invoice)
}

// Logs lists the payment edit snapshots of an invoice
func (h *InvoiceHandler) Logs(c *gin.Context) {
	rc, ok := requestContext(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "invoice")
	if !ok {
		return
	}

	logs, err := h.invoiceService.ListLogs(c.Request.Context(), rc, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice logs retrieved successfully", logs)
}
