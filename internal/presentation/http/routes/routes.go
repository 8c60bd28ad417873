package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/salonpos-api/internal/config"
	domainRepo "github.com/sangkips/salonpos-api/internal/domain/repository"
	"github.com/sangkips/salonpos-api/internal/presentation/http/handler"
	"github.com/sangkips/salonpos-api/internal/presentation/http/middleware"
	"github.com/sangkips/salonpos-api/pkg/utils"
	"github.com/sirupsen/logrus"
)

const (
	// PermissionManageInvoices is required to void an invoice or change its tenders after the sale
	PermissionManageInvoices = "manage-invoices"
	// PermissionManageLoyalty is required to change an outlet's loyalty schedule
	PermissionManageLoyalty = "manage-loyalty"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Invoice     *handler.InvoiceHandler
	Register    *handler.RegisterHandler
	Customer    *handler.CustomerHandler
	PaymentMode *handler.PaymentModeHandler
	Draft       *handler.DraftHandler
	Loyalty     *handler.LoyaltyHandler
	Health      *handler.HealthHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	RateLimiter     *middleware.CompanyRateLimiter
	Log             *logrus.Logger
}

// NewRateLimiter builds the per-company limiter from the rate limit settings
func NewRateLimiter(cfg config.RateLimitConfig) *middleware.CompanyRateLimiter {
	rl := middleware.DefaultRateLimiterConfig()
	if cfg.Requests > 0 && cfg.Duration > 0 {
		rl.RequestsPerSecond = float64(cfg.Requests) / float64(cfg.Duration)
		rl.BurstSize = cfg.Requests
	}
	rl.CleanupInterval = 5 * time.Minute
	rl.EntryTTL = 10 * time.Minute
	return middleware.NewCompanyRateLimiter(rl)
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	handler.UseJSONFieldNames()
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Log))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", h.Health.Check)

	v1 := router.Group("/api/v1")
	{
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		if deps.RateLimiter != nil {
			protected.Use(deps.RateLimiter.Middleware())
		}

		idem := middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
			TTL:  deps.Cfg.Engine.IdempotencyTTL,
			Log:  deps.Log,
		}
		registerInvoiceRoutes(protected, h, idem)
		registerRegisterRoutes(protected, h, idem)
		registerCustomerRoutes(protected, h)
		protected.GET("/payment-modes", h.PaymentMode.List)
		registerDraftRoutes(protected, h)
		protected.GET("/loyalty-rules", h.Loyalty.List)
		protected.PUT("/loyalty-rules/:day", middleware.RequirePermission(PermissionManageLoyalty), h.Loyalty.Save)
	}

	return router
}

func registerInvoiceRoutes(protected *gin.RouterGroup, h *Handlers, idem middleware.IdempotencyConfig) {
	invoices := protected.Group("/invoices")
	{
		invoices.POST("/preview", h.Invoice.Preview)
		invoices.POST("", middleware.IdempotencyRequired(idem), h.Invoice.Commit)
		invoices.GET("", h.Invoice.List)
		invoices.GET("/:id", h.Invoice.Get)
		invoices.GET("/:id/logs", h.Invoice.Logs)
		invoices.PUT("/:id/payment", middleware.RequirePermission(PermissionManageInvoices), h.Invoice.EditPayment)
		invoices.POST("/:id/void", middleware.RequirePermission(PermissionManageInvoices), middleware.Idempotency(idem), h.Invoice.Void)
	}
}

func registerRegisterRoutes(protected *gin.RouterGroup, h *Handlers, idem middleware.IdempotencyConfig) {
	registers := protected.Group("/registers")
	registers.Use(middleware.Idempotency(idem))
	{
		registers.POST("/open", h.Register.Open)
		registers.POST("/close", h.Register.Close)
		registers.POST("/cash-usage", h.Register.CashUsage)
		registers.GET("/current", h.Register.Current)
		registers.GET("", h.Register.List)
		registers.GET("/:id", h.Register.Get)
	}
}

func registerCustomerRoutes(protected *gin.RouterGroup, h *Handlers) {
	customers := protected.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.GET("/:id/wallet", h.Customer.Wallet)
		customers.GET("/:id/invoices", h.Invoice.ListForCustomer)
	}
}

func registerDraftRoutes(protected *gin.RouterGroup, h *Handlers) {
	drafts := protected.Group("/drafts")
	{
		drafts.POST("", h.Draft.Save)
		drafts.GET("/:id", h.Draft.Get)
		drafts.DELETE("/:id", h.Draft.Delete)
	}
}
