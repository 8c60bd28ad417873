package app

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/salonpos-api/internal/application/service"
	"github.com/sangkips/salonpos-api/internal/config"
	domainRepo "github.com/sangkips/salonpos-api/internal/domain/repository"
	"github.com/sangkips/salonpos-api/internal/infrastructure/cache"
	"github.com/sangkips/salonpos-api/internal/infrastructure/repository"
	"github.com/sangkips/salonpos-api/internal/presentation/http/handler"
	"github.com/sangkips/salonpos-api/internal/presentation/http/middleware"
	"github.com/sangkips/salonpos-api/internal/presentation/http/routes"
	"github.com/sangkips/salonpos-api/pkg/lock"
	"github.com/sangkips/salonpos-api/pkg/logger"
	"github.com/sangkips/salonpos-api/pkg/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Deps are the infrastructure pieces the application is assembled from
type Deps struct {
	Config *config.Config
	DB     *gorm.DB
	Store  cache.Store
	Locker lock.Locker
	Log    *logrus.Logger
	// Checks are extra health checks; the database is always checked
	Checks map[string]handler.HealthCheck
}

// App is the assembled HTTP application
type App struct {
	Router      *gin.Engine
	JWT         *utils.JWTManager
	rateLimiter *middleware.CompanyRateLimiter
	idempotency domainRepo.IdempotencyRepository
	log         *logrus.Logger
}

// New wires repositories, services and handlers into a router
func New(d Deps) *App {
	cfg := d.Config
	db := d.DB

	customerRepo := repository.NewCustomerRepository(db)
	modeRepo := repository.NewPaymentModeRepository(db)
	registerRepo := repository.NewRegisterRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	transactor := repository.NewTransactor(db)

	policy := service.NewScheduleEarnPolicy(repository.NewLoyaltyRuleRepository(db), d.Store, cfg.Engine.LoyaltyCacheTTL, d.Log)
	discountService := service.NewDiscountService(repository.NewInstrumentRepository(db), customerRepo, policy)
	invoiceService := service.NewInvoiceService(service.InvoiceRepositories{
		Transactor:  transactor,
		Invoices:    repository.NewInvoiceRepository(db),
		InvoiceLogs: repository.NewInvoiceLogRepository(db),
		Sequences:   repository.NewSequenceRepository(db),
		Registers:   registerRepo,
		Modes:       modeRepo,
		Outlets:     repository.NewOutletRepository(db),
		Customers:   customerRepo,
	}, discountService, policy, d.Locker, cfg.Engine, d.Log)
	registerService := service.NewRegisterService(transactor, registerRepo, modeRepo, d.Locker, cfg.Engine, d.Log)

	checks := map[string]handler.HealthCheck{
		"database": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	for name, check := range d.Checks {
		checks[name] = check
	}

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)
	rateLimiter := routes.NewRateLimiter(cfg.RateLimit)

	handlers := &routes.Handlers{
		Invoice:     handler.NewInvoiceHandler(invoiceService),
		Register:    handler.NewRegisterHandler(registerService),
		Customer:    handler.NewCustomerHandler(service.NewCustomerService(customerRepo)),
		PaymentMode: handler.NewPaymentModeHandler(service.NewPaymentModeService(modeRepo)),
		Draft:       handler.NewDraftHandler(service.NewDraftService(d.Store, cfg.Engine.DraftTTL)),
		Loyalty:     handler.NewLoyaltyHandler(policy),
		Health:      handler.NewHealthHandler(cfg.App.Name, checks),
	}

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		RateLimiter:     rateLimiter,
		Log:             d.Log,
	})

	return &App{
		Router:      router,
		JWT:         jwtManager,
		rateLimiter: rateLimiter,
		idempotency: idempotencyRepo,
		log:         d.Log,
	}
}

// RunMaintenance purges expired idempotency keys every interval until ctx ends
func (a *App) RunMaintenance(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := a.idempotency.DeleteExpired(ctx, time.Now())
			if err != nil {
				logger.LogError(a.log, "app", "RunMaintenance", "delete expired idempotency keys", nil, err)
				continue
			}
			if n > 0 {
				a.log.WithField("deleted", n).Info("expired idempotency keys purged")
			}
		}
	}
}

// Close stops background work owned by the application
func (a *App) Close() {
	a.rateLimiter.Close()
}
