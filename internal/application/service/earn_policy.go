package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/salonpos-api/internal/domain/entity"
	"github.com/sangkips/salonpos-api/internal/domain/pricing"
	"github.com/sangkips/salonpos-api/internal/domain/repository"
	"github.com/sangkips/salonpos-api/internal/infrastructure/cache"
	"github.com/sangkips/salonpos-api/pkg/apperror"
	"github.com/sangkips/salonpos-api/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// ScheduleEarnPolicy reads an outlet's day-of-week loyalty schedule, both to
// value redemptions and to award points. Rules are cached per outlet; a cache
// miss or cache failure falls through to the database.
type ScheduleEarnPolicy struct {
	ruleRepo repository.LoyaltyRuleRepository
	store    cache.Store
	ttl      time.Duration
	log      *logrus.Logger
}

var _ pricing.EarnPolicy = (*ScheduleEarnPolicy)(nil)

// NewScheduleEarnPolicy creates the schedule policy. store may be nil.
func NewScheduleEarnPolicy(ruleRepo repository.LoyaltyRuleRepository, store cache.Store, ttl time.Duration, log *logrus.Logger) *ScheduleEarnPolicy {
	return &ScheduleEarnPolicy{
		ruleRepo: ruleRepo,
		store:    store,
		ttl:      ttl,
		log:      log,
	}
}

func (p *ScheduleEarnPolicy) rules(ctx context.Context, outletID uuid.UUID) ([]entity.LoyaltyRule, error) {
	key := cache.LoyaltyRulesKey(outletID)
	if p.store != nil {
		var cached []entity.LoyaltyRule
		found, err := p.store.GetObject(ctx, key, &cached)
		if err != nil {
			logger.LogError(p.log, "ScheduleEarnPolicy", "rules", "cache read", key, err)
		} else if found {
			return cached, nil
		}
	}

	rules, err := p.ruleRepo.ListByOutlet(ctx, outletID)
	if err != nil {
		return nil, err
	}
	if p.store != nil {
		if err := p.store.SetObject(ctx, key, rules, p.ttl); err != nil {
			logger.LogError(p.log, "ScheduleEarnPolicy", "rules", "cache write", key, err)
		}
	}
	return rules, nil
}

// Schedule returns the outlet's rule for weekday, or nil when there is none
func (p *ScheduleEarnPolicy) Schedule(ctx context.Context, outletID uuid.UUID, weekday time.Weekday) (*pricing.LoyaltySchedule, error) {
	rules, err := p.rules(ctx, outletID)
	if err != nil {
		return nil, err
	}
	for _, r := range rules {
		if r.IsActive && r.DayOfWeek == int(weekday) {
			s := r.Schedule()
			return &s, nil
		}
	}
	return nil, nil
}

func (p *ScheduleEarnPolicy) invalidate(ctx context.Context, outletID uuid.UUID) error {
	if p.store == nil {
		return nil
	}
	return p.store.Delete(ctx, cache.LoyaltyRulesKey(outletID))
}

// LoyaltyRuleInput sets the rates of one weekday
type LoyaltyRuleInput struct {
	DayOfWeek    int
	SpendAmount  decimal.Decimal
	EarnPoints   int64
	RedeemPoints int64
	RedeemAmount decimal.Decimal
	IsActive     bool
}

func (in LoyaltyRuleInput) validate() error {
	var fields []apperror.FieldError
	if in.DayOfWeek < int(time.Sunday) || in.DayOfWeek > int(time.Saturday) {
		fields = append(fields, apperror.FieldError{Field: "day_of_week", Message: "must be 0 (Sunday) to 6 (Saturday)"})
	}
	if in.EarnPoints < 0 {
		fields = append(fields, apperror.FieldError{Field: "earn_points", Message: "must not be negative"})
	}
	if in.EarnPoints > 0 && !in.SpendAmount.IsPositive() {
		fields = append(fields, apperror.FieldError{Field: "spend_amount", Message: "must be positive when points are earned"})
	}
	if in.RedeemPoints < 0 {
		fields = append(fields, apperror.FieldError{Field: "redeem_points", Message: "must not be negative"})
	}
	if in.RedeemAmount.IsNegative() {
		fields = append(fields, apperror.FieldError{Field: "redeem_amount", Message: "must not be negative"})
	}
	if in.SpendAmount.IsNegative() {
		fields = append(fields, apperror.FieldError{Field: "spend_amount", Message: "must not be negative"})
	}
	if len(fields) > 0 {
		return apperror.NewValidationError(fields)
	}
	return nil
}

// SaveRule stores the caller's outlet rule for one weekday and drops the
// cached schedule, so the next sale prices with the new rates
func (p *ScheduleEarnPolicy) SaveRule(ctx context.Context, rc entity.RequestContext, in LoyaltyRuleInput) (*entity.LoyaltyRule, error) {
	if err := rc.Validate(); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	rule := &entity.LoyaltyRule{
		CompanyID:    rc.CompanyID,
		OutletID:     rc.OutletID,
		DayOfWeek:    in.DayOfWeek,
		SpendAmount:  in.SpendAmount,
		EarnPoints:   in.EarnPoints,
		RedeemPoints: in.RedeemPoints,
		RedeemAmount: in.RedeemAmount,
		IsActive:     in.IsActive,
	}
	if err := p.ruleRepo.Save(ctx, rule); err != nil {
		return nil, apperror.Storage(err)
	}
	if err := p.invalidate(ctx, rc.OutletID); err != nil {
		// the stale schedule lives until the cache TTL
		logger.LogError(p.log, "ScheduleEarnPolicy", "SaveRule", "cache invalidate", rc.OutletID, err)
	}

	p.log.WithFields(logrus.Fields{
		"outlet_id":   rc.OutletID,
		"day_of_week": in.DayOfWeek,
		"active":      in.IsActive,
	}).Info("loyalty rule saved")
	return rule, nil
}

// Rules lists the active schedule of the caller's outlet
func (p *ScheduleEarnPolicy) Rules(ctx context.Context, rc entity.RequestContext) ([]entity.LoyaltyRule, error) {
	if err := rc.Validate(); err != nil {
		return nil, err
	}
	rules, err := p.rules(ctx, rc.OutletID)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	if rules == nil {
		rules = []entity.LoyaltyRule{}
	}
	return rules, nil
}

// PointsEarned awards whole spend blocks of today's rule. Walk-in sales earn nothing.
func (p *ScheduleEarnPolicy) PointsEarned(ctx context.Context, customerID, outletID uuid.UUID, weekday time.Weekday, spend decimal.Decimal) (int64, error) {
	if customerID == uuid.Nil {
		return 0, nil
	}
	schedule, err := p.Schedule(ctx, outletID, weekday)
	if err != nil || schedule == nil {
		return 0, err
	}
	return schedule.PointsFor(spend), nil
}
