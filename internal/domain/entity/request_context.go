package entity

import (
	"github.com/google/uuid"
	"github.com/sangkips/salonpos-api/pkg/apperror"
)

// RequestContext identifies who is acting and where. Every engine operation
// receives one explicitly instead of reading it from ambient request state.
type RequestContext struct {
	UserID    uuid.UUID
	OutletID  uuid.UUID
	CompanyID uuid.UUID
}

// Validate ensures the caller identity is complete
func (rc RequestContext) Validate() error {
	var fields []apperror.FieldError
	if rc.UserID == uuid.Nil {
		fields = append(fields, apperror.FieldError{Field: "user_id", Message: "is required"})
	}
	if rc.OutletID == uuid.Nil {
		fields = append(fields, apperror.FieldError{Field: "outlet_id", Message: "is required"})
	}
	if rc.CompanyID == uuid.Nil {
		fields = append(fields, apperror.FieldError{Field: "company_id", Message: "is required"})
	}
	if len(fields) > 0 {
		return apperror.NewValidationError(fields)
	}
	return nil
}
