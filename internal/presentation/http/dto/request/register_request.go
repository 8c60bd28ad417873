package request

import (
	"github.com/google/uuid"
	"github.com/sangkips/salonpos-api/internal/application/service"
	"github.com/shopspring/decimal"
)

// OpenRegisterRequest represents a register open request
type OpenRegisterRequest struct {
	OpeningBalance decimal.Decimal `json:"opening_balance"`
}

// ModeCountRequest is the manual count of one payment mode
type ModeCountRequest struct {
	PaymentModeID uuid.UUID       `json:"payment_mode_id" binding:"required"`
	Amount        decimal.Decimal `json:"amount"`
	Reason        string          `json:"reason" binding:"max=500"`
}

// CashUsageRequest represents cash taken out of the drawer
type CashUsageRequest struct {
	Reason   string          `json:"reason" binding:"required,max=255"`
	Amount   decimal.Decimal `json:"amount"`
	ProofRef *string         `json:"proof_ref" binding:"omitempty,max=255"`
}

// CloseRegisterRequest represents a register close request
type CloseRegisterRequest struct {
	Counts      []ModeCountRequest `json:"counts" binding:"dive"`
	BankDeposit decimal.Decimal    `json:"bank_deposit"`
	CashUsages  []CashUsageRequest `json:"cash_usages" binding:"dive"`
	Note        *string            `json:"note" binding:"omitempty,max=1000"`
}

// RegisterFilterRequest represents register list filters
type RegisterFilterRequest struct {
	Status    string `form:"status"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}

// ToInput converts the request into the service input
func (r *CashUsageRequest) ToInput() service.CashUsageInput {
	return service.CashUsageInput{Reason: r.Reason, Amount: r.Amount, ProofRef: r.ProofRef}
}

// ToInput converts the request into the service input
func (r *CloseRegisterRequest) ToInput() service.CloseInput {
	in := service.CloseInput{BankDeposit: r.BankDeposit, Note: r.Note}
	for _, c := range r.Counts {
		in.Counts = append(in.Counts, service.ModeCount{PaymentModeID: c.PaymentModeID, Amount: c.Amount, Reason: c.Reason})
	}
	for _, u := range r.CashUsages {
		in.CashUsages = append(in.CashUsages, u.ToInput())
	}
	return in
}
