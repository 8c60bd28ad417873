package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/salonpos-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Invoice is a committed sale. Totals are authoritative once persisted; only
// the payment fields change afterwards, and only through the edit flow.
type Invoice struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"company_id"`
	OutletID       uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_invoices_outlet_number;uniqueIndex:idx_invoices_outlet_idempotency" json:"outlet_id"`
	RegisterID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"register_id"`
	CustomerID     *uuid.UUID `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	EmployeeID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"employee_id"`
	InvoiceNumber  int64      `gorm:"not null;uniqueIndex:idx_invoices_outlet_number" json:"invoice_number"`
	InvoiceNo      string     `gorm:"size:50;not null" json:"invoice_no"`
	IdempotencyKey *string    `gorm:"size:255;uniqueIndex:idx_invoices_outlet_idempotency" json:"-"`
	InvoiceDate    time.Time  `gorm:"not null;index" json:"invoice_date"`

	Subtotal        decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"subtotal"`
	TotalTax        decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"total_tax"`
	ItemTotalIncTax decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"item_total_inc_tax"`
	ShippingCharges decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"shipping_charges"`
	TotalDiscount   decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"total_discount"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"total_amount"`

	CouponDiscount        decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"coupon_discount"`
	GiftCardDiscount      decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"gift_card_discount"`
	PromoCodeDiscount     decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"promo_code_discount"`
	ReferralDiscount      decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"referral_discount"`
	LoyaltyPointsDiscount decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"loyalty_points_discount"`
	LoyaltyPointsUsed     int64           `gorm:"not null;default:0" json:"loyalty_points_used"`
	UsedCashBackAmount    decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"used_cash_back_amount"`

	TotalReceived decimal.Decimal    `gorm:"type:decimal(20,4);not null" json:"total_received"`
	AmountPaid    decimal.Decimal    `gorm:"type:decimal(20,4);not null" json:"amount_paid"`
	BalanceDue    decimal.Decimal    `gorm:"type:decimal(20,4);not null" json:"balance_due"`
	GivenChange   decimal.Decimal    `gorm:"type:decimal(20,4);not null" json:"given_change"`
	PaymentStatus enum.PaymentStatus `gorm:"not null;default:0" json:"payment_status"`

	PointsEarned   int64           `gorm:"not null;default:0" json:"points_earned"`
	CashBackEarned decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"cash_back_earned"`

	Status    enum.InvoiceStatus `gorm:"not null;default:0;index" json:"status"`
	Note      *string            `gorm:"type:text" json:"note,omitempty"`
	VoidNote  *string            `gorm:"type:text" json:"void_note,omitempty"`
	VoidedAt  *time.Time         `json:"voided_at,omitempty"`
	VoidedBy  *uuid.UUID         `gorm:"type:uuid" json:"voided_by,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`

	// Relationships
	Customer  *Customer         `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items     []InvoiceItem     `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
	Taxes     []InvoiceTax      `gorm:"foreignKey:InvoiceID" json:"taxes,omitempty"`
	Discounts []InvoiceDiscount `gorm:"foreignKey:InvoiceID" json:"discounts,omitempty"`
	Tenders   []InvoiceTender   `gorm:"foreignKey:InvoiceID" json:"tenders,omitempty"`
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// IsVoid reports whether the invoice has been voided
func (i *Invoice) IsVoid() bool {
	return i.Status == enum.InvoiceStatusVoid
}

// InvoiceItem is a line of an invoice, frozen at commit time
type InvoiceItem struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"invoice_id"`
	Position        int             `gorm:"not null" json:"position"`
	ItemID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"item_id"`
	Name            string          `gorm:"size:255" json:"name"`
	Quantity        int             `gorm:"not null" json:"quantity"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"unit_price"`
	TaxID           *uuid.UUID      `gorm:"type:uuid" json:"tax_id,omitempty"`
	TaxType         string          `gorm:"size:100" json:"tax_type"`
	TaxPercent      decimal.Decimal `gorm:"type:decimal(10,4);not null" json:"tax_percent"`
	TaxAmount       decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"tax_amount"`
	PriceIncTax     decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"price_inc_tax"`
	LineTotal       decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"line_total"`
	CashBackPercent decimal.Decimal `gorm:"type:decimal(10,4);not null" json:"cash_back_percent"`
}

// BeforeCreate generates a UUID before creating a new invoice item
func (it *InvoiceItem) BeforeCreate(tx *gorm.DB) error {
	if it.ID == uuid.Nil {
		it.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InvoiceItem model
func (InvoiceItem) TableName() string {
	return "invoice_items"
}

// InvoiceTax is the tax bucket snapshot of an invoice
type InvoiceTax struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID uuid.UUID       `gorm:"type:uuid;not null;index" json:"invoice_id"`
	TaxType   string          `gorm:"size:100;not null" json:"tax_type"`
	Amount    decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"amount"`
}

// BeforeCreate generates a UUID before creating a new invoice tax
func (t *InvoiceTax) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InvoiceTax model
func (InvoiceTax) TableName() string {
	return "invoice_taxes"
}

// InvoiceDiscount is one applied discount instrument
type InvoiceDiscount struct {
	ID           uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID    uuid.UUID         `gorm:"type:uuid;not null;index" json:"invoice_id"`
	Kind         enum.DiscountKind `gorm:"size:20;not null" json:"kind"`
	Code         *string           `gorm:"size:100" json:"code,omitempty"`
	InstrumentID *uuid.UUID        `gorm:"type:uuid;index" json:"instrument_id,omitempty"`
	Amount       decimal.Decimal   `gorm:"type:decimal(20,4);not null" json:"amount"`
	PointsUsed   int64             `gorm:"not null;default:0" json:"points_used,omitempty"`
}

// BeforeCreate generates a UUID before creating a new invoice discount
func (d *InvoiceDiscount) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InvoiceDiscount model
func (InvoiceDiscount) TableName() string {
	return "invoice_discounts"
}

// InvoiceTender is a payment made against an invoice. Retained is what stays
// in the drawer once change has been handed back.
type InvoiceTender struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"invoice_id"`
	Position        int             `gorm:"not null" json:"position"`
	PaymentModeID   uuid.UUID       `gorm:"type:uuid;not null" json:"payment_mode_id"`
	PaymentModeName string          `gorm:"size:100" json:"payment_mode_name"`
	IsCash          bool            `gorm:"not null" json:"is_cash"`
	Amount          decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"amount"`
	Retained        decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"retained"`
}

// BeforeCreate generates a UUID before creating a new invoice tender
func (t *InvoiceTender) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InvoiceTender model
func (InvoiceTender) TableName() string {
	return "invoice_tenders"
}
