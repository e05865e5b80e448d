package domain

import "time"

// Payment methods
const (
	PaymentCash         = "CASH"
	PaymentBankTransfer = "BANK_TRANSFER"
	PaymentCheck        = "CHECK"
	PaymentOther        = "OTHER"
)

// RentPayment is a received rent payment from a tenant
type RentPayment struct {
	ID            int64
	TenantID      int64
	Amount        float64
	PaymentDate   time.Time
	PaymentMethod string
	Notes         string
}

// IsLate reports whether the payment landed after the 5th of its month
func (p *RentPayment) IsLate() bool {
	return p.PaymentDate.Day() > 5
}

// RentPaymentDate is an append-only schedule log entry for a property,
// independent of the RentPayment ledger
type RentPaymentDate struct {
	ID          int64
	PropertyID  string
	PaymentDate time.Time
	Amount      float64
	Status      string
}

// PaymentRepository defines data access for rent payments and the
// payment-schedule log
type PaymentRepository interface {
	Save(p *RentPayment) error
	ListForTenant(tenantID int64) ([]*RentPayment, error)
	LogPaymentDate(propertyID string, date time.Time, amount float64, status string) error
	PaymentDates(propertyID string) ([]*RentPaymentDate, error)
}
