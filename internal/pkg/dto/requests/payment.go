package requests

import "github.com/shopspring/decimal"

type RecordPayment struct {
	PatientID   string          `json:"patient_id" validate:"required,uuid"`
	SessionID   *string         `json:"session_id" validate:"omitempty,uuid"`
	AmountPaid  decimal.Decimal `json:"amount_paid" validate:"positive_money"`
	PaymentMode string          `json:"payment_mode" validate:"required,oneof=cash card upi"`
	PaymentDate *string         `json:"payment_date" validate:"omitempty,datetime=2006-01-02"`
	Remarks     *string         `json:"remarks" validate:"omitempty,max=500"`
	CreatedBy   string          `json:"-"`
}

// UpdatePayment is an administrative correction. It never re-runs the
// session allocation that happened when the payment was recorded.
type UpdatePayment struct {
	AmountPaid  *decimal.Decimal `json:"amount_paid" validate:"omitempty,positive_money"`
	PaymentMode *string          `json:"payment_mode" validate:"omitempty,oneof=cash card upi"`
	PaymentDate *string          `json:"payment_date" validate:"omitempty,datetime=2006-01-02"`
	Remarks     *string          `json:"remarks" validate:"omitempty,max=500"`
}
