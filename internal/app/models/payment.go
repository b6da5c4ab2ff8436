package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is one money-received event. RemainingAmount is the patient's
// outstanding balance right after this payment and is never recomputed.
type Payment struct {
	ID              string          `json:"id"`
	PatientID       string          `json:"patient_id"`
	SessionID       *string         `json:"session_id,omitempty"`
	PackageID       *string         `json:"package_id,omitempty"`
	AmountPaid      decimal.Decimal `json:"amount_paid"`
	PaymentMode     string          `json:"payment_mode"`
	PaymentDate     time.Time       `json:"payment_date"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	Remarks         *string         `json:"remarks,omitempty"`
	CreatedBy       string          `json:"created_by"`
	TimeModel
}

// PaymentResult is a recorded payment together with what it released.
type PaymentResult struct {
	Payment          *Payment `json:"payment"`
	Package          *Package `json:"package,omitempty"`
	SessionsReleased int      `json:"sessions_released"`
}
