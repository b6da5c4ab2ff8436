package responses

import (
	"time"

	"github.com/shopspring/decimal"
)

type Dashboard struct {
	TotalPatients      int             `json:"total_patients"`
	ActivePatients     int             `json:"active_patients"`
	NoPackagePatients  int             `json:"no_package_patients"`
	DischargedPatients int             `json:"discharged_patients"`
	TotalDoctors       int             `json:"total_doctors"`
	ActivePackages     int             `json:"active_packages"`
	SessionsToday      int             `json:"sessions_today"`
	Revenue            RevenueSummary  `json:"revenue"`
	PendingAmount      decimal.Decimal `json:"pending_amount"`
}

type RevenueSummary struct {
	AllTime   decimal.Decimal `json:"all_time"`
	Today     decimal.Decimal `json:"today"`
	ThisMonth decimal.Decimal `json:"this_month"`
}

type DoctorStat struct {
	DoctorID     string          `json:"doctor_id"`
	DoctorName   string          `json:"doctor_name"`
	PatientCount int             `json:"patient_count"`
	SessionCount int             `json:"session_count"`
	Revenue      decimal.Decimal `json:"revenue"`
}

type PaymentModeRevenue struct {
	PaymentMode  string          `json:"payment_mode"`
	PaymentCount int             `json:"payment_count"`
	Total        decimal.Decimal `json:"total"`
}

type RevenuePoint struct {
	Period       time.Time       `json:"period"`
	PaymentCount int             `json:"payment_count"`
	Total        decimal.Decimal `json:"total"`
}

type RevenueSeries struct {
	Granularity string          `json:"granularity"`
	From        time.Time       `json:"from"`
	To          time.Time       `json:"to"`
	Points      []RevenuePoint  `json:"points"`
	Total       decimal.Decimal `json:"total"`
}

type PendingPayment struct {
	PatientID     string          `json:"patient_id"`
	PatientName   string          `json:"patient_name"`
	Phone         string          `json:"phone"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	PendingAmount decimal.Decimal `json:"pending_amount"`
}

type ReportExport struct {
	ObjectName string    `json:"object_name"`
	URL        string    `json:"url"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// RevenueReport is the data behind an exported revenue workbook.
type RevenueReport struct {
	GeneratedAt time.Time            `json:"generated_at"`
	Series      RevenueSeries        `json:"series"`
	ByMode      []PaymentModeRevenue `json:"by_mode"`
	Doctors     []DoctorStat         `json:"doctors"`
}
