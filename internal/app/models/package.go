package models

import (
	"clinic-ledger-service/internal/pkg/constvars"
	"time"

	"github.com/shopspring/decimal"
)

type Package struct {
	ID               string          `json:"id"`
	PatientID        string          `json:"patient_id"`
	AssignedDoctorID *string         `json:"assigned_doctor_id,omitempty"`
	VisitType        *string         `json:"visit_type,omitempty"`
	OriginalAmount   decimal.Decimal `json:"original_amount"`
	DiscountAmount   decimal.Decimal `json:"discount_amount"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	TotalSessions    int             `json:"total_sessions"`
	PerSessionAmount decimal.Decimal `json:"per_session_amount"`
	ReleasedSessions int             `json:"released_sessions"`
	UsedSessions     int             `json:"used_sessions"`
	CarryAmount      decimal.Decimal `json:"carry_amount"`
	ExcessAmount     decimal.Decimal `json:"excess_amount"`
	Status           string          `json:"status"`
	StartDate        time.Time       `json:"start_date"`
	EndDate          *time.Time      `json:"end_date,omitempty"`
	ClosedAt         *time.Time      `json:"closed_at,omitempty"`
	ClosedBy         *string         `json:"closed_by,omitempty"`
	CloseReason      *string         `json:"close_reason,omitempty"`
	TimeModel
}

func (p *Package) IsActive() bool {
	return p.Status == constvars.PackageStatusActive
}

func (p *Package) IsTerminal() bool {
	return p.Status == constvars.PackageStatusCompleted || p.Status == constvars.PackageStatusClosed
}

// MarkTerminal moves the package to status and stamps the closing fields.
func (p *Package) MarkTerminal(status string, now time.Time, closedBy, reason *string) {
	p.Status = status
	p.ClosedAt = &now
	p.EndDate = &now
	p.ClosedBy = closedBy
	p.CloseReason = reason
	p.UpdatedAt = now
}
