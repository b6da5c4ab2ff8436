package requests

import "github.com/shopspring/decimal"

type CreatePackage struct {
	PatientID        string           `json:"patient_id" validate:"required,uuid"`
	OriginalAmount   decimal.Decimal  `json:"original_amount" validate:"money"`
	DiscountAmount   *decimal.Decimal `json:"discount_amount" validate:"omitempty,money"`
	TotalSessions    int              `json:"total_sessions" validate:"required,gte=1"`
	AssignedDoctorID *string          `json:"assigned_doctor_id" validate:"omitempty,uuid"`
	VisitType        *string          `json:"visit_type" validate:"omitempty,oneof=clinic home"`
}

type UpdatePackage struct {
	OriginalAmount   *decimal.Decimal `json:"original_amount" validate:"omitempty,money"`
	DiscountAmount   *decimal.Decimal `json:"discount_amount" validate:"omitempty,money"`
	TotalSessions    *int             `json:"total_sessions" validate:"omitempty,gte=1"`
	AssignedDoctorID *string          `json:"assigned_doctor_id" validate:"omitempty,uuid"`
	VisitType        *string          `json:"visit_type" validate:"omitempty,oneof=clinic home"`
	Status           *string          `json:"status" validate:"omitempty,oneof=active completed closed"`
	Reason           *string          `json:"reason" validate:"omitempty,max=500"`
	UpdatedBy        string           `json:"-"`
}

// HasFinancialChange reports whether any field feeding total_amount or
// per_session_amount is present.
func (r *UpdatePackage) HasFinancialChange() bool {
	return r.OriginalAmount != nil || r.DiscountAmount != nil || r.TotalSessions != nil
}

type ClosePackage struct {
	Status   string  `json:"status" validate:"required,oneof=completed closed"`
	Reason   *string `json:"reason" validate:"omitempty,max=500"`
	ClosedBy string  `json:"-"`
}
