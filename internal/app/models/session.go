package models

import "time"

type Session struct {
	ID          string    `json:"id"`
	PatientID   string    `json:"patient_id"`
	DoctorID    *string   `json:"doctor_id,omitempty"`
	PackageID   *string   `json:"package_id,omitempty"`
	SessionDate time.Time `json:"session_date"`
	Shift       *string   `json:"shift,omitempty"`
	VisitType   *string   `json:"visit_type,omitempty"`
	Remarks     *string   `json:"remarks,omitempty"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}
