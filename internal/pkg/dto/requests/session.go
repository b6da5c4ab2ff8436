package requests

type RecordSession struct {
	PatientID   string  `json:"patient_id" validate:"required,uuid"`
	DoctorID    *string `json:"doctor_id" validate:"omitempty,uuid"`
	PackageID   *string `json:"package_id" validate:"omitempty,uuid"`
	SessionDate string  `json:"session_date" validate:"required,datetime=2006-01-02"`
	Shift       *string `json:"shift" validate:"omitempty,oneof=morning evening"`
	VisitType   *string `json:"visit_type" validate:"omitempty,oneof=clinic home"`
	Remarks     *string `json:"remarks" validate:"omitempty,max=500"`
	CreatedBy   string  `json:"-"`
}
