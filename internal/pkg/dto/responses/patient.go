package responses

import "clinic-ledger-service/internal/app/models"

// PatientDetail is a patient together with the package currently funding
// their sessions, if any.
type PatientDetail struct {
	models.Patient
	ActivePackage *models.Package `json:"active_package,omitempty"`
}
