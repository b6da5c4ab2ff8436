package constvars

const (
	// Generic messages
	ResponseUnknown = "unknown"

	// Patient messages
	PatientCreatedSuccess = "patient registered successfully"
	PatientUpdatedSuccess = "patient updated successfully"
	PatientGetSuccess     = "get patient successfully"
	PatientListSuccess    = "get patients successfully"

	// Doctor messages
	DoctorCreatedSuccess = "doctor registered successfully"
	DoctorUpdatedSuccess = "doctor updated successfully"
	DoctorGetSuccess     = "get doctor successfully"
	DoctorListSuccess    = "get doctors successfully"

	// Package messages
	PackageCreatedSuccess = "package created successfully"
	PackageUpdatedSuccess = "package updated successfully"
	PackageClosedSuccess  = "package closed successfully"
	PackageDeletedSuccess = "package deleted successfully"
	PackageGetSuccess     = "get package successfully"
	PackageListSuccess    = "get packages successfully"

	// Session messages
	SessionCreatedSuccess = "session recorded successfully"
	SessionGetSuccess     = "get session successfully"
	SessionListSuccess    = "get sessions successfully"

	// Payment messages
	PaymentCreatedSuccess = "payment recorded successfully"
	PaymentUpdatedSuccess = "payment updated successfully"
	PaymentGetSuccess     = "get payment successfully"
	PaymentListSuccess    = "get payments successfully"

	// Report messages
	ReportGetSuccess    = "get report successfully"
	ReportExportSuccess = "report exported successfully"
)
