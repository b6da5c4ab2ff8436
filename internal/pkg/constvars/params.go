package constvars

const (
	QueryParamsPage        = "page"
	QueryParamsPageSize    = "page_size"
	QueryParamsStatus      = "status"
	QueryParamsFrom        = "from"
	QueryParamsTo          = "to"
	QueryParamsGranularity = "granularity"
	QueryParamsActiveOnly  = "active_only"
)

const (
	URLParamPatientID = "patient_id"
	URLParamDoctorID  = "doctor_id"
	URLParamPackageID = "package_id"
	URLParamSessionID = "session_id"
	URLParamPaymentID = "payment_id"
)
