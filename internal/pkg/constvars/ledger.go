package constvars

const (
	PackageStatusActive    = "active"
	PackageStatusCompleted = "completed"
	PackageStatusClosed    = "closed"
)

const (
	PatientStatusActive     = "active"
	PatientStatusNoPackage  = "no_package"
	PatientStatusDischarged = "discharged"
)

const (
	PaymentModeCash = "cash"
	PaymentModeCard = "card"
	PaymentModeUPI  = "upi"
)

const (
	VisitTypeClinic = "clinic"
	VisitTypeHome   = "home"
)

const (
	ReportGranularityDay   = "day"
	ReportGranularityMonth = "month"
	ReportGranularityYear  = "year"
)

// Amounts entered by users keep two decimal places. per_session_amount,
// carry_amount and excess_amount are derived from a division and keep six;
// their columns are NUMERIC(18, 6) so a stored package matches the ledger.
const (
	MoneyScale      int32 = 2
	PerSessionScale int32 = 6
)

const (
	EventPaymentRecorded  = "payment.recorded"
	EventSessionRecorded  = "session.recorded"
	EventPackageCreated   = "package.created"
	EventPackageCompleted = "package.completed"
	EventPackageClosed    = "package.closed"
	EventPackageDeleted   = "package.deleted"
)

const (
	ReconcilerLeaderLockKey  = "ledger:reconciler:leader"
	ReportExportObjectPrefix = "reports/revenue"
)
