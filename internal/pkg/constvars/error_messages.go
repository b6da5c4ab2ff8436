package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":       "is required",
	"numeric":        "must be a number",
	"min":            "must be at least %s",
	"max":            "maximum at %s",
	"len":            "must be %s characters long",
	"oneof":          "must be one of [%s]",
	"gt":             "must be greater than %s",
	"gte":            "must be greater than or equal to %s",
	"lt":             "must be less than %s",
	"lte":            "must be less than or equal to %s",
	"uuid":           "must be a valid UUID",
	"datetime":       "must follow the format %s",
	"phone_number":   "phone number must be 7 to 15 digits with an optional leading +",
	"money":          "must be a non-negative amount with at most 2 decimal places",
	"positive_money": "must be a positive amount with at most 2 decimal places",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":      true,
	"max":      true,
	"len":      true,
	"gt":       true,
	"gte":      true,
	"lt":       true,
	"lte":      true,
	"oneof":    true,
	"datetime": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientTooManyRequests               = "too many requests, please try again later"

	ErrClientPatientNotFound      = "patient not found"
	ErrClientDoctorNotFound       = "doctor not found"
	ErrClientPackageNotFound      = "package not found"
	ErrClientSessionNotFound      = "session not found"
	ErrClientPaymentNotFound      = "payment not found"
	ErrClientNoReleasedSessions   = "No released sessions available"
	ErrClientPackageNotActive     = "package is not active"
	ErrClientPackageAlreadyClosed = "package is already completed or closed"
	ErrClientActivePackageExists  = "patient already has an active package"
	ErrClientInvalidCloseStatus   = "status must be either completed or closed"
	ErrClientInvalidStatusChange  = "package status can only move from active to completed or closed"
	ErrClientPackageNotOwned      = "package does not belong to this patient"
	ErrClientSessionNotOwned      = "session does not belong to this patient"
	ErrClientDiscountExceeds      = "discount amount cannot exceed original amount"
	ErrClientNegativeAmount       = "amounts cannot be negative"
	ErrClientInvalidSessionCount  = "total sessions must be at least 1"
	ErrClientSessionsBelowRelease = "total sessions cannot be lower than released sessions"
	ErrClientAmountNotPositive    = "amount paid must be greater than zero"
	ErrClientAmountScale          = "amount paid must have at most 2 decimal places"
	ErrClientInvalidPaymentMode   = "payment mode must be one of cash, card, upi"
	ErrClientInvalidDateRange     = "start date must not be after end date"
	ErrClientInvalidGranularity   = "granularity must be one of day, month, year"
	ErrClientTerminalPackageEdit  = "completed or closed packages cannot change sessions or amounts"
)

// Error messages for developers
const (
	ErrDevInvalidInput          = "invalid input"
	ErrDevCannotParseJSON       = "cannot parse JSON into struct or other data types"
	ErrDevCannotParseTime       = "cannot parse time into the given format"
	ErrDevCannotMarshalJSON     = "cannot convert struct or other data types to JSON"
	ErrDevEntityNotFound        = "%s with id '%s' not found"
	ErrDevLedgerInvariant       = "ledger invariant rejected the operation"
	ErrDevPackageStateViolation = "package %s is %s"
	ErrDevLifecycleViolation    = "operation violates the package lifecycle"

	// Validation messages
	ErrDevValidationFailed           = "validation failed"
	ErrDevURLParamIDValidationFailed = "parameter %s validation failed"
	ErrDevQueryParamValidationFailed = "query parameter %s validation failed"

	// Authentication messages
	ErrDevAuthSigningMethod         = "unexpected signing method"
	ErrDevAuthTokenInvalidOrExpired = "invalid or expired token"
	ErrDevAuthTokenMissing          = "token missing"
	ErrDevAuthPermissionDenied      = "permission denied"
	ErrDevAuthEnforcer              = "failed to evaluate authorization policy"

	// Database messages
	ErrDevDBFailedToInsertData     = "failed to insert data into database"
	ErrDevDBFailedToUpdateData     = "failed to update data into database"
	ErrDevDBFailedToFindData       = "failed when do find data on database"
	ErrDevDBFailedToDeleteData     = "failed when do delete data on database"
	ErrDevDBFailedToIterateDataset = "failed when iterating dataset from database"
	ErrDevDBFailedToBeginTx        = "failed to begin database transaction"
	ErrDevDBFailedToCommitTx       = "failed to commit database transaction"
	ErrDevDBFailedToInsertDocument = "failed to insert document into database"

	// Minio messages
	ErrDevMinioFailedToCreateObject          = "failed to create object into minio storage with bucket name '%s'"
	ErrDevMinioFailedToGetObjectPresignedURL = "failed to get object URL from minio storage with bucket name '%s'"

	// Redis messages
	ErrDevRedisSetData    = "failed to SET data into redis"
	ErrDevRedisDeleteData = "failed to DELETE data from redis"
	ErrDevRedisExpire     = "failed to EXPIRE key in redis"
	ErrDevRedisUnlock     = "failed to release redis lock"

	// RabbitMQ messages
	ErrDevRabbitMQPublishMessage = "failed to publish message into queue '%s'"

	// Report messages
	ErrDevReportRender = "failed to render report workbook"

	// Server messages
	ErrDevServerProcess          = "server failed to process something related to machine system"
	ErrDevServerDeadlineExceeded = "deadline exceeded"
	ErrDevRequestLimitExceeded   = "request limit exceeded"
)
