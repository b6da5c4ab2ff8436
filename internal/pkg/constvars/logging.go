package constvars

const (
	LoggingRequestIDKey      = "request_id"
	LoggingEndpointKey       = "endpoint"
	LoggingMethodKey         = "method"
	LoggingRemoteAddrKey     = "remote_addr"
	LoggingUserAgentKey      = "user_agent"
	LoggingQueryKey          = "query"
	LoggingStatusCodeKey     = "status_code"
	LoggingDurationKey       = "duration"
	LoggingSuccessKey        = "success"
	LoggingErrorTypeKey      = "error_type"
	LoggingAttemptKey        = "attempt"
	LoggingUserIDKey         = "user_id"
	LoggingRoleKey           = "role"
	LoggingPatientIDKey      = "patient_id"
	LoggingDoctorIDKey       = "doctor_id"
	LoggingPackageIDKey      = "package_id"
	LoggingSessionIDKey      = "session_id"
	LoggingPaymentIDKey      = "payment_id"
	LoggingPatientStatusKey  = "patient_status"
	LoggingPackageStatusKey  = "package_status"
	LoggingReleasedKey       = "released_sessions"
	LoggingUsedKey           = "used_sessions"
	LoggingAmountKey         = "amount"
	LoggingReportSectionKey  = "report_section"
	LoggingEventTypeKey      = "event_type"
	LoggingQueueKey          = "queue"
	LoggingRedisKey          = "redis_key"
	LoggingLockValueKey      = "lock_value"
	LoggingLockExpirationKey = "lock_expiration"
	LoggingObjectNameKey     = "object_name"
	LoggingResponseLengthKey = "response_length"
)
