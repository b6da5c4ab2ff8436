package constvars

type ContextKey string

const (
	AppPaginationUrlFormat = "%s?page=%d&page_size=%d"
	AppDefaultPage         = 1
	AppDefaultPageSize     = 20
	AppMaxPageSize         = 100
	AppDateFormat          = "2006-01-02"
)

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_IDENTITY_KEY             ContextKey = "identity"
)

const (
	REQUEST_ID_PREFIX = "CLNC_SVC_"
)

const (
	RoleOwner        = "owner"
	RoleReceptionist = "receptionist"
)

const (
	ResourcePatient = "patient"
	ResourceDoctor  = "doctor"
	ResourcePackage = "package"
	ResourceSession = "session"
	ResourcePayment = "payment"
)
