package config

type InternalConfig struct {
	App      App         `mapstructure:"app"`
	JWT      AppJWT      `mapstructure:"jwt"`
	Ledger   AppLedger   `mapstructure:"ledger"`
	Report   AppReport   `mapstructure:"report"`
	Minio    AppMinio    `mapstructure:"minio"`
	RabbitMQ AppRabbitMQ `mapstructure:"rabbitmq"`
	MongoDB  AppMongoDB  `mapstructure:"mongodb"`
}

type App struct {
	Env                        string `mapstructure:"env"`
	Port                       string `mapstructure:"port"`
	Version                    string `mapstructure:"version"`
	Address                    string `mapstructure:"address"`
	BaseUrl                    string `mapstructure:"base_url"`
	Timezone                   string `mapstructure:"timezone"`
	EndpointPrefix             string `mapstructure:"endpoint_prefix"`
	MaxRequests                int    `mapstructure:"max_requests"`
	ShutdownTimeoutInSeconds   int    `mapstructure:"shutdown_timeout_in_seconds"`
	MaxTimeRequestsPerSeconds  int    `mapstructure:"max_time_requests_per_seconds"`
	RequestTimeoutInSeconds    int    `mapstructure:"request_timeout_in_seconds"`
	RequestBodyLimitInMegabyte int    `mapstructure:"request_body_limit_in_megabyte"`
	CorsAllowedOrigins         string `mapstructure:"cors_allowed_origins"`
	MigrateOnStart             bool   `mapstructure:"migrate_on_start"`
}

type AppJWT struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

type AppLedger struct {
	// TxMaxAttempts bounds how often a transaction is replayed after a
	// serialization failure or deadlock.
	TxMaxAttempts int `mapstructure:"tx_max_attempts"`
	// ReconcilerCronSpec schedules the patient status reconciliation, e.g. "@daily".
	ReconcilerCronSpec         string `mapstructure:"reconciler_cron_spec"`
	ReconcilerLockTTLInSeconds int    `mapstructure:"reconciler_lock_ttl_in_seconds"`
	ReconcilerTimeoutInMinutes int    `mapstructure:"reconciler_timeout_in_minutes"`
	ActivityTimeoutInSeconds   int    `mapstructure:"activity_timeout_in_seconds"`
}

type AppReport struct {
	ExportRateLimitPerMinute int `mapstructure:"export_rate_limit_per_minute"`
	ExportRateLimitBurst     int `mapstructure:"export_rate_limit_burst"`
}

type AppMinio struct {
	BucketName                        string `mapstructure:"bucket_name"`
	PreSignedUrlObjectExpiryInMinutes int    `mapstructure:"pre_signed_url_object_expiry_in_minutes"`
}

type AppRabbitMQ struct {
	LedgerEventsQueue string `mapstructure:"ledger_events_queue"`
}

type AppMongoDB struct {
	DBName          string `mapstructure:"db_name"`
	AuditCollection string `mapstructure:"audit_collection"`
}
