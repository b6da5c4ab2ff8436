package config

import (
	"clinic-ledger-service/internal/pkg/utils"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		PostgresDB: PostgresDB{
			Host:            utils.GetEnvString("POSTGRES_HOST", "localhost"),
			Port:            utils.GetEnvString("POSTGRES_PORT", "5432"),
			Username:        utils.GetEnvString("POSTGRES_USERNAME", "postgres"),
			Password:        utils.GetEnvString("POSTGRES_PASSWORD", "postgres"),
			DBName:          utils.GetEnvString("POSTGRES_DB_NAME", "clinic_ledger"),
			SSLMode:         utils.GetEnvString("POSTGRES_SSL_MODE", "disable"),
			MaxOpenConns:    utils.GetEnvInt("POSTGRES_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    utils.GetEnvInt("POSTGRES_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: utils.GetEnvInt("POSTGRES_CONN_MAX_LIFETIME_IN_MINUTES", 30),
		},
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			Username: utils.GetEnvString("MONGODB_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MONGODB_PASSWORD", "defaultPassword"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
		Minio: Minio{
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Host:     utils.GetEnvString("MINIO_HOST", "localhost"),
			Username: utils.GetEnvString("MINIO_USERNAME", "minioadmin"),
			Password: utils.GetEnvString("MINIO_PASSWORD", "minioadmin"),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
		},
	}
}

// internalDefaults maps every InternalConfig key to its default. Each key is
// also read from the environment as its upper-cased, underscore-joined
// form, e.g. app.endpoint_prefix from APP_ENDPOINT_PREFIX.
var internalDefaults = map[string]interface{}{
	"app.env":                            "development",
	"app.port":                           ":8080",
	"app.version":                        "v1",
	"app.address":                        "localhost",
	"app.base_url":                       "http://localhost:8080",
	"app.timezone":                       "Asia/Kolkata",
	"app.endpoint_prefix":                "api",
	"app.max_requests":                   100,
	"app.shutdown_timeout_in_seconds":    10,
	"app.max_time_requests_per_seconds":  60,
	"app.request_timeout_in_seconds":     30,
	"app.request_body_limit_in_megabyte": 2,
	"app.cors_allowed_origins":           "*",
	"app.migrate_on_start":               false,

	"jwt.secret": "",
	"jwt.issuer": "",

	"ledger.tx_max_attempts":                3,
	"ledger.reconciler_cron_spec":           "@daily",
	"ledger.reconciler_lock_ttl_in_seconds": 60,
	"ledger.reconciler_timeout_in_minutes":  30,
	"ledger.activity_timeout_in_seconds":    5,

	"report.export_rate_limit_per_minute": 6,
	"report.export_rate_limit_burst":      2,

	"minio.bucket_name":                             "clinic-reports",
	"minio.pre_signed_url_object_expiry_in_minutes": 60,

	"rabbitmq.ledger_events_queue": "ledger_events",

	"mongodb.db_name":          "clinic_ledger",
	"mongodb.audit_collection": "ledger_audit",
}

func NewInternalConfig() *InternalConfig {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, value := range internalDefaults {
		v.SetDefault(key, value)
	}

	var internalConfig InternalConfig
	if err := v.Unmarshal(&internalConfig); err != nil {
		log.Fatalf("Failed to load internal config: %s", err.Error())
	}
	return &internalConfig
}
