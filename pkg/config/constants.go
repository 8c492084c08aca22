package config

const (
	EnvPrefix = "STOREFRONT"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DefaultPromotionLimit = 8

	StorageDriverFile     = "file"
	StorageDriverMemory   = "memory"
	StorageDriverSQLite   = "sqlite"
	StorageDriverPostgres = "postgres"
	StorageDriverRedis    = "redis"

	RelayDriverLog     = "log"
	RelayDriverEmailJS = "emailjs"
	RelayDriverSMTP    = "smtp"
)

const (
	EnvAppEnv               = "STOREFRONT_APP_ENV"
	EnvPort                 = "STOREFRONT_APP_PORT"
	EnvCatalogSource        = "STOREFRONT_CATALOG_SOURCE"
	EnvCatalogSeed          = "STOREFRONT_CATALOG_SEED"
	EnvStorageDriver        = "STOREFRONT_STORAGE_DRIVER"
	EnvDBDSN                = "STOREFRONT_DB_DSN"
	EnvRedisURL             = "STOREFRONT_REDIS_URL"
	EnvRedisAddr            = "STOREFRONT_REDIS_ADDR"
	EnvRelayDriver          = "STOREFRONT_RELAY_DRIVER"
	EnvRelayOwnerEmail      = "STOREFRONT_RELAY_OWNER_EMAIL"
	EnvEmailJSServiceID     = "STOREFRONT_EMAILJS_SERVICE_ID"
	EnvEmailJSOwnerTemplate = "STOREFRONT_EMAILJS_OWNER_TEMPLATE_ID"
	EnvEmailJSPublicKey     = "STOREFRONT_EMAILJS_PUBLIC_KEY"
	EnvSMTPHost             = "STOREFRONT_SMTP_HOST"
	EnvSMTPFromEmail        = "STOREFRONT_SMTP_FROM_EMAIL"
)
