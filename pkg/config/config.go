package config

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App     AppConfig
	Catalog CatalogConfig
	Storage StorageConfig
	DB      DBConfig
	Redis   RedisConfig
	Relay   RelayConfig
	Locale  LocaleConfig
	CORS    CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STOREFRONT_APP_ENV" default:"dev"`
	Port         string `envconfig:"STOREFRONT_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"STOREFRONT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STOREFRONT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type CatalogConfig struct {
	// Source is either an http(s) URL or a local file path.
	Source           string        `envconfig:"STOREFRONT_CATALOG_SOURCE" default:"./data/products.json"`
	FetchTimeout     time.Duration `envconfig:"STOREFRONT_CATALOG_FETCH_TIMEOUT" default:"10s"`
	EmbeddedFallback bool          `envconfig:"STOREFRONT_CATALOG_EMBEDDED_FALLBACK" default:"true"`
	PromotionLimit   int           `envconfig:"STOREFRONT_CATALOG_PROMOTION_LIMIT" default:"8"`
	// Seed is an inline catalog document tried before Source.
	Seed string `envconfig:"STOREFRONT_CATALOG_SEED"`
}

// IsRemote reports whether the catalog resource is fetched over HTTP.
func (c CatalogConfig) IsRemote() bool {
	src := strings.ToLower(strings.TrimSpace(c.Source))
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

type StorageConfig struct {
	Driver    string `envconfig:"STOREFRONT_STORAGE_DRIVER" default:"file"`
	Dir       string `envconfig:"STOREFRONT_STORAGE_DIR" default:"./var/storage"`
	Namespace string `envconfig:"STOREFRONT_CART_NAMESPACE" default:"yarotec_cart_v1"`
}

type DBConfig struct {
	DSN             string        `envconfig:"STOREFRONT_DB_DSN"`
	MaxOpenConns    int           `envconfig:"STOREFRONT_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"STOREFRONT_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"STOREFRONT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"STOREFRONT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
	AutoMigrate     bool          `envconfig:"STOREFRONT_DB_AUTO_MIGRATE" default:"true"`
}

type RedisConfig struct {
	URL          string        `envconfig:"STOREFRONT_REDIS_URL"`
	Address      string        `envconfig:"STOREFRONT_REDIS_ADDR"`
	Password     string        `envconfig:"STOREFRONT_REDIS_PASSWORD"`
	DB           int           `envconfig:"STOREFRONT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STOREFRONT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STOREFRONT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STOREFRONT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type RelayConfig struct {
	Driver     string        `envconfig:"STOREFRONT_RELAY_DRIVER" default:"log"`
	Timeout    time.Duration `envconfig:"STOREFRONT_RELAY_TIMEOUT" default:"10s"`
	OwnerEmail string        `envconfig:"STOREFRONT_RELAY_OWNER_EMAIL"`

	EmailJSEndpoint        string `envconfig:"STOREFRONT_EMAILJS_ENDPOINT" default:"https://api.emailjs.com/api/v1.0/email/send"`
	EmailJSServiceID       string `envconfig:"STOREFRONT_EMAILJS_SERVICE_ID"`
	EmailJSOwnerTemplateID string `envconfig:"STOREFRONT_EMAILJS_OWNER_TEMPLATE_ID"`
	EmailJSReplyTemplateID string `envconfig:"STOREFRONT_EMAILJS_REPLY_TEMPLATE_ID"`
	EmailJSPublicKey       string `envconfig:"STOREFRONT_EMAILJS_PUBLIC_KEY"`
	EmailJSPrivateKey      string `envconfig:"STOREFRONT_EMAILJS_PRIVATE_KEY"`

	SMTPHost     string `envconfig:"STOREFRONT_SMTP_HOST"`
	SMTPPort     int    `envconfig:"STOREFRONT_SMTP_PORT" default:"587"`
	SMTPUser     string `envconfig:"STOREFRONT_SMTP_USER"`
	SMTPPassword string `envconfig:"STOREFRONT_SMTP_PASSWORD"`
	FromEmail    string `envconfig:"STOREFRONT_SMTP_FROM_EMAIL"`
	FromName     string `envconfig:"STOREFRONT_SMTP_FROM_NAME" default:"Yarotec"`
}

type LocaleConfig struct {
	Tag            string `envconfig:"STOREFRONT_LOCALE" default:"es-CO"`
	CurrencySymbol string `envconfig:"STOREFRONT_CURRENCY_SYMBOL" default:"$"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"STOREFRONT_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

func (c *Config) validate() error {
	driver := strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	c.Storage.Driver = driver
	switch driver {
	case StorageDriverFile, StorageDriverMemory:
	case StorageDriverSQLite, StorageDriverPostgres:
		if c.DB.DSN == "" {
			return fmt.Errorf("%s is required for storage driver %q", EnvDBDSN, driver)
		}
	case StorageDriverRedis:
		if c.Redis.URL == "" && c.Redis.Address == "" {
			return fmt.Errorf("either %s or %s is required for storage driver %q", EnvRedisURL, EnvRedisAddr, driver)
		}
	default:
		return fmt.Errorf("unsupported storage driver %q", c.Storage.Driver)
	}

	relay := strings.ToLower(strings.TrimSpace(c.Relay.Driver))
	c.Relay.Driver = relay
	missing := []string{}
	switch relay {
	case RelayDriverLog:
	case RelayDriverEmailJS:
		for env, val := range map[string]string{
			EnvEmailJSServiceID:     c.Relay.EmailJSServiceID,
			EnvEmailJSOwnerTemplate: c.Relay.EmailJSOwnerTemplateID,
			EnvEmailJSPublicKey:     c.Relay.EmailJSPublicKey,
			EnvRelayOwnerEmail:      c.Relay.OwnerEmail,
		} {
			if val == "" {
				missing = append(missing, env)
			}
		}
	case RelayDriverSMTP:
		for env, val := range map[string]string{
			EnvSMTPHost:        c.Relay.SMTPHost,
			EnvSMTPFromEmail:   c.Relay.FromEmail,
			EnvRelayOwnerEmail: c.Relay.OwnerEmail,
		} {
			if val == "" {
				missing = append(missing, env)
			}
		}
	default:
		return fmt.Errorf("unsupported relay driver %q", c.Relay.Driver)
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("relay driver %q requires %s", relay, strings.Join(missing, ", "))
	}

	if c.Catalog.PromotionLimit <= 0 {
		c.Catalog.PromotionLimit = DefaultPromotionLimit
	}
	return nil
}
