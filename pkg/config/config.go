package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	Pricing      PricingConfig
	FeatureFlags FeatureFlagsConfig
	GCP          GCPConfig
	PubSub       PubSubConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.FeatureFlags.UseSQLite {
		cfg.DB.Driver = "sqlite"
		if cfg.DB.DSN == "" {
			cfg.DB.DSN = "file:threadz.db?cache=shared"
		}
		return &cfg, nil
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"THREADZ_APP_ENV" required:"true"`
	Port         string `envconfig:"THREADZ_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"THREADZ_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"THREADZ_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"THREADZ_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"THREADZ_DB_DSN"`
	Driver string `envconfig:"THREADZ_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"THREADZ_DB_HOST"`
	LegacyPort     int    `envconfig:"THREADZ_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"THREADZ_DB_USER"`
	LegacyPassword string `envconfig:"THREADZ_DB_PASSWORD"`
	LegacyName     string `envconfig:"THREADZ_DB_NAME"`
	LegacySSLMode  string `envconfig:"THREADZ_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"THREADZ_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"THREADZ_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"THREADZ_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"THREADZ_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"THREADZ_REDIS_URL" required:"true"`
	Address      string        `envconfig:"THREADZ_REDIS_ADDR"`
	Password     string        `envconfig:"THREADZ_REDIS_PASSWORD"`
	DB           int           `envconfig:"THREADZ_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"THREADZ_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"THREADZ_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"THREADZ_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"THREADZ_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"THREADZ_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// PricingConfig controls how the resolver tags computed prices.
type PricingConfig struct {
	DefaultCurrency string `envconfig:"THREADZ_PRICING_DEFAULT_CURRENCY" default:"USD"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"THREADZ_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"THREADZ_AUTO_MIGRATE" default:"false"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"THREADZ_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"THREADZ_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"THREADZ_GOOGLE_APPLICATION_CREDENTIALS"`
}

type PubSubConfig struct {
	CatalogTopic        string `envconfig:"THREADZ_PUBSUB_CATALOG_TOPIC" default:"threadz-catalog-events"`
	CatalogSubscription string `envconfig:"THREADZ_PUBSUB_CATALOG_SUBSCRIPTION"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
