package config

// EnvPrefix is the envconfig prefix shared by every THREADZ_ variable.
const EnvPrefix = "threadz"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv   = "THREADZ_APP_ENV"
	EnvPort     = "THREADZ_APP_PORT"
	EnvDBDSN    = "THREADZ_DB_DSN"
	EnvDBHost   = "THREADZ_DB_HOST"
	EnvDBUser   = "THREADZ_DB_USER"
	EnvDBName   = "THREADZ_DB_NAME"
	EnvRedisURL = "THREADZ_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
