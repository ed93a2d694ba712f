package config

const (
	EnvPrefix = "STOREFRONT"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	StoreBackendSQL   = "sql"
	StoreBackendMongo = "mongo"

	SessionBackendCookie = "cookie"
	SessionBackendRedis  = "redis"

	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
)

const (
	EnvAppEnv   = "STOREFRONT_APP_ENV"
	EnvPort     = "STOREFRONT_APP_PORT"
	EnvLogLevel = "STOREFRONT_LOG_LEVEL"

	EnvStoreBackend = "STOREFRONT_STORE_BACKEND"

	EnvDBDSN    = "STOREFRONT_DB_DSN"
	EnvDBDriver = "STOREFRONT_DB_DRIVER"
	EnvDBHost   = "STOREFRONT_DB_HOST"
	EnvDBUser   = "STOREFRONT_DB_USER"
	EnvDBName   = "STOREFRONT_DB_NAME"

	EnvMongoURI      = "STOREFRONT_MONGO_URI"
	EnvMongoDatabase = "STOREFRONT_MONGO_DATABASE"

	EnvRedisURL  = "STOREFRONT_REDIS_URL"
	EnvRedisAddr = "STOREFRONT_REDIS_ADDR"

	EnvSessionSecret  = "STOREFRONT_SESSION_SECRET"
	EnvSessionBackend = "STOREFRONT_SESSION_BACKEND"

	EnvSeedCatalog = "STOREFRONT_SEED_CATALOG"
)

var discreteDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
