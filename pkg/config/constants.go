package config

const (
	EnvPrefix = "SUBTRACK"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv           = "SUBTRACK_APP_ENV"
	EnvPort             = "SUBTRACK_APP_PORT"
	EnvNotionToken      = "SUBTRACK_NOTION_TOKEN"
	EnvNotionDatabaseID = "SUBTRACK_NOTION_DATABASE_ID"
	EnvRedisURL         = "SUBTRACK_REDIS_URL"
)
