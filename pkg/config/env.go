package config

const (
	EnvPrefix = "SECONDBOWL"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv         = "SECONDBOWL_APP_ENV"
	EnvPort           = "SECONDBOWL_APP_PORT"
	EnvBackendBaseURL = "SECONDBOWL_BACKEND_BASE_URL"
	EnvRedisURL       = "SECONDBOWL_REDIS_URL"
	EnvIdentitySecret = "SECONDBOWL_IDENTITY_JWT_SECRET"
	EnvIdentityIssuer = "SECONDBOWL_IDENTITY_ISSUER"
)
