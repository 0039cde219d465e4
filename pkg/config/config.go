package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	Backend      BackendConfig
	Redis        RedisConfig
	Identity     IdentityConfig
	Cart         CartConfig
	Cache        CacheConfig
	Connectivity ConnectivityConfig
	CORS         CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SECONDBOWL_APP_ENV" required:"true"`
	Port         string `envconfig:"SECONDBOWL_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SECONDBOWL_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SECONDBOWL_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// BackendConfig locates the remote order/profile/role service.
type BackendConfig struct {
	BaseURL string        `envconfig:"SECONDBOWL_BACKEND_BASE_URL" required:"true"`
	Timeout time.Duration `envconfig:"SECONDBOWL_BACKEND_TIMEOUT" default:"15s"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SECONDBOWL_REDIS_URL" required:"true"`
	Address      string        `envconfig:"SECONDBOWL_REDIS_ADDR"`
	Password     string        `envconfig:"SECONDBOWL_REDIS_PASSWORD"`
	DB           int           `envconfig:"SECONDBOWL_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SECONDBOWL_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SECONDBOWL_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SECONDBOWL_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SECONDBOWL_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SECONDBOWL_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// IdentityConfig controls verification of tokens minted by the external
// identity provider. The provider itself is not part of this service.
type IdentityConfig struct {
	JWTSecret string `envconfig:"SECONDBOWL_IDENTITY_JWT_SECRET" required:"true"`
	Issuer    string `envconfig:"SECONDBOWL_IDENTITY_ISSUER" required:"true"`
}

type CartConfig struct {
	IdleTTL         time.Duration `envconfig:"SECONDBOWL_CART_IDLE_TTL" default:"6h"`
	JanitorInterval time.Duration `envconfig:"SECONDBOWL_CART_JANITOR_INTERVAL" default:"15m"`
}

type CacheConfig struct {
	OrderListTTL   time.Duration `envconfig:"SECONDBOWL_CACHE_ORDER_LIST_TTL" default:"1m"`
	OrderDetailTTL time.Duration `envconfig:"SECONDBOWL_CACHE_ORDER_DETAIL_TTL" default:"1m"`
	RoleTTL        time.Duration `envconfig:"SECONDBOWL_CACHE_ROLE_TTL" default:"5m"`
	ProfileTTL     time.Duration `envconfig:"SECONDBOWL_CACHE_PROFILE_TTL" default:"5m"`
}

type ConnectivityConfig struct {
	Interval   time.Duration `envconfig:"SECONDBOWL_CONNECTIVITY_INTERVAL" default:"30s"`
	Attempts   int           `envconfig:"SECONDBOWL_CONNECTIVITY_ATTEMPTS" default:"3"`
	RetryDelay time.Duration `envconfig:"SECONDBOWL_CONNECTIVITY_RETRY_DELAY" default:"1s"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"SECONDBOWL_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}
