package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "aufmass"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "AUFMASS_DB_DSN"
	EnvDBHost = "AUFMASS_DB_HOST"
	EnvDBUser = "AUFMASS_DB_USER"
	EnvDBName = "AUFMASS_DB_NAME"
)

var requiredLegacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Catalog      CatalogConfig
	Signature    SignatureConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"AUFMASS_APP_ENV" required:"true"`
	Port         string `envconfig:"AUFMASS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"AUFMASS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"AUFMASS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"AUFMASS_DB_DSN"`
	Driver string `envconfig:"AUFMASS_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"AUFMASS_DB_HOST"`
	LegacyPort     int    `envconfig:"AUFMASS_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"AUFMASS_DB_USER"`
	LegacyPassword string `envconfig:"AUFMASS_DB_PASSWORD"`
	LegacyName     string `envconfig:"AUFMASS_DB_NAME"`
	LegacySSLMode  string `envconfig:"AUFMASS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"AUFMASS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"AUFMASS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"AUFMASS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"AUFMASS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"AUFMASS_REDIS_URL" required:"true"`
	Address      string        `envconfig:"AUFMASS_REDIS_ADDR"`
	Password     string        `envconfig:"AUFMASS_REDIS_PASSWORD"`
	DB           int           `envconfig:"AUFMASS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"AUFMASS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"AUFMASS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"AUFMASS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"AUFMASS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"AUFMASS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"AUFMASS_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"AUFMASS_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"AUFMASS_JWT_EXPIRATION_MINUTES" default:"480"`
}

type CatalogConfig struct {
	CacheTTL time.Duration `envconfig:"AUFMASS_CATALOG_CACHE_TTL" default:"15m"`
}

// SignatureConfig holds credentials for the e-signature provider.
type SignatureConfig struct {
	Provider string `envconfig:"AUFMASS_SIGNATURE_PROVIDER" default:"docuseal"`
	APIKey   string `envconfig:"AUFMASS_SIGNATURE_API_KEY"`
	BaseURL  string `envconfig:"AUFMASS_SIGNATURE_BASE_URL"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"AUFMASS_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"AUFMASS_AUTO_MIGRATE" default:"false"`
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
	for _, env := range requiredLegacyDBEnvVars {
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
