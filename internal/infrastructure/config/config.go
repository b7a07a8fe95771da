package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	BackendMongo    = "mongo"
	BackendPostgres = "postgres"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWT       JWTConfig
	Directory DirectoryConfig
	Mongo     MongoConfig
	Postgres  PostgresConfig
	Redis     RedisConfig
	Audit     AuditConfig
}

type JWTConfig struct {
	Secret   string        `env:"JWT_SECRET"`
	Issuer   string        `env:"JWT_ISSUER, default=auth-service"`
	TokenTTL time.Duration `env:"TOKEN_TTL,  default=24h"`
}

type DirectoryConfig struct {
	Backend      string        `env:"DIRECTORY_BACKEND,  default=mongo"`
	CacheEnabled bool          `env:"USER_CACHE_ENABLED, default=true"`
	CacheTTL     time.Duration `env:"USER_CACHE_TTL,     default=5m"`
	BcryptCost   int           `env:"BCRYPT_COST,        default=10"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=auth_service"`
}

type PostgresConfig struct {
	DSN string `env:"POSTGRES_DSN, default=postgres://localhost:5432/auth_service?sslmode=disable"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type AuditConfig struct {
	Enabled bool `env:"AUDIT_ENABLED, default=true"`
	Workers int  `env:"AUDIT_WORKERS, default=4"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// Validate reports settings the server cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if err := c.ValidateDirectory(); err != nil {
		errs = append(errs, err)
	}
	if c.JWT.TokenTTL <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL must be positive"))
	}
	return errors.Join(errs...)
}

// ValidateDirectory checks only the user directory settings, for commands
// that touch the directory without serving tokens.
func (c *Config) ValidateDirectory() error {
	switch c.Directory.Backend {
	case BackendMongo, BackendPostgres:
		return nil
	default:
		return fmt.Errorf("DIRECTORY_BACKEND %q is not one of mongo, postgres", c.Directory.Backend)
	}
}

// UsesMongo reports whether MongoDB is needed, either as the user directory
// or as the audit store.
func (c *Config) UsesMongo() bool {
	return c.Directory.Backend == BackendMongo || c.Audit.Enabled
}
