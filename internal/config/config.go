package config

import "time"

const (
	EnvDev   = "dev"
	EnvProd  = "prod"
	EnvLocal = "local"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

var globalConfig *Config

func Global() *Config {
	return globalConfig
}

func SetGlobal(cfg *Config) {
	globalConfig = cfg
}

type Config struct {
	Env      string `env:"ENV" env-required:"true"`
	HTTP     HTTPConfig
	JWT      JWTConfig
	Argon2   Argon2Config
	Database DatabaseConfig
	Postgres PostgresConfig
	MySQL    MySQLConfig
	Log      LogConfig
	Metrics  MetricsConfig
}

type HTTPConfig struct {
	Host              string        `env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port              string        `env:"HTTP_PORT" env-default:"8080"`
	ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"5s"`
	ShutdownTimeout   time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

type JWTConfig struct {
	Issuer          string        `env:"JWT_ISSUER" env-default:"task-management-system"`
	SigningKey      string        `env:"JWT_SIGNING_KEY" env-required:"true"`
	AccessTokenTTL  time.Duration `env:"JWT_ACCESS_TOKEN_TTL" env-default:"15m"`
	RefreshTokenTTL time.Duration `env:"JWT_REFRESH_TOKEN_TTL" env-default:"720h"`
}

type Argon2Config struct {
	Memory      uint32 `env:"ARGON2_MEMORY" env-default:"65536"`
	Iterations  uint32 `env:"ARGON2_ITERATIONS" env-default:"1"`
	Parallelism uint8  `env:"ARGON2_PARALLELISM" env-default:"2"`
	SaltLength  uint32 `env:"ARGON2_SALT_LENGTH" env-default:"16"`
	KeyLength   uint32 `env:"ARGON2_KEY_LENGTH" env-default:"32"`
}

type DatabaseConfig struct {
	Driver          string        `env:"DB_DRIVER" env-default:"postgres"`
	AutoMigrate     bool          `env:"DB_AUTO_MIGRATE" env-default:"true"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" env-default:"20"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" env-default:"5"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" env-default:"30m"`
	LogLevel        string        `env:"DB_LOG_LEVEL" env-default:"warn"`
	SlowThreshold   time.Duration `env:"DB_SLOW_THRESHOLD" env-default:"200ms"`
	PingTimeout     time.Duration `env:"DB_PING_TIMEOUT" env-default:"10s"`
}

type PostgresConfig struct {
	Host           string        `env:"POSTGRES_HOST" env-default:"localhost"`
	Port           int           `env:"POSTGRES_PORT" env-default:"5432"`
	Username       string        `env:"POSTGRES_USERNAME"`
	Password       string        `env:"POSTGRES_PASSWORD"`
	Database       string        `env:"POSTGRES_DATABASE"`
	SSLMode        string        `env:"POSTGRES_SSL_MODE" env-default:"disable"`
	ConnectTimeout time.Duration `env:"POSTGRES_CONNECT_TIMEOUT" env-default:"10s"`
}

type MySQLConfig struct {
	Host     string `env:"MYSQL_HOST" env-default:"localhost"`
	Port     int    `env:"MYSQL_PORT" env-default:"3306"`
	Username string `env:"MYSQL_USERNAME"`
	Password string `env:"MYSQL_PASSWORD"`
	Database string `env:"MYSQL_DATABASE"`
}

type LogConfig struct {
	// FilePath enables a rotating log file next to stdout when set.
	FilePath   string `env:"LOG_FILE_PATH"`
	MaxSizeMB  int    `env:"LOG_MAX_SIZE_MB" env-default:"100"`
	MaxBackups int    `env:"LOG_MAX_BACKUPS" env-default:"5"`
	MaxAgeDays int    `env:"LOG_MAX_AGE_DAYS" env-default:"30"`
	Compress   bool   `env:"LOG_COMPRESS" env-default:"true"`
}

type MetricsConfig struct {
	Enabled          bool   `env:"METRICS_ENABLED" env-default:"true"`
	Path             string `env:"METRICS_PATH" env-default:"/metrics"`
	Namespace        string `env:"METRICS_NAMESPACE" env-default:"tasks"`
	CollectGoMetrics bool   `env:"METRICS_COLLECT_GO" env-default:"true"`
	CollectProcess   bool   `env:"METRICS_COLLECT_PROCESS" env-default:"true"`
}
