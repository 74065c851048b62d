package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	S3        S3Config
	Upload    UploadConfig
	RabbitMQ  RabbitMQConfig
	Log       LogConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port            int           `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
	Environment     string        `envconfig:"ENVIRONMENT" default:"development"`
}

type DatabaseConfig struct {
	Host            string        `envconfig:"DB_HOST" default:"localhost"`
	Port            int           `envconfig:"DB_PORT" default:"5432"`
	User            string        `envconfig:"DB_USER" required:"true"`
	Password        string        `envconfig:"DB_PASSWORD" required:"true"`
	Name            string        `envconfig:"DB_NAME" required:"true"`
	SSLMode         string        `envconfig:"DB_SSL_MODE" default:"disable"`
	MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"5m"`
	MigrationsPath  string        `envconfig:"DB_MIGRATIONS_PATH" default:"migrations"`
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

type JWTConfig struct {
	SecretKey      string        `envconfig:"JWT_SECRET_KEY" required:"true"`
	Issuer         string        `envconfig:"JWT_ISSUER" default:"imgpipe"`
	AccessTokenTTL time.Duration `envconfig:"JWT_ACCESS_TOKEN_TTL" default:"15m"`
}

type S3Config struct {
	Endpoint        string `envconfig:"S3_ENDPOINT"`
	Region          string `envconfig:"S3_REGION" default:"us-east-1"`
	Bucket          string `envconfig:"S3_BUCKET" required:"true"`
	AccessKeyID     string `envconfig:"S3_ACCESS_KEY_ID" required:"true"`
	SecretAccessKey string `envconfig:"S3_SECRET_ACCESS_KEY" required:"true"`
	UsePathStyle    bool   `envconfig:"S3_USE_PATH_STYLE" default:"false"`
	PublicURL       string `envconfig:"S3_PUBLIC_URL"`
	ObjectACL       string `envconfig:"S3_OBJECT_ACL"`
	CacheControl    string `envconfig:"S3_CACHE_CONTROL" default:"max-age=864000"`
}

type UploadConfig struct {
	TempDir       string        `envconfig:"UPLOAD_TEMP_DIR"`
	KeyPrefix     string        `envconfig:"UPLOAD_KEY_PREFIX" default:"images"`
	DefaultWidth  int           `envconfig:"UPLOAD_DEFAULT_WIDTH" default:"1280"`
	DefaultHeight int           `envconfig:"UPLOAD_DEFAULT_HEIGHT" default:"0"`
	JPEGQuality   int           `envconfig:"UPLOAD_JPEG_QUALITY" default:"90"`
	MaxFileSize   int64         `envconfig:"UPLOAD_MAX_FILE_SIZE" default:"10485760"`
	SignedURLTTL  time.Duration `envconfig:"UPLOAD_SIGNED_URL_TTL" default:"24h"`
}

type RabbitMQConfig struct {
	URL      string `envconfig:"RABBITMQ_URL"`
	Exchange string `envconfig:"RABBITMQ_EXCHANGE" default:"images"`
}

func (c RabbitMQConfig) Enabled() bool {
	return c.URL != ""
}

type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"json"`
}

type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     int    `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type RateLimitConfig struct {
	Enabled        bool `envconfig:"RATE_LIMIT_ENABLED" default:"false"`
	RequestsPerMin int  `envconfig:"RATE_LIMIT_REQUESTS_PER_MIN" default:"60"`
}

// Load reads the environment, after merging an optional .env file from the
// working directory. Variables already set take precedence over the file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Upload.validate(); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	return &cfg, nil
}

func (c UploadConfig) validate() error {
	if c.JPEGQuality < 0 || c.JPEGQuality > 100 {
		return fmt.Errorf("UPLOAD_JPEG_QUALITY must be within 0-100, got %d", c.JPEGQuality)
	}
	if c.DefaultWidth < 0 || c.DefaultHeight < 0 || (c.DefaultWidth == 0 && c.DefaultHeight == 0) {
		return fmt.Errorf("UPLOAD_DEFAULT_WIDTH or UPLOAD_DEFAULT_HEIGHT must be positive")
	}
	if c.MaxFileSize <= 0 {
		return fmt.Errorf("UPLOAD_MAX_FILE_SIZE must be positive")
	}
	return nil
}
