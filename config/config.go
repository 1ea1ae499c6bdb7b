package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"

	AvatarStorageS3    = "s3"
	AvatarStorageMinIO = "minio"
	AvatarStorageNone  = "none"
)

type (
	APP struct {
		Name               string        `env:"SERVICE_NAME" envDefault:"contacts-api"`
		Host               string        `env:"SERVICE_HOST" envDefault:"0.0.0.0"`
		Port               string        `env:"SERVICE_PORT" envDefault:"8080"`
		Env                string        `env:"SERVICE_ENV" envDefault:"development"`
		JWTSecret          string        `env:"SERVICE_JWT_SECRET,required"`
		TokenTTL           time.Duration `env:"SERVICE_TOKEN_TTL" envDefault:"1h"`
		ShutdownTimeout    time.Duration `env:"SERVICE_SHUTDOWN_TIMEOUT" envDefault:"5s"`
		StorageDriver      string        `env:"STORAGE_DRIVER" envDefault:"postgres"`
		CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	}
	DB struct {
		User     string `env:"POSTGRES_USER"`
		Password string `env:"POSTGRES_PASSWORD"`
		Name     string `env:"POSTGRES_DB"`
		Host     string `env:"POSTGRES_HOST"`
		Port     string `env:"POSTGRES_PORT" envDefault:"5432"`
		MaxConns int32  `env:"POSTGRES_MAX_CONNS" envDefault:"10"`
	}
	Avatar struct {
		Storage  string `env:"AVATAR_STORAGE" envDefault:"s3"`
		MaxBytes int64  `env:"AVATAR_MAX_BYTES" envDefault:"5242880"`
	}
	S3 struct {
		Region          string `env:"S3_REGION" envDefault:"us-east-1"`
		AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
		SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY"`
		BucketUploads   string `env:"S3_BUCKET_UPLOADS"`
		PublicBaseURL   string `env:"S3_PUBLIC_BASE_URL"`
	}
	MinIO struct {
		Endpoint  string `env:"MINIO_ENDPOINT"`
		AccessKey string `env:"MINIO_ACCESS_KEY"`
		SecretKey string `env:"MINIO_SECRET_KEY"`
		Bucket    string `env:"MINIO_BUCKET" envDefault:"avatars"`
		UseSSL    bool   `env:"MINIO_USE_SSL" envDefault:"false"`
	}
	MQ struct {
		User         string `env:"RABBITMQ_USER"`
		Password     string `env:"RABBITMQ_PASSWORD"`
		Vhost        string `env:"RABBITMQ_VHOST"`
		Host         string `env:"RABBITMQ_HOST"`
		AmqpPort     string `env:"RABBITMQ_AMQP_PORT" envDefault:"5672"`
		Exchange     string `env:"RABBITMQ_EXCHANGE" envDefault:"contacts"`
		ExchangeType string `env:"RABBITMQ_EXCHANGE_TYPE" envDefault:"topic"`
		QueueName    string `env:"RABBITMQ_QUEUE_NAME" envDefault:"contacts.events"`
		Consume      bool   `env:"RABBITMQ_CONSUME" envDefault:"false"`
	}
	Redis struct {
		URL        string        `env:"REDIS_URL"`
		AuthLimit  int           `env:"RATE_LIMIT_AUTH_REQUESTS" envDefault:"10"`
		AuthWindow time.Duration `env:"RATE_LIMIT_AUTH_WINDOW" envDefault:"1m"`
	}
	Contacts struct {
		EmailScope       string `env:"CONTACT_EMAIL_SCOPE" envDefault:"global"`
		BirthdayTimezone string `env:"BIRTHDAY_TIMEZONE" envDefault:"UTC"`
	}

	Config struct {
		App      APP
		DB       DB
		Avatar   Avatar
		S3       S3
		MinIO    MinIO
		MQ       MQ
		Redis    Redis
		Contacts Contacts
	}
)

// Load reads .env when present and then the process environment.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.App.Env == "production" || c.App.Env == "prod" || c.App.Env == "release"
}

func (c Config) DBDSN() (string, error) {
	if c.DB.User == "" || c.DB.Name == "" || c.DB.Host == "" || c.DB.Port == "" {
		return "", fmt.Errorf("incomplete DB config")
	}
	return fmt.Sprintf(
		"postgres://%s@%s:%s/%s",
		url.UserPassword(c.DB.User, c.DB.Password).String(),
		c.DB.Host,
		c.DB.Port,
		c.DB.Name,
	), nil
}

func (c Config) MQEnabled() bool { return c.MQ.Host != "" }

func (c Config) AMQPDSN() (string, error) {
	if c.MQ.User == "" || c.MQ.Host == "" || c.MQ.AmqpPort == "" {
		return "", fmt.Errorf("invalid MQ config: user, host and amqp port are required")
	}

	return fmt.Sprintf(
		"%s://%s@%s:%s/%s",
		"amqp",
		url.UserPassword(c.MQ.User, c.MQ.Password).String(),
		c.MQ.Host,
		c.MQ.AmqpPort,
		url.PathEscape(c.MQ.Vhost),
	), nil
}

func (c Config) BirthdayLocation() (*time.Location, error) {
	return time.LoadLocation(c.Contacts.BirthdayTimezone)
}
