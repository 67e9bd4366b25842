package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackrabbitrecords/backend/pkg/cms"
	memoryrepo "github.com/jackrabbitrecords/backend/pkg/cms/repo/memory"
	pgrepo "github.com/jackrabbitrecords/backend/pkg/cms/repo/postgres"
	fsstorage "github.com/jackrabbitrecords/backend/pkg/cms/storage/fs"
	memorystorage "github.com/jackrabbitrecords/backend/pkg/cms/storage/memory"
	s3storage "github.com/jackrabbitrecords/backend/pkg/cms/storage/s3"
)

// ServerConfig is the full server configuration, read from environment
// variables.
type ServerConfig struct {
	Port        string `env:"PORT" env-default:"8080"`
	Environment string `env:"ENVIRONMENT" env-default:"development"`

	AdminPassword string        `env:"ADMIN_PASSWORD"`
	SessionSecret string        `env:"SECRET_KEY"`
	SessionTTL    time.Duration `env:"SESSION_TTL" env-default:"168h"`

	YouTubeAPIKey string `env:"YOUTUBE_API_KEY"`

	MaxUploadBytes int64    `env:"MAX_UPLOAD_BYTES" env-default:"10485760"`
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS"`

	DB      DbConfig
	Storage StorageConfig
}

// DbConfig selects and configures the repository backend.
type DbConfig struct {
	Type     string `env:"DB_TYPE" env-default:"postgres"` // "postgres" or "memory"
	Host     string `env:"DB_HOST" env-default:"localhost"`
	Port     uint16 `env:"DB_PORT" env-default:"5432"`
	Name     string `env:"DB_NAME" env-default:"site"`
	User     string `env:"DB_USER" env-default:"site"`
	Password string `env:"DB_PASS" env-default:""`
}

// StorageConfig selects and configures the media blob store.
type StorageConfig struct {
	Backend string `env:"MEDIA_STORAGE_BACKEND" env-default:"fs"` // "fs", "s3" or "memory"

	FSBaseDir string `env:"UPLOAD_DIR" env-default:"./data/uploads"`

	S3Region          string `env:"AWS_S3_REGION" env-default:"us-east-1"`
	S3Bucket          string `env:"AWS_S3_BUCKET"`
	S3AccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	S3SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
	S3Endpoint        string `env:"AWS_S3_ENDPOINT"`
	S3UsePathStyle    bool   `env:"AWS_S3_USE_PATH_STYLE" env-default:"false"`
	S3PublicBaseURL   string `env:"AWS_S3_PUBLIC_BASE_URL"`
	S3CreateBucket    bool   `env:"AWS_S3_CREATE_BUCKET" env-default:"false"`
	PresignDuration   int    `env:"PRESIGN_DURATION_SECONDS" env-default:"300"`
}

// Load reads the server configuration from the environment.
func Load() (*ServerConfig, error) {
	var cfg ServerConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks required settings.
func (c *ServerConfig) Validate() error {
	if c.AdminPassword == "" {
		return errors.New("ADMIN_PASSWORD is required")
	}
	if c.SessionSecret == "" {
		return errors.New("SECRET_KEY is required")
	}
	switch c.DB.Type {
	case "postgres", "memory":
	default:
		return fmt.Errorf("unsupported database type: %s", c.DB.Type)
	}
	switch c.Storage.Backend {
	case "fs", "s3", "memory":
	default:
		return fmt.Errorf("unsupported storage backend: %s", c.Storage.Backend)
	}
	if c.Storage.Backend == "s3" && c.Storage.S3Bucket == "" {
		return errors.New("AWS_S3_BUCKET is required for the s3 backend")
	}
	return nil
}

// DatabaseURL renders the postgres connection URL.
func (c DbConfig) DatabaseURL() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:   c.Name,
	}
	return u.String()
}

// BuildRepository creates the configured repository. For postgres it
// opens a pgx pool, pings it, and runs the idempotent migration. The
// returned close func is a no-op for the memory backend.
func (c *ServerConfig) BuildRepository(ctx context.Context) (cms.Repository, func(), error) {
	switch c.DB.Type {
	case "memory":
		return memoryrepo.New(), func() {}, nil
	case "postgres":
		pool, err := pgxpool.New(ctx, c.DB.DatabaseURL())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create connection pool: %w", err)
		}
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := pool.Ping(pingCtx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("failed to ping database: %w", err)
		}
		repo := pgrepo.NewWithPool(pool)
		if err := repo.Migrate(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return repo, pool.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported database type: %s", c.DB.Type)
	}
}

// BuildBlobStore creates the configured media blob store.
func (c *ServerConfig) BuildBlobStore() (cms.BlobStore, error) {
	switch c.Storage.Backend {
	case "memory":
		return memorystorage.New(), nil
	case "fs":
		return fsstorage.New(fsstorage.Config{
			BaseDir: c.Storage.FSBaseDir,
		})
	case "s3":
		return s3storage.New(s3storage.Config{
			Region:                 c.Storage.S3Region,
			Bucket:                 c.Storage.S3Bucket,
			AccessKeyID:            c.Storage.S3AccessKeyID,
			SecretAccessKey:        c.Storage.S3SecretAccessKey,
			Endpoint:               c.Storage.S3Endpoint,
			UsePathStyle:           c.Storage.S3UsePathStyle,
			PublicBaseURL:          c.Storage.S3PublicBaseURL,
			PresignDuration:        c.Storage.PresignDuration,
			CreateBucketIfNotExist: c.Storage.S3CreateBucket,
		})
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", c.Storage.Backend)
	}
}

// BuildService wires the repository and blob store into a cms.Service.
func (c *ServerConfig) BuildService(ctx context.Context) (cms.Service, func(), error) {
	repo, closeRepo, err := c.BuildRepository(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build repository: %w", err)
	}

	store, err := c.BuildBlobStore()
	if err != nil {
		closeRepo()
		return nil, nil, fmt.Errorf("failed to build blob store: %w", err)
	}

	svc, err := cms.New(
		cms.WithRepository(repo),
		cms.WithBlobStore(store),
	)
	if err != nil {
		closeRepo()
		return nil, nil, err
	}

	return svc, closeRepo, nil
}
