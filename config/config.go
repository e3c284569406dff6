// Package config loads runtime settings from the environment (optionally
// seeded from a .env file) and opens the database handle.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	ProviderNone       = "none"
	ProviderCloudinary = "cloudinary"
	ProviderMinIO      = "minio"
	ProviderS3         = "s3"

	// devJWTSecret is only acceptable outside release mode.
	devJWTSecret = "recipe_api_dev_secret"
)

type Config struct {
	Port           string
	GinMode        string
	DBDriver       string
	DatabaseURL    string
	JWTSecret      string
	JWTTTL         time.Duration
	BcryptCost     int
	MaxUploadBytes int64
	LogLevel       string
	LogFormat      string
	Media          MediaConfig
}

type MediaConfig struct {
	Provider   string
	Cloudinary CloudinaryConfig
	MinIO      MinIOConfig
	S3         S3Config
}

// CloudinaryConfig accepts either a full CLOUDINARY_URL or the three parts.
type CloudinaryConfig struct {
	URL       string
	CloudName string
	APIKey    string
	APISecret string
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	PublicURL string
}

type S3Config struct {
	Endpoint        string
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	PublicURL       string
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

// Load reads .env when present and builds a Config from the environment.
func Load() *Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() *Config {
	return &Config{
		Port:           getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		DBDriver:       strings.ToLower(getEnv("DB_DRIVER", DriverSQLite)),
		DatabaseURL:    getEnv("DATABASE_URL", "recipes.db"),
		JWTSecret:      getEnv("JWT_SECRET", devJWTSecret),
		JWTTTL:         getEnvDuration("JWT_TTL", 24*time.Hour),
		BcryptCost:     getEnvInt("BCRYPT_COST", bcrypt.DefaultCost),
		MaxUploadBytes: int64(getEnvInt("MAX_UPLOAD_BYTES", 5<<20)),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		Media: MediaConfig{
			Provider: strings.ToLower(getEnv("MEDIA_PROVIDER", ProviderNone)),
			Cloudinary: CloudinaryConfig{
				URL:       os.Getenv("CLOUDINARY_URL"),
				CloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
				APIKey:    os.Getenv("CLOUDINARY_API_KEY"),
				APISecret: os.Getenv("CLOUDINARY_API_SECRET"),
			},
			MinIO: MinIOConfig{
				Endpoint:  os.Getenv("MINIO_ENDPOINT"),
				AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
				SecretKey: os.Getenv("MINIO_SECRET_KEY"),
				Bucket:    getEnv("MINIO_BUCKET", "recipes"),
				UseSSL:    getEnvBool("MINIO_USE_SSL", false),
				PublicURL: os.Getenv("MINIO_PUBLIC_URL"),
			},
			S3: S3Config{
				Endpoint:        os.Getenv("S3_ENDPOINT"),
				Region:          getEnv("S3_REGION", "us-east-1"),
				Bucket:          os.Getenv("S3_BUCKET"),
				AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
				SecretAccessKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
				PublicURL:       os.Getenv("S3_PUBLIC_URL"),
			},
		},
	}
}

// IsRelease reports whether the process runs in gin release mode.
func (c *Config) IsRelease() bool {
	return c.GinMode == "release"
}

func (c *Config) Validate() error {
	var errs []error
	switch c.DBDriver {
	case DriverSQLite, DriverPostgres:
	default:
		errs = append(errs, fmt.Errorf("unknown DB_DRIVER %q", c.DBDriver))
	}
	switch c.Media.Provider {
	case ProviderNone, ProviderCloudinary, ProviderMinIO, ProviderS3:
	default:
		errs = append(errs, fmt.Errorf("unknown MEDIA_PROVIDER %q", c.Media.Provider))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	} else if c.IsRelease() && c.JWTSecret == devJWTSecret {
		errs = append(errs, errors.New("JWT_SECRET must be set in release mode"))
	}
	if c.JWTTTL <= 0 {
		errs = append(errs, errors.New("JWT_TTL must be positive"))
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost))
	}
	if c.MaxUploadBytes <= 0 {
		errs = append(errs, errors.New("MAX_UPLOAD_BYTES must be positive"))
	}
	return errors.Join(errs...)
}
