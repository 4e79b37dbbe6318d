package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime settings read from the environment. Integrations with
// an empty URL or credential are disabled rather than failing startup.
type Config struct {
	Port            string
	GinMode         string
	ShutdownTimeout time.Duration

	DB DBConfig

	RedisURL    string
	RabbitMQURL string

	JWTSecret string
	JWTIssuer string

	FirebaseServiceAccountPath string

	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	AWSS3Bucket        string
	ReceiptDir         string

	CORSAllowedOrigins []string
}

type DBConfig struct {
	Host            string
	User            string
	Password        string
	Name            string
	Port            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DSN returns the postgres connection string.
func (c DBConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode,
	)
}

// S3Enabled reports whether receipts are archived to S3.
func (c Config) S3Enabled() bool {
	return c.AWSRegion != "" && c.AWSAccessKeyID != "" && c.AWSSecretAccessKey != "" && c.AWSS3Bucket != ""
}

func Load() Config {
	rabbitURL := getenv("RABBITMQ_URL", "")
	if rabbitURL == "" {
		rabbitURL = getenv("AMQP_URL", "")
	}

	cfg := Config{
		Port:            getenv("PORT", "8080"),
		GinMode:         getenv("GIN_MODE", ""),
		ShutdownTimeout: envDur("SHUTDOWN_TIMEOUT", 10*time.Second),
		DB: DBConfig{
			Host:            getenv("DB_HOST", "localhost"),
			User:            getenv("DB_USER", "postgres"),
			Password:        os.Getenv("DB_PASSWORD"),
			Name:            getenv("DB_NAME", "covoit"),
			Port:            getenv("DB_PORT", "5432"),
			SSLMode:         getenv("DB_SSLMODE", "disable"),
			MaxOpenConns:    envInt("DB_MAX_OPEN_CONNS", 100),
			MaxIdleConns:    envInt("DB_MAX_IDLE_CONNS", 10),
			ConnMaxLifetime: envDur("DB_CONN_MAX_LIFETIME", time.Hour),
		},
		RedisURL:                   getenv("REDIS_URL", ""),
		RabbitMQURL:                rabbitURL,
		JWTSecret:                  os.Getenv("JWT_SECRET"),
		JWTIssuer:                  os.Getenv("JWT_ISSUER"),
		FirebaseServiceAccountPath: os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH"),
		AWSRegion:                  os.Getenv("AWS_REGION"),
		AWSAccessKeyID:             os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey:         os.Getenv("AWS_SECRET_ACCESS_KEY"),
		AWSS3Bucket:                os.Getenv("AWS_S3_BUCKET"),
		ReceiptDir:                 getenv("RECEIPT_DIR", "./receipts"),
		CORSAllowedOrigins:         envList("CORS_ALLOWED_ORIGINS", []string{"*"}),
	}

	if cfg.JWTSecret == "" {
		log.Println("Warning: JWT_SECRET not set. Every authenticated request will be rejected.")
	}
	return cfg
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	s := strings.TrimSpace(os.Getenv(key))
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Printf("config: invalid int for %s: %q, using %d", key, s, def)
		return def
	}
	return n
}

func envDur(key string, def time.Duration) time.Duration {
	s := strings.TrimSpace(os.Getenv(key))
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		log.Printf("config: invalid duration for %s: %q, using %s", key, s, def)
		return def
	}
	return d
}

func envList(key string, def []string) []string {
	s := strings.TrimSpace(os.Getenv(key))
	if s == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
