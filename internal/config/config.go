package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Store drivers accepted by STORE_DRIVER.
const (
	StoreDriverMemory   = "memory"
	StoreDriverRedis    = "redis"
	StoreDriverDynamoDB = "dynamodb"
	StoreDriverMongoDB  = "mongodb"
	StoreDriverPostgres = "postgres"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	AppEnv    string
	Port      string
	LogLevel  string
	LogFormat string

	Store StoreConfig

	MercadoPagoAccessToken     string
	MercadoPagoTestPayerEmail  string
	MercadoPagoTestPayerUserID string
	PaymentGatewayMock         bool

	PhoneRegion  string
	LogoMaxWidth int

	// CORSAllowedOrigins is empty when every origin is allowed.
	CORSAllowedOrigins []string
}

// StoreConfig selects and configures the key-value medium.
type StoreConfig struct {
	Driver string
	Prefix string

	RedisAddress  string
	RedisPassword string
	RedisDB       int
	Locking       bool
	LockTTL       time.Duration

	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	DynamoDBEndpoint   string
	Table              string

	MongoURI        string
	MongoDatabase   string
	MongoCollection string

	DatabaseURL string
}

// Load reads configuration from environment variables and an optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}
	return fromKoanf(k)
}

func fromKoanf(k *koanf.Koanf) (*Config, error) {
	cfg := &Config{
		AppEnv:    valueOrDefault(k.String("APP_ENV"), "development"),
		Port:      valueOrDefault(k.String("PORT"), "8080"),
		LogLevel:  valueOrDefault(k.String("LOG_LEVEL"), "info"),
		LogFormat: valueOrDefault(k.String("LOG_FORMAT"), "json"),
		Store: StoreConfig{
			Driver:             strings.ToLower(valueOrDefault(k.String("STORE_DRIVER"), StoreDriverMemory)),
			Prefix:             strings.TrimSpace(k.String("KV_PREFIX")),
			RedisAddress:       valueOrDefault(k.String("REDIS_ADDRESS"), "localhost:6379"),
			RedisPassword:      k.String("REDIS_PASSWORD"),
			RedisDB:            parseInt(k.String("REDIS_DB"), 0),
			Locking:            parseBool(k.String("STORE_LOCKING")),
			LockTTL:            parseDuration(k.String("STORE_LOCK_TTL"), "10s"),
			AWSRegion:          valueOrDefault(k.String("AWS_REGION"), "us-east-1"),
			AWSAccessKeyID:     valueOrDefault(k.String("AWS_ACCESS_KEY_ID"), "local"),
			AWSSecretAccessKey: valueOrDefault(k.String("AWS_SECRET_ACCESS_KEY"), "local"),
			DynamoDBEndpoint:   strings.TrimSpace(k.String("DYNAMODB_ENDPOINT")),
			Table:              valueOrDefault(k.String("KV_TABLE"), "kv_store"),
			MongoURI:           strings.TrimSpace(k.String("MONGODB_URI")),
			MongoDatabase:      valueOrDefault(k.String("MONGODB_DATABASE"), "orcafacil"),
			MongoCollection:    valueOrDefault(k.String("MONGODB_COLLECTION"), "kv_store"),
			DatabaseURL:        strings.TrimSpace(k.String("DATABASE_URL")),
		},
		MercadoPagoAccessToken:     strings.TrimSpace(k.String("MERCADOPAGO_ACCESS_TOKEN")),
		MercadoPagoTestPayerEmail:  strings.TrimSpace(k.String("MERCADOPAGO_TEST_PAYER_EMAIL")),
		MercadoPagoTestPayerUserID: strings.TrimSpace(k.String("MERCADOPAGO_TEST_PAYER_USER_ID")),
		PaymentGatewayMock:         parseBool(k.String("PAYMENT_GATEWAY_MOCK")) || parseBool(k.String("MERCADOPAGO_MOCK")),
		PhoneRegion:                strings.ToUpper(valueOrDefault(k.String("PHONE_REGION"), "BR")),
		LogoMaxWidth:               parseInt(k.String("LOGO_MAX_WIDTH"), 400),
		CORSAllowedOrigins:         splitAndTrim(k.String("CORS_ALLOWED_ORIGINS")),
	}

	if err := cfg.Store.validate(); err != nil {
		return nil, err
	}
	for _, origin := range cfg.CORSAllowedOrigins {
		if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return nil, fmt.Errorf("invalid CORS_ALLOWED_ORIGINS entry %q", origin)
		}
	}
	return cfg, nil
}

func (s StoreConfig) validate() error {
	switch s.Driver {
	case StoreDriverMemory, StoreDriverRedis, StoreDriverDynamoDB:
	case StoreDriverMongoDB:
		if s.MongoURI == "" {
			return errors.New("MONGODB_URI is required for the mongodb store")
		}
	case StoreDriverPostgres:
		if s.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres store")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", s.Driver)
	}
	if s.Locking && s.Driver != StoreDriverRedis {
		return errors.New("STORE_LOCKING requires the redis store")
	}
	return nil
}

// HTTPAddr returns the address the HTTP server should bind to.
func (c *Config) HTTPAddr() string {
	port := strings.TrimSpace(c.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

// MercadoPagoSandbox reports whether the access token belongs to a Mercado Pago test account.
func (c *Config) MercadoPagoSandbox() bool {
	return strings.HasPrefix(c.MercadoPagoAccessToken, "TEST-")
}

// IsProduction reports whether gin should run in release mode.
func (c *Config) IsProduction() bool {
	switch strings.ToLower(c.AppEnv) {
	case "production", "release":
		return true
	}
	return false
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

// splitAndTrim splits a comma separated list. "*" means no restriction.
func splitAndTrim(csv string) []string {
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "*" {
			return nil
		}
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on", "mock":
		return true
	}
	return false
}

func parseInt(value string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

func parseDuration(value, fallback string) time.Duration {
	base := strings.TrimSpace(value)
	if base == "" {
		base = fallback
	}
	d, err := time.ParseDuration(base)
	if err != nil {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}
