// Package config loads runtime configuration from the environment and an
// optional app.env file.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	StoreDriverDynamoDB = "dynamodb"
	StoreDriverMemory   = "memory"
)

type Config struct {
	Port        string `mapstructure:"PORT"`
	StoreDriver string `mapstructure:"STORE_DRIVER"`

	AWSRegion          string `mapstructure:"AWS_REGION"`
	AWSAccessKeyID     string `mapstructure:"AWS_ACCESS_KEY_ID"`
	AWSSecretAccessKey string `mapstructure:"AWS_SECRET_ACCESS_KEY"`
	DynamoDBEndpoint   string `mapstructure:"DYNAMODB_ENDPOINT"`

	RequestsTable        string `mapstructure:"REQUESTS_TABLE"`
	AdjustmentsTable     string `mapstructure:"ADJUSTMENTS_TABLE"`
	AdjustmentLocksTable string `mapstructure:"ADJUSTMENT_LOCKS_TABLE"`
	PaymentsTable        string `mapstructure:"PAYMENTS_TABLE"`

	S3Bucket        string `mapstructure:"S3_BUCKET"`
	S3Endpoint      string `mapstructure:"S3_ENDPOINT"`
	S3PublicBaseURL string `mapstructure:"S3_PUBLIC_BASE_URL"`

	MercadoPagoAccessToken string `mapstructure:"MERCADOPAGO_ACCESS_TOKEN"`
	PaymentGatewayMock     bool   `mapstructure:"PAYMENT_GATEWAY_MOCK"`
	PaymentCurrency        string `mapstructure:"PAYMENT_CURRENCY"`
	PublicBaseURL          string `mapstructure:"PUBLIC_BASE_URL"`

	RedisURL string `mapstructure:"REDIS_URL"`

	JWTSecret  string        `mapstructure:"JWT_SECRET"`
	SessionTTL time.Duration `mapstructure:"SESSION_TTL"`

	AdjustmentSiblingPolicy string `mapstructure:"ADJUSTMENT_SIBLING_POLICY"`
}

var defaults = map[string]any{
	"PORT":                      "8080",
	"STORE_DRIVER":              StoreDriverDynamoDB,
	"AWS_REGION":                "us-east-1",
	"AWS_ACCESS_KEY_ID":         "local",
	"AWS_SECRET_ACCESS_KEY":     "local",
	"DYNAMODB_ENDPOINT":         "",
	"REQUESTS_TABLE":            "requests",
	"ADJUSTMENTS_TABLE":         "price_adjustments",
	"ADJUSTMENT_LOCKS_TABLE":    "adjustment_locks",
	"PAYMENTS_TABLE":            "payments",
	"S3_BUCKET":                 "",
	"S3_ENDPOINT":               "",
	"S3_PUBLIC_BASE_URL":        "",
	"MERCADOPAGO_ACCESS_TOKEN":  "",
	"PAYMENT_GATEWAY_MOCK":      false,
	"PAYMENT_CURRENCY":          "EUR",
	"PUBLIC_BASE_URL":           "http://localhost:8080",
	"REDIS_URL":                 "",
	"JWT_SECRET":                "",
	"SESSION_TTL":               "24h",
	"ADJUSTMENT_SIBLING_POLICY": "delete",
}

// Load reads configuration from path/app.env (when present) and the
// environment; environment variables win.
func Load(path string) (Config, error) {
	v := viper.New()
	for k, def := range defaults {
		v.SetDefault(k, def)
	}

	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))
	return cfg, cfg.Validate()
}

// Validate fails fast on settings the service cannot start without.
func (c Config) Validate() error {
	switch c.StoreDriver {
	case StoreDriverDynamoDB, StoreDriverMemory:
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.StoreDriver)
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	if c.StoreDriver == StoreDriverDynamoDB && c.S3Bucket == "" {
		return errors.New("S3_BUCKET is required with the dynamodb store driver")
	}
	return nil
}
