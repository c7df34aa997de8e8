package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ServiceName    = "warungpos"
	ServiceVersion = "0.1.0"
)

const (
	DefaultHTTPAddr          = ":8000"
	DefaultStoreName         = "WARUNG PADANG SEDERHANA"
	DefaultStoreAddress      = "Jl. Merdeka No. 123"
	DefaultLowStockThreshold = 10
	DefaultSalesTopic        = "OrderCompleted"
)

const (
	KafkaBatchTimeout = 10 * time.Millisecond
	KafkaBatchSize    = 100
	LogsPath          = "/otlp/v1/logs"
	TracesPath        = "/otlp/v1/traces"
	ExportTimeout     = 30 * time.Second
	MaxQueueSize      = 2048
)

var DefaultPaymentMethods = []string{"Cash", "Debit Card", "E-Wallet"}

type Config struct {
	AppEnv      string
	HTTPAddr    string
	DatabaseURL string
	JWTSecret   string
	CORSOrigins []string

	// Bootstrap manager account, created at startup when the email is new.
	ManagerName     string
	ManagerEmail    string
	ManagerPassword string

	StoreName         string
	StoreAddress      string
	LowStockThreshold int
	PaymentMethods    []string

	KafkaBroker     string
	KafkaSalesTopic string

	R2Endpoint      string
	R2AccessKey     string
	R2SecretKey     string
	R2Bucket        string
	R2PublicBaseURL string

	OtelEndpoint   string
	OtelAuthHeader string
}

// Load reads the process environment, pulling in a .env file first unless
// APP_ENV is production.
func Load() (*Config, error) {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function so tests can supply their
// own environment.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		AppEnv:          getenv("APP_ENV"),
		HTTPAddr:        withDefault(getenv("HTTP_ADDR"), DefaultHTTPAddr),
		DatabaseURL:     getenv("DATABASE_URL"),
		JWTSecret:       getenv("JWT_SECRET"),
		CORSOrigins:     splitList(withDefault(getenv("CORS_ORIGINS"), "http://localhost:3000,http://localhost:5173")),
		ManagerName:     withDefault(getenv("MANAGER_NAME"), "Manager"),
		ManagerEmail:    getenv("MANAGER_EMAIL"),
		ManagerPassword: getenv("MANAGER_PASSWORD"),
		StoreName:       withDefault(getenv("STORE_NAME"), DefaultStoreName),
		StoreAddress:    withDefault(getenv("STORE_ADDRESS"), DefaultStoreAddress),
		PaymentMethods:  splitList(getenv("PAYMENT_METHODS")),
		KafkaBroker:     getenv("KAFKA_BROKER"),
		KafkaSalesTopic: withDefault(getenv("KAFKA_SALES_TOPIC"), DefaultSalesTopic),
		R2Endpoint:      getenv("R2_ENDPOINT"),
		R2AccessKey:     getenv("R2_ACCESS_KEY"),
		R2SecretKey:     getenv("R2_SECRET_KEY"),
		R2Bucket:        getenv("R2_BUCKET_NAME"),
		R2PublicBaseURL: getenv("R2_PUBLIC_BASE_URL"),
		OtelEndpoint:    getenv("OTEL_ENDPOINT"),
		OtelAuthHeader:  getenv("OTEL_AUTH_HEADER"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	if (cfg.ManagerEmail == "") != (cfg.ManagerPassword == "") {
		return nil, fmt.Errorf("MANAGER_EMAIL and MANAGER_PASSWORD must be set together")
	}

	if len(cfg.PaymentMethods) == 0 {
		cfg.PaymentMethods = append([]string(nil), DefaultPaymentMethods...)
	}

	cfg.LowStockThreshold = DefaultLowStockThreshold
	if raw := getenv("LOW_STOCK_THRESHOLD"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("LOW_STOCK_THRESHOLD must be a non-negative integer, got %q", raw)
		}
		cfg.LowStockThreshold = n
	}

	if cfg.R2Endpoint != "" && cfg.R2Bucket == "" {
		return nil, fmt.Errorf("R2_BUCKET_NAME is required when R2_ENDPOINT is set")
	}

	return cfg, nil
}

// ReceiptArchiveEnabled reports whether receipts should be pushed to R2.
func (c *Config) ReceiptArchiveEnabled() bool {
	return c.R2Endpoint != "" && c.R2Bucket != ""
}

func withDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
