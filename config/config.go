package config

import (
	"log/slog"
	"os"
	"time"
)

type Config struct {
	// WhatsApp Cloud API configuration
	AccessToken   string
	PhoneNumberID string
	VerifyToken   string
	AppSecret     string

	// Shopify configuration
	ShopifyStoreURL string
	ShopifyAPIToken string

	// Gemini configuration
	GeminiAPIKey string
	GeminiModel  string

	// Static table files
	CatalogFile string

	// Collaborator call budget
	RequestTimeout time.Duration

	// Server configuration
	Port string
}

func LoadConfig() *Config {
	cfg := &Config{
		AccessToken:     getEnv("WHATSAPP_ACCESS_TOKEN", ""),
		PhoneNumberID:   getEnv("WHATSAPP_PHONE_NUMBER_ID", ""),
		VerifyToken:     getEnv("WEBHOOK_VERIFY_TOKEN", "webhook_verify_token"),
		AppSecret:       getEnv("WHATSAPP_APP_SECRET", ""),
		ShopifyStoreURL: getEnv("SHOPIFY_STORE_URL", ""),
		ShopifyAPIToken: getEnv("SHOPIFY_API_TOKEN", ""),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-2.5-pro"),
		CatalogFile:     getEnv("CATALOG_FILE", "catalog.json"),
		RequestTimeout:  getDuration("REQUEST_TIMEOUT", 10*time.Second),
		Port:            getEnv("PORT", "8080"),
	}

	// Validate required configuration
	if cfg.AccessToken == "" {
		slog.Error("WHATSAPP_ACCESS_TOKEN not set")
	}
	if cfg.PhoneNumberID == "" {
		slog.Error("WHATSAPP_PHONE_NUMBER_ID not set")
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		slog.Warn("Invalid duration, using default", "key", key, "value", value)
		return defaultValue
	}
	return d
}
