package config

import (
	"fmt"
	"net/url"
	"os"

	"linkvault/internal/logger"
)

type Config struct {
	// Remote service
	APIBaseURL string

	// Issuer identity printed on exported documents
	IssuerName    string
	IssuerAddress string
	IssuerEmail   string

	// Directory invoices are exported to
	ExportDir string

	// Optional: Google Sheets ledger export
	SheetURL       string
	SheetWorksheet string

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

func Load() (*Config, error) {
	config := &Config{
		APIBaseURL:     getEnv("LINKVAULT_API_URL", "http://localhost:8000/api"),
		IssuerName:     getEnv("LINKVAULT_ISSUER_NAME", "LinkVault"),
		IssuerAddress:  getEnv("LINKVAULT_ISSUER_ADDRESS", ""),
		IssuerEmail:    getEnv("LINKVAULT_ISSUER_EMAIL", ""),
		ExportDir:      getEnv("LINKVAULT_EXPORT_DIR", "."),
		SheetURL:       getEnv("LINKVAULT_SHEET_URL", ""),
		SheetWorksheet: getEnv("LINKVAULT_SHEET_WORKSHEET", "Ledger"),
		LogLevel:       getEnv("LOG_LEVEL", "warn"),
		LogFormat:      getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:  getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:      getEnv("LOG_OUTPUT", "stderr"),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("LINKVAULT_API_URL is required")
	}
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("LINKVAULT_API_URL %q is not a valid URL", c.APIBaseURL)
	}
	if c.IssuerName == "" {
		return fmt.Errorf("LINKVAULT_ISSUER_NAME must not be empty")
	}
	if info, err := os.Stat(c.ExportDir); err != nil || !info.IsDir() {
		return fmt.Errorf("LINKVAULT_EXPORT_DIR %q is not a directory", c.ExportDir)
	}
	return nil
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
