package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/Aashish23092/ocr-text-extraction/logger"
)

const (
	ProviderVision    = "vision"
	ProviderTesseract = "tesseract"
)

type Config struct {
	ServerHost      string
	ServerPort      string
	MaxFileSize     int64
	ShutdownTimeout time.Duration

	// OCR
	GoogleAPIKey      string
	OCRProvider       string
	OCRTimeout        time.Duration
	TesseractDataPath string
	TesseractLanguage string

	// PDF rasterization
	RenderDPI     float64
	MaxPDFPages   int
	RenderTimeout time.Duration

	// Range used when no annotation carries a confidence value
	FallbackConfidenceMin float64
	FallbackConfidenceMax float64

	// Logging
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

// LoadConfig reads the configuration from the environment. The API key is not
// checked here; a bad key only surfaces when the OCR service is called.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerHost:            getEnv("SERVER_HOST", "127.0.0.1"),
		ServerPort:            getEnv("SERVER_PORT", "8006"),
		MaxFileSize:           getEnvInt64("MAX_FILE_SIZE", 20*1024*1024),
		ShutdownTimeout:       getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		GoogleAPIKey:          getEnv("GOOGLE_API_KEY", ""),
		OCRProvider:           getEnv("OCR_PROVIDER", ProviderVision),
		OCRTimeout:            getEnvDuration("OCR_TIMEOUT", 0),
		TesseractDataPath:     getEnv("TESSDATA_PREFIX", "/usr/share/tesseract-ocr/5/tessdata/"),
		TesseractLanguage:     getEnv("TESSERACT_LANGUAGE", "eng"),
		RenderDPI:             getEnvFloat("PDF_RENDER_DPI", 72),
		MaxPDFPages:           int(getEnvInt64("PDF_MAX_PAGES", 0)),
		RenderTimeout:         getEnvDuration("RENDER_TIMEOUT", 0),
		FallbackConfidenceMin: getEnvFloat("CONFIDENCE_FALLBACK_MIN", 0.90),
		FallbackConfidenceMax: getEnvFloat("CONFIDENCE_FALLBACK_MAX", 0.99),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		LogFormat:             getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:         getEnv("LOG_TIME_FORMAT", time.RFC3339),
		LogOutput:             getEnv("LOG_OUTPUT", "stdout"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.OCRProvider {
	case ProviderVision, ProviderTesseract:
	default:
		return fmt.Errorf("OCR_PROVIDER must be %q or %q, got %q", ProviderVision, ProviderTesseract, c.OCRProvider)
	}
	if !(c.RenderDPI > 0) || math.IsInf(c.RenderDPI, 1) {
		return fmt.Errorf("PDF_RENDER_DPI must be positive, got %v", c.RenderDPI)
	}
	if c.MaxPDFPages < 0 {
		return fmt.Errorf("PDF_MAX_PAGES must not be negative, got %d", c.MaxPDFPages)
	}
	// NaN bounds fail every comparison here
	if !(c.FallbackConfidenceMin >= 0 && c.FallbackConfidenceMax <= 1 && c.FallbackConfidenceMin <= c.FallbackConfidenceMax) {
		return fmt.Errorf("confidence fallback range [%v, %v] must lie within [0, 1]",
			c.FallbackConfidenceMin, c.FallbackConfidenceMax)
	}
	return nil
}

// Addr is the listen address of the HTTP server.
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
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

func getEnvInt64(key string, def int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log := logger.WithComponent("config")
		log.Warn().Str("key", key).Str("value", v).Int64("default", def).Msg("not an integer, using default")
		return def
	}
	return n
}

func getEnvFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log := logger.WithComponent("config")
		log.Warn().Str("key", key).Str("value", v).Float64("default", def).Msg("not a number, using default")
		return def
	}
	return f
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log := logger.WithComponent("config")
		log.Warn().Str("key", key).Str("value", v).Dur("default", def).Msg("not a duration, using default")
		return def
	}
	return d
}
