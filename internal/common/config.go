package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration. It is loaded once at
// process start and treated as immutable afterwards.
type Config struct {
	OpenAI    ProviderConfig
	Anthropic ProviderConfig
	Gemini    ProviderConfig
	OCR       OCRConfig
	Extract   ExtractConfig
	Scan      ScanConfig
}

// ProviderConfig holds configuration for one model provider.
type ProviderConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	Timeout     time.Duration
}

// OCRConfig holds OCR-related configuration.
type OCRConfig struct {
	Pdftoppm      string
	Tesseract     string
	TesseractLang string
	DPI           int
	MaxPages      int
}

// ExtractConfig holds orchestrator thresholds and batch throughput.
type ExtractConfig struct {
	MinCriticalFields int
	DocumentsPerMin   float64
	Workers           int
}

// ScanConfig holds folder-scanner limits.
type ScanConfig struct {
	MaxDepth int
	MaxFiles int
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() *Config {
	return &Config{
		OpenAI: ProviderConfig{
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			BaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Model:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			Temperature: getEnvAsFloat32("OPENAI_TEMPERATURE", 0.0),
			Timeout:     getEnvAsDuration("OPENAI_TIMEOUT", 45*time.Second),
		},
		Anthropic: ProviderConfig{
			APIKey:      getEnv("ANTHROPIC_API_KEY", ""),
			BaseURL:     getEnv("ANTHROPIC_BASE_URL", "https://api.anthropic.com/v1"),
			Model:       getEnv("ANTHROPIC_MODEL", "claude-3-5-haiku-latest"),
			Temperature: getEnvAsFloat32("ANTHROPIC_TEMPERATURE", 0.0),
			Timeout:     getEnvAsDuration("ANTHROPIC_TIMEOUT", 45*time.Second),
		},
		Gemini: ProviderConfig{
			APIKey:      getEnv("GEMINI_API_KEY", ""),
			Model:       getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			Temperature: getEnvAsFloat32("GEMINI_TEMPERATURE", 0.0),
			Timeout:     getEnvAsDuration("GEMINI_TIMEOUT", 45*time.Second),
		},
		OCR: OCRConfig{
			Pdftoppm:      getEnv("PDFTOPPM_BIN", "pdftoppm"),
			Tesseract:     getEnv("TESSERACT_BIN", "tesseract"),
			TesseractLang: getEnv("TESSERACT_LANG", "eng"),
			DPI:           getEnvAsInt("OCR_DPI", 300),
			MaxPages:      getEnvAsInt("OCR_MAX_PAGES", 10),
		},
		Extract: ExtractConfig{
			MinCriticalFields: getEnvAsInt("EXTRACT_MIN_CRITICAL", 2),
			DocumentsPerMin:   getEnvAsFloat64("EXTRACT_DOCS_PER_MIN", 20),
			Workers:           getEnvAsInt("EXTRACT_WORKERS", 1),
		},
		Scan: ScanConfig{
			MaxDepth: getEnvAsInt("SCAN_MAX_DEPTH", 5),
			MaxFiles: getEnvAsInt("SCAN_MAX_FILES", 200),
		},
	}
}

// Validate checks the loaded configuration. A missing provider key only
// disables that provider, but at least one must be configured.
func (c *Config) Validate() error {
	if c.OpenAI.APIKey == "" && c.Anthropic.APIKey == "" && c.Gemini.APIKey == "" {
		return NewAppError("CONFIG_ERROR", "no provider API key configured", ErrProviderUnavailable)
	}
	if c.Extract.MinCriticalFields < 0 {
		return NewAppError("CONFIG_ERROR", "EXTRACT_MIN_CRITICAL must be >= 0", ErrInvalidInput)
	}
	if c.Scan.MaxDepth <= 0 {
		return NewAppError("CONFIG_ERROR", "SCAN_MAX_DEPTH must be positive", ErrInvalidInput)
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
