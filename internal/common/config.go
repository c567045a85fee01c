package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/expenseflow/expenseflow/internal/imageprep"
)

// Config holds all application configuration.
type Config struct {
	LLM     LLMConfig
	Storage StorageConfig
	Image   ImageConfig
	Extract ExtractConfig
}

// LLMConfig holds vision-model configuration.
type LLMConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	Timeout     time.Duration
}

// StorageConfig holds object-storage configuration.
type StorageConfig struct {
	Host      string
	AccessKey string
	SecretKey string
	Bucket    string
	Secure    bool
	URLExpiry time.Duration
}

// ImageConfig holds upload preprocessing configuration.
type ImageConfig struct {
	MaxDimension    int
	EnhanceContrast bool
}

// ExtractConfig holds extraction-pipeline behavior flags.
type ExtractConfig struct {
	EnforceTotalReconciliation bool
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			APIKey:      getEnv("DASHSCOPE_API_KEY", ""),
			BaseURL:     getEnv("DASHSCOPE_BASE_URL", "https://dashscope.aliyuncs.com/compatible-mode/v1"),
			Model:       getEnv("QWEN_MODEL", "qwen-vl-max-latest"),
			Temperature: getEnvAsFloat32("QWEN_TEMPERATURE", 0.0),
			Timeout:     getEnvAsDuration("QWEN_TIMEOUT", 60*time.Second),
		},
		Storage: StorageConfig{
			Host:      getEnv("MINIO_HOST", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", "expense-reports"),
			Secure:    getEnvAsBool("MINIO_SECURE", false),
			URLExpiry: getEnvAsDuration("EXPORT_URL_EXPIRY", 7*24*time.Hour),
		},
		Image: ImageConfig{
			MaxDimension:    getEnvAsInt("IMAGE_MAX_DIMENSION", imageprep.DefaultMaxDimension),
			EnhanceContrast: getEnvAsBool("IMAGE_ENHANCE_CONTRAST", false),
		},
		Extract: ExtractConfig{
			EnforceTotalReconciliation: getEnvAsBool("ENFORCE_TOTAL_RECONCILIATION", false),
		},
	}
}

// Validate checks the loaded configuration and reports every missing
// required variable at once, not just the first.
func (c *Config) Validate() error {
	var missing []string
	if c.LLM.APIKey == "" {
		missing = append(missing, "DASHSCOPE_API_KEY")
	}
	if c.Storage.Host == "" {
		missing = append(missing, "MINIO_HOST")
	}
	if c.Storage.AccessKey == "" {
		missing = append(missing, "MINIO_ACCESS_KEY")
	}
	if c.Storage.SecretKey == "" {
		missing = append(missing, "MINIO_SECRET_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Helper functions for environment variable parsing.
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

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
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
