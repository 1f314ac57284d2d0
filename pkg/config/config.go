package config

import (
	"os"
	"strconv"

	// Load environment variables from .env files when present.
	_ "github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Ingest IngestConfig
	OCR    OCRConfig
}

type IngestConfig struct {
	MaxFileSizeBytes int64
	MinTextYield     int
	DefaultCurrency  string
}

type OCRConfig struct {
	Language    string
	RasterScale float64
	TessdataDir string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Ingest: IngestConfig{
			MaxFileSizeBytes: int64(getEnvAsInt("INGEST_MAX_FILE_SIZE", 10<<20)),
			MinTextYield:     getEnvAsInt("INGEST_MIN_TEXT_YIELD", 50),
			DefaultCurrency:  getEnv("INGEST_CURRENCY", "XOF"),
		},
		OCR: OCRConfig{
			Language:    getEnv("OCR_LANGUAGE", "eng+fra"),
			RasterScale: getEnvAsFloat("OCR_RASTER_SCALE", 2.0),
			TessdataDir: getEnv("OCR_TESSDATA_DIR", ""),
		},
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}
