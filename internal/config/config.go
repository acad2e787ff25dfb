package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	DataPath              string
	LogDir                string
	SettingsPath          string
	ListenAddr            string
	EscalationRecipient   string
	DistributionThreshold float64
}

// Load reads configuration from .env files and environment variables. The
// binary-relative .env wins over the working directory so the tool behaves
// the same no matter where it is invoked from.
func Load() (*AppConfig, error) {
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		if exeDir != "" {
			dataPath = exeDir
		} else {
			dataPath = "."
		}
	}

	logDir := filepath.Join(dataPath, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Warn().Err(err).Str("path", logDir).Msg("Failed to create log directory")
	}

	settingsPath := getEnv("SETTINGS_PATH", filepath.Join(dataPath, "sla-thresholds.json"))

	cfg := &AppConfig{
		DataPath:              dataPath,
		LogDir:                logDir,
		SettingsPath:          settingsPath,
		ListenAddr:            getEnv("LISTEN_ADDR", "127.0.0.1:8720"),
		EscalationRecipient:   getEnv("ESCALATION_RECIPIENT", "delivery-leads@localhost"),
		DistributionThreshold: getEnvFloat("DISTRIBUTION_THRESHOLD", 0.10),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(value, 64); err == nil && f >= 0 && f <= 1 {
			return f
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Ignoring invalid ratio value")
	}
	return fallback
}
