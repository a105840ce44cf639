package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gsheet_records/internal/auth"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds application configuration
type Config struct {
	CredentialsPath string
	TokenPath       string
	SpreadsheetID   string
	ClientID        string
	ClientSecret    string
}

// SetupEnvironment loads .env file and configures zerolog output and log level.
func SetupEnvironment() {
	// Load .env file if it exists
	err := godotenv.Load()

	// Configure logging
	if os.Getenv("ENV") == "production" {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		log.Logger = log.Output(os.Stderr)
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	levelStr := strings.ToLower(os.Getenv("LOGLEVEL"))
	switch levelStr {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn", "warning":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "fatal":
		zerolog.SetGlobalLevel(zerolog.FatalLevel)
	case "panic":
		zerolog.SetGlobalLevel(zerolog.PanicLevel)
	case "disabled":
		zerolog.SetGlobalLevel(zerolog.Disabled)
	case "":
		// Default based on environment
		if os.Getenv("ENV") == "production" {
			zerolog.SetGlobalLevel(zerolog.WarnLevel)
		} else {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		}
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		log.Warn().Msgf("Unknown LOGLEVEL '%s', defaulting to info.", levelStr)
	}

	// wait until now to report on the .env file so we have the chance to set up logging first
	if err == nil {
		log.Debug().Msg("Loaded environment variables from .env file.")
	} else {
		log.Debug().Msg("No .env file found or error loading .env file; proceeding with existing environment variables.")
	}
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	config := &Config{}
	applyEnv(config)

	if config.TokenPath == "" {
		config.TokenPath = auth.DefaultTokenPath
	}

	return config, nil
}

// LoadConfigFile loads configuration from a TOML file. Environment variables
// that are set take precedence over values from the file.
func LoadConfigFile(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		CredentialsPath string `toml:"credentials_path"`
		TokenPath       string `toml:"token_path"`
		SpreadsheetID   string `toml:"spreadsheet_id"`
		ClientID        string `toml:"client_id"`
		ClientSecret    string `toml:"client_secret"`
	}
	if err := toml.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	config := &Config{
		CredentialsPath: strings.TrimSpace(raw.CredentialsPath),
		TokenPath:       strings.TrimSpace(raw.TokenPath),
		SpreadsheetID:   strings.TrimSpace(raw.SpreadsheetID),
		ClientID:        strings.TrimSpace(raw.ClientID),
		ClientSecret:    strings.TrimSpace(raw.ClientSecret),
	}
	applyEnv(config)

	if config.TokenPath == "" {
		config.TokenPath = auth.DefaultTokenPath
	}

	return config, nil
}

// AuthConfig returns the credential locations for the auth manager
func (c *Config) AuthConfig() auth.Config {
	return auth.Config{
		CredentialsPath: c.CredentialsPath,
		TokenPath:       c.TokenPath,
	}
}

func applyEnv(config *Config) {
	setFromEnv(&config.CredentialsPath, "GOOGLE_CREDENTIALS_PATH")
	setFromEnv(&config.TokenPath, "GOOGLE_TOKEN_PATH")
	setFromEnv(&config.SpreadsheetID, "SPREADSHEET_ID")
	setFromEnv(&config.ClientID, "GOOGLE_CLIENT_ID")
	setFromEnv(&config.ClientSecret, "GOOGLE_CLIENT_SECRET")
}

func setFromEnv(field *string, key string) {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		*field = value
	}
}
