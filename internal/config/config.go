package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Input backends.
const (
	FileBackend   = "file"
	SheetsBackend = "sheets"
)

type Config struct {
	// Input
	InputBackend string
	InputFile    string

	// Google Sheets (when InputBackend is "sheets")
	GoogleSpreadsheetID string
	GoogleReadRange     string

	// Published artifact
	OutputFile string

	// Run history
	SQLiteDBPath string

	// AMQP refresh bus
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Worker
	RefreshInterval time.Duration

	// Dashboard site
	Port string
}

func Load() *Config {
	cfg := &Config{
		InputBackend: getEnv("INPUT_BACKEND", FileBackend),
		InputFile:    getEnv("INPUT_FILE", "data/entries.csv"),

		GoogleSpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleReadRange:     getEnv("GOOGLE_READ_RANGE", "Entries!A:C"),

		OutputFile: getEnv("OUTPUT_FILE", "public/totals.json"),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/tally.db"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "tally"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "refresh_totals"),

		RefreshInterval: getEnvDuration("REFRESH_INTERVAL", 5*time.Minute),

		Port: getEnv("PORT", "8080"),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate input backend
	switch c.InputBackend {
	case FileBackend:
		if c.InputFile == "" {
			errors = append(errors, "input file path cannot be empty when using file backend")
		} else {
			switch ext := strings.ToLower(filepath.Ext(c.InputFile)); ext {
			case ".csv", ".xlsx":
			default:
				errors = append(errors, fmt.Sprintf("unsupported input format '%s': must be .csv or .xlsx", ext))
			}
		}
	case SheetsBackend:
		if c.GoogleSpreadsheetID == "" {
			errors = append(errors, "Google Spreadsheet ID is required when using sheets backend")
		}
		if c.GoogleReadRange == "" {
			errors = append(errors, "Google read range cannot be empty when using sheets backend")
		}
	default:
		errors = append(errors, fmt.Sprintf("invalid input backend '%s': must be one of [%s %s]", c.InputBackend, FileBackend, SheetsBackend))
	}

	// Validate port
	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	// Validate SQLite path
	if c.SQLiteDBPath == "" {
		errors = append(errors, "SQLite database path cannot be empty")
	}

	// Validate AMQP URL if provided
	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	// Validate worker configuration
	if c.RefreshInterval < time.Second {
		errors = append(errors, fmt.Sprintf("invalid refresh interval %v: must be at least 1 second", c.RefreshInterval))
	} else if c.RefreshInterval > 24*time.Hour {
		errors = append(errors, fmt.Sprintf("invalid refresh interval %v: must be at most 24 hours", c.RefreshInterval))
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
