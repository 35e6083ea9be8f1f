package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP server
	Port string

	// Backend selection: sheets, sqlite, or memory.
	DataBackend string

	// Google Sheets
	GoogleSpreadsheetID      string
	GoogleSheetName          string
	GoogleServiceAccountJSON string
	GoogleCredentialsFile    string
	SheetsHandleTTL          time.Duration

	// SQLite (primary backend and backup mirror)
	SQLiteDBPath string
	BackupDBPath string

	// AMQP (optional save-event publishing)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Backup worker
	BackupInterval time.Duration

	// Memory backend seed file
	SeedLedgerPath string
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8081"),
		DataBackend: getEnv("DATA_BACKEND", "sheets"),

		GoogleSpreadsheetID:      getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:          getEnv("GOOGLE_SHEET_NAME", ""),
		GoogleServiceAccountJSON: getEnv("GOOGLE_SERVICE_ACCOUNT_JSON", ""),
		GoogleCredentialsFile:    getEnv("GOOGLE_CREDENTIALS_FILE", "credentials.json"),
		SheetsHandleTTL:          getEnvDuration("SHEETS_HANDLE_TTL", time.Minute),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/ledger.db"),
		BackupDBPath: getEnv("BACKUP_DB_PATH", "./data/ledger-backup.db"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "gestione-spese"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "ledger_saved"),

		BackupInterval: getEnvDuration("BACKUP_INTERVAL", 15*time.Minute),

		SeedLedgerPath: getEnv("SEED_LEDGER_PATH", "./data/seed_ledger.csv"),
	}
}

// Validate checks the configuration and returns an error listing every
// problem found.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DataBackend {
	case "sheets":
		if c.GoogleSpreadsheetID == "" {
			errs = append(errs, "GOOGLE_SPREADSHEET_ID is required when using the sheets backend")
		}
		// Credentials are resolved at connect time: the embedded secret is
		// tried first, then the credential file. Only flag the case where
		// neither can possibly work.
		if c.GoogleServiceAccountJSON == "" && c.GoogleCredentialsFile == "" {
			errs = append(errs, "either GOOGLE_SERVICE_ACCOUNT_JSON or GOOGLE_CREDENTIALS_FILE must be set for the sheets backend")
		}
	case "sqlite":
		if c.SQLiteDBPath == "" {
			errs = append(errs, "SQLITE_DB_PATH cannot be empty when using the sqlite backend")
		}
	case "memory":
		// Seed file is optional; a missing file means an empty ledger.
	default:
		errs = append(errs, fmt.Sprintf("invalid data backend '%s': must be one of [sheets sqlite memory]", c.DataBackend))
	}

	if c.AMQPURL != "" {
		if parsed, err := url.Parse(c.AMQPURL); err != nil {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsed.Scheme))
		}
		if c.AMQPExchange == "" {
			errs = append(errs, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errs = append(errs, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.SheetsHandleTTL < time.Second {
		errs = append(errs, fmt.Sprintf("invalid sheets handle TTL %v: must be at least 1 second", c.SheetsHandleTTL))
	}
	if c.BackupInterval < time.Second {
		errs = append(errs, fmt.Sprintf("invalid backup interval %v: must be at least 1 second", c.BackupInterval))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
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
