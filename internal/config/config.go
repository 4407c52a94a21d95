package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates all runtime settings shared by the console apps.
type Config struct {
	Environment string
	DataDir     string
	Bank        BankFiles
	Library     LibraryFiles
	Shop        ShopFiles
	Journal     JournalConfig
	Context     ContextConfig
	Logger      LoggerConfig
}

type BankFiles struct {
	Customers string
	Accounts  string
}

type LibraryFiles struct {
	Books string
	Users string
}

type ShopFiles struct {
	Products string
	Cart     string
}

type JournalConfig struct {
	Enabled        bool
	Path           string
	RetentionHours int
	HistoryLimit   int
}

// Retention is the age after which journal entries are purged at startup.
// Zero disables the purge.
func (j JournalConfig) Retention() time.Duration {
	if j.RetentionHours <= 0 {
		return 0
	}
	return time.Duration(j.RetentionHours) * time.Hour
}

type ContextConfig struct {
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level    string
	Encoding string
	Output   string
}

// Load reads configuration from environment variables (optionally .env)
// and applies defaults that match the historical file names in the working directory.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	dataDir := getString("DATA_DIR", ".")
	cfg := &Config{
		Environment: getString("APP_ENV", "development"),
		DataDir:     dataDir,
		Bank: BankFiles{
			Customers: dataFile(dataDir, "BANK_CUSTOMERS_FILE", "customers.json"),
			Accounts:  dataFile(dataDir, "BANK_ACCOUNTS_FILE", "accounts.json"),
		},
		Library: LibraryFiles{
			Books: dataFile(dataDir, "LIBRARY_BOOKS_FILE", "books.json"),
			Users: dataFile(dataDir, "LIBRARY_USERS_FILE", "users.json"),
		},
		Shop: ShopFiles{
			Products: dataFile(dataDir, "SHOP_PRODUCTS_FILE", "products.json"),
			Cart:     dataFile(dataDir, "SHOP_CART_FILE", "cart.json"),
		},
		Journal: JournalConfig{
			Enabled:        getBool("JOURNAL_ENABLED", true),
			Path:           getString("JOURNAL_PATH", "./data/journal.db"),
			RetentionHours: getInt("JOURNAL_RETENTION_HOURS", 720),
			HistoryLimit:   getInt("JOURNAL_HISTORY_LIMIT", 20),
		},
		Context: ContextConfig{
			ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 5*time.Second),
		},
		Logger: LoggerConfig{
			Level:    getString("LOG_LEVEL", "info"),
			Encoding: getString("LOG_ENCODING", "console"),
			Output:   getString("LOG_OUTPUT", "stderr"),
		},
	}

	return cfg, nil
}

// MustLoad panics if configuration cannot be loaded.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// dataFile resolves a data file name. Absolute overrides are used as is,
// relative ones are placed under dir.
func dataFile(dir, key, fallback string) string {
	name := getString(key, fallback)
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dir, name)
}

func getString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}
