package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	for _, key := range []string{
		"APP_ENV", "DATA_DIR", "LOG_LEVEL", "LOG_ENCODING", "LOG_OUTPUT",
		"BANK_CUSTOMERS_FILE", "SHOP_CART_FILE", "JOURNAL_ENABLED",
		"JOURNAL_RETENTION_HOURS", "SHUTDOWN_TIMEOUT",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "development", cfg.Environment)
	require.Equal(t, "customers.json", cfg.Bank.Customers)
	require.Equal(t, "accounts.json", cfg.Bank.Accounts)
	require.Equal(t, "books.json", cfg.Library.Books)
	require.Equal(t, "cart.json", cfg.Shop.Cart)
	require.True(t, cfg.Journal.Enabled)
	require.Equal(t, 720*time.Hour, cfg.Journal.Retention())
	require.Equal(t, 5*time.Second, cfg.Context.ShutdownTimeout)
	require.Equal(t, "stderr", cfg.Logger.Output)
	require.Equal(t, "console", cfg.Logger.Encoding)
}

func TestLoadOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	abs := filepath.Join(t.TempDir(), "cart.json")
	t.Setenv("DATA_DIR", "state")
	t.Setenv("BANK_CUSTOMERS_FILE", "clients.json")
	t.Setenv("SHOP_CART_FILE", abs)
	t.Setenv("JOURNAL_ENABLED", "false")
	t.Setenv("JOURNAL_RETENTION_HOURS", "0")
	t.Setenv("SHUTDOWN_TIMEOUT", "2")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, filepath.Join("state", "clients.json"), cfg.Bank.Customers)
	require.Equal(t, filepath.Join("state", "accounts.json"), cfg.Bank.Accounts)
	require.Equal(t, abs, cfg.Shop.Cart)
	require.False(t, cfg.Journal.Enabled)
	require.Zero(t, cfg.Journal.Retention())
	require.Equal(t, 2*time.Second, cfg.Context.ShutdownTimeout)
	require.Equal(t, "debug", cfg.Logger.Level)
}

func TestMalformedValuesFallBack(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("JOURNAL_ENABLED", "maybe")
	t.Setenv("JOURNAL_HISTORY_LIMIT", "lots")
	t.Setenv("SHUTDOWN_TIMEOUT", "soon")

	cfg := MustLoad()
	require.True(t, cfg.Journal.Enabled)
	require.Equal(t, 20, cfg.Journal.HistoryLimit)
	require.Equal(t, 5*time.Second, cfg.Context.ShutdownTimeout)
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
