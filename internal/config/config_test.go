package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jqzhang/crmsheet/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CRMSHEET_SPREADSHEET_ID", "sheet-id-1")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0", cfg.Server.Host)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, "Customers", cfg.Sheets.MainSheet)
	require.Equal(t, "America/Los_Angeles", cfg.Sheets.Timezone)
	require.Equal(t, 60*time.Second, cfg.Sheets.CacheTTL)
	require.Equal(t, 10*time.Minute, cfg.Sheets.MetadataTTL)
	require.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_RequiresSpreadsheetID(t *testing.T) {
	t.Setenv("CRMSHEET_SPREADSHEET_ID", "")

	_, err := config.Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "spreadsheet_id")
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  host: 127.0.0.1
  port: 9090
sheets:
  spreadsheet_id: sheet-id-2
  main_sheet: Pipeline
  timezone: UTC
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("CRMSHEET_CONFIG_PATH", path)

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1", cfg.Server.Host)
	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, "sheet-id-2", cfg.Sheets.SpreadsheetID)
	require.Equal(t, "Pipeline", cfg.Sheets.MainSheet)
	require.Equal(t, "UTC", cfg.Sheets.Timezone)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sheets:\n  spreadsheet_id: from-file\n"), 0o600))
	t.Setenv("CRMSHEET_CONFIG_PATH", path)
	t.Setenv("CRMSHEET_SPREADSHEET_ID", "from-env")
	t.Setenv("CRMSHEET_SERVER_PORT", "8123")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "from-env", cfg.Sheets.SpreadsheetID)
	require.Equal(t, 8123, cfg.Server.Port)
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("CRMSHEET_SPREADSHEET_ID", "sheet-id-1")
	t.Setenv("CRMSHEET_SERVER_PORT", "not-a-port")

	_, err := config.Load()
	require.Error(t, err)
}
