package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	// Save current env and restore later
	origID := os.Getenv("SPREADSHEET_ID")
	defer os.Setenv("SPREADSHEET_ID", origID)

	os.Setenv("SPREADSHEET_ID", "sheet-123")
	os.Setenv("SHEET_GID", "2089414052")
	os.Setenv("ALLOWED_ORIGINS", "https://pantry.example.org, https://pantry-dev.example.org")
	os.Setenv("MINIO_USE_SSL", "true")
	defer func() {
		os.Unsetenv("SHEET_GID")
		os.Unsetenv("ALLOWED_ORIGINS")
		os.Unsetenv("MINIO_USE_SSL")
	}()

	cfg := Load()

	assert.Equal(t, "sheet-123", cfg.Google.SpreadsheetID)
	assert.Equal(t, 2089414052, cfg.Google.SheetGID)
	assert.Equal(t, []string{"https://pantry.example.org", "https://pantry-dev.example.org"}, cfg.AllowedOrigins)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, "drive", cfg.ArchiveBackend)
	assert.Equal(t, "https://quickchart.io/barcode", cfg.Label.BarcodeBaseURL)
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Equal(t, []string{"a", "b"}, splitList("a, b,"))
}
