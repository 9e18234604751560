package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/xxxsen/common/logger"
)

const testSecret = "0123456789abcdef-secret"

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, "config.json", `{
		"port": 9090,
		"jwt_secret": "`+testSecret+`",
		"database": {"host": "db", "user": "markbook", "password": "pw", "dbname": "markbook"},
		"log_config": {"level": "debug", "file": "/tmp/markbook.log", "file_count": 3},
		"cors": {"allow_origins": ["http://localhost:3000"]},
		"gzip": false
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	expected := &Config{
		Port:      9090,
		JWTSecret: testSecret,
		Database: DatabaseConfig{
			Host:     "db",
			Port:     5432,
			User:     "markbook",
			Password: "pw",
			DBName:   "markbook",
			SSLMode:  "disable",
		},
		LogConfig: logger.LogConfig{File: "/tmp/markbook.log", Level: "debug", FileCount: 3, Console: true},
		CORS:      CORSConfig{AllowOrigins: []string{"http://localhost:3000"}},
		Gzip:      false,
	}
	require.Empty(t, cmp.Diff(expected, cfg))
}

func TestLoadFromEnvOnly(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/markbook?sslmode=disable")
	t.Setenv("MARKBOOK_PORT", "7000")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, testSecret, cfg.JWTSecret)
	require.Equal(t, "postgres://u:p@localhost:5432/markbook?sslmode=disable", cfg.Database.DSN)
	require.Equal(t, 7000, cfg.Port)
	require.True(t, cfg.Gzip)
	require.Equal(t, "info", cfg.LogConfig.Level)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "config.yaml", "jwt_secret: file-secret-0123456789\ndatabase:\n  host: filehost\n")
	t.Setenv("MARKBOOK_DATABASE_HOST", "envhost")
	t.Setenv("MARKBOOK_JWT_SECRET", testSecret)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "envhost", cfg.Database.Host)
	require.Equal(t, testSecret, cfg.JWTSecret)
}

func TestLoadRejectsMissingSettings(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing secret", body: `{"database": {"dsn": "postgres://x"}}`},
		{name: "short secret", body: `{"jwt_secret": "short", "database": {"dsn": "postgres://x"}}`},
		{name: "missing database", body: `{"jwt_secret": "` + testSecret + `"}`},
		{name: "bad port", body: `{"port": 70000, "jwt_secret": "` + testSecret + `", "database": {"dsn": "postgres://x"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, "config.json", tt.body))
			require.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}

func TestLogConfigFromEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("DATABASE_URL", "postgres://localhost/markbook")
	t.Setenv("MARKBOOK_LOG_CONFIG_FILE", "/var/log/markbook.log")
	t.Setenv("MARKBOOK_LOG_CONFIG_FILE_COUNT", "5")
	t.Setenv("MARKBOOK_LOG_CONFIG_FILE_SIZE", "10485760")
	t.Setenv("MARKBOOK_LOG_CONFIG_KEEP_DAYS", "7")
	t.Setenv("MARKBOOK_LOG_CONFIG_CONSOLE", "false")

	cfg, err := Load("")
	require.NoError(t, err)
	expected := logger.LogConfig{
		File:      "/var/log/markbook.log",
		Level:     "info",
		FileSize:  10485760,
		FileCount: 5,
		KeepDays:  7,
		Console:   false,
	}
	require.Empty(t, cmp.Diff(expected, cfg.LogConfig))
}
