package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadConfiguration_Defaults(t *testing.T) {
	conf, err := LoadConfiguration("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", conf.Server.Address)
	assert.Equal(t, BackendSQLite, conf.Store.Backend)
	assert.Equal(t, "bs-interest-calculations", conf.Store.Key)
	assert.Equal(t, "bsinterest.db", conf.Store.SQLite.Path)
	assert.Equal(t, "localhost:6379", conf.Store.Redis.Addr)
	assert.Equal(t, "info", conf.Logging.Level)
	assert.Equal(t, "json", conf.Logging.Format)
	assert.NotEmpty(t, conf.CORS.AllowedOrigins)
}

func TestLoadConfiguration_MissingFileUsesDefaults(t *testing.T) {
	conf, err := LoadConfiguration(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ":8080", conf.Server.Address)
}

func TestLoadConfiguration_File(t *testing.T) {
	path := writeConfig(t, `
server:
  address: ":9090"
store:
  backend: redis
  key: my-key
  redis:
    addr: cache:6379
    db: 2
cors:
  allowedOrigins:
    - https://calc.example.np
logging:
  level: debug
  format: console
`)

	conf, err := LoadConfiguration(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", conf.Server.Address)
	assert.Equal(t, BackendRedis, conf.Store.Backend)
	assert.Equal(t, "my-key", conf.Store.Key)
	assert.Equal(t, "cache:6379", conf.Store.Redis.Addr)
	assert.Equal(t, 2, conf.Store.Redis.DB)
	assert.Equal(t, []string{"https://calc.example.np"}, conf.CORS.AllowedOrigins)
	assert.Equal(t, "debug", conf.Logging.Level)
	assert.Equal(t, "console", conf.Logging.Format)
	// Untouched keys keep their defaults.
	assert.Equal(t, "bsinterest.db", conf.Store.SQLite.Path)
}

func TestLoadConfiguration_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "server:\n  address: \":9090\"\n")
	t.Setenv("BSINTEREST_SERVER_ADDRESS", ":7070")
	t.Setenv("BSINTEREST_STORE_BACKEND", "memory")

	conf, err := LoadConfiguration(path)
	require.NoError(t, err)
	assert.Equal(t, ":7070", conf.Server.Address)
	assert.Equal(t, BackendMemory, conf.Store.Backend)
}

func TestLoadConfiguration_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown backend", "store:\n  backend: postgres\n"},
		{"empty key", "store:\n  key: \"\"\n"},
		{"bad yaml", "server: [unclosed\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfiguration(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name     string
		cfg      LoggingConfig
		override string
		wantErr  bool
	}{
		{"defaults", LoggingConfig{}, "", false},
		{"console debug", LoggingConfig{Level: "debug", Format: "console"}, "", false},
		{"override wins", LoggingConfig{Level: "bogus"}, "warn", false},
		{"bad level", LoggingConfig{Level: "loud"}, "", true},
		{"bad format", LoggingConfig{Format: "xml"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewLogger(tt.cfg, tt.override)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, logger)
		})
	}
}

func TestNewLogger_OutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "server.log")

	logger, err := NewLogger(LoggingConfig{Level: "info", OutputFile: path}, "")
	require.NoError(t, err)
	logger.Info("hello")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}
