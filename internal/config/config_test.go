package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/quizengine/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Addr:              ":8080",
		DBDriver:          config.DriverSQLite,
		DBPath:            "test.db",
		LogLevel:          "INFO",
		ImportWorkerCount: 2,
		ImportQueueSize:   32,
		CORSOrigins:       []string{"http://localhost:3000"},
		RequestTimeout:    30 * time.Second,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_EmptyAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
}

func TestValidate_EmptyDBPath(t *testing.T) {
	cfg := validConfig()
	cfg.DBPath = "  "

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PATH cannot be empty")
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := validConfig()
	cfg.DBDriver = "mysql"

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DB_DRIVER")
}

func TestValidate_PoolSizes(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"zero workers", func(c *config.Config) { c.ImportWorkerCount = 0 }, "IMPORT_WORKER_COUNT"},
		{"negative queue", func(c *config.Config) { c.ImportQueueSize = -1 }, "IMPORT_QUEUE_SIZE"},
		{"zero timeout", func(c *config.Config) { c.RequestTimeout = 0 }, "REQUEST_TIMEOUT_SECONDS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_QuizDir(t *testing.T) {
	cfg := validConfig()
	cfg.QuizDir = t.TempDir()
	assert.NoError(t, cfg.Validate())

	cfg.QuizDir = cfg.QuizDir + "/missing"
	assert.Error(t, cfg.Validate())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("DB_DRIVER", "pgx")
	t.Setenv("IMPORT_WORKER_COUNT", "not-a-number")
	t.Setenv("CORS_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "5")

	cfg := config.Load()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, config.DriverPostgres, cfg.DBDriver)
	assert.Equal(t, 2, cfg.ImportWorkerCount)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
}
