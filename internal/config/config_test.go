package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	if content == "" {
		return ""
	}
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadAPIConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError bool
		validate    func(*testing.T, *APIConfig)
	}{
		{
			name: "valid config file",
			configFile: `
debug: true
sentry_dsn: "https://sentry.example.com"
server:
  host: 127.0.0.1
  port: 9090
database:
  host: localhost
  port: 5432
  user: testuser
  password: testpass
  dbname: testdb
  sslmode: require
nats:
  url: "nats://localhost:4222"
  stream_name: "TEST_STREAM"
temporal:
  host_port: "temporal:7233"
  task_queue: "test-queue"
assetstore:
  bucket_url: "mem://"
auth:
  api_keys:
    - key-1
    - key-2
`,
			validate: func(t *testing.T, cfg *APIConfig) {
				assert.True(t, cfg.Debug)
				assert.Equal(t, "https://sentry.example.com", cfg.SentryDSN)
				assert.Equal(t, "127.0.0.1", cfg.Server.Host)
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, "require", cfg.Database.SSLMode)
				assert.Equal(t, "TEST_STREAM", cfg.NATS.StreamName)
				assert.Equal(t, "temporal:7233", cfg.Temporal.HostPort)
				assert.Equal(t, "test-queue", cfg.Temporal.TaskQueue)
				assert.Equal(t, "mem://", cfg.Assetstore.BucketURL)
				assert.Equal(t, []string{"key-1", "key-2"}, cfg.Auth.APIKeys)
			},
		},
		{
			name: "config with defaults",
			configFile: `
database:
  host: localhost
  user: testuser
  password: testpass
  dbname: testdb
`,
			validate: func(t *testing.T, cfg *APIConfig) {
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, "disable", cfg.Database.SSLMode)
				assert.Equal(t, "CMS_EVENTS", cfg.NATS.StreamName)
				assert.Equal(t, "2s", cfg.NATS.ReconnectWait.String())
				assert.Equal(t, "localhost:7233", cfg.Temporal.HostPort)
				assert.Equal(t, "histogram-compute", cfg.Temporal.TaskQueue)
				assert.Equal(t, "file:///var/lib/histogramd/assetstore", cfg.Assetstore.BucketURL)
			},
		},
		{
			name:       "missing config file falls back to env",
			configFile: "",
		},
		{
			name: "invalid yaml",
			configFile: `
database:
  port: not-a-number
`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadAPIConfig(writeConfigFile(t, tt.configFile), t.TempDir())
			if tt.expectError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, cfg)
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestLoadEventBridgeConfig(t *testing.T) {
	cfg, err := LoadEventBridgeConfig("", t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "histogram-event-bridge", cfg.NATS.ConsumerName)
	assert.Equal(t, "30s", cfg.NATS.AckWait.String())
	assert.Equal(t, 3, cfg.NATS.MaxDeliver)
	assert.Equal(t, 20, cfg.Worker.PoolSize)
	assert.Equal(t, 2048, cfg.Worker.QueueSize)
}

func TestLoadWorkerConfig(t *testing.T) {
	cfg, err := LoadWorkerConfig("", t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Temporal.MaxConcurrentActivityExecutionSize)
	assert.Equal(t, float64(10), cfg.Temporal.WorkerActivitiesPerSecond)
	assert.Equal(t, 2, cfg.Temporal.MaxConcurrentActivityTaskPollers)
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db",
		Port:     5433,
		User:     "u",
		Password: "p",
		DBName:   "histograms",
		SSLMode:  "disable",
	}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=histograms sslmode=disable", cfg.DSN())
}
