package app

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	unsetEnv(t, "NOTIFY_DRIVER", "NOTIFY_CHANNEL", "APP_TIMEZONE", "APP_ENV", "WEATHER_CITY", "WEATHER_TIMEOUT", "BROADCAST_INTERVAL_CRON")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, NotifyDriverRedis, cfg.NotifyDriver)
	assert.Equal(t, "sales-data", cfg.NotifyChannel)
	assert.Equal(t, "London", cfg.WeatherCity)
	assert.Equal(t, 10*time.Second, cfg.WeatherTimeout)
	assert.Equal(t, "@every 1m", cfg.BroadcastIntervalCron)
	assert.False(t, cfg.IsProduction())

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestConfigRedisOptions(t *testing.T) {
	unsetEnv(t, "REDIS_PASSWORD")
	t.Setenv("REDIS_ADDR", "redis:6380")
	t.Setenv("REDIS_DB", "4")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	opts := cfg.Redis()
	assert.Equal(t, "redis:6380", opts.Addr)
	assert.Equal(t, 4, opts.DB)
	assert.Empty(t, opts.Password)
	assert.Equal(t, 4, opts.QueueOpt().DB)
}

func TestLoadConfigNormalisesDriver(t *testing.T) {
	t.Setenv("NOTIFY_DRIVER", " AMQP ")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, NotifyDriverAMQP, cfg.NotifyDriver)
}

func TestLoadConfigRejectsUnknownDriver(t *testing.T) {
	t.Setenv("NOTIFY_DRIVER", "kafka")
	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kafka")
}

func TestLoadConfigRejectsBadTimezone(t *testing.T) {
	t.Setenv("APP_TIMEZONE", "Mars/Olympus")
	_, err := LoadConfig()
	require.Error(t, err)
}

func TestNewPublisherNone(t *testing.T) {
	publisher, closeFn, err := NewPublisher(&Config{NotifyDriver: NotifyDriverNone}, nil, nil)
	require.NoError(t, err)
	require.NotNil(t, publisher)
	assert.NoError(t, closeFn())

	_, _, err = NewPublisher(&Config{NotifyDriver: NotifyDriverRedis}, nil, nil)
	assert.Error(t, err)
}

func TestLoggerJSONLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&Config{LogFormat: "json", LogLevel: "warn", AppEnv: "test"}, &buf)
	logger.Info("dropped")
	logger.Warn("kept")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "sales-analytics", entry["service"])
	assert.Equal(t, "test", entry["env"])
}
