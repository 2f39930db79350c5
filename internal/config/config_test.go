package config_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/realm-api/internal/config"
	"github.com/KirkDiggler/realm-api/internal/errors"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 50051, cfg.GRPCPort)
	assert.Equal(t, config.RedisModeSingle, cfg.RedisMode)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 5, cfg.CommitAttempts)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("REALM_GRPC_PORT", "6000")
	t.Setenv("REALM_REDIS_MODE", "cluster")
	t.Setenv("REALM_REDIS_ADDRS", "a:7000,b:7001")
	t.Setenv("REALM_LOG_LEVEL", "debug")
	t.Setenv("REALM_COMMIT_ATTEMPTS", "9")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 6000, cfg.GRPCPort)
	assert.Equal(t, []string{"a:7000", "b:7001"}, cfg.RedisAddrs)
	assert.Equal(t, 9, cfg.CommitAttempts)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Run("unparseable port", func(t *testing.T) {
		t.Setenv("REALM_GRPC_PORT", "abc")
		_, err := config.Load()
		require.Error(t, err)
		assert.True(t, errors.IsInvalidArgument(err))
	})

	t.Run("sentinel without master", func(t *testing.T) {
		t.Setenv("REALM_REDIS_MODE", "sentinel")
		t.Setenv("REALM_REDIS_ADDRS", "s:26379")
		_, err := config.Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "REALM_REDIS_MASTER_NAME")
	})

	t.Run("unknown log level", func(t *testing.T) {
		t.Setenv("REALM_LOG_LEVEL", "loud")
		_, err := config.Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "REALM_LOG_LEVEL")
	})
}

func TestLogger(t *testing.T) {
	cfg := &config.Server{LogLevel: "warn", LogFormat: "text"}

	var buf bytes.Buffer
	logger := cfg.Logger(&buf)
	logger.Info("hidden")
	logger.Warn("shown", "character_id", "chr_1")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "character_id=chr_1")
}

func TestRedisClient(t *testing.T) {
	cfg := &config.Server{RedisMode: config.RedisModeSingle, RedisAddr: "localhost:6379"}
	client, err := cfg.RedisClient()
	require.NoError(t, err)
	assert.NotNil(t, client)
	require.NoError(t, client.Close())
}
