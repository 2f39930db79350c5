package main

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/realm-api/internal/config"
	"github.com/KirkDiggler/realm-api/internal/errors"
)

func testConfig(t *testing.T, redisAddr string) *config.Server {
	t.Helper()
	return &config.Server{
		GRPCPort:       50051,
		RedisMode:      config.RedisModeSingle,
		RedisAddr:      redisAddr,
		RedisPoolSize:  2,
		LedgerPath:     filepath.Join(t.TempDir(), "ledger.db"),
		LogLevel:       "debug",
		LogFormat:      "json",
		CommitAttempts: 3,
	}
}

func TestNewRealmServesRequests(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	var logs bytes.Buffer
	r, err := newRealm(ctx, testConfig(t, mr.Addr()), slog.New(slog.NewJSONHandler(&logs, nil)))
	require.NoError(t, err)
	defer r.Close()

	req, err := structpb.NewStruct(map[string]any{"name": "Aria"})
	require.NoError(t, err)

	resp, err := r.handler.CreateCharacter(ctx, req)
	require.NoError(t, err)

	c := resp.AsMap()["character"].(map[string]any)
	assert.Equal(t, "Aria", c["name"])
	assert.Regexp(t, `^chr_`, c["id"])

	get, err := structpb.NewStruct(map[string]any{"character_id": c["id"]})
	require.NoError(t, err)
	_, err = r.handler.GetCharacter(ctx, get)
	require.NoError(t, err)

	missing, err := structpb.NewStruct(map[string]any{"guild_id": "gld_missing"})
	require.NoError(t, err)
	_, err = r.handler.GetGuild(ctx, missing)
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestNewRealmFailsWithoutRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := newRealm(context.Background(), testConfig(t, addr), slog.Default())
	require.Error(t, err)
	assert.True(t, errors.IsUnavailable(err))
}

func TestNewRealmRejectsMissingTuningFile(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig(t, mr.Addr())
	cfg.TuningPath = filepath.Join(t.TempDir(), "absent.yaml")

	_, err := newRealm(context.Background(), cfg, slog.Default())
	require.Error(t, err)
}

func TestApplyFlagsOverridesEnvironment(t *testing.T) {
	cfg := testConfig(t, "localhost:6379")

	require.NoError(t, serverCmd.Flags().Set("port", "6000"))
	t.Cleanup(func() {
		_ = serverCmd.Flags().Set("port", "0")
		serverCmd.Flags().Lookup("port").Changed = false
	})

	require.NoError(t, applyFlags(serverCmd, cfg))
	assert.Equal(t, 6000, cfg.GRPCPort)
	assert.Equal(t, config.RedisModeSingle, cfg.RedisMode)
}
