// Package config holds the environment driven server configuration
package config

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/realm-api/internal/errors"
	"github.com/KirkDiggler/realm-api/internal/redis"
)

// Redis deployment modes
const (
	RedisModeSingle   = string(redis.ModeSingle)
	RedisModeCluster  = string(redis.ModeCluster)
	RedisModeSentinel = string(redis.ModeSentinel)
)

// Server is everything the server command needs to start
type Server struct {
	GRPCPort int `env:"REALM_GRPC_PORT" envDefault:"50051"`

	RedisMode       string   `env:"REALM_REDIS_MODE" envDefault:"single"`
	RedisAddr       string   `env:"REALM_REDIS_ADDR" envDefault:"localhost:6379"`
	RedisAddrs      []string `env:"REALM_REDIS_ADDRS" envSeparator:","`
	RedisMasterName string   `env:"REALM_REDIS_MASTER_NAME"`
	RedisPoolSize   int      `env:"REALM_REDIS_POOL_SIZE" envDefault:"10"`
	RedisTLS        bool     `env:"REALM_REDIS_TLS"`

	RedisDialTimeout time.Duration `env:"REALM_REDIS_DIAL_TIMEOUT" envDefault:"5s"`

	LedgerPath string `env:"REALM_LEDGER_PATH" envDefault:"realm-ledger.db"`
	TuningPath string `env:"REALM_TUNING_PATH"`

	LogLevel  string `env:"REALM_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"REALM_LOG_FORMAT" envDefault:"json"`

	CommitAttempts int `env:"REALM_COMMIT_ATTEMPTS" envDefault:"5"`
}

// Load parses Server from the environment and validates it
func Load() (*Server, error) {
	cfg := &Server{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "parse env")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the parsed configuration
func (s *Server) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRange("REALM_GRPC_PORT", s.GRPCPort, 1, 65535, vb)

	switch s.RedisMode {
	case RedisModeSingle:
		errors.ValidateRequired("REALM_REDIS_ADDR", s.RedisAddr, vb)
	case RedisModeCluster:
		if len(s.RedisAddrs) == 0 {
			vb.RequiredField("REALM_REDIS_ADDRS")
		}
	case RedisModeSentinel:
		if len(s.RedisAddrs) == 0 {
			vb.RequiredField("REALM_REDIS_ADDRS")
		}
		errors.ValidateRequired("REALM_REDIS_MASTER_NAME", s.RedisMasterName, vb)
	default:
		vb.InvalidField("REALM_REDIS_MODE", "must be single, cluster or sentinel")
	}

	errors.ValidateRequired("REALM_LEDGER_PATH", s.LedgerPath, vb)

	if _, ok := parseLevel(s.LogLevel); !ok {
		vb.InvalidField("REALM_LOG_LEVEL", "must be debug, info, warn or error")
	}
	errors.ValidateEnum("REALM_LOG_FORMAT", s.LogFormat, []string{"json", "text"}, vb)

	errors.ValidatePositive("REALM_COMMIT_ATTEMPTS", s.CommitAttempts, vb)

	return vb.Build()
}

// RedisClient builds the client for the configured deployment mode
func (s *Server) RedisClient() (redis.Client, error) {
	topology := redis.Topology{
		Mode:       redis.Mode(s.RedisMode),
		Addrs:      s.RedisAddrs,
		MasterName: s.RedisMasterName,
	}
	if topology.Mode == redis.ModeSingle {
		topology.Addrs = []string{s.RedisAddr}
	}

	return redis.Dial(topology, &redis.Options{
		PoolSize:    s.RedisPoolSize,
		DialTimeout: s.RedisDialTimeout,
		UseTLS:      s.RedisTLS,
	})
}

// Logger builds the process logger writing to w
func (s *Server) Logger(w io.Writer) *slog.Logger {
	level, _ := parseLevel(s.LogLevel)
	opts := &slog.HandlerOptions{Level: level}

	if s.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
