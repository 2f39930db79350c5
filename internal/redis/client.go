// Package redis provides a wrapper around the go-redis client library
// and the optimistic transaction helper the repositories commit through.
package redis

import (
	"crypto/tls"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/realm-api/internal/errors"
)

// Client wraps redis.UniversalClient so single node, cluster and sentinel
// deployments are interchangeable
type Client interface {
	redis.UniversalClient
}

// Mode names a Redis deployment shape
type Mode string

// Deployment modes
const (
	ModeSingle   Mode = "single"
	ModeCluster  Mode = "cluster"
	ModeSentinel Mode = "sentinel"
)

// Topology says where Redis lives. For sentinel mode Addrs are the
// sentinels, not the master.
type Topology struct {
	Mode       Mode
	Addrs      []string
	MasterName string
}

// Options configures Redis client behavior
type Options struct {
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	MaxRetries   int
	UseTLS       bool
}

func (o *Options) tlsConfig() *tls.Config {
	if !o.UseTLS {
		return nil
	}
	return &tls.Config{MinVersion: tls.VersionTLS12}
}

// Dial creates a client for the topology. Cross-entity commits WATCH
// several keys, which cluster mode only allows when they hash to the same
// slot.
func Dial(t Topology, opts *Options) (Client, error) {
	if opts == nil {
		opts = &Options{}
	}
	if len(t.Addrs) == 0 {
		return nil, errors.InvalidArgument("redis: at least one address is required")
	}

	switch t.Mode {
	case ModeSingle, "":
		if len(t.Addrs) > 1 {
			return nil, errors.InvalidArgumentf("redis: single mode takes one address, got %d", len(t.Addrs))
		}
		return redis.NewClient(&redis.Options{
			Addr:         t.Addrs[0],
			PoolSize:     opts.PoolSize,
			MinIdleConns: opts.MinIdleConns,
			DialTimeout:  opts.DialTimeout,
			MaxRetries:   opts.MaxRetries,
			TLSConfig:    opts.tlsConfig(),
		}), nil

	case ModeCluster:
		return redis.NewClusterClient(&redis.ClusterOptions{
			Addrs:        t.Addrs,
			PoolSize:     opts.PoolSize,
			MinIdleConns: opts.MinIdleConns,
			DialTimeout:  opts.DialTimeout,
			MaxRetries:   opts.MaxRetries,
			TLSConfig:    opts.tlsConfig(),
		}), nil

	case ModeSentinel:
		if t.MasterName == "" {
			return nil, errors.InvalidArgument("redis: master name is required in sentinel mode")
		}
		return redis.NewFailoverClient(&redis.FailoverOptions{
			MasterName:    t.MasterName,
			SentinelAddrs: t.Addrs,
			PoolSize:      opts.PoolSize,
			MinIdleConns:  opts.MinIdleConns,
			DialTimeout:   opts.DialTimeout,
			MaxRetries:    opts.MaxRetries,
			TLSConfig:     opts.tlsConfig(),
		}), nil

	default:
		return nil, errors.InvalidArgumentf("redis: unknown mode %q", t.Mode)
	}
}
