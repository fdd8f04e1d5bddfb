package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/mystem"
	"github.com/aretw0/mystem/internal/config"
	"github.com/aretw0/mystem/internal/logging"
	"github.com/aretw0/mystem/pkg/adapters/memory"
	"github.com/aretw0/mystem/pkg/adapters/process"
	"github.com/aretw0/mystem/pkg/adapters/redis"
	"github.com/aretw0/mystem/pkg/grammem"
	"github.com/aretw0/mystem/pkg/observability"
	"github.com/aretw0/mystem/pkg/persistence/middleware"
	"github.com/aretw0/mystem/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Runtime bundles the analyzer with the infrastructure built around it.
type Runtime struct {
	Analyzer *mystem.Analyzer
	Registry *prometheus.Registry
	Logger   *slog.Logger

	closers []func() error
}

// NewLogger builds the application logger from the log section.
func NewLogger(cfg config.Config) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	return logging.New(level, cfg.Log.Format), nil
}

// NewRuntime initializes an Analyzer with standard CLI conventions:
// metrics on a private registry, the configured cache and worker environment.
func NewRuntime(cfg config.Config, logger *slog.Logger) (*Runtime, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	mode, _ := process.ParseMode(cfg.Mode)
	policy, _ := grammem.ParsePolicy(cfg.Policy)
	grace, _ := cfg.Grace()

	rt := &Runtime{
		Registry: prometheus.NewRegistry(),
		Logger:   logger,
	}
	rt.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observability.NewMetrics(rt.Registry)

	opts := []mystem.Option{
		mystem.WithExecutable(cfg.Executable),
		mystem.WithMode(mode),
		mystem.WithPolicy(policy),
		mystem.WithMaxInputSize(cfg.MaxInputSize),
		mystem.WithLogger(logger),
		mystem.WithMetrics(metrics),
		mystem.WithLifecycleHooks(observability.LogHooks(logger)),
		mystem.WithSessionOptions(
			process.WithEnv(cfg.EnvList()...),
			process.WithGracePeriod(grace),
		),
	}

	cache, closeCache, err := buildCache(cfg)
	if err != nil {
		return nil, err
	}
	if cache != nil {
		if enc, ok, _ := cfg.Cache.Encryption(); ok {
			mw, err := middleware.NewEncryptionMiddleware(enc)
			if err != nil {
				_ = closeCache()
				return nil, err
			}
			cache = middleware.Chain(cache, mw)
			logger.Debug("response cache encryption enabled", "fallback_keys", len(enc.FallbackKeys))
		}
		opts = append(opts, mystem.WithCache(cache))
		rt.closers = append(rt.closers, closeCache)
		logger.Debug("response cache enabled", "backend", cfg.Cache.Backend)
	}

	an, err := mystem.New(opts...)
	if err != nil {
		_ = rt.Close()
		return nil, fmt.Errorf("error initializing analyzer: %w", err)
	}
	rt.Analyzer = an
	return rt, nil
}

// Close terminates the worker and releases the cache.
func (rt *Runtime) Close() error {
	var errs []error
	if rt.Analyzer != nil {
		if err := rt.Analyzer.Terminate(); err != nil {
			rt.Logger.Debug("worker terminate reported an error", "error", err)
		}
	}
	for _, c := range rt.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func buildCache(cfg config.Config) (ports.ResponseCache, func() error, error) {
	switch cfg.Cache.Backend {
	case config.CacheMemory:
		return memory.NewCache(memory.WithCapacity(cfg.Cache.Capacity)), func() error { return nil }, nil
	case config.CacheRedis:
		rc := cfg.Cache.Redis
		ttl, err := rc.Expiration()
		if err != nil {
			return nil, nil, err
		}
		opts := []redis.Option{redis.WithTTL(ttl)}
		if rc.Prefix != "" {
			opts = append(opts, redis.WithPrefix(rc.Prefix))
		}
		cache := redis.New(rc.Addr, rc.Password, rc.DB, opts...)

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := cache.Ping(ctx); err != nil {
			_ = cache.Close()
			return nil, nil, fmt.Errorf("redis cache at %s unreachable: %w", rc.Addr, err)
		}
		return cache, cache.Close, nil
	default:
		return nil, nil, nil
	}
}
