package config

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/aretw0/mystem/internal/logging"
	"github.com/aretw0/mystem/pkg/adapters/process"
	"github.com/aretw0/mystem/pkg/grammem"
	"github.com/aretw0/mystem/pkg/persistence/middleware"
	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no --config flag is given. A missing default file is not an error.
const DefaultPath = "mystem.yaml"

// Cache backends.
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Config represents mystem.yaml (or .json).
type Config struct {
	Executable   string            `yaml:"executable" json:"executable"`
	Mode         string            `yaml:"mode" json:"mode"`
	Policy       string            `yaml:"policy" json:"policy"`
	MaxInputSize int               `yaml:"max_input_size" json:"max_input_size"`
	GracePeriod  string            `yaml:"grace_period" json:"grace_period"`
	Environment  map[string]string `yaml:"env" json:"env"`

	Log    LogConfig    `yaml:"log" json:"log"`
	Cache  CacheConfig  `yaml:"cache" json:"cache"`
	Server ServerConfig `yaml:"server" json:"server"`
}

type LogConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
}

type CacheConfig struct {
	Backend  string      `yaml:"backend" json:"backend"`
	Capacity int         `yaml:"capacity" json:"capacity"`
	Redis    RedisConfig `yaml:"redis" json:"redis"`

	// EncryptionKey is a base64 AES-256 key; when set, cached lines are sealed.
	EncryptionKey string `yaml:"encryption_key" json:"encryption_key"`
	// FallbackKeys are older base64 keys still accepted for reading.
	FallbackKeys []string `yaml:"fallback_keys" json:"fallback_keys"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" json:"addr"`
	Password string `yaml:"password" json:"password"`
	DB       int    `yaml:"db" json:"db"`
	Prefix   string `yaml:"prefix" json:"prefix"`
	TTL      string `yaml:"ttl" json:"ttl"`
}

type ServerConfig struct {
	Port           int      `yaml:"port" json:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" json:"allowed_origins"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Executable: process.DefaultExecutable,
		Mode:       process.ModeWeighted.String(),
		Policy:     grammem.PolicyStrict.String(),
		Log:        LogConfig{Level: "info", Format: logging.FormatText},
		Cache: CacheConfig{
			Backend: CacheNone,
			Redis:   RedisConfig{Addr: "localhost:6379"},
		},
		Server: ServerConfig{Port: 8080},
	}
}

// Load reads a configuration file (YAML or JSON, by extension) over the defaults.
// A missing file at DefaultPath yields the defaults; any other missing path is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && path == DefaultPath {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		// Default to YAML
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every enumerated and duration field.
func (c Config) Validate() error {
	var errs []error
	if _, err := process.ParseMode(c.Mode); err != nil {
		errs = append(errs, err)
	}
	if _, err := grammem.ParsePolicy(c.Policy); err != nil {
		errs = append(errs, err)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	switch c.Cache.Backend {
	case "", CacheNone, CacheMemory, CacheRedis:
	default:
		errs = append(errs, fmt.Errorf("unknown cache backend %q", c.Cache.Backend))
	}
	if c.MaxInputSize < 0 {
		errs = append(errs, fmt.Errorf("max_input_size must not be negative"))
	}
	if _, err := c.Grace(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Cache.Redis.Expiration(); err != nil {
		errs = append(errs, err)
	}
	if _, _, err := c.Cache.Encryption(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Grace returns the parsed grace period, or process.DefaultGracePeriod when unset.
func (c Config) Grace() (time.Duration, error) {
	if c.GracePeriod == "" {
		return process.DefaultGracePeriod, nil
	}
	d, err := time.ParseDuration(c.GracePeriod)
	if err != nil {
		return 0, fmt.Errorf("grace_period: %w", err)
	}
	return d, nil
}

// Expiration returns the parsed TTL; zero means no expiration.
func (r RedisConfig) Expiration() (time.Duration, error) {
	if r.TTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(r.TTL)
	if err != nil {
		return 0, fmt.Errorf("cache.redis.ttl: %w", err)
	}
	return d, nil
}

// EnvList renders Environment as sorted KEY=VALUE entries.
func (c Config) EnvList() []string {
	env := make([]string, 0, len(c.Environment))
	for k, v := range c.Environment {
		env = append(env, k+"="+v)
	}
	sort.Strings(env)
	return env
}

// Encryption decodes the cache keys. ok is false when no EncryptionKey is set.
func (c CacheConfig) Encryption() (middleware.EncryptionConfig, bool, error) {
	var enc middleware.EncryptionConfig
	if c.EncryptionKey == "" {
		if len(c.FallbackKeys) > 0 {
			return enc, false, errors.New("cache.fallback_keys require cache.encryption_key")
		}
		return enc, false, nil
	}

	key, err := base64.StdEncoding.DecodeString(c.EncryptionKey)
	if err != nil {
		return enc, false, fmt.Errorf("cache.encryption_key: %w", err)
	}
	enc.ActiveKey = key
	for i, k := range c.FallbackKeys {
		fk, err := base64.StdEncoding.DecodeString(k)
		if err != nil {
			return enc, false, fmt.Errorf("cache.fallback_keys[%d]: %w", i, err)
		}
		enc.FallbackKeys = append(enc.FallbackKeys, fk)
	}
	if err := enc.Validate(); err != nil {
		return enc, false, fmt.Errorf("cache encryption: %w", err)
	}
	return enc, true, nil
}
