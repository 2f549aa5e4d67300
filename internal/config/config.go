// Package config loads ensresolve settings from flags, environment and an
// optional YAML file.
package config

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/branched-services/go-ensresolve"
	"github.com/branched-services/go-ensresolve/ccip"
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// EnvPrefix is prepended to every environment variable, e.g.
// ENSRESOLVE_RPC_URL or ENSRESOLVE_HTTP_ADDR.
const EnvPrefix = "ENSRESOLVE"

// Config is the full process configuration.
type Config struct {
	RPCURL            string        `mapstructure:"rpc_url"`
	UniversalResolver string        `mapstructure:"registry_address"`
	LegacyRegistry    string        `mapstructure:"legacy_registry_address"`
	CallTimeout       time.Duration `mapstructure:"call_timeout"`
	HTTP              HTTPConfig    `mapstructure:"http"`
	CCIP              CCIPConfig    `mapstructure:"ccip"`
	Log               LogConfig     `mapstructure:"log"`
}

// HTTPConfig configures the API server.
type HTTPConfig struct {
	Addr           string        `mapstructure:"addr"`
	RateLimitRPS   int           `mapstructure:"rate_limit_rps"`
	RateLimitBurst int           `mapstructure:"rate_limit_burst"`
	CORSOrigins    []string      `mapstructure:"cors_origins"`
	ShutdownGrace  time.Duration `mapstructure:"shutdown_grace"`
}

// CCIPConfig configures off-chain lookups.
type CCIPConfig struct {
	MaxRedirects int           `mapstructure:"max_redirects"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// SetDefaults registers every key with its default so environment
// variables are picked up by Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("rpc_url", "https://eth.drpc.org")
	v.SetDefault("registry_address", ensresolve.UniversalResolverAddress.Hex())
	v.SetDefault("legacy_registry_address", "")
	v.SetDefault("call_timeout", 10*time.Second)

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.rate_limit_rps", 20)
	v.SetDefault("http.rate_limit_burst", 40)
	v.SetDefault("http.cors_origins", []string{"*"})
	v.SetDefault("http.shutdown_grace", 10*time.Second)

	v.SetDefault("ccip.max_redirects", ccip.DefaultMaxRedirects)
	v.SetDefault("ccip.timeout", 10*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
}

// Load reads configuration into a Config. A config file set on v with
// SetConfigFile must exist; otherwise ensresolve.yaml is searched in the
// working directory and ./configs and may be absent.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := v.ConfigFileUsed() != ""
	if !explicit {
		v.SetConfigName("ensresolve")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("configs")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	if c.RPCURL == "" {
		return errors.New("config: rpc_url is required")
	}
	if !common.IsHexAddress(c.UniversalResolver) {
		return fmt.Errorf("config: registry_address %q is not an address", c.UniversalResolver)
	}
	if c.LegacyRegistry != "" && !common.IsHexAddress(c.LegacyRegistry) {
		return fmt.Errorf("config: legacy_registry_address %q is not an address", c.LegacyRegistry)
	}
	if c.CallTimeout <= 0 {
		return fmt.Errorf("config: call_timeout must be positive, got %s", c.CallTimeout)
	}
	if c.HTTP.RateLimitRPS < 0 || c.HTTP.RateLimitBurst < 0 {
		return errors.New("config: rate limits must not be negative")
	}
	if _, err := zap.ParseAtomicLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: log.level: %w", err)
	}
	return nil
}

// ResolverOptions translates the configuration into resolver options.
func (c *Config) ResolverOptions(logger *zap.Logger) []ensresolve.Option {
	opts := []ensresolve.Option{
		ensresolve.WithUniversalResolver(common.HexToAddress(c.UniversalResolver)),
		ensresolve.WithLogger(logger),
		ensresolve.WithCCIPOptions(
			ccip.WithHTTPClient(&http.Client{Timeout: c.CCIP.Timeout}),
			ccip.WithMaxRedirects(c.CCIP.MaxRedirects),
		),
	}
	if c.LegacyRegistry != "" {
		opts = append(opts, ensresolve.WithLegacyRegistry(common.HexToAddress(c.LegacyRegistry)))
	}
	return opts
}

// NewLogger builds a zap logger for the configured level.
func (l LogConfig) NewLogger() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(l.Level)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	if l.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = level
	return zc.Build()
}
