package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const AppName = "picon"

type Config struct {
	CoinMarketCap CoinMarketCapConfig `mapstructure:"coinmarketcap"`
	APISvr        APISvrConfig        `mapstructure:"apisvr"`
	Cache         CacheConfig         `mapstructure:"cache"`
	Bridge        BridgeConfig        `mapstructure:"bridge"`
	UI            UIConfig            `mapstructure:"ui"`
	Log           LogConfig           `mapstructure:"log"`
	Postgres      PostgresConfig      `mapstructure:"postgres"`
}

// CoinMarketCapConfig configures the listings endpoint. APIKeyParam, when set,
// names an SSM parameter that overrides APIKey.
type CoinMarketCapConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	APIKey      string        `mapstructure:"api_key"`
	APIKeyParam string        `mapstructure:"api_key_param"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Start       int           `mapstructure:"start"`
	Limit       int           `mapstructure:"limit"`
	Convert     string        `mapstructure:"convert"`
	Aux         string        `mapstructure:"aux"`
}

type APISvrConfig struct {
	BaseURL            string        `mapstructure:"base_url"`
	Timeout            time.Duration `mapstructure:"timeout"`
	InsecureSkipVerify bool          `mapstructure:"insecure_skip_verify"`
}

type CacheConfig struct {
	Dir string `mapstructure:"dir"`
}

type BridgeConfig struct {
	Capacity int `mapstructure:"capacity"`
}

// UIConfig drives the terminal view. AutoRefresh of zero disables periodic fetching.
type UIConfig struct {
	TickInterval time.Duration `mapstructure:"tick_interval"`
	AutoRefresh  time.Duration `mapstructure:"auto_refresh"`
}

// LogConfig defines the logger configuration options.
type LogConfig struct {
	Level       string `mapstructure:"level"`       // log level: "debug", "info", "warn", "error"
	Format      string `mapstructure:"format"`      // log format: "json" or "console"
	OutputFile  string `mapstructure:"output_file"` // file path to store logs (optional)
	Environment string `mapstructure:"environment"` // environment: "dev" or "prod"
	Console     bool   `mapstructure:"console"`     // also write to stderr
}

// Load loads application configuration using Viper.
// It reads config.yaml and overrides with PICON_* environment variables.
func Load() *Config {
	cfg, err := LoadFrom(searchPaths()...)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

// LoadFrom reads config.yaml from the first matching directory in paths.
// A missing file is not an error: defaults and environment still apply.
func LoadFrom(paths ...string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("config") // config.yaml
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	setDefaults(v)

	// PICON_COINMARKETCAP_API_KEY -> coinmarketcap.api_key
	v.SetEnvPrefix("PICON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Cache.Dir == "" {
		dir, err := defaultCacheDir()
		if err != nil {
			return nil, fmt.Errorf("resolve cache dir: %w", err)
		}
		cfg.Cache.Dir = dir
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("coinmarketcap.base_url", "https://pro-api.coinmarketcap.com")
	v.SetDefault("coinmarketcap.timeout", 15*time.Second)
	v.SetDefault("coinmarketcap.start", 1)
	v.SetDefault("coinmarketcap.limit", 100)
	v.SetDefault("coinmarketcap.convert", "USD")
	v.SetDefault("coinmarketcap.aux", "cmc_rank")
	// AutomaticEnv only sees keys viper already knows about
	v.SetDefault("coinmarketcap.api_key", "")
	v.SetDefault("coinmarketcap.api_key_param", "")

	v.SetDefault("apisvr.base_url", "https://heng30.xyz/apisvr")
	v.SetDefault("apisvr.timeout", 15*time.Second)
	v.SetDefault("apisvr.insecure_skip_verify", false)

	v.SetDefault("cache.dir", "")
	v.SetDefault("bridge.capacity", 10)

	v.SetDefault("ui.tick_interval", 100*time.Millisecond)
	v.SetDefault("ui.auto_refresh", 0)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.output_file", "")
	v.SetDefault("log.environment", "prod")
	v.SetDefault("log.console", false)

	v.SetDefault("postgres.enabled", false)
	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "postgres")
	v.SetDefault("postgres.password", "")
	v.SetDefault("postgres.password_param", "")
	v.SetDefault("postgres.dbname", AppName)
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.timezone", "UTC")
	v.SetDefault("postgres.max_open_conns", 4)
	v.SetDefault("postgres.max_idle_conns", 2)
	v.SetDefault("postgres.conn_max_lifetime", time.Hour)
	v.SetDefault("postgres.retention", 0)
}

// Validate checks values the rest of the program relies on.
func (c *Config) Validate() error {
	if c.CoinMarketCap.BaseURL == "" {
		return fmt.Errorf("coinmarketcap.base_url is required")
	}
	if c.CoinMarketCap.Limit <= 0 || c.CoinMarketCap.Start <= 0 {
		return fmt.Errorf("coinmarketcap start/limit must be positive")
	}
	if c.APISvr.BaseURL == "" {
		return fmt.Errorf("apisvr.base_url is required")
	}
	// one in-flight job per kind; the channel must hold one result of each
	if c.Bridge.Capacity < 2 {
		return fmt.Errorf("bridge.capacity must be at least 2, got %d", c.Bridge.Capacity)
	}
	if c.UI.TickInterval <= 0 {
		return fmt.Errorf("ui.tick_interval must be positive")
	}
	if c.UI.AutoRefresh < 0 {
		return fmt.Errorf("ui.auto_refresh must not be negative")
	}
	return nil
}

// searchPaths lists config directories: $PICON_CONFIG, ./config, then ../config
// relative to the executable. go run/test binaries live in go-build temp dirs.
func searchPaths() []string {
	var paths []string
	if dir := os.Getenv("PICON_CONFIG"); dir != "" {
		paths = append(paths, dir)
	}

	pwd, _ := os.Getwd()
	paths = append(paths, filepath.Join(pwd, "config"))

	ex, err := os.Executable()
	if err == nil && !strings.Contains(ex, "go-build") {
		paths = append(paths, filepath.Join(filepath.Dir(ex), "../config"))
	}
	return paths
}

func defaultCacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, AppName), nil
}
