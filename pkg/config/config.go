package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string           `yaml:"environment" default:"development" validate:"oneof=development staging production test"`
	Server      ServerConfig     `yaml:"server"`
	Log         LogConfig        `yaml:"log"`
	Providers   ProvidersConfig  `yaml:"providers"`
	HTTPClient  HTTPClientConfig `yaml:"http_client"`
	Cache       CacheConfig      `yaml:"cache"`
	Push        PushConfig       `yaml:"push"`
	RateLimit   RateLimitConfig  `yaml:"rate_limit"`
	Errors      ErrorsConfig     `yaml:"errors"`
	History     HistoryConfig    `yaml:"history"`
	Kafka       KafkaConfig      `yaml:"kafka"`
	ClickHouse  ClickHouseConfig `yaml:"clickhouse"`
}

type ServerConfig struct {
	Host            string        `yaml:"host" default:"0.0.0.0"`
	Port            int           `yaml:"port" default:"5000" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" default:"30s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
	RequestTimeout  time.Duration `yaml:"request_timeout" default:"20s"`
	SlowRequest     time.Duration `yaml:"slow_request" default:"2s"`
	AllowedOrigins  []string      `yaml:"allowed_origins" default:"[\"http://localhost:5173\"]" validate:"min=1"`
	// TrustedProxies may set X-Forwarded-For; empty means the peer address is the client.
	TrustedProxies []string `yaml:"trusted_proxies" validate:"dive,cidr"`
	// StrictKeys refuses to start when an upstream API key is missing.
	// When false every /api request answers 500 until the keys are supplied.
	StrictKeys bool `yaml:"strict_keys" default:"true"`
}

type LogConfig struct {
	Level  string `yaml:"level" default:"info" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" default:"json" validate:"oneof=json console"`
	Output string `yaml:"output" default:"stdout"`
}

type ProviderConfig struct {
	APIKey  string        `yaml:"api_key"`
	BaseURL string        `yaml:"base_url" validate:"required,url"`
	Timeout time.Duration `yaml:"timeout" default:"10s"`
}

type ProvidersConfig struct {
	EOD   ProviderConfig `yaml:"eod" default:"{\"BaseURL\":\"https://eodhd.com/api\"}"`
	Brave ProviderConfig `yaml:"brave" default:"{\"BaseURL\":\"https://api.search.brave.com/res/v1\"}"`
	FRED  ProviderConfig `yaml:"fred" default:"{\"BaseURL\":\"https://api.stlouisfed.org/fred\"}"`
	BEA   ProviderConfig `yaml:"bea" default:"{\"BaseURL\":\"https://apps.bea.gov/api\"}"`
}

type HTTPClientConfig struct {
	MaxRetries int           `yaml:"max_retries" default:"3" validate:"min=0,max=10"`
	BackoffMin time.Duration `yaml:"backoff_min" default:"200ms"`
	BackoffMax time.Duration `yaml:"backoff_max" default:"3s"`
}

type CacheTTL struct {
	Quote   time.Duration `yaml:"quote" default:"60s"`
	Sector  time.Duration `yaml:"sector" default:"300s"`
	Mover   time.Duration `yaml:"mover" default:"300s"`
	News    time.Duration `yaml:"news" default:"300s"`
	Search  time.Duration `yaml:"search" default:"300s"`
	Series  time.Duration `yaml:"series" default:"3600s"`
	GDP     time.Duration `yaml:"gdp" default:"3600s"`
	History time.Duration `yaml:"history" default:"3600s"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" default:"localhost:6379"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size" default:"10"`
	Prefix   string `yaml:"prefix" default:"marketpulse"`
}

type CacheConfig struct {
	Backend    string        `yaml:"backend" default:"memory" validate:"oneof=memory redis layered"`
	DefaultTTL time.Duration `yaml:"default_ttl" default:"60s"`
	MaxItems   int           `yaml:"max_items" default:"5000" validate:"min=1"`
	TTL        CacheTTL      `yaml:"ttl"`
	Redis      RedisConfig   `yaml:"redis"`
}

type PushConfig struct {
	Enabled      bool          `yaml:"enabled" default:"true"`
	Path         string        `yaml:"path" default:"/ws"`
	Interval     time.Duration `yaml:"interval" default:"5s"`
	WriteTimeout time.Duration `yaml:"write_timeout" default:"5s"`
	PingInterval time.Duration `yaml:"ping_interval" default:"30s"`
}

type RateLimitConfig struct {
	Enabled  bool    `yaml:"enabled" default:"true"`
	Capacity float64 `yaml:"capacity" default:"60"`
	// RefillPerSecond tokens added per second per client.
	RefillPerSecond float64 `yaml:"refill_per_second" default:"2"`
}

type ErrorsConfig struct {
	Capacity int           `yaml:"capacity" default:"100" validate:"min=1"`
	Window   time.Duration `yaml:"window" default:"5m"`
}

type HistoryConfig struct {
	Capacity int `yaml:"capacity" default:"50" validate:"min=1"`
}

type KafkaConfig struct {
	Enabled      bool          `yaml:"enabled"`
	Brokers      []string      `yaml:"brokers" validate:"required_if=Enabled true"`
	Topic        string        `yaml:"topic" default:"market.snapshots"`
	RequiredAcks int           `yaml:"required_acks" default:"1"`
	Compression  string        `yaml:"compression" default:"snappy" validate:"oneof=gzip snappy lz4 zstd"`
	MaxAttempts  int           `yaml:"max_attempts" default:"3"`
	WriteTimeout time.Duration `yaml:"write_timeout" default:"5s"`
	Async        bool          `yaml:"async" default:"true"`
}

type ClickHouseConfig struct {
	Enabled      bool          `yaml:"enabled"`
	Host         string        `yaml:"host" validate:"required_if=Enabled true"`
	Port         int           `yaml:"port" default:"9000"`
	Database     string        `yaml:"database" default:"marketpulse"`
	User         string        `yaml:"user" default:"default"`
	Password     string        `yaml:"password"`
	UseHTTP      bool          `yaml:"use_http"`
	Table        string        `yaml:"table" default:"mover_history"`
	DialTimeout  time.Duration `yaml:"dial_timeout" default:"5s"`
	ReadTimeout  time.Duration `yaml:"read_timeout" default:"10s"`
	WriteTimeout time.Duration `yaml:"write_timeout" default:"10s"`
}

var validate = validator.New()

// Load builds the configuration from tag defaults, then the YAML file at path
// (a missing file is not an error), then environment overrides.
func Load(path string) (*Config, error) {
	c := &Config{}
	if err := defaults.Set(c); err != nil {
		return nil, fmt.Errorf("config defaults: %w", err)
	}

	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(b, c); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if err := c.applyEnv(); err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func (c *Config) applyEnv() error {
	setString := func(env string, dst *string) {
		if v := os.Getenv(env); v != "" {
			*dst = v
		}
	}
	setString("APP_ENV", &c.Environment)
	setString("EOD_API_KEY", &c.Providers.EOD.APIKey)
	setString("BRAVE_API_KEY", &c.Providers.Brave.APIKey)
	setString("FRED_API_KEY", &c.Providers.FRED.APIKey)
	setString("BEA_API_KEY", &c.Providers.BEA.APIKey)
	setString("LOG_LEVEL", &c.Log.Level)
	setString("CACHE_BACKEND", &c.Cache.Backend)
	setString("REDIS_ADDR", &c.Cache.Redis.Addr)
	setString("KAFKA_TOPIC", &c.Kafka.Topic)
	setString("CLICKHOUSE_HOST", &c.ClickHouse.Host)

	if v := os.Getenv("FRONTEND_URL"); v != "" {
		c.Server.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = splitList(v)
		c.Kafka.Enabled = true
	}
	if os.Getenv("CLICKHOUSE_HOST") != "" {
		c.ClickHouse.Enabled = true
	}
	if v := os.Getenv("STRICT_KEYS"); v != "" {
		strict, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid STRICT_KEYS %q: %w", v, err)
		}
		c.Server.StrictKeys = strict
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}
	return nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	return validate.Struct(c)
}

// MissingAPIKeys lists the upstream providers without a key, in display form.
func (c *Config) MissingAPIKeys() []string {
	var missing []string
	for _, p := range []struct {
		name string
		key  string
	}{
		{"EOD API", c.Providers.EOD.APIKey},
		{"Brave API", c.Providers.Brave.APIKey},
		{"FRED API", c.Providers.FRED.APIKey},
		{"BEA API", c.Providers.BEA.APIKey},
	} {
		if strings.TrimSpace(p.key) == "" {
			missing = append(missing, p.name)
		}
	}
	return missing
}

// MissingKeysError returns nil when every key is present.
func (c *Config) MissingKeysError() error {
	missing := c.MissingAPIKeys()
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("Missing API keys: %s", strings.Join(missing, ", "))
}
