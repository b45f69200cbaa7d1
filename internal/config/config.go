package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config holds all configuration for the dashboard server and the TUI.
type Config struct {
	Port        int               `validate:"gte=1,lte=65535"`
	OpenWeather OpenWeatherConfig `mapstructure:"openweather"`
	OpenMeteo   OpenMeteoConfig   `mapstructure:"openmeteo"`
	HTTP        HTTPConfig        `mapstructure:"http"`
	Outbound    OutboundConfig    `mapstructure:"outbound"`
	Refresh     RefreshConfig     `mapstructure:"refresh"`
	Session     SessionConfig     `mapstructure:"session"`
	Log         LogConfig         `mapstructure:"log"`
	Timezone    TimezoneConfig    `mapstructure:"timezone"`

	// DotEnvLoaded reports whether a .env file was found.
	DotEnvLoaded bool `mapstructure:"-"`
}

type OpenWeatherConfig struct {
	APIKey  string `mapstructure:"apikey"`
	BaseURL string `mapstructure:"baseurl" validate:"omitempty,url"`
}

type OpenMeteoConfig struct {
	BaseURL string `mapstructure:"baseurl" validate:"omitempty,url"`
}

// HTTPConfig configures the outbound client.
type HTTPConfig struct {
	Timeout time.Duration `validate:"gt=0"`
}

// OutboundConfig configures the shared rate limiter for provider calls.
type OutboundConfig struct {
	RPS   float64 `mapstructure:"rps" validate:"gt=0"`
	Burst int     `validate:"gte=1"`
}

// RefreshConfig controls automatic refetching; an Interval of 0 disables it.
// Only sessions used within ActiveWithin are refreshed (0 means all), and at
// most Concurrency of them at a time.
type RefreshConfig struct {
	Interval     time.Duration `validate:"gte=0"`
	ActiveWithin time.Duration `mapstructure:"activewithin" validate:"gte=0"`
	Concurrency  int           `validate:"gte=1"`
}

// SessionConfig sets retention for per-browser dashboards.
type SessionConfig struct {
	MaxCount int           `mapstructure:"maxcount" validate:"gte=0"`
	MaxIdle  time.Duration `mapstructure:"maxidle" validate:"gte=0"`
}

type LogConfig struct {
	Level  string `validate:"oneof=debug info warn error"`
	Format string `validate:"oneof=json console"`
}

type TimezoneConfig struct {
	Enabled bool
}

var validate = validator.New()

// Load reads .env, then config.yaml from the given directories (default ".")
// and CLIMA_* environment variables, in increasing order of precedence.
func Load(configPaths ...string) (*Config, error) {
	dotenvErr := godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(configPaths) == 0 {
		configPaths = []string{"."}
	}
	for _, p := range configPaths {
		v.AddConfigPath(p)
	}

	setDefaults(v)

	v.SetEnvPrefix("CLIMA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Plain variable name accepted for compatibility with existing .env files.
	if err := v.BindEnv("openweather.apikey", "CLIMA_OPENWEATHER_APIKEY", "OPENWEATHER_API_KEY"); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	cfg.Log.Format = strings.ToLower(cfg.Log.Format)
	cfg.DotEnvLoaded = dotenvErr == nil

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 8080)
	v.SetDefault("openweather.apikey", "")
	v.SetDefault("openweather.baseurl", "https://api.openweathermap.org/data/2.5")
	v.SetDefault("openmeteo.baseurl", "https://api.open-meteo.com")
	v.SetDefault("http.timeout", "10s")
	v.SetDefault("outbound.rps", 5.0)
	v.SetDefault("outbound.burst", 10)
	v.SetDefault("refresh.interval", "15m")
	v.SetDefault("refresh.activewithin", "30m")
	v.SetDefault("refresh.concurrency", 4)
	v.SetDefault("session.maxcount", 1000)
	v.SetDefault("session.maxidle", "2h")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("timezone.enabled", true)
}

// Addr returns the listen address, e.g. ":8080".
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// NewLogger builds a zap logger: JSON production encoding, or a colored
// console encoder for local use. Output goes to outputPaths when given,
// stderr otherwise.
func (c *Config) NewLogger(outputPaths ...string) (*zap.Logger, error) {
	var zc zap.Config
	switch c.Log.Format {
	case "console":
		zc = zap.NewDevelopmentConfig()
	default:
		zc = zap.NewProductionConfig()
	}

	level, err := zap.ParseAtomicLevel(c.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}
	zc.Level = level

	if len(outputPaths) > 0 {
		zc.OutputPaths = outputPaths
		zc.ErrorOutputPaths = outputPaths
	}

	return zc.Build()
}
