package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/fx"
)

// FileEnv names an explicit config file. When set the file must exist.
const FileEnv = "COMMERCE_API_CONFIG"

// Database driver names
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	APILogs  APILogsConfig  `mapstructure:"api_logs"`
	Fees     FeesConfig     `mapstructure:"fees"`
}

type AppConfig struct {
	Name    string `mapstructure:"name"`
	Port    int    `mapstructure:"port"`
	Env     string `mapstructure:"env"`
	BaseURL string `mapstructure:"base_url"`
}

type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"` // "postgres" or "sqlite"
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
	Path     string `mapstructure:"path"` // sqlite file, ":memory:" allowed
}

// IsSQLite returns true if the embedded sqlite driver is configured
func (d *DatabaseConfig) IsSQLite() bool {
	return d.Driver == DriverSQLite
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// APILogsConfig controls recording of incoming API requests
type APILogsConfig struct {
	Enabled          bool   `mapstructure:"enabled"`
	DefaultVersion   string `mapstructure:"default_version"`
	MaxRequestLength int    `mapstructure:"max_request_length"`
}

// FeesConfig controls how cart fees are kept between requests
type FeesConfig struct {
	SessionTTL time.Duration `mapstructure:"session_ttl"` // seconds in config file
	KeyPrefix  string        `mapstructure:"key_prefix"`
}

func NewConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	explicit := os.Getenv(FileEnv)
	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Enable environment variable override
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || explicit != "" {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Convert ttl to duration
	cfg.Fees.SessionTTL = cfg.Fees.SessionTTL * time.Second

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "commerce-api")
	v.SetDefault("app.port", 8080)
	v.SetDefault("app.env", "development")
	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.path", "commerce.db")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("logging.level", "info")
	v.SetDefault("api_logs.enabled", true)
	v.SetDefault("api_logs.default_version", "v2")
	v.SetDefault("api_logs.max_request_length", 2048)
	v.SetDefault("fees.session_ttl", 172800)
	v.SetDefault("fees.key_prefix", "fees:")
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

var Module = fx.Module("config",
	fx.Provide(NewConfig),
)
