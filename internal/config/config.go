package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/viper"
)

// Source kinds.
const (
	SourceHTTP = "http"
	SourceDir  = "dir"
)

// Cache backends.
const (
	CacheSQLite = "sqlite"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// ConfigPathEnv names the variable holding an explicit config file path.
const ConfigPathEnv = "FLEET_STATUS_CONFIG_PATH"

// Config holds all configuration for the daemon
type Config struct {
	DBPath   string
	Source   SourceConfig
	Sheets   SheetsConfig
	Cache    CacheConfig
	Redis    RedisConfig
	HTTP     HTTPConfig
	Refresh  RefreshConfig
	Planning PlanningConfig
	Log      LogConfig
}

// SourceConfig selects where exports are read from.
type SourceConfig struct {
	Kind string
	Dir  string // Directory of saved exports when Kind is dir
}

// SheetsConfig locates the published spreadsheets.
type SheetsConfig struct {
	BaseURL       string
	StatusID      string
	StatusGID     string
	LedgerID      string
	DetailsGID    string
	EnginesGID    string
	PropellersGID string
	Timeout       time.Duration
	MaxRetries    int
}

// CacheConfig holds snapshot cache settings.
type CacheConfig struct {
	Backend string
	TTL     time.Duration
	Size    int // Entry bound of the memory backend
}

// RedisConfig holds the Redis connection used by the redis backend.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// HTTPConfig holds the API listener.
type HTTPConfig struct {
	Addr string
}

// RefreshConfig controls the background refresh.
type RefreshConfig struct {
	Interval  time.Duration
	Retention time.Duration // Age after which stored snapshots are purged
}

// PlanningConfig holds the lookback windows and the projection horizon.
type PlanningConfig struct {
	YearLookbackDays  int
	MonthLookbackDays int
	HorizonYears      int
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string
	File   string // Rotated log file; empty logs to stdout
}

// Load loads configuration from config file and environment variables
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/fleet_status")
	v.AddConfigPath(".")

	if configPath := os.Getenv(ConfigPathEnv); configPath != "" {
		v.SetConfigFile(configPath)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Defaults and environment only
	}

	v.SetEnvPrefix("FLEET_STATUS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := fromViper(v)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db_path", "fleet_status.db")
	v.SetDefault("source.kind", SourceHTTP)
	v.SetDefault("source.dir", "exports")
	v.SetDefault("sheets.base_url", "https://docs.google.com/spreadsheets/d")
	v.SetDefault("sheets.status_id", "")
	v.SetDefault("sheets.status_gid", "0")
	v.SetDefault("sheets.ledger_id", "")
	v.SetDefault("sheets.details_gid", "")
	v.SetDefault("sheets.engines_gid", "")
	v.SetDefault("sheets.propellers_gid", "")
	v.SetDefault("sheets.timeout", 30*time.Second)
	v.SetDefault("sheets.max_retries", 3)
	v.SetDefault("cache.backend", CacheSQLite)
	v.SetDefault("cache.ttl", 24*time.Hour)
	v.SetDefault("cache.size", 256)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("refresh.interval", 15*time.Minute)
	v.SetDefault("refresh.retention", 7*24*time.Hour)
	v.SetDefault("planning.year_lookback_days", 365)
	v.SetDefault("planning.month_lookback_days", 120)
	v.SetDefault("planning.horizon_years", 5)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		DBPath: v.GetString("db_path"),
		Source: SourceConfig{
			Kind: strings.ToLower(v.GetString("source.kind")),
			Dir:  v.GetString("source.dir"),
		},
		Sheets: SheetsConfig{
			BaseURL:       v.GetString("sheets.base_url"),
			StatusID:      v.GetString("sheets.status_id"),
			StatusGID:     v.GetString("sheets.status_gid"),
			LedgerID:      v.GetString("sheets.ledger_id"),
			DetailsGID:    v.GetString("sheets.details_gid"),
			EnginesGID:    v.GetString("sheets.engines_gid"),
			PropellersGID: v.GetString("sheets.propellers_gid"),
			Timeout:       v.GetDuration("sheets.timeout"),
			MaxRetries:    v.GetInt("sheets.max_retries"),
		},
		Cache: CacheConfig{
			Backend: strings.ToLower(v.GetString("cache.backend")),
			TTL:     v.GetDuration("cache.ttl"),
			Size:    v.GetInt("cache.size"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		HTTP: HTTPConfig{
			Addr: v.GetString("http.addr"),
		},
		Refresh: RefreshConfig{
			Interval:  v.GetDuration("refresh.interval"),
			Retention: v.GetDuration("refresh.retention"),
		},
		Planning: PlanningConfig{
			YearLookbackDays:  v.GetInt("planning.year_lookback_days"),
			MonthLookbackDays: v.GetInt("planning.month_lookback_days"),
			HorizonYears:      v.GetInt("planning.horizon_years"),
		},
		Log: LogConfig{
			Level:  strings.ToLower(v.GetString("log.level")),
			Format: strings.ToLower(v.GetString("log.format")),
			File:   v.GetString("log.file"),
		},
	}
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.DBPath, validation.Required),
	); err != nil {
		return err
	}
	if err := c.Source.Validate(); err != nil {
		return fmt.Errorf("source: %w", err)
	}
	if c.Source.Kind == SourceHTTP {
		if err := c.Sheets.Validate(); err != nil {
			return fmt.Errorf("sheets: %w", err)
		}
	}
	if err := c.Cache.Validate(); err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	if c.Cache.Backend == CacheRedis {
		if err := c.Redis.Validate(); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
	}
	if err := validation.ValidateStruct(&c.HTTP,
		validation.Field(&c.HTTP.Addr, validation.Required),
	); err != nil {
		return fmt.Errorf("http: %w", err)
	}
	if err := validation.ValidateStruct(&c.Refresh,
		validation.Field(&c.Refresh.Interval, validation.Required, validation.Min(time.Second)),
	); err != nil {
		return fmt.Errorf("refresh: %w", err)
	}
	if err := c.Planning.Validate(); err != nil {
		return fmt.Errorf("planning: %w", err)
	}
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	return nil
}

// Validate validates the source selection.
func (c *SourceConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Kind, validation.Required, validation.In(SourceHTTP, SourceDir)),
		validation.Field(&c.Dir, validation.When(c.Kind == SourceDir, validation.Required)),
	)
}

// Validate validates the spreadsheet locations.
func (c *SheetsConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.BaseURL, validation.Required),
		validation.Field(&c.StatusID, validation.Required),
		validation.Field(&c.LedgerID, validation.Required),
		validation.Field(&c.MaxRetries, validation.Min(-1)),
	)
}

// Validate validates the cache settings.
func (c *CacheConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Backend, validation.Required, validation.In(CacheSQLite, CacheMemory, CacheRedis)),
		validation.Field(&c.TTL, validation.Required, validation.Min(time.Minute)),
		validation.Field(&c.Size, validation.When(c.Backend == CacheMemory, validation.Required, validation.Min(1))),
	)
}

// Validate validates the Redis connection.
func (c *RedisConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Addr, validation.Required),
		validation.Field(&c.DB, validation.Min(0), validation.Max(15)),
	)
}

// Validate validates the planning windows.
func (c *PlanningConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.YearLookbackDays, validation.Required, validation.Min(1)),
		validation.Field(&c.MonthLookbackDays, validation.Required, validation.Min(1)),
		validation.Field(&c.HorizonYears, validation.Required, validation.Min(1), validation.Max(20)),
	)
}

// Validate validates the logging options.
func (c *LogConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Level, validation.Required, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.Format, validation.Required, validation.In("text", "json")),
	)
}
