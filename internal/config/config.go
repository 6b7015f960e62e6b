package config

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

// DefaultUserAgent is the default User-Agent string sent with all HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:147.0) Gecko/20100101 Firefox/147.0"

// Session holds the cookies of a logged-in source catalog session.
type Session struct {
	Token     string `mapstructure:"token"`      // _fwuser_token
	SessionID string `mapstructure:"session_id"` // _fwuser_sessionId
	JWT       string `mapstructure:"jwt"`
	PoolSize  int    `mapstructure:"pool_size"` // Number of equivalent HTTP clients sharing the session
}

type Config struct {
	ProxyConnectionString string  `mapstructure:"proxy_connection_string"`
	SourceDomain          string  `mapstructure:"source_domain"`
	SearchDomain          string  `mapstructure:"search_domain"`
	ClientTimeout         string  `mapstructure:"client_timeout"` // Go duration string like "30s", "1h", etc.
	UserAgent             string  `mapstructure:"user_agent"`
	Locale                string  `mapstructure:"locale"` // Sent as X-Locale to the source catalog
	Session               Session `mapstructure:"session"`
	Server                struct {
		Port    int    `mapstructure:"port"`
		Address string `mapstructure:"address"`
	} `mapstructure:"server"`
	LogLevel string `mapstructure:"log_level"`
	Log      struct {
		File       string `mapstructure:"file"`        // Optional rotated log file, in addition to stdout
		MaxSizeMB  int    `mapstructure:"max_size_mb"` // Rotate after this many megabytes
		MaxBackups int    `mapstructure:"max_backups"`
	} `mapstructure:"log"`
	Cache struct {
		Provider string `mapstructure:"provider"` // "memory" or "redis"
		Size     int    `mapstructure:"size"`     // Maximum number of cached pages
		TTL      string `mapstructure:"ttl"`      // Go duration string like "1h", "24h", etc.
		Redis    struct {
			Address  string `mapstructure:"address"`
			Password string `mapstructure:"password"`
			DB       int    `mapstructure:"db"`
		} `mapstructure:"redis"`
	} `mapstructure:"cache"`
	Metrics struct {
		Enabled bool `mapstructure:"enabled"`
		Port    int  `mapstructure:"port"`
	} `mapstructure:"metrics"`
	Resolver struct {
		Concurrency int `mapstructure:"concurrency"` // Records resolved in parallel
	} `mapstructure:"resolver"`
	RateLimit struct {
		Search float64 `mapstructure:"search"` // Requests per second to the search catalog, 0 disables
		Source float64 `mapstructure:"source"` // Requests per second to the source catalog, 0 disables
	} `mapstructure:"rate_limit"`
	Breaker struct {
		FailureThreshold uint   `mapstructure:"failure_threshold"` // Consecutive failures before opening
		Delay            string `mapstructure:"delay"`             // Time spent open before a half-open probe
	} `mapstructure:"breaker"`
	Export struct {
		Directory string `mapstructure:"directory"`
	} `mapstructure:"export"`
	Sentry struct {
		DSN         string `mapstructure:"dsn"`
		Environment string `mapstructure:"environment"`
	} `mapstructure:"sentry"`
}

// Timeout parses ClientTimeout, falling back to 30s.
func (c *Config) Timeout() time.Duration {
	return parseDuration(c.ClientTimeout, 30*time.Second, "client_timeout")
}

// CacheTTL parses Cache.TTL, falling back to 24h.
func (c *Config) CacheTTL() time.Duration {
	return parseDuration(c.Cache.TTL, 24*time.Hour, "cache.ttl")
}

// BreakerDelay parses Breaker.Delay, falling back to 1m.
func (c *Config) BreakerDelay() time.Duration {
	return parseDuration(c.Breaker.Delay, time.Minute, "breaker.delay")
}

func parseDuration(value string, fallback time.Duration, key string) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		logger.Warn().Err(err).Str("key", key).Str("value", value).Dur("default", fallback).Msg("Invalid duration, using default")
		return fallback
	}
	return d
}

var (
	globalConfig *Config
	logger       zerolog.Logger
)

func init() {
	logger = zerolog.New(zerolog.ConsoleWriter{
		Out:     os.Stdout,
		NoColor: !isTerminal(os.Stdout),
	}).With().Timestamp().Logger()

	// Session cookies usually live in a .env file next to the binary.
	_ = godotenv.Load()

	config, err := LoadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load config")
	}

	level := zerolog.InfoLevel
	if config.LogLevel != "" {
		if parsedLevel, err := zerolog.ParseLevel(config.LogLevel); err == nil {
			level = parsedLevel
		} else {
			logger.Warn().Str("invalid_level", config.LogLevel).Msg("Invalid log level, using default 'info'")
		}
	}
	zerolog.SetGlobalLevel(level)

	if config.Log.File != "" {
		logger = zerolog.New(logWriter(config)).With().Timestamp().Logger()
	}
	logger = logger.Level(level)

	logger.Info().Str("level", level.String()).Msg("Logging configured")
	globalConfig = config
	logger.Info().Str("source", config.SourceDomain).Str("search", config.SearchDomain).Msg("Configuration loaded successfully")
}

// logWriter tees the console output into a size-rotated file.
func logWriter(cfg *Config) io.Writer {
	file := &lumberjack.Logger{
		Filename:   cfg.Log.File,
		MaxSize:    cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	}
	console := zerolog.ConsoleWriter{Out: os.Stdout, NoColor: !isTerminal(os.Stdout)}
	return zerolog.MultiLevelWriter(console, file)
}

// isTerminal reports whether colored output can be written to f.
func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func setDefaults() {
	viper.SetDefault("source_domain", "https://www.filmweb.pl")
	viper.SetDefault("search_domain", "https://www.imdb.com")
	viper.SetDefault("client_timeout", "30s")
	viper.SetDefault("locale", "pl_PL")
	viper.SetDefault("session.pool_size", 3)
	viper.SetDefault("server.address", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("log.max_size_mb", 100)
	viper.SetDefault("log.max_backups", 3)
	viper.SetDefault("cache.provider", "memory")
	viper.SetDefault("cache.size", 2000)
	viper.SetDefault("cache.ttl", "24h")
	viper.SetDefault("metrics.enabled", true)
	viper.SetDefault("metrics.port", 9090)
	viper.SetDefault("resolver.concurrency", 4)
	viper.SetDefault("rate_limit.search", 5)
	viper.SetDefault("rate_limit.source", 5)
	viper.SetDefault("breaker.failure_threshold", 5)
	viper.SetDefault("breaker.delay", "1m")
	viper.SetDefault("export.directory", "./exports")
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.AutomaticEnv()
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	_ = viper.BindEnv("log_level", "LOG_LEVEL")
	// Cookie names as exported by browser extensions.
	_ = viper.BindEnv("session.token", "APP_SESSION_TOKEN", "FWUSER_TOKEN")
	_ = viper.BindEnv("session.session_id", "APP_SESSION_SESSION_ID", "FWUSER_SESSION_ID")
	_ = viper.BindEnv("session.jwt", "APP_SESSION_JWT", "JWT")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}
	if config.Session.PoolSize <= 0 {
		config.Session.PoolSize = 1
	}
	if config.Resolver.Concurrency <= 0 {
		config.Resolver.Concurrency = 1
	}

	return &config, nil
}

func GetConfig() *Config {
	return globalConfig
}

func GetUserAgent() string {
	if globalConfig != nil && globalConfig.UserAgent != "" {
		return globalConfig.UserAgent
	}

	return DefaultUserAgent
}

func GetLogger() zerolog.Logger {
	return logger
}
