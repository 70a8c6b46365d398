package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	CORS      CORSConfig
	Providers ProvidersConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port    int
	GinMode string // debug, release, test
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// CORSConfig lists the origins browsers may call the API from. "*" allows any origin.
type CORSConfig struct {
	AllowedOrigins []string
}

// ProvidersConfig holds the upstream service settings
type ProvidersConfig struct {
	Timeout time.Duration // applies to every outbound request
	EPSG    EPSGConfig
	RIVM    RIVMConfig
}

// EPSGConfig configures the coordinate transformation service
type EPSGConfig struct {
	BaseURL   string
	SourceSRS string
	TargetSRS string
}

// RIVMConfig configures the RIVM WMS feature service
type RIVMConfig struct {
	BaseURL    string
	Layer      string
	ServiceKey string
}

// Load reads configuration from an optional .env file, a config file and environment variables
func Load() (*Config, error) {
	// A missing .env file is fine, the process environment still applies
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("$HOME/.stookwijzer")

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.ginmode", "release")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("cors.allowedorigins", []string{"*"})
	v.SetDefault("providers.timeout", 10*time.Second)
	v.SetDefault("providers.epsg.baseurl", "https://epsg.io/trans")
	v.SetDefault("providers.epsg.sourcesrs", "4326")
	v.SetDefault("providers.epsg.targetsrs", "28992")
	v.SetDefault("providers.rivm.baseurl", "https://data.rivm.nl/geo/alo/wms")
	v.SetDefault("providers.rivm.layer", "stookwijzer")
	v.SetDefault("providers.rivm.servicekey", "82b124ad-834d-4c10-8bd0-ee730d5c1cc8")

	// STOOKWIJZER_PROVIDERS_RIVM_SERVICEKEY overrides providers.rivm.servicekey
	v.SetEnvPrefix("STOOKWIJZER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Providers.Timeout <= 0 {
		return nil, fmt.Errorf("invalid providers.timeout: %s", cfg.Providers.Timeout)
	}

	return &cfg, nil
}

// GetServerAddr returns the server address in the format ":port"
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// NewLogger creates a new slog.Logger based on the configuration
func (c *Config) NewLogger() *slog.Logger {
	return c.NewLoggerTo(os.Stdout)
}

// NewLoggerTo is NewLogger writing to w.
func (c *Config) NewLoggerTo(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(c.Log.Level),
	}

	var handler slog.Handler
	switch strings.ToLower(c.Log.Format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
