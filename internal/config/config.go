package config

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"resizer/internal/adapters/storage"
	"resizer/internal/core/domain"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const EnvPrefix = "RESIZER"

type Config struct {
	APIBaseURL     string
	HostingURL     string
	HTTPTimeout    time.Duration
	MaxUploadBytes int64
	NotifyDelay    time.Duration
	SessionPath    string
	LogLevel       string
}

// New returns a viper instance with defaults, config file search paths and
// RESIZER_ environment overrides set up.
func New(configFile string) *viper.Viper {
	v := viper.New()

	v.SetDefault("api.base_url", "http://localhost:5000/api")
	v.SetDefault("hosting.upload_url", "http://localhost:3000/api/upload")
	v.SetDefault("http.timeout", "30s")
	v.SetDefault("upload.max_bytes", domain.MaxUploadBytes)
	v.SetDefault("notify.delay", "4s")
	v.SetDefault("session.path", "")
	v.SetDefault("log.level", "info")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		return v
	}

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	if path, err := storage.DefaultSessionPath(); err == nil {
		v.AddConfigPath(filepath.Dir(path))
	}

	return v
}

// Load reads the config file, if any, and resolves the settings. A missing
// config file is not an error.
func Load(v *viper.Viper) (Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("could not read config file: %w", err)
		}
		log.Debug().Msg("no config file found, using defaults")
	} else {
		log.Debug().Str("file", v.ConfigFileUsed()).Msg("read config file")
	}

	httpTimeout, err := time.ParseDuration(v.GetString("http.timeout"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid http.timeout: %w", err)
	}

	notifyDelay, err := time.ParseDuration(v.GetString("notify.delay"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid notify.delay: %w", err)
	}

	cfg := Config{
		APIBaseURL:     strings.TrimRight(v.GetString("api.base_url"), "/"),
		HostingURL:     v.GetString("hosting.upload_url"),
		HTTPTimeout:    httpTimeout,
		MaxUploadBytes: v.GetInt64("upload.max_bytes"),
		NotifyDelay:    notifyDelay,
		SessionPath:    v.GetString("session.path"),
		LogLevel:       v.GetString("log.level"),
	}

	if cfg.APIBaseURL == "" {
		return Config{}, errors.New("api.base_url is required")
	}

	if cfg.HostingURL == "" {
		return Config{}, errors.New("hosting.upload_url is required")
	}

	if cfg.MaxUploadBytes <= 0 {
		return Config{}, fmt.Errorf("upload.max_bytes must be positive, got %d", cfg.MaxUploadBytes)
	}

	if cfg.SessionPath == "" {
		cfg.SessionPath, err = storage.DefaultSessionPath()
		if err != nil {
			return Config{}, err
		}
	}

	return cfg, nil
}

// SetupLogging routes the global logger to out and applies level.
func SetupLogging(level string, out io.Writer) {
	var logLevel zerolog.Level

	switch strings.ToLower(level) {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen})
}
