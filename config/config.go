// Package config загружает настройки сервиса.
//
// Источники в порядке приоритета:
//  1. флаги командной строки
//  2. переменные окружения HARPY_DETECT_* (в том числе из .env)
//  3. файл harpy-detect.yaml
//  4. значения по умолчанию
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// EnvPrefix префикс переменных окружения.
const EnvPrefix = "HARPY_DETECT"

type Config struct {
	HTTP     HTTPConfig     `mapstructure:"http"`
	Log      LogConfig      `mapstructure:"log"`
	Filter   FilterConfig   `mapstructure:"filter"`
	Telegram TelegramConfig `mapstructure:"telegram"`
}

// HTTPConfig настройки HTTP-сервера
type HTTPConfig struct {
	Addr         string        `mapstructure:"addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
	MaxBodyBytes int64         `mapstructure:"max_body_bytes"`
	CORSOrigins  []string      `mapstructure:"cors_origins"`
}

// LogConfig настройки логирования
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

// FilterConfig выбор движка фильтрации: imaging или gocv
type FilterConfig struct {
	Engine string `mapstructure:"engine"`
}

// TelegramConfig пустой токен отключает бота
type TelegramConfig struct {
	Token string `mapstructure:"token"`
}

// Options переопределения из флагов командной строки.
type Options struct {
	Addr     string
	LogLevel string
	Engine   string
}

func Load(configPath string, opts Options) (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName("harpy-detect")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/harpy-detect")

		var notFound viper.ConfigFileNotFoundError
		if err := v.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.Addr != "" {
		v.Set("http.addr", opts.Addr)
	}
	if opts.LogLevel != "" {
		v.Set("log.level", opts.LogLevel)
	}
	if opts.Engine != "" {
		v.Set("filter.engine", opts.Engine)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", ":8000")
	v.SetDefault("http.read_timeout", 30*time.Second)
	v.SetDefault("http.write_timeout", 30*time.Second)
	v.SetDefault("http.idle_timeout", 120*time.Second)
	v.SetDefault("http.max_body_bytes", int64(32<<20))
	v.SetDefault("http.cors_origins", []string{"*"})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	v.SetDefault("filter.engine", "imaging")

	v.SetDefault("telegram.token", "")
}

// Validate проверяет значения настроек.
func (c *Config) Validate() error {
	if c.HTTP.Addr == "" {
		return errors.New("http.addr is required")
	}
	if c.HTTP.MaxBodyBytes <= 0 {
		return fmt.Errorf("http.max_body_bytes must be positive, got %d", c.HTTP.MaxBodyBytes)
	}
	if c.HTTP.ReadTimeout <= 0 || c.HTTP.WriteTimeout <= 0 || c.HTTP.IdleTimeout <= 0 {
		return errors.New("http timeouts must be positive")
	}

	switch c.Filter.Engine {
	case "imaging", "gocv":
	default:
		return fmt.Errorf("unsupported filter engine: %s (supported: imaging, gocv)", c.Filter.Engine)
	}

	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}

	return nil
}

// TelegramEnabled сообщает, нужно ли запускать бота.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.Token != ""
}
