package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	APIBaseURL     string
	PushURL        string
	APIToken       string
	JWTSecretKey   string
	ServerPort     int
	TournamentSlug string
	HTTPTimeout    time.Duration
	LogLevel       slog.Level
	AllowedOrigins []string

	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicBaseURL   string
	R2Endpoint        string
}

// R2Enabled сообщает, что публикация таблицы в R2 настроена.
func (c *Config) R2Enabled() bool {
	return c.R2BucketName != ""
}

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	// Загружаем .env файл, если он есть. Ошибку не считаем фатальной.
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv собирает и проверяет конфигурацию из getenv.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		APIToken:          getenv("API_TOKEN"),
		TournamentSlug:    strings.TrimSpace(getenv("TOURNAMENT_SLUG")),
		R2AccountID:       getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:     getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey: getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:      getenv("R2_BUCKET_NAME"),
		R2PublicBaseURL:   getenv("R2_PUBLIC_BASE_URL"),
		R2Endpoint:        getenv("R2_ENDPOINT"),
	}

	cfg.APIBaseURL = strings.TrimRight(getenv("API_BASE_URL"), "/")
	if cfg.APIBaseURL == "" {
		return nil, errors.New("API_BASE_URL environment variable is not set")
	}
	base, err := url.Parse(cfg.APIBaseURL)
	if err != nil || (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return nil, fmt.Errorf("API_BASE_URL must be an http(s) URL, got %q", cfg.APIBaseURL)
	}

	cfg.PushURL = getenv("PUSH_URL")
	if cfg.PushURL == "" {
		cfg.PushURL = derivePushURL(base)
	}

	cfg.JWTSecretKey = getenv("JWT_SECRET_KEY")
	if cfg.JWTSecretKey == "" {
		return nil, errors.New("JWT_SECRET_KEY environment variable is not set")
	}

	cfg.ServerPort, err = intVar(getenv, "SERVER_PORT", 8080)
	if err != nil {
		return nil, err
	}
	if cfg.ServerPort <= 0 || cfg.ServerPort > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", cfg.ServerPort)
	}

	timeout, err := intVar(getenv, "HTTP_TIMEOUT_SECONDS", 15)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("HTTP_TIMEOUT_SECONDS must be positive, got %d", timeout)
	}
	cfg.HTTPTimeout = time.Duration(timeout) * time.Second

	if lvl := getenv("LOG_LEVEL"); lvl != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(lvl)); err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", lvl, err)
		}
	}

	for _, o := range strings.Split(getenv("ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}

	if err := cfg.validateR2(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validateR2: либо все параметры R2 заданы, либо ни одного.
func (c *Config) validateR2() error {
	required := []struct{ name, value string }{
		{"R2_ACCESS_KEY_ID", c.R2AccessKeyID},
		{"R2_SECRET_ACCESS_KEY", c.R2SecretAccessKey},
		{"R2_BUCKET_NAME", c.R2BucketName},
		{"R2_PUBLIC_BASE_URL", c.R2PublicBaseURL},
	}
	var missing []string
	for _, r := range required {
		if r.value == "" {
			missing = append(missing, r.name)
		}
	}
	if len(missing) == len(required) {
		return nil
	}
	if len(missing) > 0 {
		return fmt.Errorf("incomplete R2 configuration, missing: %s", strings.Join(missing, ", "))
	}
	if c.R2AccountID == "" && c.R2Endpoint == "" {
		return errors.New("incomplete R2 configuration, missing: R2_ACCOUNT_ID or R2_ENDPOINT")
	}
	return nil
}

// derivePushURL строит адрес канала ws(s)://host/ws/ из адреса API.
func derivePushURL(base *url.URL) string {
	u := *base
	if u.Scheme == "https" {
		u.Scheme = "wss"
	} else {
		u.Scheme = "ws"
	}
	u.Path = "/ws/"
	u.RawQuery = ""
	return u.String()
}

func intVar(getenv func(string) string, name string, def int) (int, error) {
	s := getenv(name)
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", name, err)
	}
	return v, nil
}
