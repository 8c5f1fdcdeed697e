package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/sapper/internal/sapper"
)

type JwtConfig struct {
	Secret        string   `json:"secret" env:"SECRET"`
	TokenLifetime Duration `json:"token_lifetime" env:"TOKEN_LIFETIME"`
}

type CookiesConfig struct {
	Domain   string `json:"domain" env:"DOMAIN"`
	Secure   bool   `json:"secure" env:"SECURE"`
	SameSite string `json:"same_site" env:"SAMESITE"`
}

type SessionsConfig struct {
	IdleTimeout   Duration `json:"idle_timeout" env:"IDLE_TIMEOUT"`
	SweepInterval Duration `json:"sweep_interval" env:"SWEEP_INTERVAL"`
}

type CorsConfig struct {
	AllowedOrigins []string `json:"allowed_origins" env:"ALLOWED_ORIGINS" envSeparator:","`
}

type LogConfig struct {
	File       string `json:"file" env:"FILE"`
	MaxSize    int    `json:"max_size_mb" env:"MAX_SIZE_MB"`
	MaxBackups int    `json:"max_backups" env:"MAX_BACKUPS"`
	MaxAge     int    `json:"max_age_days" env:"MAX_AGE_DAYS"`
}

type Config struct {
	Mode         string              `json:"mode" env:"SAPPER_MODE"`
	Addr         string              `json:"addr" env:"SAPPER_ADDR"`
	Log          LogConfig           `json:"log" envPrefix:"SAPPER_LOG_"`
	Jwt          JwtConfig           `json:"jwt" envPrefix:"SAPPER_JWT_"`
	Cookies      CookiesConfig       `json:"cookies" envPrefix:"SAPPER_COOKIES_"`
	Cors         CorsConfig          `json:"cors" envPrefix:"SAPPER_CORS_"`
	Sessions     SessionsConfig      `json:"sessions" envPrefix:"SAPPER_SESSIONS_"`
	Difficulties []sapper.Difficulty `json:"difficulties"`
}

func Default() *Config {
	return &Config{
		Mode: "development",
		Addr: ":8080",
		Log: LogConfig{
			MaxSize:    50,
			MaxBackups: 3,
			MaxAge:     28,
		},
		Jwt: JwtConfig{
			TokenLifetime: Duration{time.Hour * 24},
		},
		Cookies: CookiesConfig{
			SameSite: "lax",
		},
		Sessions: SessionsConfig{
			IdleTimeout:   Duration{time.Hour},
			SweepInterval: Duration{time.Minute},
		},
		Difficulties: sapper.Presets(),
	}
}

// Load reads the JSON config at path on top of [Default], then applies
// SAPPER_* environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	config := Default()

	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("unable to read config %s: %w", path, err)
	default:
		if err := json.Unmarshal(b, config); err != nil {
			return nil, fmt.Errorf("unable to parse config %s: %w", path, err)
		}
	}

	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("unable to parse env: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate runs once at startup: a difficulty whose mines cannot be placed
// would hang the first reveal of every game started with it.
func (c Config) Validate() error {
	if len(c.Difficulties) == 0 {
		return errors.New("no difficulties configured")
	}
	seen := make(map[string]bool, len(c.Difficulties))
	for _, d := range c.Difficulties {
		if d.Name == "" {
			return fmt.Errorf("difficulty %s has no name", d)
		}
		if seen[d.Name] {
			return fmt.Errorf("duplicate difficulty %s", d.Name)
		}
		seen[d.Name] = true
		if err := d.Validate(); err != nil {
			return err
		}
	}
	if c.Production() && c.Jwt.Secret == "" {
		return errors.New("jwt secret is required in production")
	}
	if c.Sessions.IdleTimeout.Duration <= 0 || c.Sessions.SweepInterval.Duration <= 0 {
		return errors.New("session idle timeout and sweep interval must be positive")
	}
	return nil
}

func (c Config) Fields() logrus.Fields {
	return map[string]any{
		"mode":                    c.Mode,
		"addr":                    c.Addr,
		"log_file":                c.Log.File,
		"jwt_token_lifetime":      c.Jwt.TokenLifetime.String(),
		"jwt_secret_set":          c.Jwt.Secret != "",
		"cookies_domain":          c.Cookies.Domain,
		"cookies_secure":          c.Cookies.Secure,
		"cookies_samesite":        c.Cookies.SameSite,
		"cors_allowed_origins":    c.Cors.AllowedOrigins,
		"sessions_idle_timeout":   c.Sessions.IdleTimeout.String(),
		"sessions_sweep_interval": c.Sessions.SweepInterval.String(),
		"difficulties":            len(c.Difficulties),
	}
}

func (c Config) Production() bool {
	return c.Mode == "production"
}

func (c Config) Development() bool {
	return c.Mode != "production"
}
