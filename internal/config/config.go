package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	SessionMemory = "memory"
	SessionRedis  = "redis"
)

type Config struct {
	Env string `env:"APP_ENV" env-default:"development"`

	Portal struct {
		Addr           string   `env:"PORTAL_ADDR" env-default:"0.0.0.0:8080"`
		LoginPath      string   `env:"LOGIN_PATH" env-default:"/index.html"`
		AllowedOrigins []string `env:"CORS_ORIGINS" env-separator:"," env-default:"http://localhost:8080"`
	}

	Bridge struct {
		Addr    string        `env:"BRIDGE_ADDR" env-default:"127.0.0.1:3001"`
		URL     string        `env:"BRIDGE_URL"`
		Timeout time.Duration `env:"BRIDGE_TIMEOUT" env-default:"10s"`
	}

	Database struct {
		Driver  string `env:"DB_DRIVER" env-default:"postgres"`
		URL     string `env:"POSTGRES_CONN"`
		Migrate bool   `env:"DB_MIGRATE" env-default:"false"`
	}

	Session struct {
		Backend       string        `env:"SESSION_BACKEND" env-default:"memory"`
		TTL           time.Duration `env:"SESSION_TTL" env-default:"8h"`
		CookieName    string        `env:"SESSION_COOKIE" env-default:"bidportal_session"`
		Secure        bool          `env:"SESSION_SECURE" env-default:"false"`
		RedisAddr     string        `env:"REDIS_ADDR" env-default:"localhost:6379"`
		RedisPassword string        `env:"REDIS_PASSWORD"`
		RedisDB       int           `env:"REDIS_DB" env-default:"0"`
	}

	Auth struct {
		BcryptCost int     `env:"BCRYPT_COST" env-default:"10"`
		LoginRate  float64 `env:"LOGIN_RATE" env-default:"1"`
		LoginBurst int     `env:"LOGIN_BURST" env-default:"5"`
		// LoginIdle is how long an unused per-peer limiter is kept.
		LoginIdle time.Duration `env:"LOGIN_IDLE" env-default:"10m"`
	}
}

// Load reads an optional .env file, then binds the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var c Config
	if err := cleanenv.ReadEnv(&c); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("DB_DRIVER %q is not supported", c.Database.Driver)
	}
	switch c.Session.Backend {
	case SessionMemory, SessionRedis:
	default:
		return fmt.Errorf("SESSION_BACKEND %q is not supported", c.Session.Backend)
	}
	if c.Session.TTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	return nil
}

// NeedsDatabase reports whether the portal talks to the store directly
// instead of through a remote query bridge.
func (c *Config) NeedsDatabase() bool {
	return c.Bridge.URL == ""
}
