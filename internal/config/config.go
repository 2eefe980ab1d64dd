package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
)

type Config struct {
	App
	Database
	HTTPServer
	Auth
}

type App struct {
	Env string `env:"APP_ENV" env-default:"production"`
}

type Database struct {
	URL             string        `env:"DATABASE_URL" env-required:"true"`
	Key             string        `env:"DATABASE_KEY"`
	Driver          string        `env:"DATABASE_DRIVER" env-default:"pgx"`
	Migrate         bool          `env:"DATABASE_MIGRATE" env-default:"false"`
	MaxOpenConns    int           `env:"DATABASE_MAX_OPEN_CONNS" env-default:"25"`
	MaxIdleConns    int           `env:"DATABASE_MAX_IDLE_CONNS" env-default:"10"`
	ConnMaxLifetime time.Duration `env:"DATABASE_CONN_MAX_LIFETIME" env-default:"1h"`
	SimpleProtocol  bool          `env:"DATABASE_SIMPLE_PROTOCOL" env-default:"false"`
}

type HTTPServer struct {
	Port            string        `env:"PORT" env-default:"5000"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" env-default:"30s"`
	IdleTimeout     time.Duration `env:"IDLE_TIMEOUT" env-default:"1m"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"0s"`
	AllowOrigins    []string      `env:"CORS_ALLOW_ORIGINS" env-separator:"," env-default:"*"`
}

type Auth struct {
	JWTSecret string `env:"AUTH_JWT_SECRET"`
}

// Load reads envFile if it exists and then fills Config from the process environment.
// Variables already set in the environment win over the file.
func Load(envFile string) (*Config, error) {
	conf := &Config{}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("godotenv.Load: %w", err)
		}
	}

	if err := cleanenv.ReadEnv(conf); err != nil {
		return nil, fmt.Errorf("cleanenv.ReadEnv: %w", err)
	}

	if err := conf.validate(); err != nil {
		return nil, err
	}

	return conf, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "pgx", "postgres":
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q (want pgx or postgres)", c.Database.Driver)
	}
	if c.HTTPServer.Port == "" {
		return errors.New("PORT must not be empty")
	}

	origins := make([]string, 0, len(c.AllowOrigins))
	for _, origin := range c.AllowOrigins {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	if err := (cors.Config{AllowOrigins: origins}).Validate(); err != nil {
		return fmt.Errorf("invalid CORS_ALLOW_ORIGINS %q: %w", strings.Join(c.AllowOrigins, ","), err)
	}
	c.AllowOrigins = origins

	return nil
}

// IsProduction reports whether error bodies must omit diagnostic detail.
func (a App) IsProduction() bool {
	return a.Env == EnvProduction
}

func (h HTTPServer) Addr() string {
	return "0.0.0.0:" + h.Port
}
