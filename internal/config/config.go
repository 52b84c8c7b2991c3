package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

type Config struct {
	Env        string     `yaml:"env" env:"ENV" env-default:"local"`
	Storage    Storage    `yaml:"storage"`
	Database   Database   `yaml:"database"`
	HTTPServer HTTPServer `yaml:"http_server"`
	Auth       Auth       `yaml:"auth"`
	Uploads    Uploads    `yaml:"uploads"`
}

type Storage struct {
	Driver   string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"mongo"`
	MongoURL string `yaml:"mongo_url" env:"MONGO_URL"`
	MongoDB  string `yaml:"mongo_database" env:"MONGO_DATABASE" env-default:"stay_booker"`
}

// Database holds the postgres connection used by the postgres storage driver.
type Database struct {
	Host     string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port     int    `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"DB_USER"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	DBName   string `yaml:"dbname" env:"DB_NAME"`
	SSLMode  string `yaml:"sslmode" env:"DB_SSLMODE" env-default:"disable"`
}

type HTTPServer struct {
	Port        string        `yaml:"port" env:"PORT" env-default:"4000"`
	Timeout     time.Duration `yaml:"timeout" env:"HTTP_TIMEOUT" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	CORSOrigin  string        `yaml:"cors_origin" env:"CORS_ORIGIN" env-default:"http://localhost:5173"`
}

type Auth struct {
	JWTSecret  string `yaml:"jwt_secret" env:"JWT_SECRET"`
	BcryptCost int    `yaml:"bcrypt_cost" env:"BCRYPT_COST" env-default:"10"`
}

type Uploads struct {
	Dir             string        `yaml:"dir" env:"UPLOADS_DIR" env-default:"./uploads"`
	MaxFiles        int           `yaml:"max_files" env:"UPLOAD_MAX_FILES" env-default:"100"`
	MaxMemory       int64         `yaml:"max_memory" env:"UPLOAD_MAX_MEMORY" env-default:"33554432"`
	DownloadTimeout time.Duration `yaml:"download_timeout" env:"DOWNLOAD_TIMEOUT" env-default:"30s"`
}

// Address is the listen address derived from the configured port.
func (s HTTPServer) Address() string {
	return ":" + s.Port
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("cannot load config: %s", err)
	}

	return cfg
}

// Load reads an optional .env file, then the YAML file named by CONFIG_PATH
// if set, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	var cfg Config

	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return nil, fmt.Errorf("config file %s: %w", configPath, err)
		}

		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case DriverMongo:
		if c.Storage.MongoURL == "" {
			return errors.New("MONGO_URL is required for the mongo storage driver")
		}
	case DriverPostgres:
		if c.Database.DBName == "" {
			return errors.New("DB_NAME is required for the postgres storage driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}

	if c.Uploads.MaxFiles <= 0 {
		return errors.New("UPLOAD_MAX_FILES must be positive")
	}

	return nil
}
