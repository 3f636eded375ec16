package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	Petfinder PetfinderConfig `yaml:"petfinder"`
	Search    SearchConfig    `yaml:"search"`
	RabbitMQ  RabbitMQConfig  `yaml:"rabbitmq"`
	Server    ServerConfig    `yaml:"server"`
	LogLevel  string          `yaml:"log_level"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

type PetfinderConfig struct {
	BaseURL      string        `yaml:"base_url"`
	ClientID     string        `yaml:"client_id"`
	ClientSecret string        `yaml:"client_secret"`
	Timeout      time.Duration `yaml:"timeout"`
	PageSize     int           `yaml:"page_size"`
}

// SearchConfig holds the /animals query filters for one run.
type SearchConfig struct {
	Type     string `yaml:"type"`
	Age      string `yaml:"age"`
	Gender   string `yaml:"gender"`
	Location string `yaml:"location"`
	Distance int    `yaml:"distance"`
	Status   string `yaml:"status"`
}

type RabbitMQConfig struct {
	URL        string `yaml:"url"`
	Exchange   string `yaml:"exchange"`
	RoutingKey string `yaml:"routing_key"`
	QueueName  string `yaml:"queue_name"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Load reads the yaml config at path, expanding ${VAR} references from the
// environment (a .env file is loaded first when present). A missing config
// file is not an error: the loader falls back to env vars and defaults so the
// binaries can run with nothing but credentials exported.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
		// env-only operation
	default:
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg.setDefaults()

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Database.Driver == "" {
		if driver := os.Getenv("DATABASE_DRIVER"); driver != "" {
			c.Database.Driver = driver
		} else {
			c.Database.Driver = "sqlite3"
		}
	}
	if c.Database.DSN == "" {
		if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
			c.Database.DSN = dsn
		} else {
			c.Database.DSN = "./local.db"
		}
	}
	if c.Petfinder.BaseURL == "" {
		c.Petfinder.BaseURL = "https://api.petfinder.com/v2"
	}
	if c.Petfinder.ClientID == "" {
		c.Petfinder.ClientID = os.Getenv("PETFINDER_CLIENT_ID")
	}
	if c.Petfinder.ClientSecret == "" {
		c.Petfinder.ClientSecret = os.Getenv("PETFINDER_CLIENT_SECRET")
	}
	if c.Petfinder.Timeout == 0 {
		c.Petfinder.Timeout = 30 * time.Second
	}
	if c.Petfinder.PageSize == 0 {
		c.Petfinder.PageSize = 100
	}
	if c.Search.Status == "" {
		c.Search.Status = "adoptable"
	}
	if c.RabbitMQ.Exchange == "" {
		c.RabbitMQ.Exchange = "shelter_sync"
	}
	if c.RabbitMQ.RoutingKey == "" {
		c.RabbitMQ.RoutingKey = "runs"
	}
	if c.RabbitMQ.QueueName == "" {
		c.RabbitMQ.QueueName = "etl_runs"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}
