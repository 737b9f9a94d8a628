package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application parameters.
type Config struct {
	HTTP     HTTPConfig
	Data     DataConfig
	Snapshot SnapshotConfig
	Database DatabaseConfig
	RabbitMQ RabbitMQConfig
}

type HTTPConfig struct {
	Port int
}

type DataConfig struct {
	// Dir holds the bootstrap catalog files and the restock request log.
	Dir string
}

type SnapshotConfig struct {
	// Driver selects the snapshot store: "file" or "postgres".
	Driver string
	// Path is the snapshot file for the file driver.
	Path string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

type RabbitMQConfig struct {
	Enabled  bool
	Host     string
	Port     int
	User     string
	Password string
}

// Default returns the zero-infrastructure configuration: file snapshot,
// no broker, data files in the working directory.
func Default() *Config {
	return &Config{
		HTTP:     HTTPConfig{Port: 3000},
		Data:     DataConfig{Dir: "."},
		Snapshot: SnapshotConfig{Driver: "file", Path: "restaurant.json"},
	}
}

// Load reads a sectioned key: value config file and applies environment
// overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (cfg *Config) readFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	var section string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasSuffix(line, ":") {
			section = strings.TrimSuffix(line, ":")
			continue
		}
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.Trim(strings.TrimSpace(parts[1]), `"'`)
		cfg.assign(section, key, value)
	}
	return scanner.Err()
}

func (cfg *Config) assign(section, key, value string) {
	switch section {
	case "http":
		if key == "port" {
			cfg.HTTP.Port = atoi(value, cfg.HTTP.Port)
		}
	case "data":
		if key == "dir" {
			cfg.Data.Dir = value
		}
	case "snapshot":
		switch key {
		case "driver":
			cfg.Snapshot.Driver = value
		case "path":
			cfg.Snapshot.Path = value
		}
	case "database":
		switch key {
		case "host":
			cfg.Database.Host = value
		case "port":
			cfg.Database.Port = atoi(value, cfg.Database.Port)
		case "user":
			cfg.Database.User = value
		case "password":
			cfg.Database.Password = value
		case "database":
			cfg.Database.Database = value
		}
	case "rabbitmq":
		switch key {
		case "enabled":
			cfg.RabbitMQ.Enabled = value == "true"
		case "host":
			cfg.RabbitMQ.Host = value
		case "port":
			cfg.RabbitMQ.Port = atoi(value, cfg.RabbitMQ.Port)
		case "user":
			cfg.RabbitMQ.User = value
		case "password":
			cfg.RabbitMQ.Password = value
		}
	}
}

// applyEnv loads .env when present, then lets environment variables win
// over file values for the credentials.
func (cfg *Config) applyEnv() {
	_ = godotenv.Load()
	if v := os.Getenv("RESTAURANT_DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("RESTAURANT_MQ_PASSWORD"); v != "" {
		cfg.RabbitMQ.Password = v
	}
	if v := os.Getenv("RESTAURANT_HTTP_PORT"); v != "" {
		cfg.HTTP.Port = atoi(v, cfg.HTTP.Port)
	}
	if v := os.Getenv("RESTAURANT_DATA_DIR"); v != "" {
		cfg.Data.Dir = v
	}
}

func atoi(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}

// FindConfig probes the conventional config locations.
func FindConfig() string {
	for _, p := range []string{"config.yaml", "config.yml"} {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
