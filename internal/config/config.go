package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DefaultAPIURL is the API base the client falls back to.
const DefaultAPIURL = "http://localhost:8080/api"

// Config defines server configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	DB     DBConfig     `yaml:"db"`
	Log    LogConfig    `yaml:"log"`
	MCP    MCPConfig    `yaml:"mcp"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DBConfig selects the store driver. Path is used by sqlite, the remaining
// connection fields by postgres.
type DBConfig struct {
	Driver   string `yaml:"driver"`
	Path     string `yaml:"path"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

type MCPConfig struct {
	Enabled bool `yaml:"enabled"`
}

// ClientConfig holds settings for the terminal client.
type ClientConfig struct {
	APIURL  string
	LogPath string
}

// Default returns the configuration used when nothing else is set.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		DB: DBConfig{
			Driver:   DriverSQLite,
			Path:     "items.db",
			Host:     "localhost",
			Port:     5432,
			Name:     "sampledb",
			User:     "user",
			Password: "password",
			SSLMode:  "disable",
		},
		Log: LogConfig{
			Level: "info",
		},
		MCP: MCPConfig{
			Enabled: true,
		},
	}
}

// Load reads configuration from an optional YAML file, an optional .env file
// and environment variables, in that order of increasing precedence.
func Load() (Config, error) {
	cfg := Default()

	if err := loadDotEnv(); err != nil {
		return Config{}, err
	}

	if path := os.Getenv("ITEMS_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("ITEMS_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid PORT: %w", err)
		}
		cfg.Server.Port = port
	}

	if driver := os.Getenv("ITEMS_DB_DRIVER"); driver != "" {
		cfg.DB.Driver = strings.ToLower(driver)
	}
	if dbPath := os.Getenv("ITEMS_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if host := os.Getenv("POSTGRESQL_SERVICE_HOST"); host != "" {
		cfg.DB.Host = host
	}
	if portStr := os.Getenv("POSTGRESQL_SERVICE_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid POSTGRESQL_SERVICE_PORT: %w", err)
		}
		cfg.DB.Port = port
	}
	if name := os.Getenv("POSTGRESQL_DATABASE"); name != "" {
		cfg.DB.Name = name
	}
	if user := os.Getenv("POSTGRESQL_USER"); user != "" {
		cfg.DB.User = user
	}
	if password := os.Getenv("POSTGRESQL_PASSWORD"); password != "" {
		cfg.DB.Password = password
	}
	if sslMode := os.Getenv("ITEMS_DB_SSLMODE"); sslMode != "" {
		cfg.DB.SSLMode = sslMode
	}

	if level := os.Getenv("ITEMS_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if logPath := os.Getenv("ITEMS_LOG_PATH"); logPath != "" {
		cfg.Log.Path = logPath
	}
	if enabled := os.Getenv("ITEMS_MCP_ENABLED"); enabled != "" {
		v, err := strconv.ParseBool(enabled)
		if err != nil {
			return Config{}, fmt.Errorf("invalid ITEMS_MCP_ENABLED: %w", err)
		}
		cfg.MCP.Enabled = v
	}

	switch cfg.DB.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return Config{}, fmt.Errorf("unsupported db driver %q", cfg.DB.Driver)
	}

	return cfg, nil
}

// LoadClient resolves the client settings from the environment.
func LoadClient() (ClientConfig, error) {
	if err := loadDotEnv(); err != nil {
		return ClientConfig{}, err
	}

	cfg := ClientConfig{APIURL: DefaultAPIURL}
	if url := os.Getenv("REACT_APP_API_URL"); url != "" {
		cfg.APIURL = url
	}
	if url := os.Getenv("ITEMS_API_URL"); url != "" {
		cfg.APIURL = url
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	cfg.LogPath = os.Getenv("ITEMS_CLIENT_LOG_PATH")
	return cfg, nil
}

// PostgresDSN renders a postgres:// URL for lib/pq. Every field is escaped,
// so any value the server accepts (spaces, quotes, an empty password)
// survives intact.
func (c DBConfig) PostgresDSN() string {
	query := url.Values{}
	if c.SSLMode != "" {
		query.Set("sslmode", c.SSLMode)
	}
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:     "/" + c.Name,
		RawQuery: query.Encode(),
	}
	return dsn.String()
}

// loadDotEnv reads .env from the working directory. Variables already in the
// environment win.
func loadDotEnv() error {
	path := os.Getenv("ITEMS_ENV_FILE")
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
