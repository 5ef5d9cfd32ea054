package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

// Config holds all configuration options for the todo service and client
type Config struct {
	Database   DatabaseConfig
	Server     ServerConfig
	Client     ClientConfig
	Logging    LoggingConfig
	Validation ValidationConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Driver         string        `env:"TODO_DB_DRIVER"`
	Dir            string        `env:"TODO_DB_DIR"`
	Filename       string        `env:"TODO_DB_FILENAME"`
	URL            string        `env:"TODO_DB_URL"`
	QueryTimeout   time.Duration `env:"TODO_DB_QUERY_TIMEOUT"`
	WriteTimeout   time.Duration `env:"TODO_DB_WRITE_TIMEOUT"`
	DirPermissions uint32        `env:"TODO_DB_DIR_PERMISSIONS"`
	Seed           bool          `env:"TODO_SEED"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr              string        `env:"TODO_ADDR"`
	ReadHeaderTimeout time.Duration `env:"TODO_READ_HEADER_TIMEOUT"`
	RequestTimeout    time.Duration `env:"TODO_REQUEST_TIMEOUT"`
	ShutdownTimeout   time.Duration `env:"TODO_SHUTDOWN_TIMEOUT"`
	CORS              bool          `env:"TODO_CORS"`
}

// ClientConfig holds configuration for the outbound task client
type ClientConfig struct {
	ServerURL string        `env:"TODO_SERVER_URL"`
	Timeout   time.Duration `env:"TODO_CLIENT_TIMEOUT"`
}

// LoggingConfig holds logger configuration
type LoggingConfig struct {
	Level  string `env:"TODO_LOG_LEVEL"`
	Format string `env:"TODO_LOG_FORMAT"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	// NameMaxLength caps item names in characters; 0 means unlimited.
	NameMaxLength int `env:"TODO_VALIDATION_NAME_MAX"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver:         DriverSQLite,
			Dir:            "data",
			Filename:       "todo.db",
			QueryTimeout:   10 * time.Second,
			WriteTimeout:   5 * time.Second,
			DirPermissions: 0755,
			Seed:           true,
		},
		Server: ServerConfig{
			Addr:              ":8080",
			ReadHeaderTimeout: 5 * time.Second,
			RequestTimeout:    15 * time.Second,
			ShutdownTimeout:   10 * time.Second,
			CORS:              true,
		},
		Client: ClientConfig{
			ServerURL: "http://localhost:8080",
			Timeout:   10 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Validation: ValidationConfig{
			NameMaxLength: 0,
		},
	}
}

// GetDatabasePath returns the full path to the SQLite database file
func (c *Config) GetDatabasePath() string {
	if c.Database.Filename == ":memory:" {
		return c.Database.Filename
	}
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// GetDataSourceName returns the driver-specific connection string
func (c *Config) GetDataSourceName() string {
	if c.Database.Driver == DriverPostgres {
		return c.Database.URL
	}
	return c.GetDatabasePath()
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Database configuration
	if driver := os.Getenv("TODO_DB_DRIVER"); driver != "" {
		c.Database.Driver = strings.ToLower(driver)
	}
	if dir := os.Getenv("TODO_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("TODO_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if url := os.Getenv("TODO_DB_URL"); url != "" {
		c.Database.URL = url
	}
	if timeout := os.Getenv("TODO_DB_QUERY_TIMEOUT"); timeout != "" {
		c.Database.QueryTimeout = ParseDurationWithFallback(timeout, c.Database.QueryTimeout)
	}
	if timeout := os.Getenv("TODO_DB_WRITE_TIMEOUT"); timeout != "" {
		c.Database.WriteTimeout = ParseDurationWithFallback(timeout, c.Database.WriteTimeout)
	}
	if perms := os.Getenv("TODO_DB_DIR_PERMISSIONS"); perms != "" {
		c.Database.DirPermissions = ParseUint32WithFallback(perms, 8, c.Database.DirPermissions)
	}
	if seed := os.Getenv("TODO_SEED"); seed != "" {
		c.Database.Seed = ParseBoolWithFallback(seed, c.Database.Seed)
	}

	// Server configuration
	if addr := os.Getenv("TODO_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if timeout := os.Getenv("TODO_READ_HEADER_TIMEOUT"); timeout != "" {
		c.Server.ReadHeaderTimeout = ParseDurationWithFallback(timeout, c.Server.ReadHeaderTimeout)
	}
	if timeout := os.Getenv("TODO_REQUEST_TIMEOUT"); timeout != "" {
		c.Server.RequestTimeout = ParseDurationWithFallback(timeout, c.Server.RequestTimeout)
	}
	if timeout := os.Getenv("TODO_SHUTDOWN_TIMEOUT"); timeout != "" {
		c.Server.ShutdownTimeout = ParseDurationWithFallback(timeout, c.Server.ShutdownTimeout)
	}
	if cors := os.Getenv("TODO_CORS"); cors != "" {
		c.Server.CORS = ParseBoolWithFallback(cors, c.Server.CORS)
	}

	// Client configuration
	if url := os.Getenv("TODO_SERVER_URL"); url != "" {
		c.Client.ServerURL = url
	}
	if timeout := os.Getenv("TODO_CLIENT_TIMEOUT"); timeout != "" {
		c.Client.Timeout = ParseDurationWithFallback(timeout, c.Client.Timeout)
	}

	// Logging configuration
	if level := os.Getenv("TODO_LOG_LEVEL"); level != "" {
		c.Logging.Level = strings.ToLower(level)
	}
	if format := os.Getenv("TODO_LOG_FORMAT"); format != "" {
		c.Logging.Format = strings.ToLower(format)
	}

	// Validation configuration
	if maxLen := os.Getenv("TODO_VALIDATION_NAME_MAX"); maxLen != "" {
		c.Validation.NameMaxLength = ParseIntWithFallback(maxLen, c.Validation.NameMaxLength)
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate database configuration
	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Filename == "" {
			return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
		}
		if c.Database.Dir == "" && c.Database.Filename != ":memory:" {
			return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
		}
	case DriverPostgres:
		if c.Database.URL == "" {
			return &ConfigError{Field: "database.url", Message: "database url is required for the pgx driver"}
		}
	default:
		return &ConfigError{Field: "database.driver", Message: "unsupported driver " + strconv.Quote(c.Database.Driver)}
	}
	if c.Database.QueryTimeout <= 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Database.WriteTimeout <= 0 {
		return &ConfigError{Field: "database.write_timeout", Message: "write timeout must be positive"}
	}

	// Validate server configuration
	if c.Server.Addr == "" {
		return &ConfigError{Field: "server.addr", Message: "listen address cannot be empty"}
	}
	if c.Server.RequestTimeout <= 0 {
		return &ConfigError{Field: "server.request_timeout", Message: "request timeout must be positive"}
	}
	if c.Server.ShutdownTimeout <= 0 {
		return &ConfigError{Field: "server.shutdown_timeout", Message: "shutdown timeout must be positive"}
	}

	// Validate client configuration
	if c.Client.ServerURL == "" {
		return &ConfigError{Field: "client.server_url", Message: "server url cannot be empty"}
	}
	if c.Client.Timeout <= 0 {
		return &ConfigError{Field: "client.timeout", Message: "client timeout must be positive"}
	}

	// Validate logging configuration
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return &ConfigError{Field: "logging.level", Message: "log level must be one of debug, info, warn, error"}
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return &ConfigError{Field: "logging.format", Message: "log format must be text or json"}
	}

	// Validate validation configuration
	if c.Validation.NameMaxLength < 0 {
		return &ConfigError{Field: "validation.name_max_length", Message: "name maximum length cannot be negative"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
