package hr

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/workdesk/integration-assist/pkg/domain/errors"
)

// Config holds the MySQL connection parameters for the HR database.
type Config struct {
	Host         string
	Port         int
	User         string
	Password     string
	Database     string
	MaxRows      int
	QueryTimeout time.Duration
}

// DefaultConfig returns the configuration used when no environment overrides are set.
func DefaultConfig() Config {
	return Config{
		Host:         "localhost",
		Port:         3306,
		User:         "root",
		Database:     "hr_management",
		MaxRows:      100,
		QueryTimeout: 30 * time.Second,
	}
}

// LoadConfig reads connection parameters from the environment.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	if v := os.Getenv("DB_HOST"); v != "" {
		cfg.Host = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return cfg, errors.New(errors.CodeConfigurationInvalid, "hr", fmt.Sprintf("invalid DB_PORT %q", v), err)
		}
		cfg.Port = port
	}
	if v := os.Getenv("DB_USER"); v != "" {
		cfg.User = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Password = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		cfg.Database = v
	}
	if v := os.Getenv("HR_MAX_ROWS"); v != "" {
		rows, err := strconv.Atoi(v)
		if err != nil || rows <= 0 {
			return cfg, errors.New(errors.CodeConfigurationInvalid, "hr", fmt.Sprintf("invalid HR_MAX_ROWS %q", v), err)
		}
		cfg.MaxRows = rows
	}
	if v := os.Getenv("HR_QUERY_TIMEOUT"); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil || timeout <= 0 {
			return cfg, errors.New(errors.CodeConfigurationInvalid, "hr", fmt.Sprintf("invalid HR_QUERY_TIMEOUT %q", v), err)
		}
		cfg.QueryTimeout = timeout
	}

	return cfg, nil
}

// DSN renders the go-sql-driver connection string. parseTime lets DATE and
// DATETIME columns scan into time.Time.
func (c Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4",
		c.User, c.Password, c.Host, c.Port, c.Database)
}
