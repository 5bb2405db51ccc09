package github

import (
	"fmt"
	"os"
	"time"

	"github.com/workdesk/integration-assist/pkg/domain/errors"
)

const defaultBaseURL = "https://api.github.com"

// Config holds the GitHub API connection parameters.
type Config struct {
	Token   string
	BaseURL string
	Timeout time.Duration
}

// DefaultConfig returns the configuration used when no environment overrides are set.
func DefaultConfig() Config {
	return Config{
		BaseURL: defaultBaseURL,
		Timeout: 30 * time.Second,
	}
}

// LoadConfig reads the token and API endpoint from the environment. A missing
// token is not an error: unauthenticated reads are allowed, and operations
// that need credentials fail per call.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	cfg.Token = os.Getenv("GITHUB_TOKEN")
	if v := os.Getenv("GITHUB_API_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("GITHUB_TIMEOUT"); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil || timeout <= 0 {
			return cfg, errors.New(errors.CodeConfigurationInvalid, "github", fmt.Sprintf("invalid GITHUB_TIMEOUT %q", v), err)
		}
		cfg.Timeout = timeout
	}

	return cfg, nil
}
