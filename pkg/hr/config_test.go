package hr

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workdesk/integration-assist/pkg/domain/errors"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "HR_MAX_ROWS", "HR_QUERY_TIMEOUT"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 3306, cfg.Port)
	assert.Equal(t, "root", cfg.User)
	assert.Equal(t, "hr_management", cfg.Database)
	assert.Equal(t, 100, cfg.MaxRows)
	assert.Equal(t, 30*time.Second, cfg.QueryTimeout)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "3307")
	t.Setenv("DB_USER", "reader")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "hr_test")
	t.Setenv("HR_MAX_ROWS", "25")
	t.Setenv("HR_QUERY_TIMEOUT", "5s")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Host)
	assert.Equal(t, 3307, cfg.Port)
	assert.Equal(t, "reader", cfg.User)
	assert.Equal(t, "secret", cfg.Password)
	assert.Equal(t, "hr_test", cfg.Database)
	assert.Equal(t, 25, cfg.MaxRows)
	assert.Equal(t, 5*time.Second, cfg.QueryTimeout)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"port not numeric", "DB_PORT", "not-a-port"},
		{"port out of range", "DB_PORT", "70000"},
		{"max rows negative", "HR_MAX_ROWS", "-1"},
		{"timeout malformed", "HR_QUERY_TIMEOUT", "soon"},
		{"timeout negative", "HR_QUERY_TIMEOUT", "-5s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := LoadConfig()
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, errors.CodeConfigurationInvalid))
		})
	}
}

func TestDSN(t *testing.T) {
	cfg := Config{
		Host:     "db.internal",
		Port:     3307,
		User:     "reader",
		Password: "secret",
		Database: "hr_test",
	}
	assert.Equal(t,
		"reader:secret@tcp(db.internal:3307)/hr_test?parseTime=true&charset=utf8mb4",
		cfg.DSN())
}
