package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		expectError bool
	}{
		{
			name:        "missing port",
			config:      Config{JWTSecret: "secret"},
			expectError: true,
		},
		{
			name:        "missing jwt secret",
			config:      Config{Port: "8390"},
			expectError: true,
		},
		{
			name:        "development defaults pass",
			config:      Config{Port: "8390", JWTSecret: "your-secret-key-change-in-production", Env: "development"},
			expectError: false,
		},
		{
			name:        "production rejects default jwt secret",
			config:      Config{Port: "8390", JWTSecret: "your-secret-key-change-in-production", DBPassword: "strong-enough", Env: "production"},
			expectError: true,
		},
		{
			name:        "production rejects short jwt secret",
			config:      Config{Port: "8390", JWTSecret: "short", DBPassword: "strong-enough", Env: "production"},
			expectError: true,
		},
		{
			name:        "production rejects default db password",
			config:      Config{Port: "8390", JWTSecret: "secure-secret-at-least-32-chars-long", DBPassword: "password", Env: "production"},
			expectError: true,
		},
		{
			name:        "production with strong values passes",
			config:      Config{Port: "8390", JWTSecret: "secure-secret-at-least-32-chars-long", DBPassword: "strong-enough", Env: "production"},
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
