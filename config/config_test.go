package config_test

import (
	"storeflight/config"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Warnings(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(cfg *config.Config)
		contains []string
	}{
		{
			name: "fully configured",
			setup: func(cfg *config.Config) {
				cfg.Email.ResendAPIKey = "re_key"
				cfg.Email.AdminAddress = "ops@storeflight.test"
				cfg.Admin.Key = "k"
			},
		},
		{
			name: "email without admin address",
			setup: func(cfg *config.Config) {
				cfg.Email.ResendAPIKey = "re_key"
				cfg.Admin.Key = "k"
			},
			contains: []string{"ADMIN_EMAIL"},
		},
		{
			name: "email disabled",
			setup: func(cfg *config.Config) {
				cfg.Email.AdminAddress = "ops@storeflight.test"
				cfg.JWT.Secret = "s"
				cfg.Admin.User = "admin"
				cfg.Admin.Pass = "pass"
			},
			contains: []string{"RESEND_API_KEY"},
		},
		{
			name:     "nothing configured",
			setup:    func(*config.Config) {},
			contains: []string{"RESEND_API_KEY", "ADMIN_KEY"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			tt.setup(cfg)

			warnings := cfg.Warnings()

			assert.Len(t, warnings, len(tt.contains))

			for i, want := range tt.contains {
				assert.Contains(t, warnings[i], want)
			}
		})
	}
}

func TestConfig_IsProduction(t *testing.T) {
	cfg := &config.Config{}
	assert.False(t, cfg.IsProduction())

	cfg.Server.Env = "production"
	assert.True(t, cfg.IsProduction())
}
