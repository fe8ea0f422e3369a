package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"pubsub": map[string]any{
			"topicId": "",
		},
		"session": map[string]any{
			"cookieName": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "PUBSUB_TOPICID", want: "pubsub.topicId"},
		{envKey: "SESSION_COOKIENAME", want: "session.cookieName"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			assert.Equal(t, tt.want, canonicalizeEnvKey(tt.envKey, existing))
		})
	}
}

type aliasProbe struct {
	Admin struct {
		Email string `yaml:"email"`
	} `yaml:"admin"`
	SMTP struct {
		FromEmail string `yaml:"fromEmail"`
		Port      int    `yaml:"port"`
	} `yaml:"smtp"`
	Session struct {
		MaxAge time.Duration `yaml:"maxAge"`
	} `yaml:"session"`
}

func TestLoadWithEnv_AliasesAndMissingFile(t *testing.T) {
	t.Setenv("ADMIN_EMAIL", "owner@example.com")
	t.Setenv("SMTP_FROM_EMAIL", "sales@example.com")
	t.Setenv("SMTP_PORT", "2525")

	cfg, err := LoadWithEnv[aliasProbe]("does-not-exist")
	require.NoError(t, err)

	assert.Equal(t, "owner@example.com", cfg.Admin.Email)
	assert.Equal(t, "sales@example.com", cfg.SMTP.FromEmail)
	assert.Equal(t, 2525, cfg.SMTP.Port)
}

func TestLoadWithEnv_YAMLThenEnvOverride(t *testing.T) {
	dir := t.TempDir()
	yamlBody := "admin:\n  email: yaml@example.com\nsession:\n  maxAge: 1h\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "probe.yaml"), []byte(yamlBody), 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	rel, err := filepath.Rel(wd, dir)
	require.NoError(t, err)

	cfg, err := LoadWithEnv[aliasProbe]("probe", rel)
	require.NoError(t, err)
	assert.Equal(t, "yaml@example.com", cfg.Admin.Email)
	assert.Equal(t, time.Hour, cfg.Session.MaxAge)

	t.Setenv("SESSION_MAXAGE", "2h")
	cfg, err = LoadWithEnv[aliasProbe]("probe", rel)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Hour, cfg.Session.MaxAge)
}

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	assert.Equal(t, defaultPort, cfg.HTTP.Port)
	assert.Equal(t, "session", cfg.Session.CookieName)
	assert.Equal(t, 7*24*time.Hour, cfg.Session.MaxAge)
	assert.Equal(t, "0.18", cfg.Pricing.TaxRate)
	assert.Equal(t, 30, cfg.Pricing.InvoiceDueDays)
	assert.False(t, cfg.IsProduction())
}
