package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range append(envKeys, "PATH_CONFIG") {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, ProviderDemo, cfg.LLMProvider)
	assert.Equal(t, BackendMemory, cfg.StoreBackend)
	assert.Equal(t, 90*time.Second, cfg.LLMTimeout)
	assert.Equal(t, 24*time.Hour, cfg.CacheTTL)
	assert.Equal(t, "gpt-4o", cfg.OpenAIModel)
	assert.False(t, cfg.UsesFirebase())
}

func TestLoadConfig_ProviderInferredFromKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, cfg.LLMProvider)

	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "g-test")
	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ProviderGemini, cfg.LLMProvider)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("LLM_TIMEOUT", "5s")
	t.Setenv("REQUIRE_AUTH", "true")
	t.Setenv("FIREBASE_PROJECT_ID", "dsb-test")
	t.Setenv("REDIS_DB", "3")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.LLMTimeout)
	assert.True(t, cfg.RequireAuth)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.True(t, cfg.UsesFirebase())
}

func TestLoadConfig_YAMLFileIsOverriddenByEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: "7000"
  client_url: "http://localhost:3000"
redis:
  address: "localhost:6379"
  ttl: "1h"
rabbitmq:
  queue_name: "custom.events"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("PATH_CONFIG", path)
	t.Setenv("PORT", "7001")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "7001", cfg.Port)
	assert.Equal(t, "http://localhost:3000", cfg.ClientURL)
	assert.Equal(t, "localhost:6379", cfg.RedisAddress)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
	assert.Equal(t, "custom.events", cfg.RabbitMQQueue)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("PATH_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{LLMProvider: ProviderDemo, StoreBackend: BackendMemory, LLMTimeout: time.Second}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "demo on memory", mutate: func(c *Config) {}},
		{name: "openai without key", mutate: func(c *Config) { c.LLMProvider = ProviderOpenAI }, wantErr: "OPENAI_API_KEY"},
		{name: "gemini without key", mutate: func(c *Config) { c.LLMProvider = ProviderGemini }, wantErr: "GEMINI_API_KEY"},
		{name: "unknown provider", mutate: func(c *Config) { c.LLMProvider = "claude" }, wantErr: "LLM_PROVIDER"},
		{name: "firestore without project", mutate: func(c *Config) { c.StoreBackend = BackendFirestore }, wantErr: "FIREBASE_PROJECT_ID"},
		{name: "unknown backend", mutate: func(c *Config) { c.StoreBackend = "postgres" }, wantErr: "STORE_BACKEND"},
		{name: "auth without project", mutate: func(c *Config) { c.RequireAuth = true }, wantErr: "REQUIRE_AUTH"},
		{name: "zero timeout", mutate: func(c *Config) { c.LLMTimeout = 0 }, wantErr: "LLM_TIMEOUT"},
		{name: "smtp without sender", mutate: func(c *Config) { c.SMTPHost = "smtp.example.com" }, wantErr: "MAIL_SENDER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
