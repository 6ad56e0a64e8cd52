package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"PORT", "KB_SOURCE", "FEEDBACK_BACKEND", "REMOTE_CHAT_PROVIDER", "REMOTE_CHAT_TIMEOUT", "TURN_TTL", "FEEDBACK_MIRROR", "FEEDBACK_MIRROR_TIMEOUT"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "none", cfg.KnowledgeSource)
	assert.Equal(t, "faq.json", cfg.KnowledgeConfigMapKey)
	assert.Equal(t, 5*time.Second, cfg.KnowledgeFetchTimeout)
	assert.Equal(t, "file", cfg.FeedbackBackend)
	assert.Equal(t, "/data/feedback.json", cfg.FeedbackFilePath)
	assert.Equal(t, "faqbot_feedback", cfg.FeedbackStorageKey)
	assert.Equal(t, 3*time.Second, cfg.RemoteChatTimeout)
	assert.Equal(t, 3*time.Second, cfg.FeedbackMirrorTimeout)
	assert.Equal(t, 24*time.Hour, cfg.TurnTTL)
	assert.False(t, cfg.IsProduction())
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "9090")
	t.Setenv("APP_ENV", "Production")
	t.Setenv("KB_SOURCE", "url")
	t.Setenv("KB_URL", "https://faq.example/faq.json")
	t.Setenv("REMOTE_CHAT_TIMEOUT", "2")
	t.Setenv("TURN_TTL", "90m")
	t.Setenv("FEEDBACK_MIRROR_TIMEOUT", "1500ms")
	t.Setenv("FEEDBACK_BACKEND", "redis")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	cfg := LoadConfig()
	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 2*time.Second, cfg.RemoteChatTimeout)
	assert.Equal(t, 90*time.Minute, cfg.TurnTTL)
	assert.Equal(t, 1500*time.Millisecond, cfg.FeedbackMirrorTimeout)
	assert.Equal(t, "https://faq.example/faq.json", cfg.Knowledge().URL)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("FEEDBACK_STORAGE_KEY=from_dotenv\n"), 0644))
	t.Chdir(dir)
	t.Setenv("FEEDBACK_STORAGE_KEY", "")
	os.Unsetenv("FEEDBACK_STORAGE_KEY")

	cfg := LoadConfig()
	assert.Equal(t, "from_dotenv", cfg.FeedbackStorageKey)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Port:                  "8080",
			KnowledgeSource:       "none",
			FeedbackBackend:       "memory",
			RemoteChatProvider:    "none",
			RemoteChatTimeout:     time.Second,
			FeedbackMirror:        "none",
			FeedbackMirrorTimeout: time.Second,
			TurnTTL:               time.Hour,
		}
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{name: "bad port", mutate: func(c *Config) { c.Port = "http" }, want: "PORT"},
		{name: "file source without path", mutate: func(c *Config) { c.KnowledgeSource = "file" }, want: "KB_PATH"},
		{name: "configmap without name", mutate: func(c *Config) { c.KnowledgeSource = "configmap" }, want: "KB_CONFIGMAP_NAME"},
		{name: "unknown source", mutate: func(c *Config) { c.KnowledgeSource = "ftp" }, want: "KB_SOURCE"},
		{name: "redis without url", mutate: func(c *Config) { c.FeedbackBackend = "redis" }, want: "REDIS_URL"},
		{name: "http chat without url", mutate: func(c *Config) { c.RemoteChatProvider = "http" }, want: "REMOTE_CHAT_URL"},
		{name: "openai without key", mutate: func(c *Config) { c.RemoteChatProvider = "openai" }, want: "OPENAI_API_KEY"},
		{name: "postgres mirror without dsn", mutate: func(c *Config) { c.FeedbackMirror = "postgres" }, want: "FEEDBACK_MIRROR_DATABASE_URL"},
		{name: "slack mirror without webhook", mutate: func(c *Config) { c.FeedbackMirror = "slack" }, want: "SLACK_WEBHOOK_URL"},
		{name: "zero ttl", mutate: func(c *Config) { c.TurnTTL = 0 }, want: "TURN_TTL"},
		{name: "zero mirror timeout", mutate: func(c *Config) { c.FeedbackMirrorTimeout = 0 }, want: "FEEDBACK_MIRROR_TIMEOUT"},
	}

	require.NoError(t, valid().Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
