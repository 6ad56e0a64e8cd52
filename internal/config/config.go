package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/valentinpelus/faqbot/pkg/knowledge"
	"github.com/valentinpelus/faqbot/pkg/mirror"
	"github.com/valentinpelus/faqbot/pkg/remote"
)

// Config holds all application configuration
type Config struct {
	Port         string
	APIAuthToken string
	AppEnv       string // "development" or "production"
	LogLevel     string
	LogFilePath  string

	// Knowledge base refresh
	KnowledgeSource             string // "none", "file", "url", "configmap"
	KnowledgePath               string
	KnowledgeURL                string
	KnowledgeConfigMapNamespace string
	KnowledgeConfigMapName      string
	KnowledgeConfigMapKey       string
	KnowledgeFetchTimeout       time.Duration

	// Feedback storage
	FeedbackBackend    string // "file", "redis", "memory"
	FeedbackFilePath   string
	RedisURL           string
	FeedbackStorageKey string

	// Remote chat service
	RemoteChatProvider string // "none", "http", "ollama", "openai", "anthropic", "gemini", "bedrock"
	RemoteChatURL      string
	RemoteChatTimeout  time.Duration
	OllamaURL          string
	OllamaModel        string
	OpenAIAPIKey       string
	OpenAIModel        string
	AnthropicAPIKey    string
	AnthropicModel     string
	GeminiAPIKey       string
	GeminiModel        string
	BedrockRegion      string
	BedrockModel       string

	// Feedback mirror
	FeedbackMirror            string // "none", "http", "postgres", "slack"
	FeedbackMirrorURL         string
	FeedbackMirrorDatabaseURL string
	SlackWebhookURL           string
	SlackDislikesOnly         bool
	FeedbackMirrorTimeout     time.Duration

	// Chat turns stay addressable by turn_id for this long
	TurnTTL time.Duration
}

// LoadConfig loads configuration from environment variables.
// A .env file in the working directory is read first when present.
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:         getEnv("PORT", "8080"),
		APIAuthToken: getEnv("API_AUTH_TOKEN", ""),
		AppEnv:       getEnv("APP_ENV", "development"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFilePath:  getEnv("LOG_FILE_PATH", ""),
		// Knowledge base
		KnowledgeSource:             getEnv("KB_SOURCE", knowledge.SourceNone),
		KnowledgePath:               getEnv("KB_PATH", ""),
		KnowledgeURL:                getEnv("KB_URL", ""),
		KnowledgeConfigMapNamespace: getEnv("KB_CONFIGMAP_NAMESPACE", "default"),
		KnowledgeConfigMapName:      getEnv("KB_CONFIGMAP_NAME", ""),
		KnowledgeConfigMapKey:       getEnv("KB_CONFIGMAP_KEY", "faq.json"),
		KnowledgeFetchTimeout:       getEnvDuration("KB_FETCH_TIMEOUT", 5*time.Second),
		// Feedback
		FeedbackBackend:    getEnv("FEEDBACK_BACKEND", "file"),
		FeedbackFilePath:   getEnv("FEEDBACK_FILE_PATH", "/data/feedback.json"),
		RedisURL:           getEnv("REDIS_URL", ""),
		FeedbackStorageKey: getEnv("FEEDBACK_STORAGE_KEY", "faqbot_feedback"),
		// Remote chat
		RemoteChatProvider: getEnv("REMOTE_CHAT_PROVIDER", "none"),
		RemoteChatURL:      getEnv("REMOTE_CHAT_URL", ""),
		RemoteChatTimeout:  getEnvDuration("REMOTE_CHAT_TIMEOUT", 3*time.Second),
		OllamaURL:          getEnv("OLLAMA_URL", "http://localhost:11434"),
		OllamaModel:        getEnv("OLLAMA_MODEL", "llama3"),
		OpenAIAPIKey:       getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:        getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		AnthropicAPIKey:    getEnv("ANTHROPIC_API_KEY", ""),
		AnthropicModel:     getEnv("ANTHROPIC_MODEL", "claude-3-5-sonnet-20241022"),
		GeminiAPIKey:       getEnv("GEMINI_API_KEY", ""),
		GeminiModel:        getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		BedrockRegion:      getEnv("BEDROCK_REGION", "us-east-1"),
		BedrockModel:       getEnv("BEDROCK_MODEL", "anthropic.claude-3-5-sonnet-20241022-v2:0"),
		// Mirror
		FeedbackMirror:            getEnv("FEEDBACK_MIRROR", "none"),
		FeedbackMirrorURL:         getEnv("FEEDBACK_MIRROR_URL", ""),
		FeedbackMirrorDatabaseURL: getEnv("FEEDBACK_MIRROR_DATABASE_URL", ""),
		SlackWebhookURL:           getEnv("SLACK_WEBHOOK_URL", ""),
		SlackDislikesOnly:         getEnvBool("SLACK_DISLIKES_ONLY", true),
		FeedbackMirrorTimeout:     getEnvDuration("FEEDBACK_MIRROR_TIMEOUT", 3*time.Second),

		TurnTTL: getEnvDuration("TURN_TTL", 24*time.Hour),
	}
}

// Validate reports settings that cannot work together
func (c *Config) Validate() error {
	var errs []error

	if _, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Errorf("PORT must be a number, got %q", c.Port))
	}

	switch c.KnowledgeSource {
	case knowledge.SourceNone:
	case knowledge.SourceFile:
		if c.KnowledgePath == "" {
			errs = append(errs, errors.New("KB_PATH is required when KB_SOURCE=file"))
		}
	case knowledge.SourceURL:
		if c.KnowledgeURL == "" {
			errs = append(errs, errors.New("KB_URL is required when KB_SOURCE=url"))
		}
	case knowledge.SourceConfigMap:
		if c.KnowledgeConfigMapName == "" {
			errs = append(errs, errors.New("KB_CONFIGMAP_NAME is required when KB_SOURCE=configmap"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown KB_SOURCE %q", c.KnowledgeSource))
	}

	switch c.FeedbackBackend {
	case "file":
		if c.FeedbackFilePath == "" {
			errs = append(errs, errors.New("FEEDBACK_FILE_PATH is required when FEEDBACK_BACKEND=file"))
		}
	case "redis":
		if c.RedisURL == "" {
			errs = append(errs, errors.New("REDIS_URL is required when FEEDBACK_BACKEND=redis"))
		}
	case "memory":
	default:
		errs = append(errs, fmt.Errorf("unknown FEEDBACK_BACKEND %q", c.FeedbackBackend))
	}

	switch c.RemoteChatProvider {
	case "none", "ollama", "bedrock", "aws":
	case "http":
		if c.RemoteChatURL == "" {
			errs = append(errs, errors.New("REMOTE_CHAT_URL is required when REMOTE_CHAT_PROVIDER=http"))
		}
	case "openai":
		if c.OpenAIAPIKey == "" {
			errs = append(errs, errors.New("OPENAI_API_KEY is required when REMOTE_CHAT_PROVIDER=openai"))
		}
	case "anthropic", "claude":
		if c.AnthropicAPIKey == "" {
			errs = append(errs, errors.New("ANTHROPIC_API_KEY is required when REMOTE_CHAT_PROVIDER=anthropic"))
		}
	case "gemini", "google":
		if c.GeminiAPIKey == "" {
			errs = append(errs, errors.New("GEMINI_API_KEY is required when REMOTE_CHAT_PROVIDER=gemini"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown REMOTE_CHAT_PROVIDER %q", c.RemoteChatProvider))
	}

	switch c.FeedbackMirror {
	case "none":
	case "http":
		if c.FeedbackMirrorURL == "" {
			errs = append(errs, errors.New("FEEDBACK_MIRROR_URL is required when FEEDBACK_MIRROR=http"))
		}
	case "postgres":
		if c.FeedbackMirrorDatabaseURL == "" {
			errs = append(errs, errors.New("FEEDBACK_MIRROR_DATABASE_URL is required when FEEDBACK_MIRROR=postgres"))
		}
	case "slack":
		if c.SlackWebhookURL == "" {
			errs = append(errs, errors.New("SLACK_WEBHOOK_URL is required when FEEDBACK_MIRROR=slack"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown FEEDBACK_MIRROR %q", c.FeedbackMirror))
	}

	if c.RemoteChatTimeout <= 0 {
		errs = append(errs, errors.New("REMOTE_CHAT_TIMEOUT must be positive"))
	}
	if c.FeedbackMirrorTimeout <= 0 {
		errs = append(errs, errors.New("FEEDBACK_MIRROR_TIMEOUT must be positive"))
	}
	if c.TurnTTL <= 0 {
		errs = append(errs, errors.New("TURN_TTL must be positive"))
	}

	return errors.Join(errs...)
}

// IsProduction reports whether APP_ENV is production
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

// Knowledge returns the knowledge base refresh settings
func (c *Config) Knowledge() knowledge.Config {
	return knowledge.Config{
		Source:             c.KnowledgeSource,
		Path:               c.KnowledgePath,
		URL:                c.KnowledgeURL,
		ConfigMapNamespace: c.KnowledgeConfigMapNamespace,
		ConfigMapName:      c.KnowledgeConfigMapName,
		ConfigMapKey:       c.KnowledgeConfigMapKey,
		FetchTimeout:       c.KnowledgeFetchTimeout,
	}
}

// Remote returns the remote chat provider settings
func (c *Config) Remote() remote.Config {
	return remote.Config{
		Provider:        c.RemoteChatProvider,
		URL:             c.RemoteChatURL,
		OllamaURL:       c.OllamaURL,
		OllamaModel:     c.OllamaModel,
		OpenAIAPIKey:    c.OpenAIAPIKey,
		OpenAIModel:     c.OpenAIModel,
		AnthropicAPIKey: c.AnthropicAPIKey,
		AnthropicModel:  c.AnthropicModel,
		GeminiAPIKey:    c.GeminiAPIKey,
		GeminiModel:     c.GeminiModel,
		BedrockRegion:   c.BedrockRegion,
		BedrockModel:    c.BedrockModel,
	}
}

// Mirror returns the feedback mirror settings
func (c *Config) Mirror() mirror.Config {
	return mirror.Config{
		Kind:              c.FeedbackMirror,
		URL:               c.FeedbackMirrorURL,
		DatabaseURL:       c.FeedbackMirrorDatabaseURL,
		SlackWebhookURL:   c.SlackWebhookURL,
		SlackDislikesOnly: c.SlackDislikesOnly,
	}
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// getEnvDuration gets a duration environment variable with a default value.
// Plain integers are read as seconds.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
