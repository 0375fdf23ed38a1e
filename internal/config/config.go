package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderDemo   = "demo"

	BackendMemory    = "memory"
	BackendFirestore = "firestore"
)

// Config holds all configuration for the application.
type Config struct {
	Port      string `mapstructure:"PORT"`
	GinMode   string `mapstructure:"GIN_MODE"`
	ClientURL string `mapstructure:"CLIENT_URL"`

	LLMProvider   string        `mapstructure:"LLM_PROVIDER"`
	OpenAIAPIKey  string        `mapstructure:"OPENAI_API_KEY"`
	OpenAIBaseURL string        `mapstructure:"OPENAI_BASE_URL"`
	OpenAIModel   string        `mapstructure:"OPENAI_MODEL"`
	GeminiAPIKey  string        `mapstructure:"GEMINI_API_KEY"`
	GeminiModel   string        `mapstructure:"GEMINI_MODEL"`
	LLMTimeout    time.Duration `mapstructure:"LLM_TIMEOUT"`

	StoreBackend                     string `mapstructure:"STORE_BACKEND"`
	FirebaseProjectID                string `mapstructure:"FIREBASE_PROJECT_ID"`
	GoogleApplicationCredentials     string `mapstructure:"GOOGLE_APPLICATION_CREDENTIALS"`
	FirebaseServiceAccountJSONBase64 string `mapstructure:"FIREBASE_SERVICE_ACCOUNT_JSON_BASE64"`
	RequireAuth                      bool   `mapstructure:"REQUIRE_AUTH"`

	RedisAddress  string        `mapstructure:"REDIS_ADDRESS"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int           `mapstructure:"REDIS_DB"`
	CacheTTL      time.Duration `mapstructure:"CACHE_TTL"`

	RabbitMQURL   string `mapstructure:"RABBITMQ_URL"`
	RabbitMQQueue string `mapstructure:"RABBITMQ_QUEUE"`

	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     string `mapstructure:"SMTP_PORT"`
	SMTPUsername string `mapstructure:"SMTP_USERNAME"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	MailSender   string `mapstructure:"MAIL_SENDER"`
}

// fileConfig is the optional YAML file named by PATH_CONFIG. Its values act
// as defaults that environment variables override.
type fileConfig struct {
	Server struct {
		Port      string `yaml:"port"`
		GinMode   string `yaml:"gin_mode"`
		ClientURL string `yaml:"client_url"`
	} `yaml:"server"`
	LLM struct {
		Provider      string `yaml:"provider"`
		OpenAIBaseURL string `yaml:"openai_base_url"`
		OpenAIModel   string `yaml:"openai_model"`
		GeminiModel   string `yaml:"gemini_model"`
		Timeout       string `yaml:"timeout"`
	} `yaml:"llm"`
	Store struct {
		Backend string `yaml:"backend"`
	} `yaml:"store"`
	Firestore struct {
		ProjectID       string `yaml:"project_id"`
		CredentialsFile string `yaml:"credentials_file"`
	} `yaml:"firestore"`
	Redis struct {
		Address  string `yaml:"address"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	RabbitMQ struct {
		URL       string `yaml:"url"`
		QueueName string `yaml:"queue_name"`
	} `yaml:"rabbitmq"`
	SMTP struct {
		Host   string `yaml:"host"`
		Port   string `yaml:"port"`
		Sender string `yaml:"sender"`
	} `yaml:"smtp"`
}

var envKeys = []string{
	"PORT", "GIN_MODE", "CLIENT_URL",
	"LLM_PROVIDER", "OPENAI_API_KEY", "OPENAI_BASE_URL", "OPENAI_MODEL",
	"GEMINI_API_KEY", "GEMINI_MODEL", "LLM_TIMEOUT",
	"STORE_BACKEND", "FIREBASE_PROJECT_ID", "GOOGLE_APPLICATION_CREDENTIALS",
	"FIREBASE_SERVICE_ACCOUNT_JSON_BASE64", "REQUIRE_AUTH",
	"REDIS_ADDRESS", "REDIS_PASSWORD", "REDIS_DB", "CACHE_TTL",
	"RABBITMQ_URL", "RABBITMQ_QUEUE",
	"SMTP_HOST", "SMTP_PORT", "SMTP_USERNAME", "SMTP_PASSWORD", "MAIL_SENDER",
}

// LoadConfig loads configuration from environment variables using Viper,
// layered over the YAML file at PATH_CONFIG when one is given.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("PORT", "5000")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("OPENAI_BASE_URL", "https://api.openai.com/v1")
	v.SetDefault("OPENAI_MODEL", "gpt-4o")
	v.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	v.SetDefault("LLM_TIMEOUT", "90s")
	v.SetDefault("STORE_BACKEND", BackendMemory)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_TTL", "24h")
	v.SetDefault("RABBITMQ_QUEUE", "dsb.events")
	v.SetDefault("SMTP_PORT", "587")

	if path := os.Getenv("PATH_CONFIG"); path != "" {
		if err := applyFileDefaults(v, path); err != nil {
			return nil, err
		}
	}

	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.New("failed to unmarshal config: " + err.Error())
	}

	cfg.LLMProvider = resolveProvider(cfg)
	cfg.StoreBackend = strings.ToLower(strings.TrimSpace(cfg.StoreBackend))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyFileDefaults(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	set := func(key, value string) {
		if value != "" {
			v.SetDefault(key, value)
		}
	}
	set("PORT", fc.Server.Port)
	set("GIN_MODE", fc.Server.GinMode)
	set("CLIENT_URL", fc.Server.ClientURL)
	set("LLM_PROVIDER", fc.LLM.Provider)
	set("OPENAI_BASE_URL", fc.LLM.OpenAIBaseURL)
	set("OPENAI_MODEL", fc.LLM.OpenAIModel)
	set("GEMINI_MODEL", fc.LLM.GeminiModel)
	set("LLM_TIMEOUT", fc.LLM.Timeout)
	set("STORE_BACKEND", fc.Store.Backend)
	set("FIREBASE_PROJECT_ID", fc.Firestore.ProjectID)
	set("GOOGLE_APPLICATION_CREDENTIALS", fc.Firestore.CredentialsFile)
	set("REDIS_ADDRESS", fc.Redis.Address)
	set("REDIS_PASSWORD", fc.Redis.Password)
	set("CACHE_TTL", fc.Redis.TTL)
	set("RABBITMQ_URL", fc.RabbitMQ.URL)
	set("RABBITMQ_QUEUE", fc.RabbitMQ.QueueName)
	set("SMTP_HOST", fc.SMTP.Host)
	set("SMTP_PORT", fc.SMTP.Port)
	set("MAIL_SENDER", fc.SMTP.Sender)
	if fc.Redis.DB != 0 {
		v.SetDefault("REDIS_DB", fc.Redis.DB)
	}
	return nil
}

// resolveProvider picks the configured provider, or the first one with a key.
// Without any key the service runs on canned demo data.
func resolveProvider(cfg Config) string {
	provider := strings.ToLower(strings.TrimSpace(cfg.LLMProvider))
	if provider != "" {
		return provider
	}
	switch {
	case cfg.OpenAIAPIKey != "":
		return ProviderOpenAI
	case cfg.GeminiAPIKey != "":
		return ProviderGemini
	default:
		return ProviderDemo
	}
}

// Validate rejects combinations the server cannot start with.
func (c *Config) Validate() error {
	switch c.LLMProvider {
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return errors.New("OPENAI_API_KEY is required when LLM_PROVIDER is openai")
		}
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return errors.New("GEMINI_API_KEY is required when LLM_PROVIDER is gemini")
		}
	case ProviderDemo:
	default:
		return fmt.Errorf("unsupported LLM_PROVIDER %q", c.LLMProvider)
	}

	switch c.StoreBackend {
	case BackendMemory:
	case BackendFirestore:
		if c.FirebaseProjectID == "" {
			return errors.New("FIREBASE_PROJECT_ID is required when STORE_BACKEND is firestore")
		}
	default:
		return fmt.Errorf("unsupported STORE_BACKEND %q", c.StoreBackend)
	}

	if c.RequireAuth && c.FirebaseProjectID == "" {
		return errors.New("FIREBASE_PROJECT_ID is required when REQUIRE_AUTH is enabled")
	}
	if c.LLMTimeout <= 0 {
		return errors.New("LLM_TIMEOUT must be positive")
	}
	if c.SMTPHost != "" && c.MailSender == "" {
		return errors.New("MAIL_SENDER is required when SMTP_HOST is set")
	}
	return nil
}

// UsesFirebase reports whether a Firebase app has to be initialised.
func (c *Config) UsesFirebase() bool {
	return c.StoreBackend == BackendFirestore || c.RequireAuth
}

// IsRelease reports whether Gin runs in release mode.
func (c *Config) IsRelease() bool {
	return strings.ToLower(c.GinMode) == "release"
}
