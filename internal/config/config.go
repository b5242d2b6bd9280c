package config

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/caarlos0/env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// DefaultWebhookSecret is used when WEBHOOK_SECRET is not set
const DefaultWebhookSecret = "test-secret"

// Telegram only accepts these characters in a webhook secret token
var secretTokenRx = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Config holds all application configuration
type Config struct {
	BotToken           string `env:"TELEGRAM_BOT_TOKEN" validate:"required"`
	WebhookSecret      string `env:"WEBHOOK_SECRET" envDefault:"test-secret" validate:"required,max=256,secret_token"`
	WebhookBaseURL     string `env:"WEBHOOK_BASE_URL" validate:"omitempty,url"`
	Port               string `env:"PORT" envDefault:"8000" validate:"required,numeric"`
	DropPendingUpdates bool   `env:"DROP_PENDING_UPDATES" envDefault:"true"`
	LogLevel           string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	TelegramAPIURL     string `env:"TELEGRAM_API_URL" envDefault:"https://api.telegram.org" validate:"url"`

	ChatProvider  string        `env:"CHAT_PROVIDER" envDefault:"qwen" validate:"oneof=qwen openai groq openrouter replicate gemini"`
	ImageProvider string        `env:"IMAGE_PROVIDER" envDefault:"replicate" validate:"oneof=replicate openai none"`
	SystemPrompt  string        `env:"SYSTEM_PROMPT"`
	AITimeout     time.Duration `env:"AI_TIMEOUT" envDefault:"30s" validate:"min=1s"`

	QwenAPIKey  string `env:"QWEN_API_KEY"`
	QwenBaseURL string `env:"QWEN_BASE_URL" envDefault:"https://dashscope-intl.aliyuncs.com/api/v1" validate:"url"`
	QwenModel   string `env:"QWEN_MODEL" envDefault:"qwen-max"`

	OpenAIAPIKey     string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL    string `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1" validate:"url"`
	OpenAIModel      string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	OpenAIImageModel string `env:"OPENAI_IMAGE_MODEL" envDefault:"dall-e-3"`

	GroqAPIKey  string `env:"GROQ_API_KEY"`
	GroqBaseURL string `env:"GROQ_BASE_URL" envDefault:"https://api.groq.com/openai/v1" validate:"url"`
	GroqModel   string `env:"GROQ_MODEL" envDefault:"llama-3.1-8b-instant"`

	OpenRouterAPIKey  string `env:"OPENROUTER_API_KEY"`
	OpenRouterBaseURL string `env:"OPENROUTER_BASE_URL" envDefault:"https://openrouter.ai/api/v1" validate:"url"`
	OpenRouterModel   string `env:"OPENROUTER_MODEL" envDefault:"openai/gpt-4o-mini"`

	ReplicateAPIToken   string `env:"REPLICATE_API_TOKEN"`
	ReplicateBaseURL    string `env:"REPLICATE_BASE_URL" envDefault:"https://api.replicate.com/v1" validate:"url"`
	ReplicateImageModel string `env:"REPLICATE_IMAGE_MODEL" envDefault:"black-forest-labs/flux-schnell"`
	ReplicateChatModel  string `env:"REPLICATE_CHAT_MODEL" envDefault:"meta/meta-llama-3-8b-instruct"`

	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash"`

	ModeStore  string `env:"MODE_STORE" envDefault:"memory" validate:"oneof=memory postgres"`
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBName     string `env:"DB_NAME" envDefault:"smartzenbot"`
	DBUser     string `env:"DB_USER" envDefault:"smartzenbot"`
	DBPassword string `env:"DB_PASSWORD" json:"-"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	cfg.BotToken = strings.TrimSpace(cfg.BotToken)
	cfg.WebhookSecret = strings.TrimSpace(cfg.WebhookSecret)
	cfg.WebhookBaseURL = strings.TrimRight(strings.TrimSpace(cfg.WebhookBaseURL), "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks field constraints and reports offending variables by name
func (c *Config) Validate() error {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("env"), ",", 2)[0]
		if name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("secret_token", func(fl validator.FieldLevel) bool {
		return secretTokenRx.MatchString(fl.Field().String())
	})

	if err := v.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			if fe.Tag() == "required" {
				return fmt.Errorf("%s is required", fe.Field())
			}
			return fmt.Errorf("%s is invalid: failed %q check", fe.Field(), fe.Tag())
		}
		return err
	}

	if c.ModeStore == "postgres" && c.DBPassword == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}

	return nil
}

// WebhookPath returns the secret-bearing path updates are delivered to
func (c *Config) WebhookPath() string {
	return "/webhook/" + c.WebhookSecret
}

// WebhookURL returns the public URL registered with Telegram, or "" when no base URL is set
func (c *Config) WebhookURL() string {
	if c.WebhookBaseURL == "" {
		return ""
	}
	return c.WebhookBaseURL + c.WebhookPath()
}

// ListenAddr returns the address the HTTP server binds to
func (c *Config) ListenAddr() string {
	return ":" + c.Port
}

// UsesDefaultSecret reports whether WEBHOOK_SECRET was left at its default
func (c *Config) UsesDefaultSecret() bool {
	return c.WebhookSecret == DefaultWebhookSecret
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost,
		c.DBPort,
		c.DBUser,
		c.DBPassword,
		c.DBName,
	)
}
