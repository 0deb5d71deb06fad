package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// LineConfig holds LINE Messaging API credentials.
type LineConfig struct {
	ChannelAccessToken string `envconfig:"LINE_CHANNEL_ACCESS_TOKEN"`
	ChannelSecret      string `envconfig:"LINE_CHANNEL_SECRET"`
	APIBaseURL         string `envconfig:"LINE_API_BASE_URL" default:"https://api.line.me"`
}

// SlackConfig holds Slack delivery and interaction credentials.
type SlackConfig struct {
	WebhookURL    string `envconfig:"SLACK_WEBHOOK_URL"`
	BotToken      string `envconfig:"SLACK_BOT_TOKEN"`
	SigningSecret string `envconfig:"SLACK_SIGNING_SECRET"`
	AppToken      string `envconfig:"SLACK_APP_TOKEN"`
	ChannelID     string `envconfig:"SLACK_CHANNEL_ID"`
	APIBaseURL    string `envconfig:"SLACK_API_BASE_URL" default:"https://slack.com/api"`
}

// OpenAIConfig holds the suggestion backend settings.
type OpenAIConfig struct {
	APIKey      string  `envconfig:"OPENAI_API_KEY"`
	Model       string  `envconfig:"OPENAI_MODEL" default:"gpt-3.5-turbo"`
	MaxTokens   int     `envconfig:"OPENAI_MAX_TOKENS" default:"500"`
	Temperature float64 `envconfig:"OPENAI_TEMPERATURE" default:"0.7"`
	BaseURL     string  `envconfig:"OPENAI_BASE_URL"`
}

// ServerConfig holds process-level settings.
type ServerConfig struct {
	Port          string `envconfig:"PORT" default:"3000"`
	Environment   string `envconfig:"ENVIRONMENT" default:"production"`
	MockServerURL string `envconfig:"MOCK_SERVER_URL" default:"http://localhost:3000/mock-mcp"`
	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`
	LogPretty     bool   `envconfig:"LOG_PRETTY" default:"false"`
}

// Config aggregates every subsystem's settings.
type Config struct {
	Server ServerConfig
	Line   LineConfig
	Slack  SlackConfig
	OpenAI OpenAIConfig
}

// Load reads configuration from the environment, loading a .env file
// first when one exists. Missing credentials produce warnings rather
// than a hard failure so the server can still come up for local work.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	cfg.warnMissing()
	return &cfg, nil
}

// IsDevelopment reports whether the process runs in development mode,
// where webhook signature validation is bypassed.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

func (c *Config) warnMissing() {
	warn := func(key string, value string) {
		if value == "" {
			log.Warn().Str("key", key).Msg("required environment variable is not set")
		}
	}

	warn("LINE_CHANNEL_ACCESS_TOKEN", c.Line.ChannelAccessToken)
	warn("LINE_CHANNEL_SECRET", c.Line.ChannelSecret)
	warn("SLACK_WEBHOOK_URL", c.Slack.WebhookURL)
	warn("SLACK_BOT_TOKEN", c.Slack.BotToken)
	warn("SLACK_SIGNING_SECRET", c.Slack.SigningSecret)
	warn("SLACK_APP_TOKEN", c.Slack.AppToken)
	warn("OPENAI_API_KEY", c.OpenAI.APIKey)
}
