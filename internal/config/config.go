package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Notion    NotionConfig    `yaml:"notion" mapstructure:"notion"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Postmark  PostmarkConfig  `yaml:"postmark" mapstructure:"postmark"`
	Presence  PresenceConfig  `yaml:"presence" mapstructure:"presence"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the run audit store backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// NotionConfig holds Notion API credentials and the CRM database IDs.
type NotionConfig struct {
	Token         string  `yaml:"token" mapstructure:"token"`
	ClientDB      string  `yaml:"client_db" mapstructure:"client_db"`
	ContactDB     string  `yaml:"contact_db" mapstructure:"contact_db"`
	IntakeDB      string  `yaml:"intake_db" mapstructure:"intake_db"`
	StyleGuideDB  string  `yaml:"style_guide_db" mapstructure:"style_guide_db"`
	ProposalDB    string  `yaml:"proposal_db" mapstructure:"proposal_db"`
	EstimateDB    string  `yaml:"estimate_db" mapstructure:"estimate_db"`
	RatePerSecond float64 `yaml:"rate_per_second" mapstructure:"rate_per_second"`
}

// Configured reports whether CRM writes can be attempted.
func (c NotionConfig) Configured() bool {
	return c.Token != ""
}

// AnthropicConfig holds Anthropic API settings for research and style guides.
type AnthropicConfig struct {
	Key            string `yaml:"key" mapstructure:"key"`
	Model          string `yaml:"model" mapstructure:"model"`
	MaxTokens      int    `yaml:"max_tokens" mapstructure:"max_tokens"`
	GuideMaxTokens int    `yaml:"guide_max_tokens" mapstructure:"guide_max_tokens"`
}

// Configured reports whether the generative service can be called at all.
func (c AnthropicConfig) Configured() bool {
	return c.Key != ""
}

// PostmarkConfig holds transactional email settings.
type PostmarkConfig struct {
	ServerToken string `yaml:"server_token" mapstructure:"server_token"`
	FromAddress string `yaml:"from_address" mapstructure:"from_address"`
	SalesTo     string `yaml:"sales_to" mapstructure:"sales_to"`
	SalesCc     string `yaml:"sales_cc" mapstructure:"sales_cc"`
}

// Configured reports whether email sends can be attempted.
func (c PostmarkConfig) Configured() bool {
	return c.ServerToken != "" && c.FromAddress != ""
}

// PresenceConfig configures the web-presence analyzer.
type PresenceConfig struct {
	ProbeTimeoutSecs int `yaml:"probe_timeout_secs" mapstructure:"probe_timeout_secs"`
}

// ServerConfig configures the intake HTTP server.
type ServerConfig struct {
	Port          int     `yaml:"port" mapstructure:"port"`
	WebhookSecret string  `yaml:"webhook_secret" mapstructure:"webhook_secret"`
	RedirectTo    string  `yaml:"redirect_to" mapstructure:"redirect_to"`
	RateLimit     float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
	RateBurst     int     `yaml:"rate_burst" mapstructure:"rate_burst"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("LEADINTAKE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "leadintake.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.redirect_to", "/thank-you")
	v.SetDefault("server.rate_limit", 0.2)
	v.SetDefault("server.rate_burst", 3)
	v.SetDefault("notion.rate_per_second", 3)

	// Credential keys get empty defaults so AutomaticEnv picks them up
	// without a config file.
	for _, key := range []string{
		"notion.token", "notion.client_db", "notion.contact_db", "notion.intake_db",
		"notion.style_guide_db", "notion.proposal_db", "notion.estimate_db",
		"anthropic.key",
		"postmark.server_token", "postmark.from_address", "postmark.sales_to", "postmark.sales_cc",
		"server.webhook_secret",
	} {
		v.SetDefault(key, "")
	}

	v.SetDefault("anthropic.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("anthropic.max_tokens", 4096)
	v.SetDefault("anthropic.guide_max_tokens", 8192)
	v.SetDefault("presence.probe_timeout_secs", 10)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
