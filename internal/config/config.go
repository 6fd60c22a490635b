package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Stripe   StripeConfig   `mapstructure:"stripe"`
	Slack    SlackConfig    `mapstructure:"slack"`
	Realtime RealtimeConfig `mapstructure:"realtime"`
	Billing  BillingConfig  `mapstructure:"billing"`
	Logger   LoggerConfig   `mapstructure:"logger"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Path            string        `mapstructure:"path"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	MigrationsDir   string        `mapstructure:"migrations_dir"`
}

// StripeConfig holds payment processor configuration. Simulate keeps all
// processor calls local, fabricating deterministic intent and link IDs.
type StripeConfig struct {
	APIKey     string `mapstructure:"api_key"`
	SuccessURL string `mapstructure:"success_url"`
	Simulate   bool   `mapstructure:"simulate"`
}

// SlackConfig holds hosted chat provider configuration
type SlackConfig struct {
	BotToken      string `mapstructure:"bot_token"`
	ChannelPrefix string `mapstructure:"channel_prefix"`
	Enabled       bool   `mapstructure:"enabled"`
}

// RealtimeConfig holds presence/typing configuration
type RealtimeConfig struct {
	TypingTTL     time.Duration `mapstructure:"typing_ttl"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

// BillingConfig holds invoice document and report configuration
type BillingConfig struct {
	DocumentsDir string  `mapstructure:"documents_dir"`
	CompanyName  string  `mapstructure:"company_name"`
	FooterNote   string  `mapstructure:"footer_note"`
	DefaultTax   float64 `mapstructure:"default_tax_percent"`
	Currency     string  `mapstructure:"currency"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// Load reads configuration from the yaml file, a local .env (if present)
// and environment variables, in increasing precedence.
func Load(configPath string) (*Config, error) {
	// .env is optional; missing file is fine.
	if _, err := os.Stat(".env"); err == nil {
		if err := gotenv.Load(); err != nil {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	bindEnvVars()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)

	viper.SetDefault("database.path", "data/bizops.db")
	viper.SetDefault("database.max_open_conns", 25)
	viper.SetDefault("database.max_idle_conns", 5)
	viper.SetDefault("database.conn_max_lifetime", 5*time.Minute)
	viper.SetDefault("database.migrations_dir", "migrations")

	viper.SetDefault("stripe.simulate", true)
	viper.SetDefault("stripe.success_url", "http://localhost:3000/payments/success")

	viper.SetDefault("slack.enabled", false)
	viper.SetDefault("slack.channel_prefix", "biz")

	viper.SetDefault("realtime.typing_ttl", 3500*time.Millisecond)
	viper.SetDefault("realtime.sweep_interval", 1500*time.Millisecond)

	viper.SetDefault("billing.documents_dir", "data/documents")
	viper.SetDefault("billing.company_name", "VendorBridge Inc.")
	viper.SetDefault("billing.default_tax_percent", 0.0)
	viper.SetDefault("billing.currency", "USD")

	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.output_path", "stdout")
	viper.SetDefault("logger.format", "console")
}

func bindEnvVars() {
	_ = viper.BindEnv("stripe.api_key", "STRIPE_API_KEY")
	_ = viper.BindEnv("slack.bot_token", "SLACK_BOT_TOKEN")
	_ = viper.BindEnv("server.port", "PORT")
	_ = viper.BindEnv("database.path", "DATABASE_PATH")
	_ = viper.BindEnv("logger.level", "LOG_LEVEL")
}

// Validate checks configuration consistency
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port out of range: %d", c.Server.Port)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database path is required")
	}
	if !c.Stripe.Simulate && c.Stripe.APIKey == "" {
		return fmt.Errorf("stripe api key is required when simulate mode is off")
	}
	if c.Slack.Enabled && c.Slack.BotToken == "" {
		return fmt.Errorf("slack bot token is required when slack is enabled")
	}
	if c.Realtime.TypingTTL <= 0 || c.Realtime.SweepInterval <= 0 {
		return fmt.Errorf("realtime intervals must be positive")
	}
	if c.Billing.DefaultTax < 0 || c.Billing.DefaultTax > 100 {
		return fmt.Errorf("default tax percent must be between 0 and 100")
	}
	return nil
}
