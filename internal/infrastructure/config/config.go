package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/briefing/backend/internal/domain/printing"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App     AppConfig
	Log     LogConfig
	HTTP    HTTPConfig
	Summary SummaryConfig
	Chrome  ChromeConfig
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `validate:"oneof=debug info warn error"`
	Format string `validate:"oneof=json console"`
	Output string // stdout, stderr, or file path
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string `validate:"required"`
	Env  string `validate:"oneof=development testing staging production"`
	Port string `validate:"required,numeric"`
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	ShutdownTimeout  time.Duration
	MaxHeaderBytes   int
	MaxBodySize      int64
	CORSAllowOrigins []string
	CORSAllowMethods []string
	CORSAllowHeaders []string
	TrustedProxies   []string
}

// SummaryConfig holds the executive summary document settings
type SummaryConfig struct {
	ContentPath string // payload override; empty uses the embedded payload
	BackLink    string `validate:"required"`
	AssetPrefix string `validate:"required,startswith=/"`
	PaperSize   string `validate:"required"`
	Orientation string `validate:"oneof=portrait landscape"`
	MarginMM    int    `validate:"min=0,max=100"`
	AutoPrint   bool   // open the print dialog on load
}

// ChromeConfig holds the headless Chrome print host settings
type ChromeConfig struct {
	Enabled     bool
	RemoteURL   string `validate:"omitempty,url"`
	ExecPath    string
	NoSandbox   bool
	Timeout     time.Duration
	OutputDir   string
	Retention   time.Duration
	ServerPrint bool // expose the server-side print trigger
}

// Geometry returns the configured print sheet
func (s SummaryConfig) Geometry() (printing.PageGeometry, error) {
	size, ok := printing.ParsePaperSize(s.PaperSize)
	if !ok {
		return printing.PageGeometry{}, fmt.Errorf("summary.paper_size %q is not a known paper size", s.PaperSize)
	}
	margins, err := printing.NewMargins(s.MarginMM, s.MarginMM, s.MarginMM, s.MarginMM)
	if err != nil {
		return printing.PageGeometry{}, err
	}
	return printing.NewPageGeometry(size, printing.Orientation(strings.ToUpper(s.Orientation)), margins)
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with BRIEF_ prefix (e.g., BRIEF_SUMMARY_PAPER_SIZE)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	return fromViper(v)
}

// LoadFile loads configuration from an explicit TOML file plus environment variables
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	// Enable environment variable override
	v.SetEnvPrefix("BRIEF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Zero is a valid margin, so its default cannot be inferred from the value
	v.SetDefault("summary.margin_mm", printing.DefaultMargins().Top)

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:      v.GetDuration("http.read_timeout"),
			WriteTimeout:     v.GetDuration("http.write_timeout"),
			IdleTimeout:      v.GetDuration("http.idle_timeout"),
			ShutdownTimeout:  v.GetDuration("http.shutdown_timeout"),
			MaxHeaderBytes:   v.GetInt("http.max_header_bytes"),
			MaxBodySize:      v.GetInt64("http.max_body_size"),
			CORSAllowOrigins: v.GetStringSlice("http.cors_allow_origins"),
			CORSAllowMethods: v.GetStringSlice("http.cors_allow_methods"),
			CORSAllowHeaders: v.GetStringSlice("http.cors_allow_headers"),
			TrustedProxies:   v.GetStringSlice("http.trusted_proxies"),
		},
		Summary: SummaryConfig{
			ContentPath: v.GetString("summary.content_path"),
			BackLink:    v.GetString("summary.back_link"),
			AssetPrefix: v.GetString("summary.asset_prefix"),
			PaperSize:   v.GetString("summary.paper_size"),
			Orientation: strings.ToLower(v.GetString("summary.orientation")),
			MarginMM:    v.GetInt("summary.margin_mm"),
			AutoPrint:   v.GetBool("summary.auto_print"),
		},
		Chrome: ChromeConfig{
			Enabled:     v.GetBool("chrome.enabled"),
			RemoteURL:   v.GetString("chrome.remote_url"),
			ExecPath:    v.GetString("chrome.exec_path"),
			NoSandbox:   v.GetBool("chrome.no_sandbox"),
			Timeout:     v.GetDuration("chrome.timeout"),
			OutputDir:   v.GetString("chrome.output_dir"),
			Retention:   v.GetDuration("chrome.retention"),
			ServerPrint: v.GetBool("chrome.server_print"),
		},
	}

	// Apply defaults for empty values
	applyDefaults(cfg)

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "briefing"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		// export requests wait for the headless host
		cfg.HTTP.WriteTimeout = 90 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.ShutdownTimeout == 0 {
		cfg.HTTP.ShutdownTimeout = 30 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20 // 1MB
	}
	if cfg.HTTP.MaxBodySize == 0 {
		cfg.HTTP.MaxBodySize = 1 << 20 // 1MB
	}
	// NOTE: CORS origins have no "*" fallback; cross-origin requests are refused until configured.
	if len(cfg.HTTP.CORSAllowMethods) == 0 {
		cfg.HTTP.CORSAllowMethods = []string{"GET", "POST", "OPTIONS"}
	}
	if len(cfg.HTTP.CORSAllowHeaders) == 0 {
		cfg.HTTP.CORSAllowHeaders = []string{"Content-Type", "X-Request-ID"}
	}
	if cfg.Summary.BackLink == "" {
		cfg.Summary.BackLink = "/presentation"
	}
	if cfg.Summary.AssetPrefix == "" {
		cfg.Summary.AssetPrefix = "/executive-summary/assets"
	}
	if cfg.Summary.PaperSize == "" {
		cfg.Summary.PaperSize = string(printing.PaperSizeA4)
	}
	if cfg.Summary.Orientation == "" {
		cfg.Summary.Orientation = "portrait"
	}
	if cfg.Chrome.Timeout == 0 {
		cfg.Chrome.Timeout = 60 * time.Second
	}
	if cfg.Chrome.OutputDir == "" {
		cfg.Chrome.OutputDir = "exports"
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid configuration %s: failed %q check (value %v)", fe.Namespace(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if _, err := c.Summary.Geometry(); err != nil {
		return fmt.Errorf("invalid summary page geometry: %w", err)
	}

	// the asset route is a catch-all under the prefix
	switch prefix := strings.TrimRight(c.Summary.AssetPrefix, "/"); {
	case prefix == "", prefix == "/executive-summary", prefix == "/health",
		prefix == "/api", strings.HasPrefix(prefix, "/api/"):
		return fmt.Errorf("summary.asset_prefix %q collides with another route", c.Summary.AssetPrefix)
	}

	if c.HTTP.MaxBodySize < 0 {
		return fmt.Errorf("http.max_body_size cannot be negative")
	}

	// Production-specific validations
	if c.App.Env == "production" {
		// CORS must not use wildcard
		for _, origin := range c.HTTP.CORSAllowOrigins {
			if origin == "*" {
				return fmt.Errorf("cors_allow_origins cannot be '*' in production (use specific origins)")
			}
		}
		if c.Chrome.Enabled && c.Chrome.NoSandbox && c.Chrome.RemoteURL == "" {
			return fmt.Errorf("chrome.no_sandbox is not allowed for a local browser in production")
		}
	}

	return nil
}
