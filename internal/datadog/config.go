package datadog

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/sethvargo/go-envconfig"

	"github.com/isometry/connector-datadog/internal/identity"
)

// Config holds configuration for the Datadog API client.
type Config struct {
	// Credential settings
	APIKey string `env:"DD_API_KEY" validate:"required"` // API key, sent as DD-API-KEY
	AppKey string `env:"DD_APP_KEY" validate:"required"` // Application key, sent as DD-APPLICATION-KEY

	// Endpoint settings
	Site    string `env:"DD_SITE, overwrite" default:"datadoghq.com"` // Datadog site, e.g. datadoghq.com, datadoghq.eu
	BaseURL string `env:"DD_BASE_URL"`                                // Explicit endpoint override (wins over Site)

	// Query settings
	PageSize int `env:"DD_PAGE_SIZE, overwrite" default:"50" validate:"gt=0"`   // Page size for listing calls
	MaxPages int `env:"DD_MAX_PAGES, overwrite" default:"1000" validate:"gt=0"` // Upper bound on pages per scan

	// Timeout settings
	ConnectTimeout time.Duration `env:"DD_CONNECT_TIMEOUT, overwrite" default:"10s"`
	RequestTimeout time.Duration `env:"DD_REQUEST_TIMEOUT, overwrite" default:"30s"`

	// Proxy settings
	HTTPProxyHost     string `env:"DD_HTTP_PROXY_HOST"`
	HTTPProxyPort     int    `env:"DD_HTTP_PROXY_PORT"`
	HTTPProxyUser     string `env:"DD_HTTP_PROXY_USER"`
	HTTPProxyPassword string `env:"DD_HTTP_PROXY_PASSWORD"`

	// Logger receives operation logging. Nil disables logging.
	Logger identity.Logger `validate:"-"`
}

var validate = validator.New()

// DefaultConfig returns a configuration with all defaults applied. Credentials
// must still be supplied before use.
func DefaultConfig() *Config {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		// The tags are static, this cannot fail at runtime.
		panic(fmt.Sprintf("datadog: failed to set config defaults: %v", err))
	}
	return cfg
}

// LoadConfigFromEnv builds a configuration from DD_* environment variables on
// top of the defaults.
func LoadConfigFromEnv(ctx context.Context) (*Config, error) {
	cfg := DefaultConfig()
	if err := envconfig.Process(ctx, cfg); err != nil {
		return nil, identity.NewError("load config", identity.ErrorCategoryConfiguration,
			fmt.Sprintf("failed to process environment: %v", err))
	}
	return cfg, nil
}

// Validate checks the configuration for completeness.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return identity.NewError("validate config", identity.ErrorCategoryConfiguration, err.Error())
	}
	if c.BaseURL != "" {
		if _, err := url.Parse(c.BaseURL); err != nil {
			return identity.NewError("validate config", identity.ErrorCategoryConfiguration,
				fmt.Sprintf("invalid base URL %q: %v", c.BaseURL, err))
		}
	}
	return nil
}

// APIURL returns the endpoint all requests are sent to: the explicit BaseURL
// when set, otherwise the API host of the configured site.
func (c *Config) APIURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return fmt.Sprintf("https://api.%s", c.Site)
}

// ProxyURL returns the proxy endpoint or the empty string when no proxy is
// configured.
func (c *Config) ProxyURL() string {
	if c.HTTPProxyHost == "" || c.HTTPProxyPort <= 0 {
		return ""
	}

	proxy := url.URL{
		Scheme: "http",
		Host:   fmt.Sprintf("%s:%d", c.HTTPProxyHost, c.HTTPProxyPort),
	}
	if c.HTTPProxyUser != "" && c.HTTPProxyPassword != "" {
		proxy.User = url.UserPassword(c.HTTPProxyUser, c.HTTPProxyPassword)
	}
	return proxy.String()
}

// logger returns the configured logger or a nop logger.
func (c *Config) logger() identity.Logger {
	if c.Logger == nil {
		return identity.NopLogger{}
	}
	return c.Logger
}
