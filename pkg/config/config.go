package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces every environment variable the client reads.
const EnvPrefix = "SPICESHOP"

type Config struct {
	App      AppConfig
	Backend  BackendConfig
	Razorpay RazorpayConfig
	Session  SessionConfig
	Shop     ShopConfig
	Banner   BannerConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Backend.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	LogLevel     string `envconfig:"SPICESHOP_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SPICESHOP_LOG_WARN_STACK" default:"false"`
}

type BackendConfig struct {
	URL         string        `envconfig:"SPICESHOP_BACKEND_URL" required:"true"`
	HTTPTimeout time.Duration `envconfig:"SPICESHOP_HTTP_TIMEOUT" default:"30s"`
}

func (b BackendConfig) validate() error {
	raw := strings.TrimSpace(b.URL)
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("SPICESHOP_BACKEND_URL must be an absolute URL, got %q", b.URL)
	}
	return nil
}

// BaseURL returns the backend URL without a trailing slash.
func (b BackendConfig) BaseURL() string {
	return strings.TrimRight(strings.TrimSpace(b.URL), "/")
}

type RazorpayConfig struct {
	KeyID        string `envconfig:"SPICESHOP_RAZORPAY_KEY_ID"`
	CallbackAddr string `envconfig:"SPICESHOP_RAZORPAY_CALLBACK_ADDR" default:"127.0.0.1:0"`
}

type SessionConfig struct {
	File string `envconfig:"SPICESHOP_SESSION_FILE"`
}

type ShopConfig struct {
	FreeShippingThreshold int64 `envconfig:"SPICESHOP_FREE_SHIPPING_THRESHOLD" default:"500"`
	FlatShippingFee       int64 `envconfig:"SPICESHOP_FLAT_SHIPPING_FEE" default:"50"`
	CODLimit              int64 `envconfig:"SPICESHOP_COD_LIMIT" default:"5000"`
	AdminOrdersPageSize   int   `envconfig:"SPICESHOP_ADMIN_ORDERS_PAGE_SIZE" default:"8"`
	AdminSpicesPageSize   int   `envconfig:"SPICESHOP_ADMIN_SPICES_PAGE_SIZE" default:"10"`
}

type BannerConfig struct {
	CartTTL time.Duration `envconfig:"SPICESHOP_CART_BANNER_TTL" default:"3s"`
	FormTTL time.Duration `envconfig:"SPICESHOP_FORM_BANNER_TTL" default:"5s"`
}
