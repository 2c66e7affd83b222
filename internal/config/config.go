package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App            App            `mapstructure:",squash"`
	Server         Server         `mapstructure:",squash"`
	SaGer          SaGer          `mapstructure:",squash"`
	Mandii         Mandii         `mapstructure:",squash"`
	HTTP           HTTP           `mapstructure:",squash"`
	ShopProfile    ShopProfile    `mapstructure:",squash"`
	SummaryRefresh SummaryRefresh `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

// Server é o endereço da API local consumida pela camada de apresentação
type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type SaGer struct {
	BaseURL   string `mapstructure:"sager_base_url"`
	PublicURL string `mapstructure:"sager_public_url"`
}

type Mandii struct {
	BaseURL         string `mapstructure:"mandii_base_url"`
	AllowedHost     string `mapstructure:"mandii_allowed_host"`
	FeedURL         string `mapstructure:"mandii_feed_url"`
	ShopURLTemplate string `mapstructure:"mandii_shop_url_template"`
}

// HTTP é a configuração de transporte compartilhada pelos dois clientes
type HTTP struct {
	ConnectTimeout time.Duration `mapstructure:"http_connect_timeout"`
	ReadTimeout    time.Duration `mapstructure:"http_read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"http_write_timeout"`
	LogBodies      bool          `mapstructure:"http_log_bodies"`
}

type ShopProfile struct {
	SummaryDays            int     `mapstructure:"daily_summary_days"`
	SummaryTop             int     `mapstructure:"daily_summary_top"`
	OverviewFallbackAmount float64 `mapstructure:"overview_fallback_amount"`
	OverviewFallbackCount  int     `mapstructure:"overview_fallback_count"`
}

type SummaryRefresh struct {
	CronSchedule string `mapstructure:"summary_refresh_cron"`
	Enabled      bool   `mapstructure:"summary_refresh_enabled"`
}

func SetDefaults() {
	viper.SetDefault("LOG_LEVEL", "info")

	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"})

	viper.SetDefault("SAGER_BASE_URL", "http://10.0.2.2:8000/")
	viper.SetDefault("SAGER_PUBLIC_URL", "http://10.0.2.2:8000/")

	viper.SetDefault("MANDII_BASE_URL", "http://10.0.2.2:8001/")
	viper.SetDefault("MANDII_ALLOWED_HOST", "10.0.2.2:8001")
	viper.SetDefault("MANDII_FEED_URL", "http://10.0.2.2:8001/v1/feed/page/")
	viper.SetDefault("MANDII_SHOP_URL_TEMPLATE", "http://10.0.2.2:8001/v1/shop/%d/")

	// Teto generoso para redes móveis, não ajustado por endpoint
	viper.SetDefault("HTTP_CONNECT_TIMEOUT", 30*time.Second)
	viper.SetDefault("HTTP_READ_TIMEOUT", 30*time.Second)
	viper.SetDefault("HTTP_WRITE_TIMEOUT", 30*time.Second)
	viper.SetDefault("HTTP_LOG_BODIES", false)

	viper.SetDefault("DAILY_SUMMARY_DAYS", 14)
	viper.SetDefault("DAILY_SUMMARY_TOP", 10)
	viper.SetDefault("OVERVIEW_FALLBACK_AMOUNT", 1250.0)
	viper.SetDefault("OVERVIEW_FALLBACK_COUNT", 8)

	viper.SetDefault("SUMMARY_REFRESH_CRON", "*/15 * * * *") // A cada 15 minutos
	viper.SetDefault("SUMMARY_REFRESH_ENABLED", false)
}

func NewConfig() (*Config, error) {
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Debug("using environment loaded by godotenv (viper could not read .env): ", err)
	}

	err := viper.Unmarshal(config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate verifica URLs e timeouts antes de qualquer cliente ser construído
func (c *Config) Validate() error {
	for name, raw := range map[string]string{
		"SAGER_BASE_URL":   c.SaGer.BaseURL,
		"MANDII_BASE_URL":  c.Mandii.BaseURL,
		"SAGER_PUBLIC_URL": c.SaGer.PublicURL,
		"MANDII_FEED_URL":  c.Mandii.FeedURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("config: %s must be an absolute http(s) URL, got %q", name, raw)
		}
	}

	if c.HTTP.ConnectTimeout <= 0 || c.HTTP.ReadTimeout <= 0 || c.HTTP.WriteTimeout <= 0 {
		return fmt.Errorf("config: http timeouts must be positive")
	}

	if c.Mandii.AllowedHost == "" {
		return fmt.Errorf("config: MANDII_ALLOWED_HOST is required")
	}

	// As páginas da comunidade precisam passar pela lista de permissão do navegador embutido
	if !strings.Contains(c.Mandii.ShopURLTemplate, "%d") {
		return fmt.Errorf("config: MANDII_SHOP_URL_TEMPLATE must contain %%d, got %q", c.Mandii.ShopURLTemplate)
	}
	for name, raw := range map[string]string{
		"MANDII_FEED_URL":          c.Mandii.FeedURL,
		"MANDII_SHOP_URL_TEMPLATE": fmt.Sprintf(c.Mandii.ShopURLTemplate, 1),
	} {
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host != c.Mandii.AllowedHost {
			return fmt.Errorf("config: %s must be an http(s) URL on %s, got %q", name, c.Mandii.AllowedHost, raw)
		}
	}

	return nil
}

// Addr é o endereço de escuta da API local
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("could not get working directory: ", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("loaded .env from ", location)
			return
		}
	}

	logrus.Debug("no .env file found, using process environment")
}
