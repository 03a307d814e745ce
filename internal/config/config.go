package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	API         APIConfig         `yaml:"api"`
	Identity    IdentityConfig    `yaml:"identity"`
	Fingerprint FingerprintConfig `yaml:"fingerprint"`
	Database    DatabaseConfig    `yaml:"database"`
	RateLimit   RateLimitConfig   `yaml:"rate_limit"`
}

type ServerConfig struct {
	Port         string   `yaml:"port"`
	Env          string   `yaml:"env"`
	AllowOrigins []string `yaml:"allow_origins"`
}

// APIConfig points at the external ProfeScore REST backend.
type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type IdentityConfig struct {
	CookieName   string `yaml:"cookie_name"`
	CookieDomain string `yaml:"cookie_domain"`
	Secure       bool   `yaml:"secure"`
	TokenLength  int    `yaml:"token_length"`
}

// FingerprintConfig enables the IP + device fingerprint check on rating
// submission. Both providers must be reachable when Enabled is set.
type FingerprintConfig struct {
	Enabled     bool   `yaml:"enabled"`
	ProviderURL string `yaml:"provider_url"`
	APIKey      string `yaml:"api_key"`
	IPLookupURL string `yaml:"ip_lookup_url"`
}

// DatabaseConfig selects the visitor ledger backend. An empty Driver
// disables the ledger.
type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

type RateLimitConfig struct {
	Limit float64 `yaml:"limit"`
	Burst int     `yaml:"burst"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:         "8080",
			Env:          "production",
			AllowOrigins: []string{"http://localhost:5173"},
		},
		API: APIConfig{
			BaseURL: "http://localhost:4000/api",
			Timeout: 10 * time.Second,
		},
		Identity: IdentityConfig{
			CookieName:  "visitor_id",
			TokenLength: 16,
		},
		Fingerprint: FingerprintConfig{
			IPLookupURL: "https://ipinfo.io",
		},
		RateLimit: RateLimitConfig{
			Limit: 1,
			Burst: 5,
		},
	}
}

// Load builds the configuration from defaults, the optional YAML file at
// CONFIG_PATH and finally environment variables (a .env file is loaded
// automatically).
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, err
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("error opening config file %s: %w", path, err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("error decoding config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Server.Port, "PORT")
	setString(&cfg.Server.Env, "APP_ENV")
	if v := os.Getenv("ALLOW_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.Server.AllowOrigins = origins
	}

	setString(&cfg.API.BaseURL, "API_URL")
	setDuration(&cfg.API.Timeout, "API_TIMEOUT")

	setString(&cfg.Identity.CookieName, "VISITOR_COOKIE_NAME")
	setString(&cfg.Identity.CookieDomain, "COOKIE_DOMAIN")
	setBool(&cfg.Identity.Secure, "COOKIE_SECURE")
	setInt(&cfg.Identity.TokenLength, "VISITOR_TOKEN_LENGTH")

	setBool(&cfg.Fingerprint.Enabled, "FINGERPRINT_ENABLED")
	setString(&cfg.Fingerprint.ProviderURL, "FINGERPRINT_URL")
	setString(&cfg.Fingerprint.APIKey, "FINGERPRINT_API_KEY")
	setString(&cfg.Fingerprint.IPLookupURL, "IP_LOOKUP_URL")

	setString(&cfg.Database.Driver, "DB_DRIVER")
	setString(&cfg.Database.DSN, "DB_DSN")
	if cfg.Database.Driver == "postgres" && cfg.Database.DSN == "" && os.Getenv("DB_HOST") != "" {
		cfg.Database.DSN = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
			os.Getenv("DB_HOST"),
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_NAME"),
			os.Getenv("DB_PORT"),
			os.Getenv("DB_SSLMODE"),
		)
	}

	if v, err := strconv.ParseFloat(os.Getenv("RATE_LIMIT"), 64); err == nil {
		cfg.RateLimit.Limit = v
	}
	setInt(&cfg.RateLimit.Burst, "RATE_LIMIT_BURST")
}

func (c Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api base url is required")
	}
	// Identity travels in cookies, so CORS responses carry credentials and
	// must name each origin.
	if len(c.Server.AllowOrigins) == 0 {
		return fmt.Errorf("at least one allowed origin is required")
	}
	for _, o := range c.Server.AllowOrigins {
		if strings.Contains(o, "*") {
			return fmt.Errorf("wildcard origin %q is not allowed with credentialed requests", o)
		}
	}
	if c.Identity.TokenLength < 10 {
		return fmt.Errorf("visitor token length must be at least 10, got %d", c.Identity.TokenLength)
	}
	if c.Fingerprint.Enabled && (c.Fingerprint.ProviderURL == "" || c.Fingerprint.IPLookupURL == "") {
		return fmt.Errorf("fingerprint provider and ip lookup urls are required when fingerprinting is enabled")
	}
	switch c.Database.Driver {
	case "", "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	return nil
}

func (c Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		*dst = v
	}
}

func setBool(dst *bool, key string) {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		*dst = v
	}
}
