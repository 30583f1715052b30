package utils

import (
	"errors"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Admin    AdminConfig
	Pricing  map[string]float64
	Client   ClientConfig
}

type AppConfig struct {
	Name        string
	Port        string
	Debug       bool
	LogPath     string
	CORSOrigins string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	MaxConns int32
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
	Issuer      string
}

// AdminConfig holds the account created by the seed-admin command.
type AdminConfig struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

type ClientConfig struct {
	BaseURL      string
	PollInterval time.Duration
	StatePath    string
	Timeout      time.Duration
}

// DefaultJWTSecret is the development signing key used when JWT_SECRET is unset.
const DefaultJWTSecret = "change-me"

var ErrDefaultJWTSecret = errors.New("JWT_SECRET is unset or still the development default")

// pricingKeys maps each service type to the env key that overrides its rate.
var pricingKeys = map[string]string{
	"normal-wash":   "PRICE_NORMAL_WASH",
	"heavy-wash":    "PRICE_HEAVY_WASH",
	"delicate-wash": "PRICE_DELICATE_WASH",
	"express-wash":  "PRICE_EXPRESS_WASH",
}

// LoadConfig reads .env (or CONFIG_FILE) when present and overlays the
// process environment. A missing file is not an error.
func LoadConfig() (*Config, error) {
	v := viper.New()

	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = ".env"
	}
	v.SetConfigFile(configFile)
	v.SetConfigType("env")

	setDefaults(v)

	if _, err := os.Stat(configFile); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	v.AutomaticEnv()

	pricing := make(map[string]float64, len(pricingKeys))
	for service, key := range pricingKeys {
		pricing[service] = v.GetFloat64(key)
	}

	config := &Config{
		App: AppConfig{
			Name:        v.GetString("APP_NAME"),
			Port:        v.GetString("PORT"),
			Debug:       v.GetBool("DEBUG"),
			LogPath:     v.GetString("LOG_PATH"),
			CORSOrigins: v.GetString("CORS_ORIGINS"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			SSLMode:  v.GetString("DB_SSLMODE"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
		},
		JWT: JWTConfig{
			Secret:      v.GetString("JWT_SECRET"),
			ExpiryHours: v.GetInt("JWT_EXPIRY_HOURS"),
			Issuer:      v.GetString("JWT_ISSUER"),
		},
		Admin: AdminConfig{
			Name:     v.GetString("ADMIN_NAME"),
			Email:    v.GetString("ADMIN_EMAIL"),
			Phone:    v.GetString("ADMIN_PHONE"),
			Password: v.GetString("ADMIN_PASSWORD"),
		},
		Pricing: pricing,
		Client: ClientConfig{
			BaseURL:      v.GetString("CLIENT_BASE_URL"),
			PollInterval: v.GetDuration("CLIENT_POLL_INTERVAL"),
			StatePath:    v.GetString("CLIENT_STATE_PATH"),
			Timeout:      v.GetDuration("CLIENT_TIMEOUT"),
		},
	}

	return config, nil
}

// CheckSecrets reports a signing key that anyone can read in the source.
// Debug deployments may keep it.
func (c *Config) CheckSecrets() error {
	if c.JWT.Secret == "" || c.JWT.Secret == DefaultJWTSecret {
		if c.App.Debug {
			return nil
		}
		return ErrDefaultJWTSecret
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "laundry-service")
	v.SetDefault("PORT", "5000")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("CORS_ORIGINS", "*")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "laundry_db")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 5)

	v.SetDefault("JWT_SECRET", DefaultJWTSecret)
	v.SetDefault("JWT_EXPIRY_HOURS", 24*30)
	v.SetDefault("JWT_ISSUER", "laundry-service")

	v.SetDefault("ADMIN_NAME", "Administrator")
	v.SetDefault("ADMIN_EMAIL", "admin@laundry.com")
	v.SetDefault("ADMIN_PHONE", "0000000000")
	v.SetDefault("ADMIN_PASSWORD", "admin123")

	v.SetDefault("PRICE_NORMAL_WASH", 5)
	v.SetDefault("PRICE_HEAVY_WASH", 8)
	v.SetDefault("PRICE_DELICATE_WASH", 7)
	v.SetDefault("PRICE_EXPRESS_WASH", 10)

	v.SetDefault("CLIENT_BASE_URL", "http://localhost:5000/api")
	v.SetDefault("CLIENT_POLL_INTERVAL", 15*time.Second)
	v.SetDefault("CLIENT_STATE_PATH", "")
	v.SetDefault("CLIENT_TIMEOUT", 15*time.Second)
}
