package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	AppEnv   string
	LogLevel string

	HTTPPort int

	CatalogFile  string
	AccountsFile string

	StoreDriver string
	BadgerPath  string
	RedisURL    string
	RedisPrefix string

	JWTSecret     string
	JWTIssuer     string
	SessionTTLMin int

	RabbitMQURI string
	OrdersQueue string

	TracingEnabled bool
}

var defaults = map[string]any{
	"app_env":         "dev",
	"log_level":       "info",
	"http_port":       8080,
	"catalog_file":    "",
	"accounts_file":   "accounts.yaml",
	"store_driver":    "memory",
	"badger_path":     "./var/badger",
	"redis_url":       "redis://localhost:6379/0",
	"redis_prefix":    "rajah:",
	"jwt_secret":      "",
	"jwt_issuer":      "rajah-storefront",
	"session_ttl_min": 60,
	"rabbitmq_uri":    "",
	"orders_queue":    "orders",
	"tracing_enabled": false,
}

// Load reads configuration from the process environment. Keys are the upper-cased
// field names, e.g. STORE_DRIVER or SESSION_TTL_MIN.
func Load() Config {
	return fromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	for k, def := range defaults {
		v.SetDefault(k, def)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func fromViper(v *viper.Viper) Config {
	return Config{
		AppEnv:         v.GetString("app_env"),
		LogLevel:       v.GetString("log_level"),
		HTTPPort:       v.GetInt("http_port"),
		CatalogFile:    v.GetString("catalog_file"),
		AccountsFile:   v.GetString("accounts_file"),
		StoreDriver:    strings.ToLower(strings.TrimSpace(v.GetString("store_driver"))),
		BadgerPath:     v.GetString("badger_path"),
		RedisURL:       v.GetString("redis_url"),
		RedisPrefix:    v.GetString("redis_prefix"),
		JWTSecret:      v.GetString("jwt_secret"),
		JWTIssuer:      v.GetString("jwt_issuer"),
		SessionTTLMin:  v.GetInt("session_ttl_min"),
		RabbitMQURI:    v.GetString("rabbitmq_uri"),
		OrdersQueue:    v.GetString("orders_queue"),
		TracingEnabled: v.GetBool("tracing_enabled"),
	}
}
