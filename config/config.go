package config

import (
	"strings"

	"rcsc-server/internal/logger"

	"github.com/spf13/viper"
)

type Config struct {
	Environment string
	ServerHost  string
	ServerPort  int

	// postgres in production, sqlite for local development
	DatabaseDriver string
	DatabaseURL    string
	DatabaseDbPath string

	DatabaseCacheAddress string
	DatabaseCachePort    int

	// Intake trust boundary
	IntakeAllowedOrigins []string
	IntakePlatformMarker string

	SessionTTLMinutes int

	// Membership pricing used by dashboard revenue stats
	PriceWithTshirt    int
	PriceWithoutTshirt int

	IPLookupURL string
}

func InitConfig() (Config, error) {
	log := logger.New("config").Function("InitConfig")

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, log.Err("failed to read config file", err)
		}
		log.Info("No config file found, using environment and defaults")
	}

	config := Config{
		Environment:          viper.GetString("environment"),
		ServerHost:           viper.GetString("server_host"),
		ServerPort:           viper.GetInt("server_port"),
		DatabaseDriver:       viper.GetString("database_driver"),
		DatabaseURL:          viper.GetString("database_url"),
		DatabaseDbPath:       viper.GetString("database_db_path"),
		DatabaseCacheAddress: viper.GetString("database_cache_address"),
		DatabaseCachePort:    viper.GetInt("database_cache_port"),
		IntakeAllowedOrigins: viper.GetStringSlice("intake_allowed_origins"),
		IntakePlatformMarker: viper.GetString("intake_platform_marker"),
		SessionTTLMinutes:    viper.GetInt("session_ttl_minutes"),
		PriceWithTshirt:      viper.GetInt("price_with_tshirt"),
		PriceWithoutTshirt:   viper.GetInt("price_without_tshirt"),
		IPLookupURL:          viper.GetString("ip_lookup_url"),
	}

	logger.Configure(config.Environment)
	log.Info("Config initialized", "environment", config.Environment)

	return config, nil
}

func setDefaults() {
	viper.SetDefault("environment", "development")
	viper.SetDefault("server_host", "0.0.0.0")
	viper.SetDefault("server_port", 8080)
	viper.SetDefault("database_driver", "sqlite")
	viper.SetDefault("database_db_path", "data/rcsc.db")
	viper.SetDefault("database_cache_address", "localhost")
	viper.SetDefault("database_cache_port", 6379)
	viper.SetDefault("intake_allowed_origins", []string{
		"http://localhost:3000",
		"https://rcscbd.org",
		"https://www.rcscbd.org",
	})
	viper.SetDefault("intake_platform_marker", "web-registration-form")
	viper.SetDefault("session_ttl_minutes", 720)
	viper.SetDefault("price_with_tshirt", 250)
	viper.SetDefault("price_without_tshirt", 150)
	viper.SetDefault("ip_lookup_url", "http://ip-api.com/batch")
}
