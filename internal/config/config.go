package config

import "os"

// Config holds the environment-sourced settings. PayHero values are not
// validated here; a missing credential or channel id surfaces on the first
// gateway call.
type Config struct {
	DatabaseURL  string
	RedisURL     string
	KafkaBrokers string
	Port         string

	PayHeroUsername    string
	PayHeroPassword    string
	PayHeroChannelID   string
	PayHeroCallbackURL string

	// CompatErrors restores the legacy behavior of returning raw internal
	// error messages on the pay endpoint's 500 responses.
	CompatErrors bool
}

func Load() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	return &Config{
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		RedisURL:     os.Getenv("REDIS_URL"),
		KafkaBrokers: os.Getenv("KAFKA_BROKERS"),
		Port:         port,

		PayHeroUsername:    os.Getenv("PAYHERO_API_USERNAME"),
		PayHeroPassword:    os.Getenv("PAYHERO_API_PASSWORD"),
		PayHeroChannelID:   os.Getenv("PAYHERO_CHANNEL_ID"),
		PayHeroCallbackURL: os.Getenv("PAYHERO_CALLBACK_URL"),

		CompatErrors: os.Getenv("PAYHERO_COMPAT_ERRORS") == "true",
	}
}
