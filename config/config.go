package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port       string
	DBURL      string
	JWTSecret  string
	JWTTTL     time.Duration
	CORSOrigin string
	LogLevel   string

	// JWTRefreshTTL is the lifetime of refresh tokens issued at login.
	JWTRefreshTTL time.Duration

	SweepEnabled  bool
	SweepSchedule string

	// SupersedePriorSubscription deactivates the subscriber's previous active
	// period inside the renewal transaction. Off keeps every period active
	// until its end date passes.
	SupersedePriorSubscription bool

	StripeSecretKey string
	StripeProductID string
}

func LoadEnv() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		Port:                       v.GetString("PORT"),
		DBURL:                      mustEnv(v, "DB_URL"),
		JWTSecret:                  mustEnv(v, "JWT_SECRET"),
		JWTTTL:                     v.GetDuration("JWT_TTL"),
		JWTRefreshTTL:              v.GetDuration("JWT_REFRESH_TTL"),
		CORSOrigin:                 v.GetString("CORS_ORIGIN"),
		LogLevel:                   v.GetString("LOG_LEVEL"),
		SweepEnabled:               v.GetBool("SWEEP_ENABLED"),
		SweepSchedule:              v.GetString("SWEEP_SCHEDULE"),
		SupersedePriorSubscription: v.GetBool("SUPERSEDE_PRIOR_SUBSCRIPTION"),
		StripeSecretKey:            v.GetString("STRIPE_SECRET_KEY"),
		StripeProductID:            v.GetString("STRIPE_PRODUCT_ID"),
	}
	return cfg
}

// Default returns the configuration used when nothing is set; tests start from it.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	return &Config{
		Port:          v.GetString("PORT"),
		JWTTTL:        v.GetDuration("JWT_TTL"),
		JWTRefreshTTL: v.GetDuration("JWT_REFRESH_TTL"),
		CORSOrigin:    v.GetString("CORS_ORIGIN"),
		LogLevel:      v.GetString("LOG_LEVEL"),
		SweepEnabled:  v.GetBool("SWEEP_ENABLED"),
		SweepSchedule: v.GetString("SWEEP_SCHEDULE"),
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("JWT_TTL", 24*time.Hour)
	v.SetDefault("JWT_REFRESH_TTL", 7*24*time.Hour)
	v.SetDefault("CORS_ORIGIN", "*")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SWEEP_ENABLED", true)
	v.SetDefault("SWEEP_SCHEDULE", "5 0 * * *")
	v.SetDefault("SUPERSEDE_PRIOR_SUBSCRIPTION", false)
}

func mustEnv(v *viper.Viper, key string) string {
	value := strings.TrimSpace(v.GetString(key))
	if value == "" {
		log.Fatalf("Missing required environment variable: %s", key)
	}
	return value
}
