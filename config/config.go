package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Storage: "memory" keeps everything in process, "mongo" persists to DATABASE_URL.
	StorageBackend string `mapstructure:"STORAGE_BACKEND"`
	DatabaseURL    string `mapstructure:"DATABASE_URL"`
	DatabaseName   string `mapstructure:"DATABASE_NAME"`
	SeedDemoData   bool   `mapstructure:"SEED_DEMO_DATA"`

	// Redis configuration.
	RedisEnabled  bool   `mapstructure:"REDIS_ENABLED"`
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Encrypts worker ID and bank account numbers at rest when set.
	FieldEncryptionKey string `mapstructure:"FIELD_ENCRYPTION_KEY"`

	// Integrations.
	GeminiAPIKey    string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel     string `mapstructure:"GEMINI_MODEL"`
	StripeKey       string `mapstructure:"STRIPE_KEY"`
	PaymentProvider string `mapstructure:"PAYMENT_PROVIDER"`

	// Business rules.
	Currency               string  `mapstructure:"CURRENCY"`
	Timezone               string  `mapstructure:"TIMEZONE"`
	CommissionRate         float64 `mapstructure:"COMMISSION_RATE"`
	SearchRadiusKm         float64 `mapstructure:"SEARCH_RADIUS_KM"`
	InitialTrainingModules string  `mapstructure:"INITIAL_TRAINING_MODULES"`
	ReminderLeadMinutes    int     `mapstructure:"REMINDER_LEAD_MINUTES"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "")
	viper.SetDefault("JWT_SECRET", "clean-slate-dev-secret")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	viper.SetDefault("STORAGE_BACKEND", "memory")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "cleanslate")
	viper.SetDefault("SEED_DEMO_DATA", true)
	viper.SetDefault("REDIS_ENABLED", false)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 3)
	viper.SetDefault("FIELD_ENCRYPTION_KEY", "")
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GEMINI_MODEL", "models/gemini-1.5-pro")
	viper.SetDefault("STRIPE_KEY", "")
	viper.SetDefault("PAYMENT_PROVIDER", "stub")
	viper.SetDefault("CURRENCY", "ZAR")
	viper.SetDefault("TIMEZONE", "Africa/Johannesburg")
	viper.SetDefault("COMMISSION_RATE", 0.0)
	viper.SetDefault("SEARCH_RADIUS_KM", 10.0)
	viper.SetDefault("INITIAL_TRAINING_MODULES", "train002,train003")
	viper.SetDefault("REMINDER_LEAD_MINUTES", 120)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// Location resolves the business time zone used to compare calendar days.
// Falls back to UTC when the zone database has no entry for the configured name.
func Location() *time.Location {
	if AppConfig.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(AppConfig.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// InitialTrainingModuleIDs splits INITIAL_TRAINING_MODULES into module ids.
func InitialTrainingModuleIDs() []string {
	var ids []string
	for _, id := range strings.Split(AppConfig.InitialTrainingModules, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
